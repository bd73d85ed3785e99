package service

import (
	"context"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/logging"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type CommentService struct {
	repo        domain.Repository
	completions domain.CompletionChecker
	eventBus    domain.EventPublisher
	logger      *zerolog.Logger
	now         func() time.Time
}

func NewCommentService(repo domain.Repository, completions domain.CompletionChecker, eventBus domain.EventPublisher, logger *zerolog.Logger) *CommentService {
	return &CommentService{
		repo:        repo,
		completions: completions,
		eventBus:    eventBus,
		logger:      logging.Component(logger, "comment_service"),
		now:         time.Now,
	}
}

// Post attaches a comment from a user who has finished renting the item.
func (s *CommentService) Post(ctx context.Context, authorID, itemID int64, in models.CommentInput) (models.CommentView, error) {
	author, err := findUser(ctx, s.repo, authorID)
	if err != nil {
		return models.CommentView{}, err
	}
	if _, err := findItem(ctx, s.repo, itemID); err != nil {
		return models.CommentView{}, err
	}

	now := s.now()
	completed, err := s.completions.ExistsCompletedBooking(ctx, itemID, authorID, now)
	if err != nil {
		return models.CommentView{}, err
	}
	if !completed {
		return models.CommentView{}, apperr.BadRequest("User with id %d cannot comment item with id %d", authorID, itemID)
	}

	comment := &models.Comment{
		Text:       in.Text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return models.CommentView{}, err
	}

	if s.eventBus != nil {
		payload := events.CommentEventPayload{CommentID: comment.ID, ItemID: itemID, AuthorID: authorID}
		if err := s.eventBus.PublishJSON(events.EventCommentPosted, payload); err != nil {
			s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
		}
	}
	return models.NewCommentView(comment), nil
}

// ListForItem returns the item's comments oldest first.
func (s *CommentService) ListForItem(ctx context.Context, itemID int64) ([]models.CommentView, error) {
	comments, err := s.repo.ListCommentsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, models.NewCommentView(c))
	}
	return views, nil
}
