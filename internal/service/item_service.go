package service

import (
	"context"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/logging"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo     domain.Repository
	bookings domain.BookingProjector
	comments domain.CommentLister
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewItemService(repo domain.Repository, bookings domain.BookingProjector, comments domain.CommentLister, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		repo:     repo,
		bookings: bookings,
		comments: comments,
		logger:   logging.Component(logger, "item_service"),
		now:      time.Now,
	}
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, in models.ItemInput) (models.ItemView, error) {
	if _, err := findUser(ctx, s.repo, ownerID); err != nil {
		return models.ItemView{}, err
	}
	if in.Available == nil {
		return models.ItemView{}, apperr.Validation("Field available must not be null")
	}

	item := &models.Item{OwnerID: ownerID, RequestID: in.RequestID}
	item.Apply(in)
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return models.ItemView{}, err
	}

	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")
	return models.NewItemView(item), nil
}

// Update patches an item. Only the owner may change it.
func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, in models.ItemInput) (models.ItemView, error) {
	item, err := findItem(ctx, s.repo, itemID)
	if err != nil {
		return models.ItemView{}, err
	}
	if item.OwnerID != ownerID {
		return models.ItemView{}, apperr.WrongUser("User with id %d cannot modify item with id %d", ownerID, itemID)
	}

	item.Apply(in)
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return models.ItemView{}, err
	}
	return models.NewItemView(item), nil
}

// GetByID returns the item with its comments. Last and next bookings are
// attached only when the requester owns the item.
func (s *ItemService) GetByID(ctx context.Context, itemID, requesterID int64) (models.ItemView, error) {
	item, err := findItem(ctx, s.repo, itemID)
	if err != nil {
		return models.ItemView{}, err
	}
	return s.detail(ctx, item, requesterID)
}

func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]models.ItemView, error) {
	items, err := s.repo.ListItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	views := make([]models.ItemView, 0, len(items))
	for _, item := range items {
		view, err := s.detail(ctx, item, ownerID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Search is a case-insensitive substring match over available items. Blank
// text yields an empty list.
func (s *ItemService) Search(ctx context.Context, text string) ([]models.ItemView, error) {
	items, err := s.repo.SearchAvailableItems(ctx, text)
	if err != nil {
		return nil, err
	}
	views := make([]models.ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, models.NewItemView(item))
	}
	return views, nil
}

func (s *ItemService) detail(ctx context.Context, item *models.Item, requesterID int64) (models.ItemView, error) {
	view := models.NewItemView(item)

	comments, err := s.comments.ListForItem(ctx, item.ID)
	if err != nil {
		return models.ItemView{}, err
	}
	view.Comments = comments

	if item.OwnerID != requesterID {
		return view, nil
	}

	now := s.now()
	last, err := s.bookings.LastBookingFor(ctx, item.ID, now)
	if err != nil {
		return models.ItemView{}, err
	}
	next, err := s.bookings.NextBookingFor(ctx, item.ID, now)
	if err != nil {
		return models.ItemView{}, err
	}
	view.LastBooking = models.NewBookingShort(last)
	view.NextBooking = models.NewBookingShort(next)
	return view, nil
}
