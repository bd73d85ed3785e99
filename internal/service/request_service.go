package service

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/logging"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   domain.Repository
	logger *zerolog.Logger
	now    func() time.Time
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{
		repo:   repo,
		logger: logging.Component(logger, "request_service"),
		now:    time.Now,
	}
}

func (s *RequestService) Create(ctx context.Context, requestorID int64, in models.RequestInput) (models.RequestView, error) {
	if _, err := findUser(ctx, s.repo, requestorID); err != nil {
		return models.RequestView{}, err
	}

	request := &models.ItemRequest{
		Description: in.Description,
		RequestorID: requestorID,
		Created:     s.now(),
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return models.RequestView{}, err
	}

	s.logger.Info().Int64("request_id", request.ID).Int64("requestor_id", requestorID).Msg("request created")
	return models.NewRequestView(request, nil), nil
}

// ListForRequestor returns the user's own requests, newest first.
func (s *RequestService) ListForRequestor(ctx context.Context, userID int64) ([]models.RequestView, error) {
	requests, err := s.repo.ListRequestsByRequestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

// ListAll returns the requests of every user, the caller's included, newest first.
func (s *RequestService) ListAll(ctx context.Context, userID int64) ([]models.RequestView, error) {
	if _, err := findUser(ctx, s.repo, userID); err != nil {
		return nil, err
	}
	requests, err := s.repo.ListRequests(ctx)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, requests)
}

// GetByID is open to any caller.
func (s *RequestService) GetByID(ctx context.Context, userID, requestID int64) (models.RequestView, error) {
	request, err := findRequest(ctx, s.repo, requestID)
	if err != nil {
		return models.RequestView{}, err
	}
	views, err := s.withItems(ctx, []*models.ItemRequest{request})
	if err != nil {
		return models.RequestView{}, err
	}
	return views[0], nil
}

func (s *RequestService) withItems(ctx context.Context, requests []*models.ItemRequest) ([]models.RequestView, error) {
	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	items, err := s.repo.ListItemsByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRequest := make(map[int64][]*models.Item)
	for _, item := range items {
		if item.RequestID != nil {
			byRequest[*item.RequestID] = append(byRequest[*item.RequestID], item)
		}
	}

	views := make([]models.RequestView, 0, len(requests))
	for _, r := range requests {
		views = append(views, models.NewRequestView(r, byRequest[r.ID]))
	}
	return views, nil
}
