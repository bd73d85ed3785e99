package service

import (
	"context"
	"sort"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/logging"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logging.Component(logger, "booking_service"),
		now:      time.Now,
	}
}

// Create registers a WAITING booking of in.ItemID for bookerID.
func (s *BookingService) Create(ctx context.Context, bookerID int64, in models.BookingInput) (models.BookingRecord, error) {
	booker, err := findUser(ctx, s.repo, bookerID)
	if err != nil {
		return models.BookingRecord{}, err
	}
	item, err := findItem(ctx, s.repo, in.ItemID)
	if err != nil {
		return models.BookingRecord{}, err
	}

	// Wire times carry whole seconds, so "now" is compared at the same resolution.
	now := s.now().Truncate(time.Second)
	start, end := in.Start.Time, in.End.Time
	switch {
	case start.Before(now):
		return models.BookingRecord{}, apperr.WrongDate("Start time cannot be in the past")
	case start.After(end):
		return models.BookingRecord{}, apperr.WrongDate("Start time cannot be after end time")
	case start.Equal(end):
		return models.BookingRecord{}, apperr.WrongDate("Start time cannot be equal to end time")
	}
	if !item.Available {
		return models.BookingRecord{}, apperr.UnavailableItem("Item %s with id %d is not available for booking", item.Name, item.ID)
	}

	booking := &models.Booking{
		Start:    start,
		End:      end,
		ItemID:   item.ID,
		BookerID: booker.ID,
		Status:   models.StatusWaiting,
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return models.BookingRecord{}, err
	}

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("item_id", item.ID).
		Int64("booker_id", booker.ID).
		Msg("booking created")
	s.publishEvent(events.EventBookingCreated, booking, item, booker.ID)

	return models.NewBookingRecord(booking, item, booker), nil
}

// Decide approves or rejects a booking on behalf of the item owner.
// A decided booking may be decided again.
func (s *BookingService) Decide(ctx context.Context, bookingID, actingUserID int64, approve bool) (models.BookingRecord, error) {
	booking, err := findBooking(ctx, s.repo, bookingID)
	if err != nil {
		return models.BookingRecord{}, err
	}
	item, err := findItem(ctx, s.repo, booking.ItemID)
	if err != nil {
		return models.BookingRecord{}, err
	}
	if item.OwnerID != actingUserID {
		return models.BookingRecord{}, apperr.Forbidden("User with id %d cannot decide booking with id %d", actingUserID, bookingID)
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approve {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}
	if err := s.repo.UpdateBookingStatus(ctx, booking.ID, status); err != nil {
		return models.BookingRecord{}, err
	}
	previous := booking.Status
	booking.Status = status

	booker, err := findUser(ctx, s.repo, booking.BookerID)
	if err != nil {
		return models.BookingRecord{}, err
	}

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Str("from", string(previous)).
		Str("to", string(status)).
		Msg("booking decided")
	s.publishEvent(eventType, booking, item, actingUserID)

	return models.NewBookingRecord(booking, item, booker), nil
}

// GetByID is visible to the booker and the item owner only.
func (s *BookingService) GetByID(ctx context.Context, bookingID, actingUserID int64) (models.BookingRecord, error) {
	booking, err := findBooking(ctx, s.repo, bookingID)
	if err != nil {
		return models.BookingRecord{}, err
	}
	item, err := findItem(ctx, s.repo, booking.ItemID)
	if err != nil {
		return models.BookingRecord{}, err
	}
	if actingUserID != item.OwnerID && actingUserID != booking.BookerID {
		return models.BookingRecord{}, apperr.Forbidden("User with id %d cannot view booking with id %d", actingUserID, bookingID)
	}
	booker, err := findUser(ctx, s.repo, booking.BookerID)
	if err != nil {
		return models.BookingRecord{}, err
	}
	return models.NewBookingRecord(booking, item, booker), nil
}

// ListForBooker returns the user's own bookings in the state, ordered by start.
func (s *BookingService) ListForBooker(ctx context.Context, userID int64, state models.BookingState) ([]models.BookingRecord, error) {
	if _, err := findUser(ctx, s.repo, userID); err != nil {
		return nil, err
	}
	bookings, err := s.repo.ListBookingsByBooker(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.filterState(ctx, bookings, state)
}

// ListForOwner returns bookings of the user's items in the state, ordered by start.
func (s *BookingService) ListForOwner(ctx context.Context, userID int64, state models.BookingState) ([]models.BookingRecord, error) {
	if _, err := findUser(ctx, s.repo, userID); err != nil {
		return nil, err
	}
	bookings, err := s.repo.ListBookingsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.filterState(ctx, bookings, state)
}

func (s *BookingService) filterState(ctx context.Context, bookings []*models.Booking, state models.BookingState) ([]models.BookingRecord, error) {
	now := s.now()
	selected := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if state.Matches(b, now) {
			selected = append(selected, b)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Start.Before(selected[j].Start)
	})

	items := make(map[int64]*models.Item)
	users := make(map[int64]*models.User)
	records := make([]models.BookingRecord, 0, len(selected))
	for _, b := range selected {
		item, ok := items[b.ItemID]
		if !ok {
			var err error
			if item, err = findItem(ctx, s.repo, b.ItemID); err != nil {
				return nil, err
			}
			items[b.ItemID] = item
		}
		booker, ok := users[b.BookerID]
		if !ok {
			var err error
			if booker, err = findUser(ctx, s.repo, b.BookerID); err != nil {
				return nil, err
			}
			users[b.BookerID] = booker
		}
		records = append(records, models.NewBookingRecord(b, item, booker))
	}
	return records, nil
}

// LastBookingFor is the approved booking of the item that ended most recently
// before now, or nil.
func (s *BookingService) LastBookingFor(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	return s.repo.LastApprovedBooking(ctx, itemID, now)
}

// NextBookingFor is the approved booking of the item starting soonest after
// now, or nil.
func (s *BookingService) NextBookingFor(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	return s.repo.NextApprovedBooking(ctx, itemID, now)
}

func (s *BookingService) ExistsCompletedBooking(ctx context.Context, itemID, authorID int64, now time.Time) (bool, error) {
	return s.repo.ExistsCompletedBooking(ctx, itemID, authorID, now)
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, item *models.Item, changedByID int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:   booking.ID,
		ItemID:      booking.ItemID,
		BookerID:    booking.BookerID,
		OwnerID:     item.OwnerID,
		Status:      string(booking.Status),
		Start:       booking.Start,
		End:         booking.End,
		ChangedByID: changedByID,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
