package service

import (
	"context"
	"testing"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/database"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type services struct {
	users    *UserService
	items    *ItemService
	bookings *BookingService
	comments *CommentService
	requests *RequestService
	bus      *events.EventBus
}

func setupServices(t *testing.T) *services {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	bus := events.NewEventBus(&logger)
	bookings := NewBookingService(db, bus, &logger)
	comments := NewCommentService(db, bookings, bus, &logger)
	return &services{
		users:    NewUserService(db, &logger),
		items:    NewItemService(db, bookings, comments, &logger),
		bookings: bookings,
		comments: comments,
		requests: NewRequestService(db, &logger),
		bus:      bus,
	}
}

func (s *services) user(t *testing.T, name string) int64 {
	t.Helper()
	view, err := s.users.Create(context.Background(), models.UserInput{Name: strPtr(name), Email: strPtr(name + "@example.com")})
	require.NoError(t, err)
	return view.ID
}

func (s *services) item(t *testing.T, ownerID int64, available bool) int64 {
	t.Helper()
	view, err := s.items.Create(context.Background(), ownerID, models.ItemInput{
		Name: strPtr("Drill"), Description: strPtr("Cordless drill"), Available: boolPtr(available),
	})
	require.NoError(t, err)
	return view.ID
}

func TestScenario_BookApproveProject(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	var received []string
	for _, typ := range []string{events.EventBookingCreated, events.EventBookingApproved} {
		s.bus.Subscribe(typ, func(e *events.Event) error {
			received = append(received, e.Type)
			return nil
		})
	}

	owner := s.user(t, "owner")
	booker := s.user(t, "booker")
	item := s.item(t, owner, true)

	now := time.Now().Truncate(time.Second)
	created, err := s.bookings.Create(ctx, booker, models.BookingInput{
		ItemID: item,
		Start:  models.NewLocalTime(now.Add(time.Hour)),
		End:    models.NewLocalTime(now.Add(2 * time.Hour)),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, created.Status)

	approved, err := s.bookings.Decide(ctx, created.ID, owner, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)

	later := now.Add(3 * time.Hour)
	last, err := s.bookings.LastBookingFor(ctx, item, later)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, created.ID, last.ID)

	next, err := s.bookings.NextBookingFor(ctx, item, later)
	require.NoError(t, err)
	assert.Nil(t, next)

	// Owner sees the upcoming booking as "next" right now.
	detail, err := s.items.GetByID(ctx, item, owner)
	require.NoError(t, err)
	assert.Nil(t, detail.LastBooking)
	require.NotNil(t, detail.NextBooking)
	assert.Equal(t, created.ID, detail.NextBooking.ID)

	assert.Equal(t, []string{events.EventBookingCreated, events.EventBookingApproved}, received)
}

func TestScenario_ThirdPartyCannotView(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	owner := s.user(t, "owner")
	booker := s.user(t, "booker")
	stranger := s.user(t, "stranger")
	item := s.item(t, owner, true)

	now := time.Now().Truncate(time.Second)
	created, err := s.bookings.Create(ctx, booker, models.BookingInput{
		ItemID: item,
		Start:  models.NewLocalTime(now.Add(time.Hour)),
		End:    models.NewLocalTime(now.Add(2 * time.Hour)),
	})
	require.NoError(t, err)

	_, err = s.bookings.GetByID(ctx, created.ID, stranger)
	assert.Equal(t, 403, apperr.HTTPStatus(err))

	_, err = s.bookings.Decide(ctx, created.ID, booker, true)
	assert.Equal(t, 403, apperr.HTTPStatus(err))
}

func TestScenario_CommentRequiresCompletedRental(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	owner := s.user(t, "owner")
	booker := s.user(t, "booker")
	item := s.item(t, owner, true)

	_, err := s.comments.Post(ctx, booker, item, models.CommentInput{Text: "great"})
	assert.Equal(t, 400, apperr.HTTPStatus(err))

	// A short rental that is already over by the time the comment is posted.
	now := time.Now().Truncate(time.Second)
	_, err = s.bookings.Create(ctx, booker, models.BookingInput{
		ItemID: item,
		Start:  models.NewLocalTime(now.Add(5 * time.Second)),
		End:    models.NewLocalTime(now.Add(6 * time.Second)),
	})
	require.NoError(t, err)
	s.comments.now = func() time.Time { return now.Add(time.Minute) }

	view, err := s.comments.Post(ctx, booker, item, models.CommentInput{Text: "great"})
	require.NoError(t, err)
	assert.Equal(t, "booker", view.AuthorName)

	detail, err := s.items.GetByID(ctx, item, booker)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "great", detail.Comments[0].Text)
}

func TestScenario_RequestsWithAnswers(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	asker := s.user(t, "asker")
	helper := s.user(t, "helper")

	request, err := s.requests.Create(ctx, asker, models.RequestInput{Description: "need a drill"})
	require.NoError(t, err)

	_, err = s.items.Create(ctx, helper, models.ItemInput{
		Name: strPtr("Drill"), Description: strPtr("for you"), Available: boolPtr(true), RequestID: &request.ID,
	})
	require.NoError(t, err)

	own, err := s.requests.ListForRequestor(ctx, asker)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Len(t, own[0].Items, 1)
	assert.Equal(t, helper, own[0].Items[0].OwnerID)

	others, err := s.requests.ListAll(ctx, helper)
	require.NoError(t, err)
	assert.Len(t, others, 1)

	mine, err := s.requests.ListAll(ctx, asker)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, request.ID, mine[0].ID)
}

func TestScenario_UnavailableAndDuplicateEmail(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	owner := s.user(t, "owner")
	booker := s.user(t, "booker")
	item := s.item(t, owner, false)

	now := time.Now().Truncate(time.Second)
	_, err := s.bookings.Create(ctx, booker, models.BookingInput{
		ItemID: item,
		Start:  models.NewLocalTime(now.Add(time.Hour)),
		End:    models.NewLocalTime(now.Add(2 * time.Hour)),
	})
	assert.True(t, apperr.Is(err, apperr.KindUnavailableItem))

	_, err = s.users.Create(ctx, models.UserInput{Name: strPtr("dup"), Email: strPtr("owner@example.com")})
	assert.Equal(t, 409, apperr.HTTPStatus(err))

	_, err = s.users.Update(ctx, booker, models.UserInput{Email: strPtr("booker@example.com")})
	assert.NoError(t, err)

	_, err = s.bookings.ListForBooker(ctx, 404, models.StateAll)
	assert.Equal(t, 404, apperr.HTTPStatus(err))
}
