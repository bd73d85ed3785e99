package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createBooking(t *testing.T, db *DB, itemID, bookerID int64, start, end time.Time, status models.BookingStatus) *models.Booking {
	t.Helper()
	booking := &models.Booking{Start: start, End: end, ItemID: itemID, BookerID: bookerID, Status: status}
	require.NoError(t, db.CreateBooking(context.Background(), booking))
	return booking
}

func TestBookingCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	item := createItem(t, db, 1, "Drill", "d", true)
	start := time.Now().Add(time.Hour).Truncate(time.Second)
	booking := createBooking(t, db, item.ID, 2, start, start.Add(24*time.Hour), models.StatusWaiting)
	assert.NotZero(t, booking.ID)

	found, err := db.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.True(t, booking.SameContent(found))

	require.NoError(t, db.UpdateBookingStatus(ctx, booking.ID, models.StatusApproved))
	found, err = db.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, found.Status)

	_, err = db.GetBooking(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.UpdateBookingStatus(ctx, 999, models.StatusRejected), ErrNotFound)
}

func TestListBookings_OrderedByStart(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	mine := createItem(t, db, 1, "Drill", "d", true)
	theirs := createItem(t, db, 9, "Saw", "s", true)

	late := createBooking(t, db, mine.ID, 2, now.Add(72*time.Hour), now.Add(96*time.Hour), models.StatusWaiting)
	early := createBooking(t, db, mine.ID, 3, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.StatusApproved)
	other := createBooking(t, db, theirs.ID, 2, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusWaiting)

	byOwner, err := db.ListBookingsByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byOwner, 2)
	assert.Equal(t, early.ID, byOwner[0].ID)
	assert.Equal(t, late.ID, byOwner[1].ID)

	byBooker, err := db.ListBookingsByBooker(ctx, 2)
	require.NoError(t, err)
	require.Len(t, byBooker, 2)
	assert.Equal(t, other.ID, byBooker[0].ID)
	assert.Equal(t, late.ID, byBooker[1].ID)

	empty, err := db.ListBookingsByBooker(ctx, 77)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLastAndNextApprovedBooking(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	item := createItem(t, db, 1, "Drill", "d", true)

	createBooking(t, db, item.ID, 2, now.Add(-96*time.Hour), now.Add(-72*time.Hour), models.StatusApproved)
	lastOne := createBooking(t, db, item.ID, 3, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.StatusApproved)
	createBooking(t, db, item.ID, 4, now.Add(-20*time.Hour), now.Add(-10*time.Hour), models.StatusRejected)
	createBooking(t, db, item.ID, 5, now.Add(-time.Hour), now.Add(time.Hour), models.StatusApproved)
	createBooking(t, db, item.ID, 6, now.Add(2*time.Hour), now.Add(3*time.Hour), models.StatusWaiting)
	nextOne := createBooking(t, db, item.ID, 7, now.Add(5*time.Hour), now.Add(6*time.Hour), models.StatusApproved)
	createBooking(t, db, item.ID, 8, now.Add(50*time.Hour), now.Add(60*time.Hour), models.StatusApproved)

	last, err := db.LastApprovedBooking(ctx, item.ID, now)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, lastOne.ID, last.ID)

	next, err := db.NextApprovedBooking(ctx, item.ID, now)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, nextOne.ID, next.ID)

	other := createItem(t, db, 1, "Saw", "s", true)
	last, err = db.LastApprovedBooking(ctx, other.ID, now)
	require.NoError(t, err)
	assert.Nil(t, last)
	next, err = db.NextApprovedBooking(ctx, other.ID, now)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestExistsCompletedBooking(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	item := createItem(t, db, 1, "Drill", "d", true)
	createBooking(t, db, item.ID, 2, now.Add(-48*time.Hour), now.Add(-24*time.Hour), models.StatusRejected)
	createBooking(t, db, item.ID, 3, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusApproved)

	done, err := db.ExistsCompletedBooking(ctx, item.ID, 2, now)
	require.NoError(t, err)
	assert.True(t, done)

	done, err = db.ExistsCompletedBooking(ctx, item.ID, 3, now)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestBookingTimes_MixedZonesCompareByInstant(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	item := createItem(t, db, 1, "Drill", "d", true)
	east := time.FixedZone("UTC+5", 5*3600)
	now := time.Now().Truncate(time.Second)

	// Ended one hour ago, recorded in a zone ahead of UTC.
	past := createBooking(t, db, item.ID, 2, now.Add(-2*time.Hour).In(east), now.Add(-time.Hour).In(east), models.StatusApproved)

	last, err := db.LastApprovedBooking(ctx, item.ID, now.UTC())
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, past.ID, last.ID)
	assert.True(t, last.End.Equal(past.End))
}
