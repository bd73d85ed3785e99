package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTime_JSON(t *testing.T) {
	t.Run("LocalLayout", func(t *testing.T) {
		var lt LocalTime
		require.NoError(t, json.Unmarshal([]byte(`"2030-05-01T10:30:00"`), &lt))
		assert.Equal(t, time.Date(2030, 5, 1, 10, 30, 0, 0, time.Local), lt.Time)

		out, err := json.Marshal(lt)
		require.NoError(t, err)
		assert.JSONEq(t, `"2030-05-01T10:30:00"`, string(out))
	})

	t.Run("FractionalSeconds", func(t *testing.T) {
		var lt LocalTime
		require.NoError(t, json.Unmarshal([]byte(`"2030-05-01T10:30:00.250"`), &lt))
		assert.Equal(t, 250*time.Millisecond, time.Duration(lt.Nanosecond()))
	})

	t.Run("RFC3339", func(t *testing.T) {
		var lt LocalTime
		require.NoError(t, json.Unmarshal([]byte(`"2030-05-01T10:30:00Z"`), &lt))
		assert.True(t, lt.Equal(time.Date(2030, 5, 1, 10, 30, 0, 0, time.UTC)))
	})

	t.Run("NullAndEmpty", func(t *testing.T) {
		var lt LocalTime
		require.NoError(t, json.Unmarshal([]byte(`null`), &lt))
		assert.True(t, lt.IsZero())
		require.NoError(t, json.Unmarshal([]byte(`""`), &lt))
		assert.True(t, lt.IsZero())

		out, err := json.Marshal(LocalTime{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(out))
	})

	t.Run("Invalid", func(t *testing.T) {
		var lt LocalTime
		assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &lt))
		assert.Error(t, json.Unmarshal([]byte(`12345`), &lt))
	})
}

func TestParseBookingState(t *testing.T) {
	tests := []struct {
		raw  string
		want BookingState
	}{
		{"", StateAll},
		{"ALL", StateAll},
		{"current", StateCurrent},
		{"Past", StatePast},
		{"FUTURE", StateFuture},
		{"WAITING", StateWaiting},
		{" rejected ", StateRejected},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseBookingState(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseBookingState("UNSUPPORTED_STATUS")
	var unknown *UnknownStateError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Unknown state: UNSUPPORTED_STATUS", err.Error())
}

func TestBookingState_Matches(t *testing.T) {
	now := time.Date(2030, 1, 10, 12, 0, 0, 0, time.UTC)
	past := &Booking{Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour), Status: StatusApproved}
	current := &Booking{Start: now.Add(-time.Hour), End: now.Add(time.Hour), Status: StatusWaiting}
	future := &Booking{Start: now.Add(time.Hour), End: now.Add(2 * time.Hour), Status: StatusRejected}

	timeStates := []BookingState{StateCurrent, StatePast, StateFuture}
	for _, b := range []*Booking{past, current, future} {
		matched := 0
		for _, s := range timeStates {
			if s.Matches(b, now) {
				matched++
			}
		}
		assert.Equal(t, 1, matched, "booking %v must fall in exactly one time state", b)
		assert.True(t, StateAll.Matches(b, now))
	}

	assert.True(t, StatePast.Matches(past, now))
	assert.True(t, StateCurrent.Matches(current, now))
	assert.True(t, StateFuture.Matches(future, now))
	assert.True(t, StateWaiting.Matches(current, now))
	assert.False(t, StateWaiting.Matches(past, now))
	assert.True(t, StateRejected.Matches(future, now))
	assert.False(t, StateRejected.Matches(current, now))
	assert.False(t, BookingState(42).Matches(current, now))
	assert.Equal(t, "UNKNOWN", BookingState(42).String())
}

func TestSameIdentityAndContent(t *testing.T) {
	a := &User{ID: 1, Name: "Ann", Email: "ann@example.com"}
	b := &User{ID: 1, Name: "Ann B.", Email: "annb@example.com"}
	c := &User{Name: "Ann", Email: "ann@example.com"}

	assert.True(t, a.SameIdentity(b))
	assert.False(t, a.SameContent(b))
	assert.False(t, a.SameIdentity(c))
	assert.True(t, a.SameContent(c))
	assert.False(t, c.SameIdentity(&User{}))

	reqID := int64(3)
	item1 := &Item{Name: "Drill", Description: "cordless", Available: true, OwnerID: 2, RequestID: &reqID}
	item2 := &Item{ID: 9, Name: "Drill", Description: "cordless", Available: true, OwnerID: 2, RequestID: &reqID}
	assert.True(t, item1.SameContent(item2))
	assert.False(t, item1.SameIdentity(item2))
	item2.RequestID = nil
	assert.False(t, item1.SameContent(item2))

	start := time.Now()
	b1 := &Booking{ID: 1, Start: start, End: start.Add(time.Hour), ItemID: 1, BookerID: 2, Status: StatusWaiting}
	b2 := &Booking{ID: 2, Start: start, End: start.Add(time.Hour), ItemID: 1, BookerID: 2, Status: StatusWaiting}
	assert.True(t, b1.SameContent(b2))
	assert.False(t, b1.SameIdentity(b2))

	var nilReq *ItemRequest
	assert.False(t, nilReq.SameIdentity(&ItemRequest{ID: 1}))
	assert.True(t, nilReq.SameContent(nil))
}

func TestItemApply(t *testing.T) {
	item := &Item{Name: "Drill", Description: "cordless", Available: true}
	name := "Hammer"
	available := false
	item.Apply(ItemInput{Name: &name, Available: &available})

	assert.Equal(t, "Hammer", item.Name)
	assert.Equal(t, "cordless", item.Description)
	assert.False(t, item.Available)
}

func TestViews(t *testing.T) {
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.Local)
	b := &Booking{ID: 7, Start: start, End: start.Add(time.Hour), ItemID: 3, BookerID: 4, Status: StatusWaiting}
	item := &Item{ID: 3, Name: "Tent", Description: "2p", Available: true, OwnerID: 1}
	booker := &User{ID: 4, Name: "Bob", Email: "bob@example.com"}

	rec := NewBookingRecord(b, item, booker)
	raw, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 7,
		"start": "2030-01-01T10:00:00",
		"end": "2030-01-01T11:00:00",
		"item": {"id": 3, "name": "Tent", "description": "2p", "available": true, "ownerId": 1,
		         "lastBooking": null, "nextBooking": null, "comments": []},
		"booker": {"id": 4, "name": "Bob", "email": "bob@example.com"},
		"status": "WAITING"
	}`, string(raw))

	assert.Nil(t, NewBookingShort(nil))
	short := NewBookingShort(b)
	assert.Equal(t, int64(4), short.BookerID)

	view := NewRequestView(&ItemRequest{ID: 1, Description: "need a tent", RequestorID: 4, Created: start},
		[]*Item{item})
	require.Len(t, view.Items, 1)
	assert.Equal(t, RequestItemView{ItemID: 3, Name: "Tent", OwnerID: 1}, view.Items[0])
}
