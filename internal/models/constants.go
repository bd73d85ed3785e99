package models

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// BookingState selects a subset of bookings relative to a point in time.
type BookingState int

const (
	StateAll BookingState = iota
	StateCurrent
	StatePast
	StateFuture
	StateWaiting
	StateRejected
)

var bookingStateNames = map[BookingState]string{
	StateAll:      "ALL",
	StateCurrent:  "CURRENT",
	StatePast:     "PAST",
	StateFuture:   "FUTURE",
	StateWaiting:  "WAITING",
	StateRejected: "REJECTED",
}

// UnknownStateError reports a state filter value outside the known set.
type UnknownStateError struct {
	Value string
}

func (e *UnknownStateError) Error() string {
	return "Unknown state: " + e.Value
}

// ParseBookingState is case-insensitive; an empty value means StateAll.
func ParseBookingState(raw string) (BookingState, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" {
		return StateAll, nil
	}
	for state, name := range bookingStateNames {
		if name == normalized {
			return state, nil
		}
	}
	return StateAll, &UnknownStateError{Value: raw}
}

func (s BookingState) String() string {
	if name, ok := bookingStateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Matches reports whether b belongs to the state at the given instant.
func (s BookingState) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return b.Start.Before(now) && b.End.After(now)
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	default:
		return false
	}
}
