package models

import "time"

type Booking struct {
	ID       int64         `db:"id"`
	Start    time.Time     `db:"start_date"`
	End      time.Time     `db:"end_date"`
	ItemID   int64         `db:"item_id"`
	BookerID int64         `db:"booker_id"`
	Status   BookingStatus `db:"status"`
}

func (b *Booking) SameIdentity(other *Booking) bool {
	if b == nil || other == nil {
		return false
	}
	return b.ID != 0 && b.ID == other.ID
}

func (b *Booking) SameContent(other *Booking) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.Start.Equal(other.Start) &&
		b.End.Equal(other.End) &&
		b.ItemID == other.ItemID &&
		b.BookerID == other.BookerID &&
		b.Status == other.Status
}

// BookingInput is the create payload. BookerID is replaced by the acting user.
type BookingInput struct {
	Start    LocalTime `json:"start"`
	End      LocalTime `json:"end"`
	ItemID   int64     `json:"itemId"`
	BookerID int64     `json:"bookerId"`
	Status   string    `json:"status,omitempty"`
}

// BookingRecord is a booking with its item and booker expanded.
type BookingRecord struct {
	ID     int64         `json:"id"`
	Start  LocalTime     `json:"start"`
	End    LocalTime     `json:"end"`
	Item   ItemView      `json:"item"`
	Booker UserView      `json:"booker"`
	Status BookingStatus `json:"status"`
}

func NewBookingRecord(b *Booking, item *Item, booker *User) BookingRecord {
	return BookingRecord{
		ID:     b.ID,
		Start:  NewLocalTime(b.Start),
		End:    NewLocalTime(b.End),
		Item:   NewItemView(item),
		Booker: NewUserView(booker),
		Status: b.Status,
	}
}

// BookingShort is the last/next booking projection embedded in item detail.
type BookingShort struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    LocalTime `json:"start"`
	End      LocalTime `json:"end"`
}

// NewBookingShort returns nil for a nil booking.
func NewBookingShort(b *Booking) *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    NewLocalTime(b.Start),
		End:      NewLocalTime(b.End),
	}
}
