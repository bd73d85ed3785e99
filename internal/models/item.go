package models

type Item struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Available   bool   `db:"available"`
	OwnerID     int64  `db:"owner_id"`
	RequestID   *int64 `db:"request_id"`
}

func (i *Item) SameIdentity(other *Item) bool {
	if i == nil || other == nil {
		return false
	}
	return i.ID != 0 && i.ID == other.ID
}

func (i *Item) SameContent(other *Item) bool {
	if i == nil || other == nil {
		return i == other
	}
	if (i.RequestID == nil) != (other.RequestID == nil) {
		return false
	}
	if i.RequestID != nil && *i.RequestID != *other.RequestID {
		return false
	}
	return i.Name == other.Name &&
		i.Description == other.Description &&
		i.Available == other.Available &&
		i.OwnerID == other.OwnerID
}

// ItemInput is a create or partial update payload. Nil fields are left unchanged.
type ItemInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *int64  `json:"requestId"`
}

// Apply copies the non-nil fields of in onto the item.
func (i *Item) Apply(in ItemInput) {
	if in.Name != nil {
		i.Name = *in.Name
	}
	if in.Description != nil {
		i.Description = *in.Description
	}
	if in.Available != nil {
		i.Available = *in.Available
	}
}

// ItemView is the item as returned to callers. LastBooking and NextBooking
// are filled only for the owner.
type ItemView struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Available   bool          `json:"available"`
	OwnerID     int64         `json:"ownerId"`
	RequestID   *int64        `json:"requestId,omitempty"`
	LastBooking *BookingShort `json:"lastBooking"`
	NextBooking *BookingShort `json:"nextBooking"`
	Comments    []CommentView `json:"comments"`
}

func NewItemView(i *Item) ItemView {
	return ItemView{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		OwnerID:     i.OwnerID,
		RequestID:   i.RequestID,
		Comments:    []CommentView{},
	}
}
