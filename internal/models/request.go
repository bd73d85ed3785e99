package models

import "time"

type ItemRequest struct {
	ID          int64     `db:"id"`
	Description string    `db:"description"`
	RequestorID int64     `db:"requestor_id"`
	Created     time.Time `db:"created"`
}

func (r *ItemRequest) SameIdentity(other *ItemRequest) bool {
	if r == nil || other == nil {
		return false
	}
	return r.ID != 0 && r.ID == other.ID
}

func (r *ItemRequest) SameContent(other *ItemRequest) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Description == other.Description &&
		r.RequestorID == other.RequestorID &&
		r.Created.Equal(other.Created)
}

type RequestInput struct {
	Description string `json:"description"`
}

// RequestItemView is an item created in response to a request.
type RequestItemView struct {
	ItemID  int64  `json:"itemId"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}

type RequestView struct {
	ID          int64             `json:"id"`
	Description string            `json:"description"`
	RequestorID int64             `json:"requestorId"`
	Created     LocalTime         `json:"created"`
	Items       []RequestItemView `json:"items"`
}

func NewRequestView(r *ItemRequest, items []*Item) RequestView {
	view := RequestView{
		ID:          r.ID,
		Description: r.Description,
		RequestorID: r.RequestorID,
		Created:     NewLocalTime(r.Created),
		Items:       make([]RequestItemView, 0, len(items)),
	}
	for _, it := range items {
		view.Items = append(view.Items, RequestItemView{ItemID: it.ID, Name: it.Name, OwnerID: it.OwnerID})
	}
	return view
}
