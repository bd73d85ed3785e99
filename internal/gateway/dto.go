package gateway

import "shareit/internal/models"

type userCreateRequest struct {
	Name  *string `json:"name" binding:"required,notblank"`
	Email *string `json:"email" binding:"required,notblank,email"`
}

type userUpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type itemCreateRequest struct {
	Name        *string `json:"name" binding:"required,notblank"`
	Description *string `json:"description" binding:"required,notblank"`
	Available   *bool   `json:"available" binding:"required"`
	RequestID   *int64  `json:"requestId,omitempty" binding:"omitempty,gt=0"`
}

type itemUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

type commentRequest struct {
	Text string `json:"text" binding:"notblank"`
}

type itemRequestRequest struct {
	Description string `json:"description" binding:"notblank"`
}

// bookingRequest mirrors models.BookingInput. BookerID is always replaced by
// the acting user before forwarding.
type bookingRequest struct {
	ItemID   *int64            `json:"itemId" binding:"required"`
	Start    *models.LocalTime `json:"start" binding:"required,futureorpresent"`
	End      *models.LocalTime `json:"end" binding:"required,future"`
	BookerID int64             `json:"bookerId"`
	Status   string            `json:"status,omitempty"`
}
