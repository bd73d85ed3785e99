package domain

import (
	"bytes"
	"context"
	"time"

	"shareit/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ExistsUserByEmail(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	ListItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error)
	SearchAvailableItems(ctx context.Context, text string) ([]*models.Item, error)
	ListItemsByRequestIDs(ctx context.Context, requestIDs []int64) ([]*models.Item, error)
}

// BookingRepository is the durable store of bookings. Last/next lookups
// return nil, nil when nothing qualifies.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status models.BookingStatus) error
	ListBookingsByBooker(ctx context.Context, bookerID int64) ([]*models.Booking, error)
	ListBookingsByOwner(ctx context.Context, ownerID int64) ([]*models.Booking, error)
	LastApprovedBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	NextApprovedBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	ExistsCompletedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByItem(ctx context.Context, itemID int64) ([]*models.Comment, error)
}

type RequestRepository interface {
	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	ListRequestsByRequestor(ctx context.Context, requestorID int64) ([]*models.ItemRequest, error)
	ListRequests(ctx context.Context) ([]*models.ItemRequest, error)
}

// Repository is the full store used by the server tier.
type Repository interface {
	UserRepository
	ItemRepository
	BookingRepository
	CommentRepository
	RequestRepository
	PingContext(ctx context.Context) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// CacheStore backs the gateway response cache and per-user rate limits.
// Get reports a miss with ok=false and a nil error.
type CacheStore interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

// BookingProjector supplies the last/next approved bookings of an item.
type BookingProjector interface {
	LastBookingFor(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	NextBookingFor(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
}

// CompletionChecker tells whether a user has finished renting an item.
type CompletionChecker interface {
	ExistsCompletedBooking(ctx context.Context, itemID, authorID int64, now time.Time) (bool, error)
}

type CommentLister interface {
	ListForItem(ctx context.Context, itemID int64) ([]models.CommentView, error)
}

type UserService interface {
	Create(ctx context.Context, in models.UserInput) (models.UserView, error)
	GetByID(ctx context.Context, id int64) (models.UserView, error)
	List(ctx context.Context) ([]models.UserView, error)
	Update(ctx context.Context, id int64, in models.UserInput) (models.UserView, error)
	Delete(ctx context.Context, id int64) error
}

type ItemService interface {
	Create(ctx context.Context, ownerID int64, in models.ItemInput) (models.ItemView, error)
	Update(ctx context.Context, ownerID, itemID int64, in models.ItemInput) (models.ItemView, error)
	GetByID(ctx context.Context, itemID, requesterID int64) (models.ItemView, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.ItemView, error)
	Search(ctx context.Context, text string) ([]models.ItemView, error)
}

type BookingService interface {
	Create(ctx context.Context, bookerID int64, in models.BookingInput) (models.BookingRecord, error)
	Decide(ctx context.Context, bookingID, actingUserID int64, approve bool) (models.BookingRecord, error)
	GetByID(ctx context.Context, bookingID, actingUserID int64) (models.BookingRecord, error)
	ListForBooker(ctx context.Context, userID int64, state models.BookingState) ([]models.BookingRecord, error)
	ListForOwner(ctx context.Context, userID int64, state models.BookingState) ([]models.BookingRecord, error)
	ExportForOwner(ctx context.Context, userID int64, state models.BookingState) (*bytes.Buffer, error)
	BookingProjector
	CompletionChecker
}

type CommentService interface {
	Post(ctx context.Context, authorID, itemID int64, in models.CommentInput) (models.CommentView, error)
	CommentLister
}

type RequestService interface {
	Create(ctx context.Context, requestorID int64, in models.RequestInput) (models.RequestView, error)
	ListForRequestor(ctx context.Context, userID int64) ([]models.RequestView, error)
	ListAll(ctx context.Context, userID int64) ([]models.RequestView, error)
	GetByID(ctx context.Context, userID, requestID int64) (models.RequestView, error)
}
