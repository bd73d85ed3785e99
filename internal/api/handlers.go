package api

import (
	"context"
	"encoding/json"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/models"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	bookingQueryServiceName    = "shareit.v1.BookingQuery"
	bookingQueryGetBooking     = "/" + bookingQueryServiceName + "/GetBooking"
	bookingQueryItemProjection = "/" + bookingQueryServiceName + "/ItemProjection"
)

// BookingQueryServer answers read-only booking queries for internal clients.
// Requests and responses are google.protobuf.Struct values.
type BookingQueryServer interface {
	GetBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ItemProjection(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var bookingQueryServiceDesc = grpc.ServiceDesc{
	ServiceName: bookingQueryServiceName,
	HandlerType: (*BookingQueryServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetBooking",
			Handler:    unaryStructHandler(bookingQueryGetBooking, BookingQueryServer.GetBooking),
		},
		{
			MethodName: "ItemProjection",
			Handler:    unaryStructHandler(bookingQueryItemProjection, BookingQueryServer.ItemProjection),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shareit/v1/booking_query.proto",
}

func RegisterBookingQueryServer(s grpc.ServiceRegistrar, srv BookingQueryServer) {
	s.RegisterService(&bookingQueryServiceDesc, srv)
}

func unaryStructHandler(
	fullMethod string,
	call func(BookingQueryServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BookingQueryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BookingQueryServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// BookingQueryClient calls BookingQuery over an established connection.
type BookingQueryClient struct {
	cc grpc.ClientConnInterface
}

func NewBookingQueryClient(cc grpc.ClientConnInterface) *BookingQueryClient {
	return &BookingQueryClient{cc: cc}
}

func (c *BookingQueryClient) GetBooking(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, bookingQueryGetBooking, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingQueryClient) ItemProjection(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, bookingQueryItemProjection, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type BookingQueryService struct {
	bookings domain.BookingService
	now      func() time.Time
}

func NewBookingQueryService(bookings domain.BookingService) *BookingQueryService {
	return &BookingQueryService{bookings: bookings, now: time.Now}
}

// GetBooking expects {"bookingId", "userId"} and applies the same access
// rule as the HTTP API.
func (s *BookingQueryService) GetBooking(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	bookingID, err := requiredID(req, "bookingId")
	if err != nil {
		return nil, err
	}
	userID, err := requiredID(req, "userId")
	if err != nil {
		return nil, err
	}

	record, err := s.bookings.GetByID(ctx, bookingID, userID)
	if err != nil {
		return nil, grpcError(err)
	}
	return toStruct(record)
}

// ItemProjection expects {"itemId"} and returns the item's last and next
// approved bookings, null when absent.
func (s *BookingQueryService) ItemProjection(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	itemID, err := requiredID(req, "itemId")
	if err != nil {
		return nil, err
	}

	now := s.now()
	last, err := s.bookings.LastBookingFor(ctx, itemID, now)
	if err != nil {
		return nil, grpcError(err)
	}
	next, err := s.bookings.NextBookingFor(ctx, itemID, now)
	if err != nil {
		return nil, grpcError(err)
	}

	return toStruct(struct {
		ItemID      int64                `json:"itemId"`
		LastBooking *models.BookingShort `json:"lastBooking"`
		NextBooking *models.BookingShort `json:"nextBooking"`
	}{
		ItemID:      itemID,
		LastBooking: models.NewBookingShort(last),
		NextBooking: models.NewBookingShort(next),
	})
}

func requiredID(req *structpb.Struct, field string) (int64, error) {
	v, ok := req.GetFields()[field]
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s is required", field)
	}
	num, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || num.NumberValue != float64(int64(num.NumberValue)) || num.NumberValue <= 0 {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a positive integer", field)
	}
	return int64(num.NumberValue), nil
}

// toStruct converts a JSON-serializable view into a Struct so the wire shape
// matches the HTTP API.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

func grpcError(err error) error {
	var code codes.Code
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		code = codes.NotFound
	case apperr.KindForbidden:
		code = codes.PermissionDenied
	case apperr.KindDoubleEmail, apperr.KindWrongUser:
		code = codes.AlreadyExists
	case apperr.KindBadRequest, apperr.KindWrongDate, apperr.KindUnavailableItem, apperr.KindValidation:
		code = codes.InvalidArgument
	default:
		code = codes.Internal
	}
	return status.Error(code, apperr.Message(err))
}
