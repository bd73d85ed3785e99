package api

import (
	"shareit/internal/events"
	"shareit/internal/logging"
	"shareit/internal/metrics"

	"github.com/rs/zerolog"
)

// SubscribeEvents feeds domain events into metrics and the audit log.
func SubscribeEvents(bus *events.EventBus, logger *zerolog.Logger) {
	log := logging.Component(logger, "events")

	onBooking := func(e *events.Event) error {
		var payload events.BookingEventPayload
		if err := e.Decode(&payload); err != nil {
			return err
		}
		metrics.IncBookingTransition(payload.Status)
		log.Info().
			Str("event", e.Type).
			Int64("booking_id", payload.BookingID).
			Int64("item_id", payload.ItemID).
			Int64("changed_by", payload.ChangedByID).
			Str("status", payload.Status).
			Msg("booking event")
		return nil
	}
	bus.Subscribe(events.EventBookingCreated, onBooking)
	bus.Subscribe(events.EventBookingApproved, onBooking)
	bus.Subscribe(events.EventBookingRejected, onBooking)

	bus.Subscribe(events.EventCommentPosted, func(e *events.Event) error {
		var payload events.CommentEventPayload
		if err := e.Decode(&payload); err != nil {
			return err
		}
		metrics.IncCommentPosted()
		log.Info().
			Int64("comment_id", payload.CommentID).
			Int64("item_id", payload.ItemID).
			Int64("author_id", payload.AuthorID).
			Msg("comment posted")
		return nil
	})
}
