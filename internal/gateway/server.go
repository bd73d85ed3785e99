package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Server is the validating front tier.
type Server struct {
	engine *gin.Engine
	server *http.Server
	log    *zerolog.Logger
}

// NewServer wires routes. store backs per-user rate limits and may be nil.
func NewServer(cfg config.GatewayConfig, client *ServerClient, store domain.CacheStore, logger *zerolog.Logger) (*Server, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	log := logging.Component(logger, "gateway")
	h := NewHandler(client, log)

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogging(log))

	acting := []gin.HandlerFunc{RequireSharer(), UserRateLimit(store, cfg.UserRateLimit, cfg.UserRateWindow, log)}

	r.GET("/healthz", h.Relay)

	users := r.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.Relay)
		users.GET("/:id", h.Relay)
		users.PATCH("/:id", h.UpdateUser)
		users.DELETE("/:id", h.Relay)
	}

	items := r.Group("/items")
	{
		items.GET("/search", h.SearchItems)

		owned := items.Group("", acting...)
		owned.POST("", h.CreateItem)
		owned.GET("", h.Relay)
		owned.GET("/:id", h.Relay)
		owned.PATCH("/:id", h.UpdateItem)
		owned.POST("/:id/comment", h.PostComment)
	}

	requests := r.Group("/requests", acting...)
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", h.Relay)
		requests.GET("/all", h.Relay)
		requests.GET("/:id", h.Relay)
	}

	bookings := r.Group("/bookings", acting...)
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/owner", h.ListBookings)
		bookings.GET("/owner/export", h.ListBookings)
		bookings.GET("/:id", h.Relay)
		bookings.PATCH("/:id", h.DecideBooking)
	}

	return &Server{
		engine: r,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		},
		log: log,
	}, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("gateway listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
