package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/logging"
	"shareit/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	userIDHeader    = "X-Sharer-User-Id"
	requestIDHeader = "X-Request-Id"
	healthPath      = "/healthz"
)

// Services bundles the business components served over HTTP and gRPC.
type Services struct {
	Users    domain.UserService
	Items    domain.ItemService
	Bookings domain.BookingService
	Comments domain.CommentService
	Requests domain.RequestService
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HTTPServer is the server tier's public API.
type HTTPServer struct {
	cfg    config.APIConfig
	svc    Services
	store  Pinger
	server *http.Server
	auth   *HTTPAuth
	log    *zerolog.Logger
}

func NewHTTPServer(cfg config.APIConfig, svc Services, store Pinger, logger *zerolog.Logger) *HTTPServer {
	return newHTTPServer(cfg, svc, store, newRateLimiter(cfg.RateLimit), logger)
}

func newHTTPServer(cfg config.APIConfig, svc Services, store Pinger, limiter *rateLimiter, logger *zerolog.Logger) *HTTPServer {
	srv := &HTTPServer{
		cfg:   cfg,
		svc:   svc,
		store: store,
		auth:  newHTTPAuth(cfg, limiter),
		log:   logging.Component(logger, "http"),
	}

	mux := http.NewServeMux()
	srv.routes(mux)

	handler := srv.loggingMiddleware(recoverMiddleware(srv.auth.Wrap(mux)))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET "+healthPath, s.handleHealth)

	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.HandleFunc("PATCH /users/{id}", s.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", s.handleDeleteUser)

	mux.HandleFunc("POST /items", s.handleCreateItem)
	mux.HandleFunc("GET /items", s.handleListItems)
	mux.HandleFunc("GET /items/search", s.handleSearchItems)
	mux.HandleFunc("GET /items/{id}", s.handleGetItem)
	mux.HandleFunc("PATCH /items/{id}", s.handleUpdateItem)
	mux.HandleFunc("POST /items/{id}/comment", s.handlePostComment)

	mux.HandleFunc("POST /requests", s.handleCreateRequest)
	mux.HandleFunc("GET /requests", s.handleListOwnRequests)
	mux.HandleFunc("GET /requests/all", s.handleListAllRequests)
	mux.HandleFunc("GET /requests/{id}", s.handleGetRequest)

	mux.HandleFunc("POST /bookings", s.handleCreateBooking)
	mux.HandleFunc("GET /bookings", s.handleListBookerBookings)
	mux.HandleFunc("GET /bookings/owner", s.handleListOwnerBookings)
	mux.HandleFunc("GET /bookings/owner/export", s.handleExportOwnerBookings)
	mux.HandleFunc("GET /bookings/{id}", s.handleGetBooking)
	mux.HandleFunc("PATCH /bookings/{id}", s.handleDecideBooking)
}

// Handler exposes the full middleware chain, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		if err := s.store.PingContext(r.Context()); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		reqLogger := s.log.With().Str("request_id", requestID).Logger()
		req := r.WithContext(reqLogger.WithContext(r.Context()))

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, req)
		dur := time.Since(start)

		metrics.ObserveHTTP(req.Pattern, r.Method, recorder.status, dur)
		reqLogger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", dur).
			Msg("http request")
	})
}

// fail writes err as {"error": msg}, logging 4xx at info and 5xx at error.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := apperr.HTTPStatus(err)
	message := apperr.Message(err)

	logger := zerolog.Ctx(r.Context())
	event := logger.Info()
	if statusCode >= http.StatusInternalServerError {
		event = logger.Error().Err(err)
	}
	event.
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", statusCode).
		Msg(message)

	writeError(w, statusCode, message)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// sharerID reads the acting user from the X-Sharer-User-Id header.
func sharerID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(userIDHeader))
	if raw == "" {
		return 0, apperr.BadRequest("Required request header '%s' is not present", userIDHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("Header %s must be a number, got %q", userIDHeader, raw)
	}
	return id, nil
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("Path id must be a number, got %q", raw)
	}
	return id, nil
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.BadRequest("Malformed request body: %v", err)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
