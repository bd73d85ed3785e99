package gateway

import (
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	client *ServerClient
	log    *zerolog.Logger
}

func NewHandler(client *ServerClient, logger *zerolog.Logger) *Handler {
	return &Handler{client: client, log: logger}
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req userCreateRequest
	if !bind(c, &req) {
		return
	}
	h.forward(c, req)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var req userUpdateRequest
	if !bind(c, &req) {
		return
	}
	h.forward(c, req)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req itemCreateRequest
	if !bind(c, &req) {
		return
	}
	h.forward(c, req)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	var req itemUpdateRequest
	if !bind(c, &req) {
		return
	}
	h.forward(c, req)
}

func (h *Handler) PostComment(c *gin.Context) {
	var req commentRequest
	if !bind(c, &req) {
		return
	}
	h.forward(c, req)
}

func (h *Handler) SearchItems(c *gin.Context) {
	reply, err := h.client.Search(c.Request.Context(), c.Query("text"), c.GetString(ctxRequestID))
	if err != nil {
		h.upstreamFailed(c, err)
		return
	}
	h.write(c, reply)
}

func (h *Handler) CreateRequest(c *gin.Context) {
	var req itemRequestRequest
	if !bind(c, &req) {
		return
	}
	h.forward(c, req)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req bookingRequest
	if !bind(c, &req) {
		return
	}
	req.BookerID = c.GetInt64(ctxUserID)
	h.forward(c, req)
}

func (h *Handler) DecideBooking(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("approved"))
	if raw == "" {
		reject(c, "Required request parameter 'approved' is not present")
		return
	}
	if _, err := strconv.ParseBool(raw); err != nil {
		reject(c, "Parameter approved must be true or false, got \""+raw+"\"")
		return
	}
	h.forward(c, nil)
}

// ListBookings covers the booker, owner and export listings.
func (h *Handler) ListBookings(c *gin.Context) {
	if _, err := models.ParseBookingState(c.Query("state")); err != nil {
		reject(c, err.Error())
		return
	}
	h.forward(c, nil)
}

// Relay forwards a request that needs no validation.
func (h *Handler) Relay(c *gin.Context) {
	h.forward(c, nil)
}

func (h *Handler) forward(c *gin.Context, body any) {
	reply, err := h.client.Forward(c.Request.Context(), Call{
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		Query:     c.Request.URL.Query(),
		UserID:    c.GetInt64(ctxUserID),
		Body:      body,
		RequestID: c.GetString(ctxRequestID),
	})
	if err != nil {
		h.upstreamFailed(c, err)
		return
	}
	h.write(c, reply)
}

func (h *Handler) write(c *gin.Context, reply *Reply) {
	if cd := reply.Header.Get("Content-Disposition"); cd != "" {
		c.Header("Content-Disposition", cd)
	}
	c.Data(reply.Status, reply.ContentType(), reply.Body)
}

func (h *Handler) upstreamFailed(c *gin.Context, err error) {
	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("forward to server failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		reject(c, validationMessage(err))
		return false
	}
	return true
}

func reject(c *gin.Context, message string) {
	metrics.IncGatewayRejected("validation")
	abortWithError(c, http.StatusBadRequest, message)
}
