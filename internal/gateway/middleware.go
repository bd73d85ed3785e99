package gateway

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	ctxUserID    = "sharerUserId"
	ctxRequestID = "requestId"
)

// RequestLogging tags each request with an id and logs it once served.
func RequestLogging(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ctxRequestID, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		metrics.ObserveHTTP(c.FullPath(), c.Request.Method, status, latency)

		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("gateway request")
	}
}

// RequireSharer parses X-Sharer-User-Id into the context or rejects with 400.
func RequireSharer() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(userIDHeader))
		if raw == "" {
			metrics.IncGatewayRejected("header")
			abortWithError(c, http.StatusBadRequest, "Required request header '"+userIDHeader+"' is not present")
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			metrics.IncGatewayRejected("header")
			abortWithError(c, http.StatusBadRequest, "Header "+userIDHeader+" must be a number, got \""+raw+"\"")
			return
		}
		c.Set(ctxUserID, id)
		c.Next()
	}
}

// UserRateLimit applies a fixed-window limit per acting user. Requests
// without a user id are not limited. Store failures let the request through.
func UserRateLimit(store domain.CacheStore, limit int, window time.Duration, logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64(ctxUserID)
		if store == nil || limit <= 0 || userID == 0 {
			c.Next()
			return
		}

		allowed, err := store.CheckRateLimit(c.Request.Context(), userID, limit, window)
		if err != nil {
			logger.Warn().Err(err).Int64("user_id", userID).Msg("rate limit check failed")
			c.Next()
			return
		}
		if !allowed {
			metrics.IncGatewayRejected("rate_limit")
			abortWithError(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		c.Next()
	}
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
