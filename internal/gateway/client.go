package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/logging"
	"shareit/internal/metrics"

	"github.com/rs/zerolog"
)

const (
	userIDHeader    = "X-Sharer-User-Id"
	requestIDHeader = "X-Request-Id"
)

// ServerClient forwards validated calls to the server tier and returns its
// answer untouched.
type ServerClient struct {
	baseURL    string
	apiKey     string
	apiExtra   string
	httpClient *http.Client

	cache    domain.CacheStore
	cacheTTL time.Duration
	retry    RetryPolicy
	log      *zerolog.Logger
}

// Call describes one forwarded request. UserID 0 sends no X-Sharer-User-Id.
type Call struct {
	Method    string
	Path      string
	Query     url.Values
	UserID    int64
	Body      any
	RequestID string
}

// Reply is the server tier's response as received.
type Reply struct {
	Status int
	Header http.Header
	Body   []byte
}

func (r *Reply) ContentType() string {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/json"
}

// cachedReply is the cache encoding of a successful search reply.
type cachedReply struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

func NewServerClient(baseURL, apiKey, apiExtra string, timeout time.Duration, logger *zerolog.Logger) *ServerClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ServerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		apiExtra:   apiExtra,
		httpClient: &http.Client{Timeout: timeout},
		log:        logging.Component(logger, "server_client"),
	}
}

// UseCache enables caching of item search replies.
func (c *ServerClient) UseCache(store domain.CacheStore, ttl time.Duration) {
	c.cache = store
	c.cacheTTL = ttl
}

// UseRetry retries idempotent calls that fail before the server answers.
func (c *ServerClient) UseRetry(policy RetryPolicy) {
	c.retry = policy
}

func (c *ServerClient) Forward(ctx context.Context, call Call) (*Reply, error) {
	attempts := 1
	if call.Method == http.MethodGet || call.Method == http.MethodHead {
		attempts += c.retry.MaxRetries
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			delay := c.retry.NextDelay(attempt - 1)
			c.log.Warn().Err(lastErr).Int("attempt", attempt).Dur("delay", delay).Str("path", call.Path).Msg("retrying server call")
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("failed to reach server: %w", ctx.Err())
			case <-time.After(delay):
			}
		}

		reply, err := c.send(ctx, call)
		if err == nil {
			return reply, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *ServerClient) send(ctx context.Context, call Call) (*Reply, error) {
	endpoint := c.baseURL + call.Path
	if len(call.Query) > 0 {
		endpoint += "?" + call.Query.Encode()
	}

	var body io.Reader
	if call.Body != nil {
		data, err := json.Marshal(call.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if call.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if call.UserID != 0 {
		req.Header.Set(userIDHeader, strconv.FormatInt(call.UserID, 10))
	}
	if call.RequestID != "" {
		req.Header.Set(requestIDHeader, call.RequestID)
	}
	c.addHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.IncGatewayForward(call.Method, 0)
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.IncGatewayForward(call.Method, 0)
		return nil, fmt.Errorf("failed to read server response: %w", err)
	}
	metrics.IncGatewayForward(call.Method, resp.StatusCode)

	return &Reply{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// Search forwards an item search, serving repeated queries from the cache.
func (c *ServerClient) Search(ctx context.Context, text, requestID string) (*Reply, error) {
	cacheKey := "search:" + strings.ToLower(strings.TrimSpace(text))
	if reply, ok := c.readCache(ctx, cacheKey); ok {
		return reply, nil
	}

	reply, err := c.Forward(ctx, Call{
		Method:    http.MethodGet,
		Path:      "/items/search",
		Query:     url.Values{"text": []string{text}},
		RequestID: requestID,
	})
	if err != nil {
		return nil, err
	}
	if reply.Status == http.StatusOK {
		c.writeCache(ctx, cacheKey, reply)
	}
	return reply, nil
}

func (c *ServerClient) readCache(ctx context.Context, key string) (*Reply, bool) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return nil, false
	}
	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var cached cachedReply
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false
	}
	header := make(http.Header)
	header.Set("Content-Type", cached.ContentType)
	return &Reply{Status: cached.Status, Header: header, Body: cached.Body}, true
}

func (c *ServerClient) writeCache(ctx context.Context, key string, reply *Reply) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(cachedReply{Status: reply.Status, ContentType: reply.ContentType(), Body: reply.Body})
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, data, c.cacheTTL); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (c *ServerClient) addHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	if c.apiExtra != "" {
		req.Header.Set("x-api-extra", c.apiExtra)
	}
}
