package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"shareit/internal/domain"

	"github.com/rs/zerolog"
)

const recoveryInterval = time.Minute

// FailoverStore serves from primary until it fails, then from fallback. The
// primary is retried once per recoveryInterval.
type FailoverStore struct {
	primary   domain.CacheStore
	fallback  domain.CacheStore
	logger    *zerolog.Logger
	isDown    atomic.Bool
	mu        sync.Mutex
	lastCheck time.Time
	now       func() time.Time
}

func NewFailoverStore(primary, fallback domain.CacheStore, logger *zerolog.Logger) *FailoverStore {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

// usePrimary reports whether the next call should go to the primary store.
func (r *FailoverStore) usePrimary() bool {
	if !r.isDown.Load() {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.now().Sub(r.lastCheck) > recoveryInterval {
		r.lastCheck = r.now()
		return true
	}
	return false
}

func (r *FailoverStore) markResult(err error) {
	if err == nil {
		if r.isDown.Swap(false) {
			r.logger.Info().Msg("primary cache store recovered")
		}
		return
	}
	r.mu.Lock()
	r.lastCheck = r.now()
	r.mu.Unlock()
	if !r.isDown.Swap(true) {
		r.logger.Error().Err(err).Msg("primary cache store failed, falling back to memory")
	}
}

func (r *FailoverStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if r.usePrimary() {
		val, ok, err := r.primary.Get(ctx, key)
		r.markResult(err)
		if err == nil {
			return val, ok, nil
		}
	}
	return r.fallback.Get(ctx, key)
}

func (r *FailoverStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if r.usePrimary() {
		err := r.primary.Set(ctx, key, value, ttl)
		r.markResult(err)
		if err == nil {
			return nil
		}
	}
	return r.fallback.Set(ctx, key, value, ttl)
}

func (r *FailoverStore) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	if r.usePrimary() {
		allowed, err := r.primary.CheckRateLimit(ctx, userID, limit, window)
		r.markResult(err)
		if err == nil {
			return allowed, nil
		}
	}
	return r.fallback.CheckRateLimit(ctx, userID, limit, window)
}

// Degraded reports whether calls are currently served by the fallback.
func (r *FailoverStore) Degraded() bool {
	return r.isDown.Load()
}
