// Package embedding holds cross-provider embedding helpers.
package embedding

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/talentbase-labs/scout-cli/internal/core/domain"
	"github.com/talentbase-labs/scout-cli/internal/core/ports/driven"
)

// Ensure RateLimited implements the interface.
var _ driven.EmbeddingService = (*RateLimited)(nil)

// RateLimitConfig holds rate limiting configuration for a provider.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimit is a conservative default that keeps corpus loads
// under typical provider quotas.
var DefaultRateLimit = RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 10}

// defaultBackoff applies when a provider rate-limits us without saying
// for how long.
const defaultBackoff = 60 * time.Second

// RateLimited wraps an embedding service with a token bucket. Corpus
// loads embed every candidate in a tight loop; the wrapper spreads
// those calls out and backs off when the provider answers 429.
type RateLimited struct {
	inner   driven.EmbeddingService
	limiter *rate.Limiter

	mu      sync.Mutex
	retryAt time.Time
}

// NewRateLimited wraps the service with the given limits. A zero
// config selects DefaultRateLimit.
func NewRateLimited(inner driven.EmbeddingService, cfg RateLimitConfig) *RateLimited {
	if cfg.RequestsPerSecond <= 0 {
		cfg = DefaultRateLimit
	}
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Embed waits for a token and delegates.
func (r *RateLimited) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}

	embedding, err := r.inner.Embed(ctx, text)
	if errors.Is(err, domain.ErrRateLimited) {
		r.recordRateLimit()
	}
	return embedding, err
}

// EmbedBatch embeds texts one by one under the limiter. Providers with
// a native batch endpoint lose some efficiency here; the trade is that
// a single oversized batch can no longer blow the quota.
func (r *RateLimited) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embedding, err := r.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = embedding
	}
	return embeddings, nil
}

// Dimensions returns the inner service's vector size.
func (r *RateLimited) Dimensions() int {
	return r.inner.Dimensions()
}

// ModelName returns the inner service's model name.
func (r *RateLimited) ModelName() string {
	return r.inner.ModelName()
}

// Ping delegates without consuming a token.
func (r *RateLimited) Ping(ctx context.Context) error {
	return r.inner.Ping(ctx)
}

// Close closes the inner service.
func (r *RateLimited) Close() error {
	return r.inner.Close()
}

// wait blocks for any active backoff period, then for the token
// bucket.
func (r *RateLimited) wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return r.limiter.Wait(ctx)
}

func (r *RateLimited) recordRateLimit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAt = time.Now().Add(defaultBackoff)
}
