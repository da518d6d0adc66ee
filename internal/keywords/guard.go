// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keywords

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// backoffBase controls the base duration for exponential backoff between
// retries. Tests override this to avoid real sleeps.
var backoffBase = time.Second

const (
	defaultGuardRetries     = 3
	defaultTripAfterFailure = 5
)

// GuardConfig configures a Guarded extractor.
type GuardConfig struct {
	// Name identifies the breaker in logs.
	Name string

	// Rate is the sustained calls per second; 0 disables pacing.
	Rate float64

	// Burst is the token bucket size (default 1).
	Burst int

	// MaxRetries bounds retries of transient failures (default 3).
	MaxRetries int

	// TripAfter opens the breaker after this many consecutive failures (default 5).
	TripAfter uint32

	// OpenFor is how long the breaker stays open before probing (default 30s).
	OpenFor time.Duration
}

// Guarded wraps an Extractor with call pacing, bounded exponential-backoff
// retries of transient failures, and a circuit breaker that fails fast
// once the backend keeps failing.
type Guarded struct {
	next       Extractor
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	maxRetries int
	logger     *zap.Logger
}

// NewGuarded wraps next according to cfg.
func NewGuarded(next Extractor, cfg GuardConfig, logger *zap.Logger) *Guarded {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("keywords")

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultGuardRetries
	}
	tripAfter := cfg.TripAfter
	if tripAfter == 0 {
		tripAfter = defaultTripAfterFailure
	}
	openFor := cfg.OpenFor
	if openFor <= 0 {
		openFor = 30 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.Rate > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.Rate), burst)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Guarded{
		next:       next,
		limiter:    limiter,
		breaker:    breaker,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// Extract implements Extractor.
func (g *Guarded) Extract(ctx context.Context, text string) ([]string, error) {
	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			g.logger.Debug("retrying keyword extraction",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		out, err := g.breaker.Execute(func() (interface{}, error) {
			return g.next.Extract(ctx, text)
		})
		if err == nil {
			kw, _ := out.([]string)
			return kw, nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("keyword extractor unavailable: %w", err)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !transient(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("after %d retries: %w", g.maxRetries, lastErr)
}

// State reports the breaker state, mainly for logging and tests.
func (g *Guarded) State() gobreaker.State {
	return g.breaker.State()
}

// transient reports whether err may go away on retry. API errors carry
// their own verdict; anything else (network, decode) is retried.
func transient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return true
}
