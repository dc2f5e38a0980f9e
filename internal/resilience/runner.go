// Package resilience guards external binaries with a per-binary spawn rate
// limit and circuit breaker.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/sony/gobreaker/v2"

	"github.com/ppiankov/nirnay/internal/model"
	"github.com/ppiankov/nirnay/internal/worker"
)

// Runner executes an external command
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type output struct {
	stdout []byte
	stderr []byte
}

// GuardedRunner wraps a Runner. Calls to the same binary share one rate
// budget and one breaker; a failing binary trips its breaker and further
// calls fail fast until the open timeout passes.
type GuardedRunner struct {
	next    Runner
	cfg     model.BreakerConfig
	limiter *worker.Limiter
	logger  *slog.Logger

	// OnStateChange is called on every breaker transition
	OnStateChange func(binary, to string)

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[output]
}

// NewGuardedRunner builds a guarded runner. A nil limiter disables rate
// limiting; cfg.Enabled=false disables the breaker.
func NewGuardedRunner(next Runner, cfg model.BreakerConfig, limiter *worker.Limiter, logger *slog.Logger) *GuardedRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &GuardedRunner{
		next:     next,
		cfg:      cfg,
		limiter:  limiter,
		logger:   logger,
		breakers: make(map[string]*gobreaker.CircuitBreaker[output]),
	}
}

// FromConfig builds a guarded runner from the concurrency and breaker settings.
func FromConfig(next Runner, cfg *model.Config, logger *slog.Logger) *GuardedRunner {
	limiter := worker.NewLimiter(cfg.Concurrency.SpawnsPerSecond, cfg.Concurrency.Burst)
	return NewGuardedRunner(next, cfg.Breaker, limiter, logger)
}

// Run waits for the binary's rate budget, then runs it through its breaker.
func (r *GuardedRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	key := filepath.Base(name)

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, key); err != nil {
			return nil, nil, fmt.Errorf("rate limit %s: %w", key, err)
		}
	}

	if !r.cfg.Enabled {
		return r.next.Run(ctx, name, args...)
	}

	out, err := r.breaker(key).Execute(func() (output, error) {
		stdout, stderr, err := r.next.Run(ctx, name, args...)
		return output{stdout: stdout, stderr: stderr}, err
	})
	if IsCircuitOpen(err) {
		return nil, nil, fmt.Errorf("%s: %w", key, err)
	}
	return out.stdout, out.stderr, err
}

// State reports the breaker state for a binary ("closed" when unused).
func (r *GuardedRunner) State(binary string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cb, ok := r.breakers[filepath.Base(binary)]; ok {
		return cb.State().String()
	}
	return gobreaker.StateClosed.String()
}

func (r *GuardedRunner) breaker(key string) *gobreaker.CircuitBreaker[output] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cb, ok := r.breakers[key]; ok {
		return cb
	}

	minRequests := r.cfg.MinRequests
	if minRequests == 0 {
		minRequests = 1
	}
	ratio := r.cfg.FailureRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 0.5
	}

	settings := gobreaker.Settings{
		Name:        key,
		MaxRequests: 1,
		Timeout:     r.cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= ratio
		},
		// Cancellation is the caller's doing, not the binary's.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			r.logger.Warn("circuit breaker state change", "binary", name, "from", from.String(), "to", to.String())
			if r.OnStateChange != nil {
				r.OnStateChange(name, to.String())
			}
		},
	}

	cb := gobreaker.NewCircuitBreaker[output](settings)
	r.breakers[key] = cb
	return cb
}

// IsCircuitOpen reports whether err came from an open or saturated breaker.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
