package resilience

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/nirnay/internal/model"
	"github.com/ppiankov/nirnay/internal/worker"
)

// scriptedRunner fails while fail is set and counts calls per binary
type scriptedRunner struct {
	mu    sync.Mutex
	fail  bool
	err   error
	calls map[string]int
}

func (s *scriptedRunner) Run(_ context.Context, name string, _ ...string) ([]byte, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[name]++
	if s.fail {
		err := s.err
		if err == nil {
			err = errors.New("exit status 1")
		}
		return nil, []byte("failed"), err
	}
	return []byte("ok"), nil, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func breakerConfig() model.BreakerConfig {
	return model.BreakerConfig{Enabled: true, MinRequests: 2, FailureRatio: 0.5, OpenTimeout: time.Hour}
}

func TestGuardedRunner_PassesThrough(t *testing.T) {
	next := &scriptedRunner{}
	r := NewGuardedRunner(next, breakerConfig(), nil, quietLogger())

	stdout, _, err := r.Run(context.Background(), "/usr/bin/tesseract", "--version")
	if err != nil || string(stdout) != "ok" {
		t.Fatalf("unexpected result %q, %v", stdout, err)
	}
	if r.State("tesseract") != "closed" {
		t.Errorf("expected closed breaker, got %s", r.State("tesseract"))
	}
}

func TestGuardedRunner_TripsPerBinary(t *testing.T) {
	next := &scriptedRunner{fail: true}
	var transitions []string
	r := NewGuardedRunner(next, breakerConfig(), nil, quietLogger())
	r.OnStateChange = func(binary, to string) { transitions = append(transitions, binary+":"+to) }

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, stderr, err := r.Run(ctx, "tesseract"); err == nil || string(stderr) != "failed" {
			t.Fatalf("call %d: expected binary failure, got %v", i, err)
		}
	}

	_, _, err := r.Run(ctx, "tesseract")
	if !IsCircuitOpen(err) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if next.calls["tesseract"] != 2 {
		t.Errorf("open breaker must not spawn the binary, got %d calls", next.calls["tesseract"])
	}
	if len(transitions) != 1 || transitions[0] != "tesseract:open" {
		t.Errorf("unexpected transitions: %v", transitions)
	}

	next.fail = false
	if _, _, err := r.Run(ctx, "pdftotext"); err != nil {
		t.Errorf("other binaries keep their own breaker: %v", err)
	}
}

func TestGuardedRunner_CancellationNotCounted(t *testing.T) {
	next := &scriptedRunner{fail: true, err: context.Canceled}
	r := NewGuardedRunner(next, breakerConfig(), nil, quietLogger())

	for i := 0; i < 5; i++ {
		_, _, err := r.Run(context.Background(), "tesseract")
		if IsCircuitOpen(err) {
			t.Fatalf("call %d: cancellations must not trip the breaker", i)
		}
	}
}

func TestGuardedRunner_Disabled(t *testing.T) {
	next := &scriptedRunner{fail: true}
	cfg := breakerConfig()
	cfg.Enabled = false
	r := NewGuardedRunner(next, cfg, nil, quietLogger())

	for i := 0; i < 5; i++ {
		if _, _, err := r.Run(context.Background(), "tesseract"); IsCircuitOpen(err) {
			t.Fatal("disabled breaker must never open")
		}
	}
	if next.calls["tesseract"] != 5 {
		t.Errorf("expected 5 calls, got %d", next.calls["tesseract"])
	}
}

func TestGuardedRunner_RateLimited(t *testing.T) {
	limiter := worker.NewLimiter(0.01, 1)
	r := NewGuardedRunner(&scriptedRunner{}, breakerConfig(), limiter, quietLogger())

	if _, _, err := r.Run(context.Background(), "tesseract"); err != nil {
		t.Fatalf("first call: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, _, err := r.Run(ctx, "tesseract"); err == nil {
		t.Error("expected rate limit error once the budget is spent")
	}
}

func TestFromConfig(t *testing.T) {
	r := FromConfig(&scriptedRunner{}, model.DefaultConfig(), quietLogger())
	if r.limiter == nil || !r.cfg.Enabled {
		t.Errorf("unexpected runner: %+v", r)
	}
}
