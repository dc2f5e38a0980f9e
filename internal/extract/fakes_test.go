package extract

import (
	"context"
	"os"
	"sync"

	"github.com/ppiankov/nirnay/internal/model"
)

// fakeRunner records calls and replays canned output
type fakeRunner struct {
	mu     sync.Mutex
	calls  [][]string
	stdout []byte
	stderr []byte
	err    error

	// onRun, when set, sees the call while any temp input still exists
	onRun func(name string, args []string)
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()
	if f.onRun != nil {
		f.onRun(name, args)
	}
	return f.stdout, f.stderr, f.err
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeBackend returns a fixed text, error or panic
type fakeBackend struct {
	method model.Method
	text   string
	err    error
	panics bool
	calls  int
}

func (b *fakeBackend) Method() model.Method { return b.method }

func (b *fakeBackend) Extract(context.Context, []byte) (string, error) {
	b.calls++
	if b.panics {
		panic("malformed xref")
	}
	return b.text, b.err
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
