package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout cancels the request context after d and answers 504 Gateway Timeout
// when the handler has not started writing by then. The handler runs in its
// own goroutine; a write guard arbitrates between it and the timeout path so
// exactly one of them touches the underlying writer.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			guard := &writeGuard{ResponseWriter: w}

			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(guard, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				guard.abort()
			}
		})
	}
}

// writeGuard suppresses handler writes once the timeout response has been
// sent, and suppresses the timeout response once the handler has started
// writing.
type writeGuard struct {
	http.ResponseWriter

	mu      sync.Mutex
	started bool
	aborted bool
}

func (g *writeGuard) WriteHeader(status int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.aborted || g.started {
		return
	}
	g.started = true
	g.ResponseWriter.WriteHeader(status)
}

func (g *writeGuard) Write(b []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.aborted {
		return 0, http.ErrHandlerTimeout
	}
	if !g.started {
		g.started = true
		g.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return g.ResponseWriter.Write(b)
}

// abort writes the timeout response unless the handler beat it to the writer.
func (g *writeGuard) abort() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.aborted = true
	if g.started {
		return
	}
	g.ResponseWriter.Header().Set("Content-Type", "application/json")
	g.ResponseWriter.WriteHeader(http.StatusGatewayTimeout)
	_, _ = g.ResponseWriter.Write([]byte(`{"error":"request timeout"}`))
}
