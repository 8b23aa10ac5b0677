package middleware

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	apperrors "reservations/pkg/errors"
	httputil "reservations/pkg/http"
)

// TimeoutGrace is how long past the request deadline a handler may still
// finish with its own response. Transports that honour the context fail at
// the deadline, and their error (a 500 for mail) is what the client sees.
const TimeoutGrace = 250 * time.Millisecond

// timeoutWriter buffers the handler's response so the serving goroutine owns
// the real ResponseWriter. Nothing reaches the client until the handler
// returns or the timeout answer is written.
type timeoutWriter struct {
	mu          sync.Mutex
	header      http.Header
	buf         bytes.Buffer
	timedOut    bool
	wroteHeader bool
	statusCode  int
}

func newTimeoutWriter() *timeoutWriter {
	return &timeoutWriter{header: make(http.Header)}
}

// Header is only safe to use from the handler goroutine.
func (tw *timeoutWriter) Header() http.Header {
	return tw.header
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut || tw.wroteHeader {
		return
	}
	tw.statusCode = code
	tw.wroteHeader = true
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wroteHeader {
		tw.statusCode = http.StatusOK
		tw.wroteHeader = true
	}
	return tw.buf.Write(b)
}

// flush copies the buffered response to w. It runs after the handler
// returned, so reading header needs no lock.
func (tw *timeoutWriter) flush(w http.ResponseWriter) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	dst := w.Header()
	for key, values := range tw.header {
		dst[key] = values
	}
	if !tw.wroteHeader {
		tw.statusCode = http.StatusOK
	}
	w.WriteHeader(tw.statusCode)
	_, _ = w.Write(tw.buf.Bytes())
}

// RequestTimeout bounds the request context. Mail transports and stores see
// the same deadline, so a slow relay fails the request instead of hanging it.
// A handler still running TimeoutGrace after the deadline gets a 503.
func RequestTimeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)

			tw := newTimeoutWriter()

			done := make(chan struct{})
			panicCh := make(chan any, 1)
			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicCh <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			timer := time.NewTimer(timeout + TimeoutGrace)
			defer timer.Stop()

			select {
			case <-done:
				tw.flush(w)
			case p := <-panicCh:
				// Re-raise on the serving goroutine so Recovery sees it.
				panic(p)
			case <-timer.C:
				tw.mu.Lock()
				tw.timedOut = true
				tw.mu.Unlock()
				_ = httputil.WriteError(w, apperrors.Timeout("Request timeout"))
			}
		})
	}
}
