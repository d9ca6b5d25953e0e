// Package responsewriter wraps http.ResponseWriter so middleware can observe
// the status code and body size after the handler runs.
package responsewriter

import "net/http"

// ResponseWriter records the status code and byte count of a response as it
// is written. The zero status is 200, matching net/http's implicit header.
type ResponseWriter struct {
	http.ResponseWriter

	status  int
	bytes   int
	started bool
}

// Wrap returns a recording wrapper around w.
func Wrap(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the first status code written; later calls are dropped
// so the recorded value matches what actually went on the wire.
func (w *ResponseWriter) WriteHeader(status int) {
	if w.started {
		return
	}
	w.started = true
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.started {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// StatusCode returns the recorded status code.
func (w *ResponseWriter) StatusCode() int { return w.status }

// BytesWritten returns the recorded response body size.
func (w *ResponseWriter) BytesWritten() int { return w.bytes }

// Unwrap exposes the underlying writer for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
