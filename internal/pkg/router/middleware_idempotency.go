package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/worknest/worknest-api/internal/pkg/idempotency"
)

// HeaderIdempotencyKey carries the client-chosen key for safe retries.
const HeaderIdempotencyKey = "Idempotency-Key"

var errRequestFailed = errors.New("request failed")

// idemRecorder notes the status and forwards SetError to the outer recorder.
type idemRecorder struct {
	http.ResponseWriter
	status int
}

func (w *idemRecorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *idemRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(p)
}

func (w *idemRecorder) SetError(err error) {
	if setter, ok := w.ResponseWriter.(interface{ SetError(error) }); ok {
		setter.SetError(err)
	}
}

// Idempotent runs the wrapped endpoint at most once per Idempotency-Key.
// Requests without the header pass through. A repeated key answers 409 while
// the first request is in flight or after it succeeded; a failed request
// (status >= 400) frees the key for a retry.
func Idempotent(tracker idempotency.Idempotency, ttl time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if tracker == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := normalizeCID(r.Header.Get(HeaderIdempotencyKey))
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			scoped := fmt.Sprintf("%s %s %s", r.Method, matchedRoutePath(r), key)
			rec := &idemRecorder{ResponseWriter: w}

			err := tracker.Exec(r.Context(), scoped, func(_ context.Context) error {
				next.ServeHTTP(rec, r)
				if rec.status >= http.StatusBadRequest {
					return errRequestFailed
				}
				return nil
			}, idempotency.WithStateTTL(ttl))

			switch {
			case err == nil, rec.status != 0:
				// the handler ran and already wrote its response
				if err != nil && !errors.Is(err, errRequestFailed) {
					slog.WarnContext(r.Context(), "failed to record idempotency state", "key", key, "error", err)
				}
			case errors.Is(err, idempotency.ErrAlreadyInProgress):
				writeJSON(w, failed("A request with this Idempotency-Key is still in progress"), http.StatusConflict)
			case errors.Is(err, idempotency.ErrAlreadyCompleted):
				writeJSON(w, failed("A request with this Idempotency-Key was already processed"), http.StatusConflict)
			default:
				slog.ErrorContext(r.Context(), "idempotency check failed", "key", key, "error", err)
				writeJSON(w, failed("Internal server error"), http.StatusInternalServerError)
			}
		})
	}
}
