package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/roadgraph/pkg/errors"
	"github.com/matzehuels/roadgraph/pkg/session"
)

// requestLogger logs one line per request.
func requestLogger(logger *log.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Microsecond),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}

type ctxKey int

const sessionKey ctxKey = 0

// loadSession resolves {id} into a session and refreshes its expiry.
func (s *Server) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		sess, err := s.store.Get(r.Context(), id)
		if err != nil {
			s.respondError(w, errors.Wrap(errors.ErrCodeInternal, err, "load session"))
			return
		}
		if sess == nil {
			s.respondError(w, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id))
			return
		}
		sess.Touch(s.ttl)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(sessionKey).(*session.Session)
	return sess
}
