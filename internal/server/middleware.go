package server

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/steave-git/Streaming-Musical-Web/internal/models"
	"github.com/steave-git/Streaming-Musical-Web/internal/shared"
)

type contextKey int

const userContextKey contextKey = iota

// sessionUser returns the authenticated user attached to the request context
// by one of the route guards.
func sessionUser(r *http.Request) (models.SessionUser, bool) {
	user, ok := r.Context().Value(userContextKey).(models.SessionUser)
	return user, ok
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// logRequests logs one line per request with a correlation id.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			"id", shared.RequestID(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

// requirePage guards an HTML route: unauthenticated visitors are redirected
// to the login page with a `next` parameter pointing back here.
func (s *Server) requirePage(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.sessions.Current(r)
		if !ok {
			s.flash(w, r, "warning", "Veuillez vous connecter pour accéder à cette page")
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}

// requireAPI guards a JSON route: unauthenticated calls receive 401 JSON
// rather than a redirect.
func (s *Server) requireAPI(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.sessions.Current(r)
		if !ok {
			s.respondError(w, http.StatusUnauthorized, "Authentification requise")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}
