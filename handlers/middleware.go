package handlers

import (
	"context"
	"donow/models"
	"donow/service"
	"donow/utils"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const userKey contextKey = "user"

// RequireUser resolves the bearer token to a user before calling next.
// Missing, invalid and expired tokens, and tokens for unknown users, all
// get the same 401.
func (h *Handlers) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := utils.BearerToken(r)
		if !ok {
			respondServiceError(w, r, service.ErrUnauthenticated)
			return
		}

		user, err := h.auth.Resolve(r.Context(), token)
		if err != nil {
			if !errors.Is(err, service.ErrUnauthenticated) {
				log.Println("error resolving user:", err)
			}
			respondServiceError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))

		if err := h.activity.Touch(r.Context(), user.ID, utils.GetUserAgent(r), utils.GetIP(r)); err != nil {
			log.Println("error updating last activity:", err)
		}
	})
}

// currentUser is only valid behind RequireUser.
func currentUser(r *http.Request) models.User {
	user, _ := r.Context().Value(userKey).(models.User)
	return user
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// LogRequests tags every request with an id and logs its outcome.
func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s id=%s", r.Method, r.URL.Path, rec.status, time.Since(start), requestID)
	})
}

// WithTimeout answers 503 with a JSON error when next runs longer than
// timeout. The content type is set up front because http.TimeoutHandler
// writes its body without one.
func WithTimeout(next http.Handler, timeout time.Duration) http.Handler {
	timed := http.TimeoutHandler(next, timeout, `{"error":"request timed out"}`)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		timed.ServeHTTP(w, r)
	})
}
