package adapthttp

import (
	"context"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type contextKey string

const (
	sessionContextKey contextKey = "session"
	sessionCookieName            = "session"
)

// sessionMiddleware attaches the caller's session id to the request context,
// issuing a new session cookie when none (or a malformed one) is present.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				sessionID = cookie.Value
			}
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			s.setSessionCookie(w, r, sessionID)
		}
		if rec, ok := w.(*statusRecorder); ok {
			rec.session = sessionID
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.sessionMaxAge.Seconds()),
	})
}

// refreshSessionCookie re-issues the session cookie so its lifetime follows
// the store's sliding expiry, unless this response already sets it.
func (s *Server) refreshSessionCookie(w http.ResponseWriter, r *http.Request) {
	if s.sessionMaxAge <= 0 {
		return
	}
	for _, c := range w.Header().Values("Set-Cookie") {
		if strings.HasPrefix(c, sessionCookieName+"=") {
			return
		}
	}
	s.setSessionCookie(w, r, sessionFromContext(r))
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

func sessionFromContext(r *http.Request) string {
	id, _ := r.Context().Value(sessionContextKey).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status  int
	session string
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs each request and records request metrics.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		log.WithFields(log.Fields{
			"session":  rec.session,
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": elapsed,
			"ua":       r.UserAgent(),
		}).Info("request")

		if s.metrics != nil {
			s.metrics.CounterRequests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
			s.metrics.HistRequestDuration.Observe(elapsed.Seconds())
		}
	})
}

// recoveryMiddleware turns handler panics into 500 responses.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("http: panic serving %s: %v\n%s", req.URL.Path, r, debug.Stack())
				if s.metrics != nil {
					s.metrics.CounterHandleRequestPanic.Inc()
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, req)
	})
}
