package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"clubsite/backend/internal/metrics"

	"github.com/rs/zerolog/log"
)

// TokenVerifier checks a bearer token and returns the subject email
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type contextKey string

const subjectContextKey contextKey = "auth_subject"

func withSubject(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, subjectContextKey, email)
}

func subjectFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(subjectContextKey).(string)
	return email, ok
}

// RequireAuth rejects requests without a valid bearer token
func RequireAuth(verifier TokenVerifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			writeError(w, r, fmt.Errorf("%w: missing Authorization header", ErrUnauthorized))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			writeError(w, r, fmt.Errorf("%w: invalid Authorization header format", ErrUnauthorized))
			return
		}

		email, err := verifier.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withSubject(r.Context(), email)))
	})
}

// CORS answers preflight requests and sets allow headers for configured origins
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := false
	allowMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		candidate := strings.TrimSpace(origin)
		if candidate == "" {
			continue
		}
		if candidate == "*" {
			allowAll = true
			continue
		}
		allowMap[candidate] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		allowed := allowAll
		if !allowed {
			_, allowed = allowMap[origin]
		}
		if allowed {
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type,Accept")
			w.Header().Set("Access-Control-Max-Age", "600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogging logs every request and records it in the HTTP metrics.
// The route label is the matched ServeMux pattern so ids do not explode cardinality.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		duration := time.Since(started)
		metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(rec.status), duration)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Str("remote_addr", r.RemoteAddr).
			Dur("duration", duration).
			Msg("HTTP request")
	})
}

func recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("panic", rec).
					Str("path", r.URL.Path).
					Msg("Panic recovered")
				metrics.RecordError("api", "panic")
				writeJSON(w, http.StatusInternalServerError, errorBody{Detail: "Internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
