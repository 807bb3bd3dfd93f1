package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"rafiq/internal/models"
	"rafiq/internal/security"
	"rafiq/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const GuardianContextKey ContextKey = "guardian"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	tokens      *security.TokenManager
	limiter     *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, tokens *security.TokenManager, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		tokens:      tokens,
		limiter:     limiter,
	}
}

// RequireAuth validates the bearer access token and loads the guardian
// into the request context
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}

		guardianID, err := m.tokens.Verify(strings.TrimPrefix(header, "Bearer "), "access")
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}

		guardian, err := m.authService.GetGuardian(guardianID)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}
		if !guardian.IsActive {
			writeError(w, http.StatusForbidden, "account disabled", nil)
			return
		}

		ctx := context.WithValue(r.Context(), GuardianContextKey, guardian)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit rejects clients that exceed the per-IP request budget
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			writeError(w, http.StatusTooManyRequests, "too many requests", nil)
			return
		}
		next(w, r)
	}
}

// Logging logs every request with its duration
func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// GuardianFromContext retrieves the authenticated guardian
func GuardianFromContext(ctx context.Context) (*models.Guardian, bool) {
	guardian, ok := ctx.Value(GuardianContextKey).(*models.Guardian)
	return guardian, ok
}
