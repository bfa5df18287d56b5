package middleware

import (
	"net/http"
	"strings"

	"github.com/tair/nutribakery/pkg/auth"
	"github.com/tair/nutribakery/pkg/httpx"
	"github.com/tair/nutribakery/pkg/logger"
)

// TokenValidator verifies bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// Authenticator builds the auth, admin and optional-auth wrappers around one validator
type Authenticator struct {
	tokens TokenValidator
}

func NewAuthenticator(tokens TokenValidator) *Authenticator {
	return &Authenticator{tokens: tokens}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Auth rejects requests without a valid bearer token
func (a *Authenticator) Auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			logger.Warn(r.Context()).Msg("Missing authorization header")
			respondUnauthorized(w, "Authorization header required")
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			logger.Warn(r.Context()).Msg("Invalid authorization header format")
			respondUnauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := a.tokens.ValidateToken(token)
		if err != nil {
			logger.Warn(r.Context()).Err(err).Msg("Invalid token")
			respondUnauthorized(w, "Invalid token")
			return
		}

		ctx := httpx.ContextWithIdentity(r.Context(), httpx.Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// Admin requires a valid token carrying the admin role
func (a *Authenticator) Admin(next http.HandlerFunc) http.HandlerFunc {
	return a.Auth(func(w http.ResponseWriter, r *http.Request) {
		id, _ := httpx.IdentityFromContext(r.Context())
		if id.Role != auth.RoleAdmin {
			logger.Warn(r.Context()).
				Str("user_id", id.UserID).
				Str("role", id.Role).
				Msg("Admin access denied")
			httpx.RespondJSON(w, http.StatusForbidden, httpx.Response{
				Success: false,
				Message: "Admin access required",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Optional attaches the identity when a valid token is present and never rejects
func (a *Authenticator) Optional(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r); ok {
			if claims, err := a.tokens.ValidateToken(token); err == nil {
				ctx := httpx.ContextWithIdentity(r.Context(), httpx.Identity{
					UserID:   claims.UserID,
					Username: claims.Username,
					Role:     claims.Role,
				})
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	}
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	httpx.RespondJSON(w, http.StatusUnauthorized, httpx.Response{
		Success: false,
		Message: message,
	})
}
