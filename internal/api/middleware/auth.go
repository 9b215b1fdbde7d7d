package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/medmarket/backend/internal/domain/entities"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	callerIDKey   contextKey = "caller_id"
	callerRoleKey contextKey = "caller_role"
)

// Claims represents the JWT claims carried by access tokens
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware provides JWT bearer authentication
type AuthMiddleware struct {
	secret       []byte
	skipPaths    map[string]bool
	skipPrefixes []string
}

// NewAuthMiddleware creates a new authentication middleware. Requests to
// skipPaths, or under any of skipPrefixes, pass through unauthenticated.
func NewAuthMiddleware(secret string, skipPaths []string, skipPrefixes []string) *AuthMiddleware {
	skip := make(map[string]bool)
	for _, path := range skipPaths {
		skip[path] = true
	}

	return &AuthMiddleware{
		secret:       []byte(secret),
		skipPaths:    skip,
		skipPrefixes: skipPrefixes,
	}
}

func (m *AuthMiddleware) skip(path string) bool {
	if m.skipPaths[path] {
		return true
	}
	for _, prefix := range m.skipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Handler returns the middleware handler
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skip(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.respondUnauthorized(w, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			m.respondUnauthorized(w, "invalid authorization header format")
			return
		}

		claims, err := m.validateToken(parts[1])
		if err != nil {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("token validation failed")
			m.respondUnauthorized(w, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), callerIDKey, claims.Subject)
		if claims.Role != "" {
			ctx = context.WithValue(ctx, callerRoleKey, entities.Role(claims.Role))
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validateToken validates a JWT token and returns its claims
func (m *AuthMiddleware) validateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

func (m *AuthMiddleware) respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// CallerID extracts the authenticated user ID from context
func CallerID(ctx context.Context) string {
	if id, ok := ctx.Value(callerIDKey).(string); ok {
		return id
	}
	return ""
}

// CallerRole extracts the authenticated user role from context
func CallerRole(ctx context.Context) entities.Role {
	if role, ok := ctx.Value(callerRoleKey).(entities.Role); ok {
		return role
	}
	return ""
}

// WithCaller returns a context carrying the given caller identity. Intended
// for tests and internal invocations.
func WithCaller(ctx context.Context, userID string, role entities.Role) context.Context {
	ctx = context.WithValue(ctx, callerIDKey, userID)
	return context.WithValue(ctx, callerRoleKey, role)
}
