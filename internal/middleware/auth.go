package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// TokenHeader is the credential header every protected route reads.
const TokenHeader = "x-auth-token"

type tokenVerifier interface {
	Verify(token string) (string, error)
}

type contextKey string

const subjectContextKey contextKey = "auth_subject"

// AuthMiddleware is the only place an authenticated subject enters the
// request context. A rejection here is terminal: the handler never runs.
type AuthMiddleware struct {
	tokens tokenVerifier
}

func NewAuthMiddleware(tokens tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.Header.Get(TokenHeader))
		if token == "" {
			writeUnauthorized(w, "No token, authorization denied")
			return
		}

		userID, err := m.tokens.Verify(token)
		if err != nil {
			writeUnauthorized(w, "Token is not valid")
			return
		}

		ctx := context.WithValue(r.Context(), subjectContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SubjectFromContext returns the verified user id set by RequireAuth.
func SubjectFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(subjectContextKey).(string)
	return userID, ok && userID != ""
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
