package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	subject string
	err     error
}

func (s stubVerifier) Verify(string) (string, error) {
	return s.subject, s.err
}

func decodeMsg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["msg"]
}

func TestRequireAuth_MissingToken(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(stubVerifier{subject: "user-1"})

	handlerCalled := false
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token, authorization denied", decodeMsg(t, rec))
	assert.False(t, handlerCalled, "handler must not run without a token")
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(stubVerifier{err: errors.New("bad signature")})

	handlerCalled := false
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	req.Header.Set(TokenHeader, "garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is not valid", decodeMsg(t, rec))
	assert.False(t, handlerCalled, "handler must not run with a bad token")
}

func TestRequireAuth_ValidToken(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(stubVerifier{subject: "user-42"})

	var seenSubject string
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := SubjectFromContext(r.Context())
		require.True(t, ok)
		seenSubject = subject
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	req.Header.Set(TokenHeader, "some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-42", seenSubject)
}

func TestSubjectFromContext_Absent(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := SubjectFromContext(req.Context())
	assert.False(t, ok)
}
