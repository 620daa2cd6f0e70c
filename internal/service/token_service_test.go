package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"devconnector/internal/model"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	tokens, err := NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	t.Run("round trip returns the subject", func(t *testing.T) {
		token, err := tokens.Issue("user-123")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		subject, err := tokens.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "user-123", subject)
	})

	t.Run("two tokens for the same subject are never identical", func(t *testing.T) {
		first, err := tokens.Issue("user-123")
		require.NoError(t, err)
		second, err := tokens.Issue("user-123")
		require.NoError(t, err)
		require.NotEqual(t, first, second)
	})

	t.Run("expired token fails deterministically", func(t *testing.T) {
		shortLived, err := NewTokenService("test-secret", time.Nanosecond)
		require.NoError(t, err)

		token, err := shortLived.Issue("user-123")
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = shortLived.Verify(token)
		require.ErrorIs(t, err, model.ErrTokenExpired)
	})

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		other, err := NewTokenService("other-secret", time.Hour)
		require.NoError(t, err)

		token, err := other.Issue("user-123")
		require.NoError(t, err)

		_, err = tokens.Verify(token)
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := tokens.Verify("not-a-token")
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		token, err := tokens.Issue("user-123")
		require.NoError(t, err)

		tampered := token[:len(token)-2] + "xx"
		_, err = tokens.Verify(tampered)
		require.ErrorIs(t, err, model.ErrTokenInvalid)
	})
}

func TestNewTokenService_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService("", time.Hour)
	require.Error(t, err)

	_, err = NewTokenService("secret", 0)
	require.Error(t, err)
}
