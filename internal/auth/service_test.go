package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahay/internal/auth"
	"bahay/internal/auth/store"
	dErrors "bahay/pkg/domain-errors"
)

func newTestService() *auth.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewJWTService("test-signing-key", "bahay", time.Hour)
	return auth.New(store.NewInMemory(), tokens, logger)
}

func signUp(t *testing.T, svc *auth.Service, email string) *auth.User {
	t.Helper()
	user, err := svc.SignUp(context.Background(), &auth.SignUpRequest{
		Email:    email,
		Name:     "Maria Cruz",
		Password: "correct horse",
	})
	require.NoError(t, err)
	return user
}

func TestSignUp(t *testing.T) {
	svc := newTestService()

	user := signUp(t, svc, "Maria@Example.COM")
	assert.Equal(t, "maria@example.com", user.Email, "email is normalized to lowercase")
	assert.Equal(t, auth.RoleOwner, user.Role, "self-service accounts are owners")
	assert.NotEqual(t, "correct horse", user.PasswordHash)
}

func TestSignUpValidation(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name string
		req  auth.SignUpRequest
	}{
		{"bad email", auth.SignUpRequest{Email: "nope", Name: "Maria", Password: "long enough"}},
		{"missing name", auth.SignUpRequest{Email: "a@b.com", Password: "long enough"}},
		{"short password", auth.SignUpRequest{Email: "a@b.com", Name: "Maria", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(context.Background(), &tt.req)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc := newTestService()
	signUp(t, svc, "maria@example.com")

	_, err := svc.SignUp(context.Background(), &auth.SignUpRequest{
		Email:    "maria@example.com",
		Name:     "Another Maria",
		Password: "different pass",
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestLoginRoundTrip(t *testing.T) {
	svc := newTestService()
	user := signUp(t, svc, "maria@example.com")

	result, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "maria@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, int64(3600), result.ExpiresIn)
	assert.Equal(t, user.ID, result.User.ID)

	authenticated, err := svc.Authenticate(context.Background(), result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authenticated.ID)
	assert.Equal(t, auth.RoleOwner, authenticated.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService()
	signUp(t, svc, "maria@example.com")

	// Wrong password and unknown email produce the same error.
	_, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "maria@example.com",
		Password: "wrong horse",
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	wrongPass := err.Error()

	_, err = svc.Login(context.Background(), &auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse",
	})
	require.Error(t, err)
	assert.Equal(t, wrongPass, err.Error())
}

func TestAuthenticateRejectsGarbageToken(t *testing.T) {
	svc := newTestService()

	_, err := svc.Authenticate(context.Background(), "not.a.jwt")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewJWTService("test-signing-key", "bahay", -time.Minute)
	svc := auth.New(store.NewInMemory(), tokens, logger)
	user := signUp(t, svc, "maria@example.com")

	token, err := tokens.GenerateAccessToken(user.ID, user.Role, time.Now())
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
