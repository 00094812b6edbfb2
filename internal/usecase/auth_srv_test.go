package usecase

import (
	"context"
	"testing"

	"field-booking/internal/dto/request"
	"field-booking/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id := registerUser(t, svc, "a@x.com")
	assert.Equal(t, int64(1), id)

	resp, err := svc.Auth.Login(ctx, &request.LoginRequest{Email: "a@x.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "Ana Gomez", resp.FullName)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	registerUser(t, svc, "a@x.com")

	_, err := svc.Auth.Register(context.Background(), &request.RegisterRequest{
		FullName: "Otra Persona",
		Email:    "A@X.com",
		Password: "another1",
	})
	require.ErrorIs(t, err, apperror.ErrValidation)
	assert.Contains(t, err.Error(), "email already registered")
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Auth.Register(context.Background(), &request.RegisterRequest{
		FullName: "Ana",
		Email:    "not-an-email",
		Password: "123",
	})
	require.ErrorIs(t, err, apperror.ErrValidation)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "password")
}

func TestAuthService_LoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	registerUser(t, svc, "a@x.com")
	ctx := context.Background()

	tests := []struct {
		name string
		req  request.LoginRequest
	}{
		{"wrong password", request.LoginRequest{Email: "a@x.com", Password: "nope"}},
		{"unknown email", request.LoginRequest{Email: "b@x.com", Password: "secret123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Auth.Login(ctx, &tt.req)
			assert.ErrorIs(t, err, apperror.ErrUnauthorized)
		})
	}
}
