package usecase

import (
	"context"
	"testing"

	"bookreview/internal/data/repository"
	"bookreview/internal/dto/request"
	"bookreview/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture() AuthService {
	repo := &repository.Repository{
		User:   newStubUserRepo(),
		Book:   newStubBookRepo(),
		Review: newStubReviewRepo(),
	}
	config := &utils.Config{
		JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
	}
	return NewAuthService(repo, config, zap.NewNop())
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthFixture()

	user, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "user", user.Role)

	auth, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, user.ID, auth.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthFixture()

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Other Ana",
		Email:    "ana@example.com",
		Password: "different456",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "User already exists")
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := newAuthFixture()

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "abc",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newAuthFixture()

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.EqualError(t, err, "Invalid email or password")
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthFixture()

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	// same message as for an unknown email
	assert.EqualError(t, err, "Invalid email or password")
}
