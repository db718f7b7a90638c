package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_SignIn(t *testing.T) {
	r := newRepos(t)
	svc := NewAuthService(r.users, nopLogger())
	ctx := context.Background()

	admin, err := svc.CreateAdmin(ctx, "Ops", "Ops@Example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", admin.Email)
	assert.NotEqual(t, "correct horse", admin.Password)

	got, err := svc.SignIn(ctx, " OPS@example.com ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	_, err = svc.SignIn(ctx, "ops@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.SignIn(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.SignIn(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuth_CreateAdminValidation(t *testing.T) {
	r := newRepos(t)
	svc := NewAuthService(r.users, nopLogger())
	ctx := context.Background()

	_, err := svc.CreateAdmin(ctx, "Ops", "not-an-email", "long enough")
	assert.Contains(t, fieldErrors(t, err), "email")

	_, err = svc.CreateAdmin(ctx, "Ops", "ops@example.com", "short")
	assert.Contains(t, fieldErrors(t, err), "password")

	_, err = svc.CreateAdmin(ctx, "Ops", "ops@example.com", "long enough")
	require.NoError(t, err)
	_, err = svc.CreateAdmin(ctx, "Ops", "ops@example.com", "long enough")
	assert.Contains(t, fieldErrors(t, err), "email")
}
