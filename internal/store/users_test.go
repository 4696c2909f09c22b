package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/models"
)

func newTestUsers() *UserStore {
	return NewUserStore(degradedManager(), testLogger())
}

func TestUserRegisterHashesPassword(t *testing.T) {
	s := newTestUsers()
	ctx := context.Background()

	created, err := s.Create(ctx, &models.User{
		Name:         "Asha",
		Email:        "Asha@Example.COM",
		PasswordHash: "s3cret",
	})
	require.NoError(t, err)

	assert.Equal(t, "asha@example.com", created.Email)
	assert.NotEqual(t, "s3cret", created.PasswordHash)

	_, err = s.Create(ctx, &models.User{Name: "Dup", Email: "asha@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserAuthenticate(t *testing.T) {
	s := newTestUsers()
	ctx := context.Background()

	_, err := s.Create(ctx, &models.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "s3cret"})
	require.NoError(t, err)

	u, err := s.Authenticate(ctx, "asha@example.com", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, u)

	u, err = s.Authenticate(ctx, "asha@example.com", "wrong")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = s.Authenticate(ctx, "nobody@example.com", "s3cret")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserJSONNeverLeaksPassword(t *testing.T) {
	s := newTestUsers()

	created, err := s.Create(context.Background(), &models.User{
		Name: "Asha", Email: "asha@example.com", PasswordHash: "s3cret",
	})
	require.NoError(t, err)

	data, err := json.Marshal(created)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.NotContains(t, out, "password")
	assert.NotContains(t, out, "password_hash")
	assert.Contains(t, out, "is_admin")
	assert.Contains(t, out, "isAdmin")
}
