package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/sweet_shop/internal/hash"
	"github.com/Skotchmaster/sweet_shop/internal/models"
)

func TestSeed_IsIdempotent(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	svc := &SeedService{Repo: r}
	ctx := context.Background()

	created, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	admin, err := r.FindUserByEmail(ctx, "admin@sweetshop.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, hash.CheckPassword(admin.PasswordHash, "admin123"))

	sweets, err := r.ListSweets(ctx)
	require.NoError(t, err)
	assert.Len(t, sweets, len(SeedSweets()))

	created, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	count, err := r.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(SeedAccounts), count)
}

func TestSeedCredentials(t *testing.T) {
	t.Parallel()
	creds := SeedCredentials()
	assert.Equal(t, "admin@sweetshop.com / admin123", creds[models.RoleAdmin])
	assert.Equal(t, "user@sweetshop.com / user123", creds[models.RoleUser])
}
