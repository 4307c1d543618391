package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/menagerie/internal/testutil"
)

func newTestPool(t *testing.T) *Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	container := testutil.NewPostgresContainer(t)
	pool, err := NewPool(context.Background(), container.Config, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	testutil.ApplyMigrations(t, pool.Pgx())
	return pool
}

func TestPlayerRepository_CreateAndAuthenticate(t *testing.T) {
	repo := NewPlayerRepository(newTestPool(t))
	ctx := context.Background()

	player, err := repo.Create(ctx, "ash", "pikachu")
	require.NoError(t, err)
	assert.Equal(t, "ash", player.Username)
	assert.NotEqual(t, "pikachu", player.PasswordHash)
	assert.False(t, player.CreatedAt.IsZero())

	// Correct password authenticates.
	got, err := repo.Authenticate(ctx, "ash", "pikachu")
	require.NoError(t, err)
	assert.Equal(t, player.ID, got.ID)

	// Wrong password and unknown user both return the same error.
	_, err = repo.Authenticate(ctx, "ash", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = repo.Authenticate(ctx, "nobody", "pikachu")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPlayerRepository_DuplicateUsername(t *testing.T) {
	repo := NewPlayerRepository(newTestPool(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "ash", "pikachu")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "ash", "other")
	assert.ErrorIs(t, err, ErrPlayerExists)
}

func TestPlayerRepository_GetByUsername_NotFound(t *testing.T) {
	repo := NewPlayerRepository(newTestPool(t))
	_, err := repo.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestPlayerRepository_Create_RejectsEmptyInputs(t *testing.T) {
	repo := NewPlayerRepository(nil)
	ctx := context.Background()

	_, err := repo.Create(ctx, "", "pw")
	assert.ErrorContains(t, err, "username must not be empty")
	_, err = repo.Create(ctx, "ash", "")
	assert.ErrorContains(t, err, "password must not be empty")
}
