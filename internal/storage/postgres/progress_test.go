package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressRepository_SaveAndLoad(t *testing.T) {
	pool := newTestPool(t)
	players := NewPlayerRepository(pool)
	progress := NewProgressRepository(pool)
	ctx := context.Background()

	player, err := players.Create(ctx, "ash", "pikachu")
	require.NoError(t, err)

	rec := &ProgressRecord{
		PlayerID:       player.ID,
		StoryFlags:     []string{"tutorial_complete", "plains_crossed"},
		Level:          7,
		Inventory:      []string{"rope", "glow_lantern"},
		Class:          "druid",
		DefeatedBosses: []string{"alpha_wolf"},
	}
	require.NoError(t, progress.Save(ctx, rec))

	got, err := progress.Load(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.StoryFlags, got.StoryFlags)
	assert.Equal(t, 7, got.Level)
	assert.Equal(t, "druid", got.Class)
	assert.False(t, got.UpdatedAt.IsZero())

	// Upsert replaces the record.
	rec.Level = 8
	rec.StoryFlags = append(rec.StoryFlags, "ember_sigil_found")
	require.NoError(t, progress.Save(ctx, rec))

	got, err = progress.Load(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Level)
	assert.Len(t, got.StoryFlags, 3)
}

func TestProgressRepository_LoadMissing(t *testing.T) {
	progress := NewProgressRepository(newTestPool(t))
	_, err := progress.Load(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProgressNotFound)
}

func TestProgressRecord_Snapshot(t *testing.T) {
	rec := &ProgressRecord{
		StoryFlags:     []string{"tutorial_complete"},
		Level:          0, // normalized up by the snapshot boundary
		Inventory:      []string{"rope"},
		Class:          "druid",
		DefeatedBosses: []string{"alpha_wolf"},
	}
	snap := rec.Snapshot()
	assert.Equal(t, 1, snap.Level)
	assert.True(t, snap.HasFlag("tutorial_complete"))
	assert.True(t, snap.HasItem("rope"))
	assert.True(t, snap.HasDefeated("alpha_wolf"))
}

func TestProgressRepository_Save_RejectsBadLevel(t *testing.T) {
	progress := NewProgressRepository(nil)
	err := progress.Save(context.Background(), &ProgressRecord{PlayerID: uuid.New(), Level: 0})
	assert.ErrorContains(t, err, "level must be >= 1")
}
