package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cory-johannsen/menagerie/internal/game/unlock"
)

// ErrProgressNotFound indicates no progress record exists for the player.
var ErrProgressNotFound = errors.New("progress not found")

// ProgressRecord is the persisted progression state for one player.
type ProgressRecord struct {
	PlayerID       uuid.UUID
	StoryFlags     []string
	Level          int
	Inventory      []string
	Class          string
	DefeatedBosses []string
	UpdatedAt      time.Time
}

// Snapshot converts the record into the unlock evaluation view.
func (p *ProgressRecord) Snapshot() unlock.Snapshot {
	return unlock.NewSnapshot(p.StoryFlags, p.Level, p.Inventory, p.Class, p.DefeatedBosses)
}

// ProgressRepository persists player progression state.
type ProgressRepository struct {
	pool *Pool
}

// NewProgressRepository creates a repository backed by the given pool.
func NewProgressRepository(pool *Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

// Save upserts the player's progress record.
//
// Precondition: rec.PlayerID must reference an existing player.
func (r *ProgressRepository) Save(ctx context.Context, rec *ProgressRecord) error {
	if rec.Level < 1 {
		return fmt.Errorf("level must be >= 1, got %d", rec.Level)
	}

	query := `
		INSERT INTO player_progress (player_id, story_flags, level, inventory, class, defeated_bosses, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (player_id) DO UPDATE SET
			story_flags = EXCLUDED.story_flags,
			level = EXCLUDED.level,
			inventory = EXCLUDED.inventory,
			class = EXCLUDED.class,
			defeated_bosses = EXCLUDED.defeated_bosses,
			updated_at = now()`

	_, err := r.pool.Pgx().Exec(ctx, query,
		rec.PlayerID,
		rec.StoryFlags,
		rec.Level,
		rec.Inventory,
		rec.Class,
		rec.DefeatedBosses,
	)
	if err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	return nil
}

// Load returns the progress record for the player.
//
// Postcondition: returns ErrProgressNotFound if the player has no record.
func (r *ProgressRepository) Load(ctx context.Context, playerID uuid.UUID) (*ProgressRecord, error) {
	query := `
		SELECT player_id, story_flags, level, inventory, class, defeated_bosses, updated_at
		FROM player_progress
		WHERE player_id = $1`

	var rec ProgressRecord
	err := r.pool.Pgx().QueryRow(ctx, query, playerID).Scan(
		&rec.PlayerID,
		&rec.StoryFlags,
		&rec.Level,
		&rec.Inventory,
		&rec.Class,
		&rec.DefeatedBosses,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("querying progress: %w", err)
	}

	return &rec, nil
}
