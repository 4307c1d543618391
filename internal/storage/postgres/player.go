package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrPlayerNotFound indicates no player matched the lookup.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrPlayerExists indicates a username collision on creation.
	ErrPlayerExists = errors.New("player already exists")
	// ErrInvalidCredentials indicates a failed password check.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Player is a persisted player account.
type Player struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PlayerRepository persists player accounts.
type PlayerRepository struct {
	pool *Pool
}

// NewPlayerRepository creates a repository backed by the given pool.
func NewPlayerRepository(pool *Pool) *PlayerRepository {
	return &PlayerRepository{pool: pool}
}

// Create inserts a new player with a bcrypt-hashed password.
//
// Precondition: username and password must not be empty.
// Postcondition: returns ErrPlayerExists if the username is taken.
func (r *PlayerRepository) Create(ctx context.Context, username, password string) (*Player, error) {
	if username == "" {
		return nil, fmt.Errorf("username must not be empty")
	}
	if password == "" {
		return nil, fmt.Errorf("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	player := &Player{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
	}

	query := `
		INSERT INTO players (id, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err = r.pool.Pgx().QueryRow(ctx, query, player.ID, player.Username, player.PasswordHash).
		Scan(&player.CreatedAt, &player.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrPlayerExists
		}
		return nil, fmt.Errorf("inserting player: %w", err)
	}

	return player, nil
}

// GetByUsername returns the player with the given username.
//
// Postcondition: returns ErrPlayerNotFound if no row matches.
func (r *PlayerRepository) GetByUsername(ctx context.Context, username string) (*Player, error) {
	query := `
		SELECT id, username, password_hash, created_at, updated_at
		FROM players
		WHERE username = $1`

	var player Player
	err := r.pool.Pgx().QueryRow(ctx, query, username).Scan(
		&player.ID,
		&player.Username,
		&player.PasswordHash,
		&player.CreatedAt,
		&player.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("querying player: %w", err)
	}

	return &player, nil
}

// Authenticate verifies the password for the given username.
//
// Postcondition: returns ErrInvalidCredentials on an unknown username or a
// wrong password, never distinguishing the two.
func (r *PlayerRepository) Authenticate(ctx context.Context, username, password string) (*Player, error) {
	player, err := r.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return player, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}
