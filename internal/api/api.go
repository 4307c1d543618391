// Package api exposes the progression engine over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/menagerie/internal/game/area"
	"github.com/cory-johannsen/menagerie/internal/game/encounter"
	"github.com/cory-johannsen/menagerie/internal/game/shop"
	"github.com/cory-johannsen/menagerie/internal/game/unlock"
	"github.com/cory-johannsen/menagerie/internal/rng"
	"github.com/cory-johannsen/menagerie/internal/storage/postgres"
)

// UnlockChecker evaluates area access for a player snapshot.
type UnlockChecker interface {
	IsUnlocked(areaID string, snap unlock.Snapshot) bool
	Status(areaID string, snap unlock.Snapshot) unlock.Status
}

// EncounterSource rolls wild encounters for an area.
type EncounterSource interface {
	Generate(areaID string, playerLevel int) *encounter.Encounter
}

// PlayerStore persists player accounts.
type PlayerStore interface {
	Create(ctx context.Context, username, password string) (*postgres.Player, error)
	Authenticate(ctx context.Context, username, password string) (*postgres.Player, error)
}

// ProgressStore persists player progression state.
type ProgressStore interface {
	Save(ctx context.Context, rec *postgres.ProgressRecord) error
	Load(ctx context.Context, playerID uuid.UUID) (*postgres.ProgressRecord, error)
}

// Server bundles the HTTP handlers and their dependencies.
type Server struct {
	areas      *area.Registry
	shops      *shop.Registry
	unlocks    UnlockChecker
	encounters EncounterSource
	players    PlayerStore
	progress   ProgressStore
	src        rng.Source
	logger     *zap.Logger
}

// NewServer creates a Server with the given dependencies.
func NewServer(
	areas *area.Registry,
	shops *shop.Registry,
	unlocks UnlockChecker,
	encounters EncounterSource,
	players PlayerStore,
	progress ProgressStore,
	src rng.Source,
	logger *zap.Logger,
) *Server {
	return &Server{
		areas:      areas,
		shops:      shops,
		unlocks:    unlocks,
		encounters: encounters,
		players:    players,
		progress:   progress,
		src:        src,
		logger:     logger,
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/areas", s.handleListAreas)
	mux.HandleFunc("GET /v1/areas/{id}", s.handleGetArea)
	mux.HandleFunc("POST /v1/areas/{id}/unlock-status", s.handleUnlockStatus)
	mux.HandleFunc("POST /v1/areas/{id}/encounter", s.handleEncounter)
	mux.HandleFunc("POST /v1/areas/{id}/loot", s.handleLoot)
	mux.HandleFunc("POST /v1/areas/{id}/shop-catalog", s.handleShopCatalog)
	mux.HandleFunc("POST /v1/players", s.handleRegisterPlayer)
	mux.HandleFunc("GET /v1/players/{id}/progress", s.handleGetProgress)
	mux.HandleFunc("PUT /v1/players/{id}/progress", s.handlePutProgress)

	return s.withLogging(mux)
}

// withLogging wraps the handler with per-request structured logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encoding response", zap.Error(err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// snapshotRequest is the wire form of a player progression snapshot.
type snapshotRequest struct {
	StoryFlags     []string `json:"story_flags"`
	Level          int      `json:"level"`
	Inventory      []string `json:"inventory"`
	Class          string   `json:"class"`
	DefeatedBosses []string `json:"defeated_bosses"`
}

func (r snapshotRequest) snapshot() unlock.Snapshot {
	return unlock.NewSnapshot(r.StoryFlags, r.Level, r.Inventory, r.Class, r.DefeatedBosses)
}
