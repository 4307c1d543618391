package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/menagerie/internal/game/area"
	"github.com/cory-johannsen/menagerie/internal/game/loot"
	"github.com/cory-johannsen/menagerie/internal/storage/postgres"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type areaSummary struct {
	ID          string    `json:"id"`
	Type        area.Type `json:"type"`
	Unlocked    bool      `json:"unlocked"`
	Connections []string  `json:"connections,omitempty"`
	Services    []string  `json:"services,omitempty"`
}

func (s *Server) handleListAreas(w http.ResponseWriter, _ *http.Request) {
	defs := s.areas.All()
	out := make([]areaSummary, 0, len(defs))
	for _, d := range defs {
		out = append(out, areaSummary{
			ID:          d.ID,
			Type:        d.Type,
			Unlocked:    d.Unlocked,
			Connections: d.Connections,
			Services:    d.Services,
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

type areaDetail struct {
	areaSummary
	EncounterRate int        `json:"encounter_rate"`
	Monsters      []string   `json:"monsters,omitempty"`
	StoryEvents   []string   `json:"story_events,omitempty"`
	Boss          *area.Boss `json:"boss,omitempty"`
	HasShop       bool       `json:"has_shop"`
}

func (s *Server) handleGetArea(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	def, ok := s.areas.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown area")
		return
	}
	s.writeJSON(w, http.StatusOK, areaDetail{
		areaSummary: areaSummary{
			ID:          def.ID,
			Type:        def.Type,
			Unlocked:    def.Unlocked,
			Connections: def.Connections,
			Services:    def.Services,
		},
		EncounterRate: def.EncounterRate,
		Monsters:      def.Monsters,
		StoryEvents:   def.StoryEvents,
		Boss:          def.Boss,
		HasShop:       len(s.shops.ByArea(id)) > 0,
	})
}

func (s *Server) handleUnlockStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := s.unlocks.Status(id, req.snapshot())
	s.writeJSON(w, http.StatusOK, status)
}

type encounterRequest struct {
	snapshotRequest
}

func (s *Server) handleEncounter(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req encounterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, ok := s.areas.Get(id); !ok {
		s.writeError(w, http.StatusNotFound, "unknown area")
		return
	}

	snap := req.snapshot()
	if !s.unlocks.IsUnlocked(id, snap) {
		s.writeError(w, http.StatusForbidden, "area is locked")
		return
	}

	enc := s.encounters.Generate(id, snap.Level)
	if enc == nil {
		s.writeJSON(w, http.StatusOK, map[string]any{"encounter": nil})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"encounter": enc})
}

// handleLoot rolls the area's loot table once for the requesting player.
// Areas without a loot table return an empty drop list.
func (s *Server) handleLoot(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	def, ok := s.areas.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown area")
		return
	}
	if !s.unlocks.IsUnlocked(id, req.snapshot()) {
		s.writeError(w, http.StatusForbidden, "area is locked")
		return
	}

	drops := loot.Resolve(def.Loot, s.src)
	if drops == nil {
		drops = []loot.Drop{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"drops": drops})
}

func (s *Server) handleShopCatalog(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, ok := s.areas.Get(id); !ok {
		s.writeError(w, http.StatusNotFound, "unknown area")
		return
	}

	catalog := s.shops.Catalog(id, req.snapshot())
	s.writeJSON(w, http.StatusOK, map[string]any{"stock": catalog})
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type playerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (s *Server) handleRegisterPlayer(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		s.writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	player, err := s.players.Create(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, postgres.ErrPlayerExists) {
			s.writeError(w, http.StatusConflict, "username is taken")
			return
		}
		s.logger.Error("creating player", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.writeJSON(w, http.StatusCreated, playerResponse{
		ID:       player.ID.String(),
		Username: player.Username,
	})
}

type progressResponse struct {
	PlayerID       string   `json:"player_id"`
	StoryFlags     []string `json:"story_flags"`
	Level          int      `json:"level"`
	Inventory      []string `json:"inventory"`
	Class          string   `json:"class"`
	DefeatedBosses []string `json:"defeated_bosses"`
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	playerID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	rec, err := s.progress.Load(r.Context(), playerID)
	if err != nil {
		if errors.Is(err, postgres.ErrProgressNotFound) {
			s.writeError(w, http.StatusNotFound, "no progress for player")
			return
		}
		s.logger.Error("loading progress", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.writeJSON(w, http.StatusOK, progressResponse{
		PlayerID:       rec.PlayerID.String(),
		StoryFlags:     rec.StoryFlags,
		Level:          rec.Level,
		Inventory:      rec.Inventory,
		Class:          rec.Class,
		DefeatedBosses: rec.DefeatedBosses,
	})
}

type progressRequest struct {
	StoryFlags     []string `json:"story_flags"`
	Level          int      `json:"level"`
	Inventory      []string `json:"inventory"`
	Class          string   `json:"class"`
	DefeatedBosses []string `json:"defeated_bosses"`
}

func (s *Server) handlePutProgress(w http.ResponseWriter, r *http.Request) {
	playerID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid player id")
		return
	}

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Level < 1 {
		s.writeError(w, http.StatusBadRequest, "level must be >= 1")
		return
	}

	rec := &postgres.ProgressRecord{
		PlayerID:       playerID,
		StoryFlags:     req.StoryFlags,
		Level:          req.Level,
		Inventory:      req.Inventory,
		Class:          req.Class,
		DefeatedBosses: req.DefeatedBosses,
	}
	if err := s.progress.Save(r.Context(), rec); err != nil {
		s.logger.Error("saving progress", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.writeJSON(w, http.StatusOK, progressResponse{
		PlayerID:       rec.PlayerID.String(),
		StoryFlags:     rec.StoryFlags,
		Level:          rec.Level,
		Inventory:      rec.Inventory,
		Class:          rec.Class,
		DefeatedBosses: rec.DefeatedBosses,
	})
}
