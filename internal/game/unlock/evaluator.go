package unlock

import (
	"strings"

	"go.uber.org/zap"
)

// Source resolves an area's unlock data by id. *area.Registry satisfies it.
type Source interface {
	// UnlockInfo returns whether the area is always unlocked, its parsed
	// requirement tree (nil when none), and whether the area exists.
	UnlockInfo(areaID string) (always bool, req *Condition, found bool)
}

// Evaluator decides area accessibility against progression snapshots.
//
// Error design: every failure mode resolves to "locked" rather than an
// error or panic. Missing areas and unrecognized predicates are logged as
// warnings so content authors notice mistakes; internal panics are recovered
// and logged as errors.
type Evaluator struct {
	src    Source
	logger *zap.Logger
}

// NewEvaluator creates an Evaluator over the given area source.
//
// Precondition: src and logger must be non-nil.
func NewEvaluator(src Source, logger *zap.Logger) *Evaluator {
	return &Evaluator{src: src, logger: logger}
}

// IsUnlocked reports whether the player progression in snap grants access
// to the area.
//
// Postcondition: never panics; any internal failure yields false.
func (e *Evaluator) IsUnlocked(areaID string, snap Snapshot) (unlocked bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("unlock evaluation panicked, treating area as locked",
				zap.String("area", areaID),
				zap.Any("panic", r),
			)
			unlocked = false
		}
	}()

	always, req, found := e.src.UnlockInfo(areaID)
	if !found {
		e.logger.Warn("unlock check for unknown area", zap.String("area", areaID))
		return false
	}
	if always {
		return true
	}
	// Areas with no stated requirements are open by default. Forward
	// compatibility: new areas become reachable before their gating data
	// is authored.
	if req == nil {
		return true
	}
	return e.eval(areaID, req, snap)
}

// eval is the recursive fold over the condition tree.
// Empty and/or children are vacuously true, mirroring every/some over
// empty collections in the original data format.
func (e *Evaluator) eval(areaID string, c *Condition, snap Snapshot) bool {
	switch c.Kind {
	case KindStory:
		return snap.HasFlag(c.Flag)
	case KindLevel:
		return snap.Level >= c.Level
	case KindItem:
		return snap.HasItem(c.Item)
	case KindClass:
		for _, class := range c.Classes {
			if snap.Class == class {
				return true
			}
		}
		return false
	case KindBossDefeated:
		return snap.HasDefeated(c.Boss)
	case KindAnyStory:
		for _, flag := range c.Flags {
			if snap.HasFlag(flag) {
				return true
			}
		}
		return false
	case KindAllItems:
		for _, item := range c.Items {
			if !snap.HasItem(item) {
				return false
			}
		}
		return true
	case KindAllBosses:
		for _, boss := range c.Bosses {
			if !snap.HasDefeated(boss) {
				return false
			}
		}
		return true
	case KindLevelRange:
		if snap.Level < c.MinLevel {
			return false
		}
		return c.MaxLevel == 0 || snap.Level <= c.MaxLevel
	case KindAnd:
		for _, child := range c.Children {
			if !e.eval(areaID, child, snap) {
				return false
			}
		}
		return true
	case KindOr:
		if len(c.Children) == 0 {
			return true
		}
		for _, child := range c.Children {
			if e.eval(areaID, child, snap) {
				return true
			}
		}
		return false
	default:
		e.logger.Warn("unrecognized unlock condition, failing closed",
			zap.String("area", areaID),
			zap.String("keys", strings.Join(c.UnknownKeys, ",")),
		)
		return false
	}
}
