package unlock

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultCacheTTL is how long a memoized unlock decision stays valid.
const DefaultCacheTTL = 5 * time.Second

// CachedEvaluator wraps an Evaluator and memoizes decisions for areas with
// composite requirement trees, keyed by area id plus the full progression
// snapshot. Leaf-only requirements are cheap enough to evaluate directly.
//
// The map is unbounded: the key space is small in practice (areas x the
// handful of snapshots a session produces), but callers feeding highly
// varied snapshots will grow it until Clear is called. Known tradeoff.
type CachedEvaluator struct {
	eval *Evaluator
	src  Source
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	unlocked bool
	storedAt time.Time
}

// NewCachedEvaluator creates a CachedEvaluator over src.
// A zero ttl uses DefaultCacheTTL; a nil clock uses time.Now. Tests inject
// a clock to advance TTL deterministically.
//
// Precondition: src and logger must be non-nil.
func NewCachedEvaluator(src Source, logger *zap.Logger, ttl time.Duration, clock func() time.Time) *CachedEvaluator {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if clock == nil {
		clock = time.Now
	}
	return &CachedEvaluator{
		eval:    NewEvaluator(src, logger),
		src:     src,
		ttl:     ttl,
		now:     clock,
		entries: make(map[string]cacheEntry),
	}
}

// IsUnlocked returns the same decision as Evaluator.IsUnlocked, serving
// composite-requirement areas from cache within the TTL.
func (c *CachedEvaluator) IsUnlocked(areaID string, snap Snapshot) bool {
	_, req, found := c.src.UnlockInfo(areaID)
	if !found || req == nil || (req.Kind != KindAnd && req.Kind != KindOr) {
		return c.eval.IsUnlocked(areaID, snap)
	}

	key := cacheKey(areaID, snap)

	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && c.now().Sub(entry.storedAt) < c.ttl {
		c.mu.Unlock()
		return entry.unlocked
	}
	c.mu.Unlock()

	unlocked := c.eval.IsUnlocked(areaID, snap)

	c.mu.Lock()
	c.entries[key] = cacheEntry{unlocked: unlocked, storedAt: c.now()}
	c.mu.Unlock()

	return unlocked
}

// Status delegates to the underlying Evaluator; status reports are not
// cached since they feed low-frequency hint UI.
func (c *CachedEvaluator) Status(areaID string, snap Snapshot) Status {
	return c.eval.Status(areaID, snap)
}

// Clear drops all memoized decisions.
func (c *CachedEvaluator) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// Len returns the number of cached decisions, expired or not.
func (c *CachedEvaluator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey builds a deterministic key from the area id and snapshot.
// Set fields are sorted so logically equal snapshots share an entry.
func cacheKey(areaID string, snap Snapshot) string {
	var b strings.Builder
	b.WriteString(areaID)
	b.WriteByte('|')
	b.WriteString(strings.Join(snap.sortedFlags(), ","))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(snap.Level))
	b.WriteByte('|')
	b.WriteString(strings.Join(snap.sortedInventory(), ","))
	b.WriteByte('|')
	b.WriteString(snap.Class)
	b.WriteByte('|')
	b.WriteString(strings.Join(snap.sortedBosses(), ","))
	return b.String()
}
