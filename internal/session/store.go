package session

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/tgfetch/tgfetch/internal/model"
)

// Cache key prefixes, selections and phases share one cache without colliding
const (
	selectionPrefix = "sel:"
	phasePrefix     = "phase:"
)

// Selection lifetime constants
const (
	// SelectionTTL bounds how long a format/quality keyboard stays
	// answerable. Taps on older keyboards get an expiry notice.
	SelectionTTL = 15 * time.Minute

	cleanupInterval = 5 * time.Minute
)

// Store keeps per-session state. Expiry is delegated to the cache; the
// mutex makes take-and-delete atomic so two concurrent taps on the same
// keyboard cannot both consume the selection.
type Store struct {
	mu      sync.Mutex
	entries *cache.Cache
	ttl     time.Duration
}

// NewStore creates a store with the default selection lifetime
func NewStore() *Store {
	return newStore(SelectionTTL, cleanupInterval)
}

func newStore(ttl, cleanup time.Duration) *Store {
	return &Store{
		entries: cache.New(ttl, cleanup),
		ttl:     ttl,
	}
}

// PutSelection replaces any pending selection for the session
func (s *Store) PutSelection(key string, sel model.PendingSelection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries.Set(selectionPrefix+key, sel, s.ttl)
}

// TakeSelection returns the pending selection and removes it in one step
func (s *Store) TakeSelection(key string) (model.PendingSelection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, found := s.entries.Get(selectionPrefix + key)
	if !found {
		return model.PendingSelection{}, false
	}
	s.entries.Delete(selectionPrefix + key)

	sel, ok := value.(model.PendingSelection)
	return sel, ok
}

// AdvanceSelection moves the pending selection to the given stage and
// refreshes its lifetime. Returns false when nothing is pending.
func (s *Store) AdvanceSelection(key string, stage model.SelectionStage) (model.PendingSelection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, found := s.entries.Get(selectionPrefix + key)
	if !found {
		return model.PendingSelection{}, false
	}
	sel, ok := value.(model.PendingSelection)
	if !ok {
		return model.PendingSelection{}, false
	}

	sel.Stage = stage
	s.entries.Set(selectionPrefix+key, sel, s.ttl)
	return sel, true
}

// ClearSelection drops any pending selection for the session
func (s *Store) ClearSelection(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries.Delete(selectionPrefix + key)
}

// SetPhase records the session's activity phase. Idle removes the entry,
// which is what running indicator loops watch for to stop.
func (s *Store) SetPhase(key string, phase model.ActivityPhase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if phase == model.PhaseIdle {
		s.entries.Delete(phasePrefix + key)
		return
	}
	s.entries.Set(phasePrefix+key, phase, cache.NoExpiration)
}

// Phase returns the session's current activity phase, idle when absent
func (s *Store) Phase(key string) model.ActivityPhase {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, found := s.entries.Get(phasePrefix + key)
	if !found {
		return model.PhaseIdle
	}
	phase, ok := value.(model.ActivityPhase)
	if !ok {
		return model.PhaseIdle
	}
	return phase
}
