package favorites

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Persister stores the favorite id set durably. It is called after every
// mutation; implementations must tolerate frequent small writes.
type Persister interface {
	LoadIDs(ctx context.Context) ([]string, error)
	SaveIDs(ctx context.Context, ids []string) error
}

// Set is the viewer's starred spot identifiers. The in-memory set is the
// source of truth for the running process: persistence failures are logged
// and swallowed, never surfaced, and never corrupt membership. Construct
// one Set at startup and inject it; there is no package-level instance.
type Set struct {
	mu  sync.RWMutex
	ids map[string]struct{}
	p   Persister
	log *zap.SugaredLogger
}

// New builds an empty Set. persister may be nil, in which case membership
// is session-only.
func New(persister Persister, log *zap.SugaredLogger) *Set {
	return &Set{
		ids: make(map[string]struct{}),
		p:   persister,
		log: log,
	}
}

// Load replaces membership with the persisted set. Best effort: a load
// failure leaves the set empty and is only logged.
func (s *Set) Load(ctx context.Context) {
	if s.p == nil {
		return
	}
	ids, err := s.p.LoadIDs(ctx)
	if err != nil {
		if s.log != nil {
			s.log.Warnw("favorites load failed", "err", err)
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

func (s *Set) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Toggle flips membership for id and reports the new state. The flipped
// set is persisted synchronously; persistence failure does not undo the
// flip.
func (s *Set) Toggle(ctx context.Context, id string) bool {
	s.mu.Lock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
	_, member := s.ids[id]
	ids := s.idsLocked()
	s.mu.Unlock()

	s.persist(ctx, ids)
	return member
}

// IDs returns current membership in sorted order.
func (s *Set) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idsLocked()
}

func (s *Set) idsLocked() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Set) persist(ctx context.Context, ids []string) {
	if s.p == nil {
		return
	}
	if err := s.p.SaveIDs(ctx, ids); err != nil && s.log != nil {
		s.log.Warnw("favorites save failed", "err", err)
	}
}
