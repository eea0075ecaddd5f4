// Package catalog owns the in-memory spot and review tables and derives
// the ranked list the map UI renders. The serving layer only reads
// snapshots and dispatches intents; it never touches the tables directly.
package catalog

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Statusnone420/nomad-safe-web/internal/favorites"
	"github.com/Statusnone420/nomad-safe-web/internal/geoindex"
	"github.com/Statusnone420/nomad-safe-web/internal/review"
	"github.com/Statusnone420/nomad-safe-web/internal/shared/geo"
	"github.com/Statusnone420/nomad-safe-web/internal/spot"
)

// SpotStore is the spot slice of the remote store the engine reads.
type SpotStore interface {
	List(ctx context.Context) ([]spot.RawSpot, error)
}

// ReviewStore is the review slice of the remote store.
type ReviewStore interface {
	ListAll(ctx context.Context) ([]review.Review, error)
	Insert(ctx context.Context, r review.Review) (review.Review, error)
}

// Notifier fans a change event out to connected map clients. The stream
// hub implements it; nil disables notifications.
type Notifier interface {
	Broadcast(topic string, payload []byte)
}

// Engine holds the canonical spot table, the review table, the favorites
// set, and the active filter and viewer state. All state lives behind one
// mutex; every operation is a synchronous entry point.
type Engine struct {
	mu      sync.RWMutex
	spots   []spot.Spot
	reviews []review.Review
	filters Filters
	viewer  *geo.LatLng
	loadErr error

	favs     *favorites.Set
	index    *geoindex.Index
	spotSt   SpotStore
	reviewSt ReviewStore
	notifier Notifier
	log      *zap.SugaredLogger
}

func NewEngine(spots SpotStore, reviews ReviewStore, favs *favorites.Set, notifier Notifier, log *zap.SugaredLogger) *Engine {
	return &Engine{
		favs:     favs,
		index:    geoindex.New(),
		spotSt:   spots,
		reviewSt: reviews,
		notifier: notifier,
		log:      log,
	}
}

// Load bulk-reads both tables. On failure the tables stay empty and the
// error sticks as the engine status until a later Load succeeds; there is
// no automatic retry.
func (e *Engine) Load(ctx context.Context) error {
	raws, err := e.spotSt.List(ctx)
	if err == nil {
		var revs []review.Review
		revs, err = e.reviewSt.ListAll(ctx)
		if err == nil {
			spots := make([]spot.Spot, len(raws))
			for i, raw := range raws {
				spots[i] = spot.Normalize(raw)
			}

			e.mu.Lock()
			e.spots = spots
			e.reviews = revs
			e.loadErr = nil
			e.mu.Unlock()
			e.index.Rebuild(spots)
			return nil
		}
	}

	e.mu.Lock()
	e.spots = nil
	e.reviews = nil
	e.loadErr = err
	e.mu.Unlock()
	e.index.Rebuild(nil)
	if e.log != nil {
		e.log.Errorw("catalog load failed", "err", err)
	}
	return err
}

// Status reports the sticky load error, nil when the tables are healthy.
func (e *Engine) Status() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.loadErr
}

// Snapshot recomputes the ranked list from current state. Same inputs,
// same output: nothing is cached between calls.
func (e *Engine) Snapshot() []Ranked {
	e.mu.RLock()
	spots := e.spots
	revs := e.reviews
	f := e.filters
	viewer := e.viewer
	e.mu.RUnlock()

	return Rank(spots, review.Aggregate(revs), f, e.favs, viewer)
}

// Spot returns the normalized spot with the given id.
func (e *Engine) Spot(id string) (spot.Spot, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, sp := range e.spots {
		if sp.ID == id {
			return sp, true
		}
	}
	return spot.Spot{}, false
}

// Reviews returns the reviews for one spot, newest first.
func (e *Engine) Reviews(spotID string) []review.Review {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return review.BySpot(e.reviews)[spotID]
}

// SetFilters replaces the active filter set.
func (e *Engine) SetFilters(f Filters) {
	e.mu.Lock()
	e.filters = f
	e.mu.Unlock()
}

func (e *Engine) Filters() Filters {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.filters
}

// SetViewerLocation updates the viewer coordinate; nil means unknown.
func (e *Engine) SetViewerLocation(ll *geo.LatLng) {
	e.mu.Lock()
	if ll == nil {
		e.viewer = nil
	} else {
		v := *ll
		e.viewer = &v
	}
	e.mu.Unlock()
}

// ToggleFavorite flips favorite membership for a spot and reports the new
// state. Favorites are viewer-local: no change event is broadcast.
func (e *Engine) ToggleFavorite(ctx context.Context, id string) bool {
	return e.favs.Toggle(ctx, id)
}

// IsFavorite reports favorite membership.
func (e *Engine) IsFavorite(id string) bool {
	return e.favs.IsFavorite(id)
}

// SubmitReview validates and persists one review, then prepends the
// store-returned record to the review table so it renders immediately,
// newest first. Validation failures never reach the store; store failures
// leave the table untouched.
func (e *Engine) SubmitReview(ctx context.Context, sub review.Submission) (review.Review, error) {
	if err := sub.Validate(); err != nil {
		return review.Review{}, err
	}

	r, err := e.reviewSt.Insert(ctx, sub.Clean())
	if err != nil {
		return review.Review{}, err
	}

	e.mu.Lock()
	e.reviews = append([]review.Review{r}, e.reviews...)
	e.mu.Unlock()

	e.notify("reviews", r.SpotID)
	return r, nil
}

// ApplySpot folds a store write-back into the spot table: an existing id
// is replaced, a new one is prepended like a fresh store read. The table is
// swapped wholesale, never mutated, so snapshots handed out earlier stay
// readable without the lock. Returns the normalized spot.
func (e *Engine) ApplySpot(raw spot.RawSpot) spot.Spot {
	sp := spot.Normalize(raw)

	e.mu.Lock()
	replaced := false
	spots := make([]spot.Spot, 0, len(e.spots)+1)
	for _, cur := range e.spots {
		if cur.ID == sp.ID {
			spots = append(spots, sp)
			replaced = true
		} else {
			spots = append(spots, cur)
		}
	}
	if !replaced {
		spots = append([]spot.Spot{sp}, spots...)
	}
	e.spots = spots
	e.mu.Unlock()

	e.index.Rebuild(spots)
	e.notify("spots", sp.ID)
	return sp
}

// Viewport returns the ids of spots inside a map bounding box.
func (e *Engine) Viewport(minLat, minLng, maxLat, maxLng float64) ([]string, error) {
	return e.index.SearchBox(minLat, minLng, maxLat, maxLng)
}

type changeEvent struct {
	Kind string    `json:"kind"`
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
}

func (e *Engine) notify(topic, id string) {
	if e.notifier == nil {
		return
	}
	payload, _ := json.Marshal(changeEvent{Kind: topic, ID: id, At: time.Now().UTC()})
	e.notifier.Broadcast(topic, payload)
}
