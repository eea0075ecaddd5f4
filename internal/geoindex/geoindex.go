// Package geoindex maintains an R-Tree over spot coordinates for map
// viewport queries. It is a read accelerator only: ranking never depends
// on it.
package geoindex

import (
	"sync"

	"github.com/dhconnelly/rtreego"

	"github.com/Statusnone420/nomad-safe-web/internal/spot"
)

const (
	tolerance   = 0.0001
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
)

type spatialItem struct {
	id   string
	lat  float64
	lng  float64
	rect *rtreego.Rect
}

func (si *spatialItem) Bounds() *rtreego.Rect {
	return si.rect
}

// Index is a thread-safe spatial index of spot identifiers.
type Index struct {
	mu   sync.RWMutex
	tree *rtreego.Rtree
}

func New() *Index {
	return &Index{tree: rtreego.NewTree(dimensions, minChildren, maxChildren)}
}

// Rebuild replaces the index contents with the given spots. Called
// whenever the spot table changes; the table is small enough that a full
// rebuild beats incremental bookkeeping.
func (ix *Index) Rebuild(spots []spot.Spot) {
	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)
	for _, sp := range spots {
		p := rtreego.Point{sp.Lat, sp.Lng}
		tree.Insert(&spatialItem{id: sp.ID, lat: sp.Lat, lng: sp.Lng, rect: p.ToRect(tolerance)})
	}

	ix.mu.Lock()
	ix.tree = tree
	ix.mu.Unlock()
}

// SearchBox returns the ids of spots inside the bounding box defined by
// its bottom-left and top-right corners.
func (ix *Index) SearchBox(minLat, minLng, maxLat, maxLng float64) ([]string, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	bounds, err := rtreego.NewRect(rtreego.Point{minLat, minLng}, []float64{maxLat - minLat, maxLng - minLng})
	if err != nil {
		return nil, err
	}

	results := ix.tree.SearchIntersect(bounds)
	ids := make([]string, 0, len(results))
	for _, result := range results {
		item, ok := result.(*spatialItem)
		if !ok {
			continue
		}
		// SearchIntersect matches the padded rects; re-check the point.
		if item.lat >= minLat && item.lat <= maxLat && item.lng >= minLng && item.lng <= maxLng {
			ids = append(ids, item.id)
		}
	}
	return ids, nil
}
