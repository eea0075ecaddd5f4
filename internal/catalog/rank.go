package catalog

import (
	"sort"

	"github.com/Statusnone420/nomad-safe-web/internal/review"
	"github.com/Statusnone420/nomad-safe-web/internal/shared/geo"
	"github.com/Statusnone420/nomad-safe-web/internal/spot"
)

// Filters are the active list predicates. A spot must pass every one.
type Filters struct {
	Categories    []string `json:"categories"` // empty = any
	OvernightOnly bool     `json:"overnight_only"`
	FavoritesOnly bool     `json:"favorites_only"`
}

// FavoriteChecker reports favorite membership during ranking.
type FavoriteChecker interface {
	IsFavorite(id string) bool
}

// Ranked is one render-ready list entry: a spot enriched with its review
// aggregates and distance from the viewer. DistanceKm and AvgRating are
// nil when unknown, never zero.
type Ranked struct {
	spot.Spot
	DistanceKm  *float64 `json:"distance_km,omitempty"`
	ReviewCount int      `json:"review_count"`
	AvgRating   *float64 `json:"avg_rating,omitempty"`
	Favorite    bool     `json:"favorite"`
}

// Rank produces the spot list in render order: filter, enrich, then a
// stable multi-key sort. It is a pure function of its inputs; the caller
// re-invokes it whenever spots, reviews, filters, favorites, or the viewer
// location change.
func Rank(spots []spot.Spot, stats map[string]review.Stats, f Filters, favs FavoriteChecker, viewer *geo.LatLng) []Ranked {
	categories := make(map[string]struct{}, len(f.Categories))
	for _, c := range f.Categories {
		categories[c] = struct{}{}
	}

	out := make([]Ranked, 0, len(spots))
	for _, sp := range spots {
		favorite := favs != nil && favs.IsFavorite(sp.ID)

		if len(categories) > 0 {
			if _, ok := categories[sp.Category]; !ok {
				continue
			}
		}
		if f.OvernightOnly && !sp.OvernightAllowed {
			continue
		}
		if f.FavoritesOnly && !favorite {
			continue
		}

		entry := Ranked{Spot: sp, Favorite: favorite}
		if st, ok := stats[sp.ID]; ok {
			entry.ReviewCount = st.Count
			if st.HasAverage {
				avg := st.Average
				entry.AvgRating = &avg
			}
		}
		if viewer != nil {
			here := geo.LatLng{Lat: sp.Lat, Lng: sp.Lng}
			if d, ok := geo.DistanceKm(viewer, &here); ok {
				entry.DistanceKm = &d
			}
		}
		out = append(out, entry)
	}

	// Keys in order: favorite first, nearer first, better-rated first,
	// then name. A key with an unknown side on either entry falls through
	// without penalizing anyone; SliceStable keeps prior relative order
	// when every key ties.
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Favorite != b.Favorite {
			return a.Favorite
		}
		if a.DistanceKm != nil && b.DistanceKm != nil && *a.DistanceKm != *b.DistanceKm {
			return *a.DistanceKm < *b.DistanceKm
		}
		if a.AvgRating != nil && b.AvgRating != nil && *a.AvgRating != *b.AvgRating {
			return *a.AvgRating > *b.AvgRating
		}
		return a.Name < b.Name
	})
	return out
}
