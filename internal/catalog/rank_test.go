package catalog

import (
	"context"
	"testing"

	"github.com/Statusnone420/nomad-safe-web/internal/favorites"
	"github.com/Statusnone420/nomad-safe-web/internal/review"
	"github.com/Statusnone420/nomad-safe-web/internal/shared/geo"
	"github.com/Statusnone420/nomad-safe-web/internal/spot"
)

func favSet(ids ...string) *favorites.Set {
	s := favorites.New(nil, nil)
	for _, id := range ids {
		s.Toggle(context.Background(), id)
	}
	return s
}

func ids(ranked []Ranked) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.ID
	}
	return out
}

func TestRankFavoriteDominatesDistanceAndRating(t *testing.T) {
	// A: favorite, ~5km away, avg 4.0. B: closer and better rated, but not
	// a favorite. Favorite key wins.
	spots := []spot.Spot{
		{ID: "A", Name: "A", Lat: 44.0450, Lng: -121.3},
		{ID: "B", Name: "B", Lat: 44.0090, Lng: -121.3},
	}
	stats := map[string]review.Stats{
		"A": {Count: 1, Average: 4.0, HasAverage: true},
		"B": {Count: 1, Average: 5.0, HasAverage: true},
	}
	viewer := &geo.LatLng{Lat: 44.0, Lng: -121.3}

	ranked := Rank(spots, stats, Filters{}, favSet("A"), viewer)
	if got := ids(ranked); got[0] != "A" || got[1] != "B" {
		t.Fatalf("expected favorite first, got %v", got)
	}
	if ranked[0].DistanceKm == nil || *ranked[0].DistanceKm < 4 || *ranked[0].DistanceKm > 6 {
		t.Fatalf("unexpected enriched distance: %v", ranked[0].DistanceKm)
	}
}

func TestRankUnknownDistanceFallsThroughToRating(t *testing.T) {
	// No viewer location: distance unknown for both, rating decides.
	spots := []spot.Spot{
		{ID: "D", Name: "D"},
		{ID: "C", Name: "C"},
	}
	stats := map[string]review.Stats{
		"C": {Count: 2, Average: 4.5, HasAverage: true},
		"D": {Count: 2, Average: 3.0, HasAverage: true},
	}

	ranked := Rank(spots, stats, Filters{}, nil, nil)
	if got := ids(ranked); got[0] != "C" || got[1] != "D" {
		t.Fatalf("expected rating order with unknown distances, got %v", got)
	}
	if ranked[0].DistanceKm != nil {
		t.Fatalf("expected unknown distance to stay nil")
	}
}

func TestRankKnownDistancesOrderAscending(t *testing.T) {
	spots := []spot.Spot{
		{ID: "far", Name: "far", Lat: 44.2, Lng: -121.3},
		{ID: "near", Name: "near", Lat: 44.01, Lng: -121.3},
	}

	ranked := Rank(spots, nil, Filters{}, nil, &geo.LatLng{Lat: 44.0, Lng: -121.3})
	if got := ids(ranked); got[0] != "near" {
		t.Fatalf("expected nearer spot first, got %v", got)
	}
}

func TestRankOneSidedUnknownRatingFallsToName(t *testing.T) {
	// G is rated, H is not. The rating key must not discriminate between
	// a known and an unknown average; the name tiebreak orders them.
	spots := []spot.Spot{
		{ID: "H", Name: "H"},
		{ID: "G", Name: "G"},
	}
	stats := map[string]review.Stats{
		"G": {Count: 1, Average: 1.0, HasAverage: true},
	}
	ranked := Rank(spots, stats, Filters{}, nil, nil)
	if got := ids(ranked); got[0] != "G" {
		t.Fatalf("expected name tiebreak, got %v", got)
	}
	if ranked[0].AvgRating == nil || ranked[1].AvgRating != nil {
		t.Fatalf("expected unknown average to stay nil")
	}
}

func TestRankAverageTieFallsToName(t *testing.T) {
	spots := []spot.Spot{
		{ID: "2", Name: "Zebra Flat"},
		{ID: "1", Name: "Alder Pullout"},
	}
	stats := map[string]review.Stats{
		"1": {Count: 1, Average: 4.0, HasAverage: true},
		"2": {Count: 1, Average: 4.0, HasAverage: true},
	}

	ranked := Rank(spots, stats, Filters{}, nil, nil)
	if got := ids(ranked); got[0] != "1" {
		t.Fatalf("expected lexicographic name order on tie, got %v", got)
	}
}

func TestRankFilterComposition(t *testing.T) {
	spots := []spot.Spot{
		{ID: "a", Name: "a", Category: spot.CategoryCampground, OvernightAllowed: true},
		{ID: "b", Name: "b", Category: spot.CategoryCampground, OvernightAllowed: false},
		{ID: "c", Name: "c", Category: spot.CategoryStore, OvernightAllowed: true},
	}

	f := Filters{Categories: []string{spot.CategoryCampground}, OvernightOnly: true}
	ranked := Rank(spots, nil, f, nil, nil)
	if len(ranked) != 1 || ranked[0].ID != "a" {
		t.Fatalf("expected intersection of predicates, got %v", ids(ranked))
	}
}

func TestRankFavoritesOnly(t *testing.T) {
	spots := []spot.Spot{
		{ID: "a", Name: "a"},
		{ID: "b", Name: "b"},
	}
	ranked := Rank(spots, nil, Filters{FavoritesOnly: true}, favSet("b"), nil)
	if len(ranked) != 1 || ranked[0].ID != "b" {
		t.Fatalf("expected favorites-only filter, got %v", ids(ranked))
	}
}

func TestRankMultiSelectCategories(t *testing.T) {
	spots := []spot.Spot{
		{ID: "a", Name: "a", Category: spot.CategoryCampground},
		{ID: "b", Name: "b", Category: spot.CategoryStore},
		{ID: "c", Name: "c", Category: spot.CategoryTrailhead},
	}
	f := Filters{Categories: []string{spot.CategoryCampground, spot.CategoryStore}}
	ranked := Rank(spots, nil, f, nil, nil)
	if len(ranked) != 2 {
		t.Fatalf("expected set membership match, got %v", ids(ranked))
	}
}

func TestRankIdempotent(t *testing.T) {
	spots := []spot.Spot{
		{ID: "a", Name: "a", Lat: 44.1, Lng: -121.3},
		{ID: "b", Name: "b", Lat: 44.2, Lng: -121.3},
	}
	stats := map[string]review.Stats{"a": {Count: 1, Average: 3, HasAverage: true}}
	viewer := &geo.LatLng{Lat: 44.0, Lng: -121.3}

	first := ids(Rank(spots, stats, Filters{}, nil, viewer))
	second := ids(Rank(spots, stats, Filters{}, nil, viewer))
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("expected identical output for identical inputs")
		}
	}
}
