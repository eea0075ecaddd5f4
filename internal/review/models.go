package review

import "time"

// Rating bounds. Ratings are validated and clamped into this range before
// persistence.
const (
	RatingMin = 1
	RatingMax = 5
)

// Review is one rating+comment tied to exactly one spot. Reviews are
// append-only: this engine never edits or deletes them.
type Review struct {
	ID        string    `json:"id"`
	SpotID    string    `json:"spot_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Nickname  *string   `json:"nickname"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats are the derived aggregates for one spot. Average is only meaningful
// when HasAverage is true; a spot with zero reviews never reports an
// average of 0.
type Stats struct {
	Count      int
	Average    float64
	HasAverage bool
}
