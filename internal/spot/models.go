package spot

import "time"

// Category tags understood by the catalog. The set is a configuration
// constant; unrecognized tags coming from newer schema versions are kept
// as-is and only mapped to a safe label at display time.
const (
	CategoryForestRoad = "forest-road"
	CategoryCampground = "campground"
	CategoryStore      = "store"
	CategoryRestArea   = "rest-area"
	CategoryTrailhead  = "trailhead"
	CategoryOther      = "other"
)

// Noise level tags. Older records used a handful of synonyms which
// Normalize folds into these.
const (
	NoiseQuiet    = "quiet"
	NoiseModerate = "moderate"
	NoiseNoisy    = "noisy"
	NoiseUnknown  = "unknown"
)

// Valid integer ranges for the clamped fields. Safety rating historically
// appeared with both a 0 and a 1 lower bound; 1-5 is canonical here.
const (
	CellSignalMin = 0
	CellSignalMax = 5
	SafetyMin     = 1
	SafetyMax     = 5
)

// Defaults substituted when a raw record is missing a value.
const (
	defaultCellSignal   = 0
	defaultSafetyRating = 3
)

// Spot is the canonical in-memory shape of one overnight parking location.
// Every Spot in the catalog has been through Normalize.
type Spot struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Lat              float64   `json:"lat"`
	Lng              float64   `json:"lng"`
	Category         string    `json:"category"`
	OvernightAllowed bool      `json:"overnight_allowed"`
	HasBathroom      bool      `json:"has_bathroom"`
	CellSignal       int       `json:"cell_signal"`
	SafetyRating     int       `json:"safety_rating"`
	NoiseLevel       string    `json:"noise_level"`
	Photos           []string  `json:"photos"`
	CreatedAt        time.Time `json:"created_at"`
}

// RawSpot is a spot row as the store returns it. Legacy rows persist the
// photo list as free text (comma-joined or a JSON array literal) and may be
// missing numeric fields entirely; Normalize is the only place that
// variance is absorbed.
type RawSpot struct {
	ID               string
	Name             string
	Description      string
	Lat              float64
	Lng              float64
	Category         string
	OvernightAllowed bool
	HasBathroom      bool
	CellSignal       *int
	SafetyRating     *int
	NoiseLevel       string
	Photos           any
	CreatedAt        time.Time
}

// Record is the writable portion of a spot row, the payload for Insert and
// Update. Photos are always a canonical sequence by the time a Record is
// built.
type Record struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Lat              float64  `json:"lat"`
	Lng              float64  `json:"lng"`
	Category         string   `json:"category"`
	OvernightAllowed bool     `json:"overnight_allowed"`
	HasBathroom      bool     `json:"has_bathroom"`
	CellSignal       int      `json:"cell_signal"`
	SafetyRating     int      `json:"safety_rating"`
	NoiseLevel       string   `json:"noise_level"`
	Photos           []string `json:"photos"`
}
