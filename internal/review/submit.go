package review

import (
	"strings"

	"github.com/Statusnone420/nomad-safe-web/internal/shared/validate"
)

// Submission is an incoming review before validation.
type Submission struct {
	SpotID   string `json:"spot_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Nickname string `json:"nickname"`
}

// Validate checks a submission locally, before any store call.
func (s Submission) Validate() error {
	if s.SpotID == "" {
		return validate.Errorf("spot_id", "no spot targeted")
	}
	if s.Rating < RatingMin || s.Rating > RatingMax {
		return validate.Errorf("rating", "rating must be between 1 and 5")
	}
	if strings.TrimSpace(s.Comment) == "" {
		return validate.Errorf("comment", "comment must not be empty")
	}
	return nil
}

// Clean returns the review ready to persist: rating clamped into range,
// comment and nickname trimmed, and an empty nickname stored as absent
// rather than as an empty string.
func (s Submission) Clean() Review {
	r := Review{
		SpotID:  s.SpotID,
		Rating:  clampRating(s.Rating),
		Comment: strings.TrimSpace(s.Comment),
	}
	if nick := strings.TrimSpace(s.Nickname); nick != "" {
		r.Nickname = &nick
	}
	return r
}

func clampRating(v int) int {
	if v < RatingMin {
		return RatingMin
	}
	if v > RatingMax {
		return RatingMax
	}
	return v
}
