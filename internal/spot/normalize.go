package spot

import (
	"encoding/json"
	"strings"
)

var noiseSynonyms = map[string]string{
	"silent": NoiseQuiet,
	"low":    NoiseQuiet,
	"medium": NoiseModerate,
	"mid":    NoiseModerate,
	"loud":   NoiseNoisy,
	"high":   NoiseNoisy,
}

// Normalize converts a raw store record into the canonical Spot shape. It
// never fails: missing or malformed fields are replaced with documented
// defaults instead of being reported as errors, and normalizing an already
// canonical record is a no-op.
func Normalize(raw RawSpot) Spot {
	return Spot{
		ID:               raw.ID,
		Name:             raw.Name,
		Description:      raw.Description,
		Lat:              raw.Lat,
		Lng:              raw.Lng,
		Category:         defaultTag(raw.Category, CategoryOther),
		OvernightAllowed: raw.OvernightAllowed,
		HasBathroom:      raw.HasBathroom,
		CellSignal:       clampOrDefault(raw.CellSignal, CellSignalMin, CellSignalMax, defaultCellSignal),
		SafetyRating:     clampOrDefault(raw.SafetyRating, SafetyMin, SafetyMax, defaultSafetyRating),
		NoiseLevel:       normalizeNoise(raw.NoiseLevel),
		Photos:           NormalizePhotos(raw.Photos),
		CreatedAt:        raw.CreatedAt,
	}
}

// NormalizePhotos yields a photo URL sequence from any of the shapes the
// store has persisted over time. First match wins: absent, an actual string
// sequence, a JSON array literal, then comma-joined free text.
func NormalizePhotos(v any) []string {
	switch photos := v.(type) {
	case nil:
		return []string{}
	case []string:
		if photos == nil {
			return []string{}
		}
		return photos
	case string:
		s := strings.TrimSpace(photos)
		if s == "" {
			return []string{}
		}
		if strings.HasPrefix(s, "[") {
			var parsed []string
			if err := json.Unmarshal([]byte(s), &parsed); err == nil {
				if parsed == nil {
					return []string{}
				}
				return parsed
			}
		}
		return SplitPhotoList(s)
	default:
		return []string{}
	}
}

// SplitPhotoList splits comma-separated photo URL text, trimming whitespace
// and dropping empty segments. The same rule applies to manually entered
// URL text in an edit session.
func SplitPhotoList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ClampCellSignal clamps a cell signal value into its valid range.
func ClampCellSignal(v int) int {
	return clamp(v, CellSignalMin, CellSignalMax)
}

// ClampSafetyRating clamps a safety rating into its valid range.
func ClampSafetyRating(v int) int {
	return clamp(v, SafetyMin, SafetyMax)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampOrDefault(v *int, lo, hi, fallback int) int {
	if v == nil {
		return fallback
	}
	return clamp(*v, lo, hi)
}

func defaultTag(tag, fallback string) string {
	if strings.TrimSpace(tag) == "" {
		return fallback
	}
	return tag
}

func normalizeNoise(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return NoiseUnknown
	}
	if canonical, ok := noiseSynonyms[tag]; ok {
		return canonical
	}
	return tag
}
