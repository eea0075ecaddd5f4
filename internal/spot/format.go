package spot

var categoryLabels = map[string]string{
	CategoryForestRoad: "Forest Road",
	CategoryCampground: "Campground",
	CategoryStore:      "Store",
	CategoryRestArea:   "Rest Area",
	CategoryTrailhead:  "Trailhead",
	CategoryOther:      "Other",
}

var noiseLabels = map[string]string{
	NoiseQuiet:    "Quiet",
	NoiseModerate: "Moderate",
	NoiseNoisy:    "Noisy",
	NoiseUnknown:  "Unknown",
}

// CategoryLabel returns a display label for a category tag. Tags from newer
// schema versions pass through Normalize untouched, so anything
// unrecognized renders as the Other label instead of raw data.
func CategoryLabel(tag string) string {
	if label, ok := categoryLabels[tag]; ok {
		return label
	}
	return categoryLabels[CategoryOther]
}

// NoiseLabel returns a display label for a noise level tag.
func NoiseLabel(tag string) string {
	if label, ok := noiseLabels[tag]; ok {
		return label
	}
	return noiseLabels[NoiseUnknown]
}
