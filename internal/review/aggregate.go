package review

// BySpot groups reviews by spot identifier, preserving the order they were
// delivered in (the store returns them newest first). Pure: the input is
// never mutated.
func BySpot(reviews []Review) map[string][]Review {
	out := make(map[string][]Review)
	for _, r := range reviews {
		out[r.SpotID] = append(out[r.SpotID], r)
	}
	return out
}

// Aggregate derives per-spot review statistics: count and arithmetic mean
// rating. Spots absent from the result have no reviews.
func Aggregate(reviews []Review) map[string]Stats {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range reviews {
		sums[r.SpotID] += r.Rating
		counts[r.SpotID]++
	}

	out := make(map[string]Stats, len(counts))
	for id, count := range counts {
		out[id] = Stats{
			Count:      count,
			Average:    float64(sums[id]) / float64(count),
			HasAverage: true,
		}
	}
	return out
}
