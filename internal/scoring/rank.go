package scoring

import "sort"

// TopTwoBigFive returns the two highest canonical dimensions. Ties keep the
// declared BigFive order.
func TopTwoBigFive(result ScoreResult) []string {
	return topN(result.Traits, BigFive, 2)
}

// TopThreeMajor returns the three highest of the eight major traits. Ties
// keep the declared MajorTraits order.
func TopThreeMajor(result ScoreResult) []string {
	return topN(result.Traits, MajorTraits, 3)
}

func topN(scores map[string]float64, declared []string, n int) []string {
	ranked := append([]string(nil), declared...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
