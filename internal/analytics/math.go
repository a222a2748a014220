package analytics

import (
	"math"
	"sort"
)

// Round2 rounds a currency figure to 2 decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds a percentage to 1 decimal.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Percentage returns part/total as a percentage rounded to 1 decimal.
// A zero total yields 0, never NaN or Inf.
func Percentage(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return Round1(part / total * 100)
}

// SafeDiv divides and returns 0 on a zero denominator.
func SafeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// SumBy buckets items under the key extractor and sums the value extractor
// per bucket. Items whose key extractor returns false are skipped, which is
// how status filters and dangling foreign keys are handled in one place.
func SumBy[T any, K comparable](items []T, key func(T) (K, bool), value func(T) float64) map[K]float64 {
	out := map[K]float64{}
	for _, it := range items {
		k, ok := key(it)
		if !ok {
			continue
		}
		out[k] += value(it)
	}
	return out
}

// CountBy buckets items under the key extractor and counts per bucket.
func CountBy[T any, K comparable](items []T, key func(T) (K, bool)) map[K]int {
	out := map[K]int{}
	for _, it := range items {
		k, ok := key(it)
		if !ok {
			continue
		}
		out[k]++
	}
	return out
}

// SumMap totals all values of a bucket map.
func SumMap[K comparable](m map[K]float64) float64 {
	var total float64
	for _, v := range m {
		total += v
	}
	return total
}

type rankedCount struct {
	Key   string
	Count int
}

// topCounts returns the n largest buckets, count descending, key ascending
// on ties so output is deterministic.
func topCounts(counts map[string]int, n int) []rankedCount {
	ranked := make([]rankedCount, 0, len(counts))
	for k, c := range counts {
		ranked = append(ranked, rankedCount{Key: k, Count: c})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Key < ranked[j].Key
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
