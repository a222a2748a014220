package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zinoo-dez/gym-api/internal/analytics"
)

func TestRounding(t *testing.T) {
	assert.Equal(t, 10.56, analytics.Round2(10.555))
	assert.Equal(t, 10.55, analytics.Round2(10.554))
	assert.Equal(t, 0.0, analytics.Round2(0))
	assert.Equal(t, 33.3, analytics.Round1(33.33))
	assert.Equal(t, 66.7, analytics.Round1(66.666))
}

func TestPercentageSafeOnZeroDenominator(t *testing.T) {
	assert.Equal(t, 0.0, analytics.Percentage(5, 0))
	assert.Equal(t, 0.0, analytics.Percentage(0, 0))
	assert.Equal(t, 50.0, analytics.Percentage(1, 2))
	assert.Equal(t, 33.3, analytics.Percentage(1, 3))
	assert.Equal(t, 100.0, analytics.Percentage(3, 3))
}

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 0.0, analytics.SafeDiv(100, 0))
	assert.Equal(t, 2.5, analytics.SafeDiv(5, 2))
}

func TestSumByFiltersAndBuckets(t *testing.T) {
	type sale struct {
		day    string
		amount float64
		paid   bool
	}
	sales := []sale{
		{"2026-08-01", 100, true},
		{"2026-08-01", 50, true},
		{"2026-08-01", 999, false},
		{"2026-08-02", 25, true},
	}

	sums := analytics.SumBy(sales,
		func(s sale) (string, bool) { return s.day, s.paid },
		func(s sale) float64 { return s.amount },
	)

	assert.Equal(t, map[string]float64{"2026-08-01": 150, "2026-08-02": 25}, sums)
	assert.Equal(t, 175.0, analytics.SumMap(sums))
}

func TestCountBySkipsRejectedItems(t *testing.T) {
	counts := analytics.CountBy([]string{"a", "b", "a", "skip", "b", "a"},
		func(s string) (string, bool) { return s, s != "skip" })

	assert.Equal(t, map[string]int{"a": 3, "b": 2}, counts)
}
