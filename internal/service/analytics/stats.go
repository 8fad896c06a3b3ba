package analytics

import (
	"fmt"
	"math"

	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/samber/lo"
)

// mean returns the arithmetic mean of f over rows, skipping NaN (missing) values.
// No value left to average is an ErrEmptySubset naming what was averaged.
func mean[T any](rows []T, what string, f func(T) float64) (float64, error) {
	vals := lo.Reject(lo.Map(rows, func(r T, _ int) float64 { return f(r) }), func(v float64, _ int) bool {
		return math.IsNaN(v)
	})
	if len(vals) == 0 {
		return 0, fmt.Errorf("%w: mean of %s", types.ErrEmptySubset, what)
	}
	return lo.Sum(vals) / float64(len(vals)), nil
}

// percentage returns part/total*100.
func percentage(part, total int, what string) (float64, error) {
	if total == 0 {
		return 0, fmt.Errorf("%w: share of %s", types.ErrEmptySubset, what)
	}
	return float64(part) / float64(total) * 100, nil
}
