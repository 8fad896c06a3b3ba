package analytics

import (
	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/samber/lo"
)

// surgeThreshold is the multiplier above which surge pricing was active.
const surgeThreshold = 1.0

// FareBreakdown averages every fare component and summarizes surge-priced rides.
func FareBreakdown(fares []models.FareDetail) (models.FareBreakdown, error) {
	var (
		fb  models.FareBreakdown
		err error
	)

	components := []struct {
		column string
		dst    *float64
		get    func(models.FareDetail) float64
	}{
		{"base_fare", &fb.AvgBaseFare, func(f models.FareDetail) float64 { return f.BaseFare }},
		{"distance_fare", &fb.AvgDistanceFare, func(f models.FareDetail) float64 { return f.DistanceFare }},
		{"time_fare", &fb.AvgTimeFare, func(f models.FareDetail) float64 { return f.TimeFare }},
		{"tip_amount", &fb.AvgTipAmount, func(f models.FareDetail) float64 { return f.TipAmount }},
		{"taxes_fees", &fb.AvgTaxesFees, func(f models.FareDetail) float64 { return f.TaxesFees }},
		{"total_fare", &fb.AvgTotalFare, func(f models.FareDetail) float64 { return f.TotalFare }},
	}
	for _, c := range components {
		if *c.dst, err = mean(fares, "fare_details."+c.column, c.get); err != nil {
			return models.FareBreakdown{}, err
		}
	}

	if fb.Surge, err = surgeStats(fares); err != nil {
		return models.FareBreakdown{}, err
	}

	return fb, nil
}

func surgeStats(fares []models.FareDetail) (models.SurgeStats, error) {
	surged := lo.Filter(fares, func(f models.FareDetail, _ int) bool {
		return f.SurgeMultiplier > surgeThreshold
	})

	var (
		s   = models.SurgeStats{Count: len(surged)}
		err error
	)
	if s.Percentage, err = percentage(len(surged), len(fares), "fare_details.surge_multiplier"); err != nil {
		return models.SurgeStats{}, err
	}
	if s.AvgMultiplier, err = mean(surged, "fare_details.surge_multiplier (surge)", func(f models.FareDetail) float64 {
		return f.SurgeMultiplier
	}); err != nil {
		return models.SurgeStats{}, err
	}
	if s.AvgTotalFare, err = mean(surged, "fare_details.total_fare (surge)", func(f models.FareDetail) float64 {
		return f.TotalFare
	}); err != nil {
		return models.SurgeStats{}, err
	}

	return s, nil
}
