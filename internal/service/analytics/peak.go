package analytics

import (
	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/samber/lo"
)

// PeakHours reports on the hour slots flagged as peak, keeping their original order.
func PeakHours(stats []models.HourlyStat) (models.PeakHours, error) {
	peak := lo.Filter(stats, func(s models.HourlyStat, _ int) bool {
		return s.PeakHour
	})

	avgRides, err := mean(peak, "hourly_stats.total_rides (peak)", func(s models.HourlyStat) float64 {
		return float64(s.TotalRides)
	})
	if err != nil {
		return models.PeakHours{}, err
	}

	avgFare, err := mean(peak, "hourly_stats.avg_fare (peak)", func(s models.HourlyStat) float64 {
		return s.AvgFare
	})
	if err != nil {
		return models.PeakHours{}, err
	}

	return models.PeakHours{
		Count:         len(peak),
		AvgTotalRides: avgRides,
		AvgFare:       avgFare,
		Slots: lo.Map(peak, func(s models.HourlyStat, _ int) models.PeakSlot {
			return models.PeakSlot{
				DayOfWeek:  s.DayOfWeek,
				Hour:       s.Hour,
				TotalRides: s.TotalRides,
			}
		}),
	}, nil
}
