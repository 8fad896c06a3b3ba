package analytics

import (
	"slices"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/samber/lo"
)

// BasicStatistics summarizes rides and drivers and computes the payment type distribution.
func BasicStatistics(rides []models.Ride, drivers []models.Driver) (models.BasicStats, error) {
	var (
		stats = models.BasicStats{
			TotalRides:   len(rides),
			TotalDrivers: len(drivers),
		}
		err error
	)

	if stats.AvgFare, err = mean(rides, "rides.fare_amount", func(r models.Ride) float64 {
		return r.FareAmount
	}); err != nil {
		return models.BasicStats{}, err
	}
	if stats.AvgTripDuration, err = mean(rides, "rides.trip_duration_minutes", func(r models.Ride) float64 {
		return r.TripDurationMinutes
	}); err != nil {
		return models.BasicStats{}, err
	}
	if stats.AvgPassengers, err = mean(rides, "rides.passenger_count", func(r models.Ride) float64 {
		return r.PassengerCount
	}); err != nil {
		return models.BasicStats{}, err
	}

	if stats.AvgDriverRating, err = mean(drivers, "drivers.rating", func(d models.Driver) float64 {
		return d.Rating
	}); err != nil {
		return models.BasicStats{}, err
	}
	if stats.AvgYearsExperience, err = mean(drivers, "drivers.years_experience", func(d models.Driver) float64 {
		return d.YearsExperience
	}); err != nil {
		return models.BasicStats{}, err
	}

	if stats.Payments, err = paymentDistribution(rides); err != nil {
		return models.BasicStats{}, err
	}

	return stats, nil
}

// paymentDistribution counts rides per payment type. Rides without a payment type are not a
// category of their own but still count in the total the shares are taken of.
func paymentDistribution(rides []models.Ride) ([]models.PaymentShare, error) {
	known := lo.Filter(rides, func(r models.Ride, _ int) bool { return r.PaymentType != "" })
	paymentType := func(r models.Ride) string { return r.PaymentType }

	counts := lo.CountValuesBy(known, paymentType)
	order := lo.Uniq(lo.Map(known, func(r models.Ride, _ int) string { return r.PaymentType }))

	shares := make([]models.PaymentShare, 0, len(order))
	for _, pt := range order {
		pct, err := percentage(counts[pt], len(rides), "rides.payment_type")
		if err != nil {
			return nil, err
		}
		shares = append(shares, models.PaymentShare{
			PaymentType: pt,
			Count:       counts[pt],
			Percentage:  pct,
		})
	}

	slices.SortStableFunc(shares, func(a, b models.PaymentShare) int {
		return b.Count - a.Count
	})

	return shares, nil
}
