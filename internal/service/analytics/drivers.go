package analytics

import (
	"cmp"
	"math"
	"slices"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/samber/lo"
)

// TopDrivers ranks drivers by rating and attaches the number of rides each one has in the ride table.
// Equal ratings keep their input order; drivers without a rating are not ranked. At most n drivers are returned.
func TopDrivers(rides []models.Ride, drivers []models.Driver, n int) (models.TopDrivers, error) {
	ridesPerDriver := lo.CountValuesBy(rides, func(r models.Ride) string {
		return r.DriverID
	})

	known := lo.KeyBy(drivers, func(d models.Driver) string {
		return d.DriverID
	})
	unmatched := lo.CountBy(rides, func(r models.Ride) bool {
		_, ok := known[r.DriverID]
		return !ok
	})

	ranked := lo.Reject(drivers, func(d models.Driver, _ int) bool { return math.IsNaN(d.Rating) })
	slices.SortStableFunc(ranked, func(a, b models.Driver) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	return models.TopDrivers{
		Limit: n,
		Drivers: lo.Map(ranked, func(d models.Driver, _ int) models.DriverRanking {
			return models.DriverRanking{
				DriverID:       d.DriverID,
				Name:           d.Name,
				Rating:         d.Rating,
				TotalRides:     d.TotalRides,
				RidesInDataset: ridesPerDriver[d.DriverID],
			}
		}),
		UnmatchedRides: unmatched,
	}, nil
}
