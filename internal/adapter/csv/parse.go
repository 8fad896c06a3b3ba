package csv

import (
	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
)

func parseRides(f frame) ([]models.Ride, error) {
	driverIDs, err := f.strings("driver_id")
	if err != nil {
		return nil, err
	}
	fares, err := f.floats("fare_amount")
	if err != nil {
		return nil, err
	}
	durations, err := f.floats("trip_duration_minutes")
	if err != nil {
		return nil, err
	}
	passengers, err := f.floats("passenger_count")
	if err != nil {
		return nil, err
	}
	payments, err := f.labels("payment_type")
	if err != nil {
		return nil, err
	}

	rides := make([]models.Ride, len(driverIDs))
	for i := range rides {
		rides[i] = models.Ride{
			DriverID:            driverIDs[i],
			FareAmount:          fares[i],
			TripDurationMinutes: durations[i],
			PassengerCount:      passengers[i],
			PaymentType:         payments[i],
		}
	}
	return rides, nil
}

func parseDrivers(f frame) ([]models.Driver, error) {
	ids, err := f.strings("driver_id")
	if err != nil {
		return nil, err
	}
	names, err := f.strings("name")
	if err != nil {
		return nil, err
	}
	ratings, err := f.floats("rating")
	if err != nil {
		return nil, err
	}
	experience, err := f.floats("years_experience")
	if err != nil {
		return nil, err
	}
	totals, err := f.ints("total_rides")
	if err != nil {
		return nil, err
	}

	drivers := make([]models.Driver, len(ids))
	for i := range drivers {
		drivers[i] = models.Driver{
			DriverID:        ids[i],
			Name:            names[i],
			Rating:          ratings[i],
			YearsExperience: experience[i],
			TotalRides:      totals[i],
		}
	}
	return drivers, nil
}

func parseHourlyStats(f frame) ([]models.HourlyStat, error) {
	days, err := f.strings("day_of_week")
	if err != nil {
		return nil, err
	}
	hours, err := f.ints("hour")
	if err != nil {
		return nil, err
	}
	peak, err := f.bools("peak_hour")
	if err != nil {
		return nil, err
	}
	totals, err := f.ints("total_rides")
	if err != nil {
		return nil, err
	}
	fares, err := f.floats("avg_fare")
	if err != nil {
		return nil, err
	}

	stats := make([]models.HourlyStat, len(days))
	for i := range stats {
		stats[i] = models.HourlyStat{
			DayOfWeek:  days[i],
			Hour:       hours[i],
			PeakHour:   peak[i],
			TotalRides: totals[i],
			AvgFare:    fares[i],
		}
	}
	return stats, nil
}

func parseFareDetails(f frame) ([]models.FareDetail, error) {
	cols := []string{"base_fare", "distance_fare", "time_fare", "tip_amount", "taxes_fees", "total_fare", "surge_multiplier"}

	vals := make(map[string][]float64, len(cols))
	for _, c := range cols {
		v, err := f.floats(c)
		if err != nil {
			return nil, err
		}
		vals[c] = v
	}

	fares := make([]models.FareDetail, f.df.Nrow())
	for i := range fares {
		fares[i] = models.FareDetail{
			BaseFare:        vals["base_fare"][i],
			DistanceFare:    vals["distance_fare"][i],
			TimeFare:        vals["time_fare"][i],
			TipAmount:       vals["tip_amount"][i],
			TaxesFees:       vals["taxes_fees"][i],
			TotalFare:       vals["total_fare"][i],
			SurgeMultiplier: vals["surge_multiplier"][i],
		}
	}
	return fares, nil
}
