package models

import "github.com/Temutjin2k/ride-analytics/internal/domain/types"

// Ride is one row of the rides table.
// Numeric fields are NaN and PaymentType is "" where the source cell was empty.
type Ride struct {
	DriverID            string  // foreign key into drivers, not enforced
	FareAmount          float64 // charged fare
	TripDurationMinutes float64
	PassengerCount      float64
	PaymentType         string // e.g. "card", "cash", "wallet"
}

// Driver is one row of the drivers table. Rating and YearsExperience are NaN when missing.
type Driver struct {
	DriverID        string
	Name            string
	Rating          float64 // average rating from passengers
	YearsExperience float64
	TotalRides      int // lifetime rides as recorded by the platform
}

// HourlyStat is one hour-slot of the hourly statistics table. AvgFare is NaN when missing.
type HourlyStat struct {
	DayOfWeek  string
	Hour       int
	PeakHour   bool
	TotalRides int
	AvgFare    float64
}

// FareDetail is the fare breakdown of a single ride. Missing amounts are NaN.
type FareDetail struct {
	BaseFare        float64
	DistanceFare    float64
	TimeFare        float64
	TipAmount       float64
	TaxesFees       float64
	TotalFare       float64
	SurgeMultiplier float64 // > 1.0 when surge pricing was active
}

// RawTable keeps a table that no report reads from, as loaded.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

func (t RawTable) Len() int {
	return len(t.Rows)
}

// Dataset holds every table loaded for one analysis run.
type Dataset struct {
	Rides       []Ride
	Drivers     []Driver
	Locations   RawTable
	HourlyStats []HourlyStat
	FareDetails []FareDetail

	Summary LoadSummary
}

// LoadSummary describes what was loaded.
type LoadSummary struct {
	Source    types.SourceKind
	Rows      map[types.DatasetName]int
	Checksums map[types.DatasetName]string // sha256 of the source file, csv source only
}

// Summarize fills s.Rows from the dataset tables.
func (d *Dataset) Summarize(source types.SourceKind) {
	d.Summary.Source = source
	d.Summary.Rows = map[types.DatasetName]int{
		types.DatasetRides:       len(d.Rides),
		types.DatasetDrivers:     len(d.Drivers),
		types.DatasetLocations:   d.Locations.Len(),
		types.DatasetHourlyStats: len(d.HourlyStats),
		types.DatasetFareDetails: len(d.FareDetails),
	}
}
