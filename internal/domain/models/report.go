package models

// PaymentShare is one entry of the payment type distribution.
type PaymentShare struct {
	PaymentType string
	Count       int
	Percentage  float64
}

type BasicStats struct {
	TotalRides         int
	AvgFare            float64
	AvgTripDuration    float64
	AvgPassengers      float64
	TotalDrivers       int
	AvgDriverRating    float64
	AvgYearsExperience float64
	Payments           []PaymentShare // count descending, ties in order of first appearance
}

type PeakSlot struct {
	DayOfWeek  string
	Hour       int
	TotalRides int
}

type PeakHours struct {
	Count         int
	AvgTotalRides float64
	AvgFare       float64
	Slots         []PeakSlot // original row order
}

// DriverRanking is one row of the top drivers list.
type DriverRanking struct {
	DriverID       string
	Name           string
	Rating         float64
	TotalRides     int // recorded on the driver
	RidesInDataset int // counted in the rides table
}

type TopDrivers struct {
	Limit          int
	Drivers        []DriverRanking
	UnmatchedRides int // rides whose driver_id has no driver row
}

type SurgeStats struct {
	Count         int
	Percentage    float64
	AvgMultiplier float64
	AvgTotalFare  float64
}

type FareBreakdown struct {
	AvgBaseFare     float64
	AvgDistanceFare float64
	AvgTimeFare     float64
	AvgTipAmount    float64
	AvgTaxesFees    float64
	AvgTotalFare    float64
	Surge           SurgeStats
}

// Report collects the result of every report pass of one run.
type Report struct {
	Basic         BasicStats
	PeakHours     PeakHours
	TopDrivers    TopDrivers
	FareBreakdown FareBreakdown
}
