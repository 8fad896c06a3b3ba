package console

import (
	"io"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

const DefaultTitle = "UBER DATASET ANALYSIS"

// loadLabels names every dataset in the load confirmation lines, in load order.
var loadLabels = []struct {
	name  types.DatasetName
	label string
}{
	{types.DatasetRides, "rides"},
	{types.DatasetDrivers, "drivers"},
	{types.DatasetLocations, "locations"},
	{types.DatasetHourlyStats, "hourly statistics"},
	{types.DatasetFareDetails, "fare details"},
}

// TextRenderer prints reports as plain indented text.
type TextRenderer struct {
	p     *printer
	title string
}

func NewTextRenderer(w io.Writer, title string, colored bool) *TextRenderer {
	if title == "" {
		title = DefaultTitle
	}
	return &TextRenderer{
		p:     newPrinter(w, colored),
		title: title,
	}
}

func (r *TextRenderer) Header() error {
	r.p.section(r.title)
	r.p.println("Loading datasets...")
	return r.p.flush()
}

func (r *TextRenderer) Loaded(sum models.LoadSummary) error {
	for _, l := range loadLabels {
		r.p.printf("✓ Loaded %d %s\n", sum.Rows[l.name], l.label)
	}
	return r.p.flush()
}

func (r *TextRenderer) Basic(s models.BasicStats) error {
	r.basicOverview(s)

	r.p.println("\nPayment Distribution:")
	for _, ps := range s.Payments {
		r.p.printf("  %s: %d (%.1f%%)\n", ps.PaymentType, ps.Count, ps.Percentage)
	}
	return r.p.flush()
}

func (r *TextRenderer) basicOverview(s models.BasicStats) {
	r.p.section("BASIC STATISTICS")

	r.p.println("\nRides Overview:")
	r.p.printf("  Total rides: %d\n", s.TotalRides)
	r.p.printf("  Average fare: $%.2f\n", s.AvgFare)
	r.p.printf("  Average trip duration: %.2f minutes\n", s.AvgTripDuration)
	r.p.printf("  Average passengers per ride: %.2f\n", s.AvgPassengers)

	r.p.println("\nDriver Overview:")
	r.p.printf("  Total drivers: %d\n", s.TotalDrivers)
	r.p.printf("  Average driver rating: %.2f\n", s.AvgDriverRating)
	r.p.printf("  Average driver experience: %.2f years\n", s.AvgYearsExperience)
}

func (r *TextRenderer) PeakHours(ph models.PeakHours) error {
	r.peakOverview(ph)

	r.p.println("\nPeak hours by day:")
	for _, s := range ph.Slots {
		r.p.printf("  %s at %02d:00 - %d rides\n", s.DayOfWeek, s.Hour, s.TotalRides)
	}
	return r.p.flush()
}

func (r *TextRenderer) peakOverview(ph models.PeakHours) {
	r.p.section("PEAK HOURS ANALYSIS")

	r.p.printf("\nTotal peak hours recorded: %d\n", ph.Count)
	r.p.printf("Average rides during peak hours: %.0f\n", ph.AvgTotalRides)
	r.p.printf("Average fare during peak hours: $%.2f\n", ph.AvgFare)
}

func (r *TextRenderer) TopDrivers(td models.TopDrivers) error {
	r.p.section("TOP DRIVERS ANALYSIS")

	r.p.printf("\nTop %d Drivers by Rating:\n", td.Limit)
	for _, d := range td.Drivers {
		r.p.printf("  %s: %.1f stars, %d total rides, %d rides in dataset\n",
			d.Name, d.Rating, d.TotalRides, d.RidesInDataset)
	}
	return r.p.flush()
}

func (r *TextRenderer) FareBreakdown(fb models.FareBreakdown) error {
	r.p.section("FARE BREAKDOWN ANALYSIS")

	r.p.println("\nAverage Fare Components:")
	r.p.printf("  Base fare: $%.2f\n", fb.AvgBaseFare)
	r.p.printf("  Distance fare: $%.2f\n", fb.AvgDistanceFare)
	r.p.printf("  Time fare: $%.2f\n", fb.AvgTimeFare)
	r.p.printf("  Tips: $%.2f\n", fb.AvgTipAmount)
	r.p.printf("  Taxes & fees: $%.2f\n", fb.AvgTaxesFees)
	r.p.printf("  Total average: $%.2f\n", fb.AvgTotalFare)

	r.p.println("\nSurge Pricing:")
	r.p.printf("  Rides with surge: %d (%.1f%%)\n", fb.Surge.Count, fb.Surge.Percentage)
	r.p.printf("  Average surge multiplier: %.2fx\n", fb.Surge.AvgMultiplier)
	r.p.printf("  Average fare with surge: $%.2f\n", fb.Surge.AvgTotalFare)
	return r.p.flush()
}

func (r *TextRenderer) Footer() error {
	r.p.section("ANALYSIS COMPLETE")
	r.p.println("")
	return r.p.flush()
}
