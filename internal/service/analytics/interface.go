package analytics

import (
	"time"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
)

// Renderer prints each report as soon as it is computed.
type Renderer interface {
	Basic(stats models.BasicStats) error
	PeakHours(peak models.PeakHours) error
	TopDrivers(top models.TopDrivers) error
	FareBreakdown(fb models.FareBreakdown) error
}

// Recorder observes report timings.
type Recorder interface {
	ObserveReport(report string, took time.Duration, err error)
}
