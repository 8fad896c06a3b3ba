package models

import (
	"time"

	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

/* ======================= rabbitmq ======================= */

// ReportSummaryMessage is published once a run has rendered every report.
type ReportSummaryMessage struct {
	RunID          string                       `json:"run_id"`
	Source         types.SourceKind             `json:"source"`
	GeneratedAt    time.Time                    `json:"generated_at"`
	Rows           map[types.DatasetName]int    `json:"rows"`
	Checksums      map[types.DatasetName]string `json:"checksums,omitempty"`
	PeakHourCount  int                          `json:"peak_hour_count"`
	SurgeRideCount int                          `json:"surge_ride_count"`
	SurgeSharePct  float64                      `json:"surge_share_pct"`
	AvgTotalFare   float64                      `json:"avg_total_fare"`
	TopDriverIDs   []string                     `json:"top_driver_ids"`
}

// NewReportSummaryMessage builds the event for a finished run.
func NewReportSummaryMessage(runID string, summary LoadSummary, r *Report, at time.Time) ReportSummaryMessage {
	ids := make([]string, 0, len(r.TopDrivers.Drivers))
	for _, d := range r.TopDrivers.Drivers {
		ids = append(ids, d.DriverID)
	}

	return ReportSummaryMessage{
		RunID:          runID,
		Source:         summary.Source,
		GeneratedAt:    at.UTC(),
		Rows:           summary.Rows,
		Checksums:      summary.Checksums,
		PeakHourCount:  r.PeakHours.Count,
		SurgeRideCount: r.FareBreakdown.Surge.Count,
		SurgeSharePct:  r.FareBreakdown.Surge.Percentage,
		AvgTotalFare:   r.FareBreakdown.AvgTotalFare,
		TopDriverIDs:   ids,
	}
}
