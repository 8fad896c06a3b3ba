package analytics

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRenderer struct {
	calls   []string
	failOn  string
	failErr error
}

func (r *recordingRenderer) call(name string) error {
	r.calls = append(r.calls, name)
	if name == r.failOn {
		return r.failErr
	}
	return nil
}

func (r *recordingRenderer) Basic(models.BasicStats) error            { return r.call("basic") }
func (r *recordingRenderer) PeakHours(models.PeakHours) error         { return r.call("peak") }
func (r *recordingRenderer) TopDrivers(models.TopDrivers) error       { return r.call("drivers") }
func (r *recordingRenderer) FareBreakdown(models.FareBreakdown) error { return r.call("fares") }

type recorder struct {
	reports []string
	failed  []string
}

func (r *recorder) ObserveReport(report string, _ time.Duration, err error) {
	r.reports = append(r.reports, report)
	if err != nil {
		r.failed = append(r.failed, report)
	}
}

func sampleDataset() *models.Dataset {
	return &models.Dataset{
		Rides:   sampleRides(),
		Drivers: sampleDrivers(),
		HourlyStats: []models.HourlyStat{
			{DayOfWeek: "Monday", Hour: 8, PeakHour: true, TotalRides: 100, AvgFare: 15},
		},
		FareDetails: []models.FareDetail{
			{TotalFare: 10, SurgeMultiplier: 1.0},
			{TotalFare: 20, SurgeMultiplier: 1.5},
		},
	}
}

func newTestService(rec Recorder) *Service {
	return NewService(0, rec, logger.New(io.Discard, "test", logger.LevelError))
}

func TestService_Run(t *testing.T) {
	rec := &recorder{}
	out := &recordingRenderer{}

	report, err := newTestService(rec).Run(context.Background(), sampleDataset(), out)
	require.NoError(t, err)

	assert.Equal(t, []string{"basic", "peak", "drivers", "fares"}, out.calls)
	assert.Equal(t, []string{
		string(types.ReportBasic),
		string(types.ReportPeakHours),
		string(types.ReportTopDrivers),
		string(types.ReportFareBreakdown),
	}, rec.reports)
	assert.Empty(t, rec.failed)

	assert.Equal(t, 3, report.Basic.TotalRides)
	assert.Equal(t, DefaultTopDrivers, report.TopDrivers.Limit)
	assert.Equal(t, 1, report.FareBreakdown.Surge.Count)
}

func TestService_Run_StopsAtFailingReport(t *testing.T) {
	ds := sampleDataset()
	ds.HourlyStats[0].PeakHour = false

	rec := &recorder{}
	out := &recordingRenderer{}

	_, err := newTestService(rec).Run(context.Background(), ds, out)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrEmptySubset)
	assert.ErrorContains(t, err, string(types.ReportPeakHours))

	assert.Equal(t, []string{"basic"}, out.calls)
	assert.Equal(t, []string{string(types.ReportPeakHours)}, rec.failed)
}

func TestService_Run_RenderError(t *testing.T) {
	broken := errors.New("stdout closed")
	out := &recordingRenderer{failOn: "drivers", failErr: broken}

	_, err := newTestService(nil).Run(context.Background(), sampleDataset(), out)
	assert.ErrorIs(t, err, broken)
	assert.Equal(t, []string{"basic", "peak", "drivers"}, out.calls)
}

func TestService_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := &recordingRenderer{}
	_, err := newTestService(nil).Run(ctx, sampleDataset(), out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.calls)
}
