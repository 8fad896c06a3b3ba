package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
)

const DefaultTopDrivers = 5

type Service struct {
	topDrivers int
	recorder   Recorder
	l          logger.Logger
}

func NewService(topDrivers int, recorder Recorder, l logger.Logger) *Service {
	if topDrivers <= 0 {
		topDrivers = DefaultTopDrivers
	}
	return &Service{
		topDrivers: topDrivers,
		recorder:   recorder,
		l:          l,
	}
}

// Run computes the four reports in order and hands each one to out before starting the next.
// The first failing report stops the run; reports rendered before it stay rendered.
func (s *Service) Run(ctx context.Context, ds *models.Dataset, out Renderer) (*models.Report, error) {
	const op = "Service.Run"

	var report models.Report

	steps := []struct {
		name    types.ReportName
		compute func() error
		render  func() error
	}{
		{
			name: types.ReportBasic,
			compute: func() (err error) {
				report.Basic, err = BasicStatistics(ds.Rides, ds.Drivers)
				return err
			},
			render: func() error { return out.Basic(report.Basic) },
		},
		{
			name: types.ReportPeakHours,
			compute: func() (err error) {
				report.PeakHours, err = PeakHours(ds.HourlyStats)
				return err
			},
			render: func() error { return out.PeakHours(report.PeakHours) },
		},
		{
			name: types.ReportTopDrivers,
			compute: func() (err error) {
				report.TopDrivers, err = TopDrivers(ds.Rides, ds.Drivers, s.topDrivers)
				return err
			},
			render: func() error { return out.TopDrivers(report.TopDrivers) },
		},
		{
			name: types.ReportFareBreakdown,
			compute: func() (err error) {
				report.FareBreakdown, err = FareBreakdown(ds.FareDetails)
				return err
			},
			render: func() error { return out.FareBreakdown(report.FareBreakdown) },
		},
	}

	for _, step := range steps {
		ctx := wrap.WithReport(ctx, string(step.name))

		if err := ctx.Err(); err != nil {
			return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
		}

		start := time.Now()
		err := step.compute()
		s.observe(step.name, time.Since(start), err)
		if err != nil {
			ctx = wrap.WithAction(ctx, types.ActionReportCompute)
			return nil, wrap.Error(ctx, fmt.Errorf("%s: %s: %w", op, step.name, err))
		}
		s.l.Debug(ctx, "report computed", "took", time.Since(start).String())

		if step.name == types.ReportTopDrivers && report.TopDrivers.UnmatchedRides > 0 {
			s.l.Warn(wrap.WithAction(ctx, types.ActionJoinValidation), "rides reference unknown drivers",
				"unmatched_rides", report.TopDrivers.UnmatchedRides,
				"total_rides", len(ds.Rides),
			)
		}

		if err := step.render(); err != nil {
			ctx = wrap.WithAction(ctx, types.ActionReportRender)
			return nil, wrap.Error(ctx, fmt.Errorf("%s: render %s: %w", op, step.name, err))
		}
	}

	return &report, nil
}

func (s *Service) observe(name types.ReportName, took time.Duration, err error) {
	if s.recorder == nil {
		return
	}
	s.recorder.ObserveReport(string(name), took, err)
}
