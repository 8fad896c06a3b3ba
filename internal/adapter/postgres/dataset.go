package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-analytics/pkg/trm"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Column order of every query matches the field order of its model; rows are collected by position.
// NULL in an averaged column reads as NaN and NULL text as "", the same as an empty CSV cell.
const (
	ridesQuery = `
		SELECT coalesce(driver_id::text, ''),
		       coalesce(fare_amount::float8, 'NaN'),
		       coalesce(trip_duration_minutes::float8, 'NaN'),
		       coalesce(passenger_count::float8, 'NaN'),
		       coalesce(payment_type::text, '')
		FROM rides`

	driversQuery = `
		SELECT coalesce(driver_id::text, ''), coalesce(name::text, ''),
		       coalesce(rating::float8, 'NaN'), coalesce(years_experience::float8, 'NaN'),
		       total_rides::int
		FROM drivers`

	locationsQuery = `SELECT * FROM locations`

	hourlyStatsQuery = `
		SELECT coalesce(day_of_week::text, ''), hour::int, coalesce(peak_hour::bool, false),
		       total_rides::int, coalesce(avg_fare::float8, 'NaN')
		FROM hourly_stats`

	fareDetailsQuery = `
		SELECT coalesce(base_fare::float8, 'NaN'), coalesce(distance_fare::float8, 'NaN'),
		       coalesce(time_fare::float8, 'NaN'), coalesce(tip_amount::float8, 'NaN'),
		       coalesce(taxes_fees::float8, 'NaN'), coalesce(total_fare::float8, 'NaN'),
		       coalesce(surge_multiplier::float8, 'NaN')
		FROM fare_details`
)

// QueryRecorder observes database queries.
type QueryRecorder interface {
	ObserveQuery(operation string, took time.Duration, err error)
}

type Querier interface {
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

type DatasetRepo struct {
	trm      *trm.Manager
	recorder QueryRecorder
	l        logger.Logger
}

func NewDatasetRepo(db *pgxpool.Pool, recorder QueryRecorder, l logger.Logger) *DatasetRepo {
	return &DatasetRepo{
		trm:      trm.New(db),
		recorder: recorder,
		l:        l,
	}
}

// Load reads the five tables inside one read-only repeatable-read transaction,
// so every table comes from the same snapshot.
func (r *DatasetRepo) Load(ctx context.Context) (*models.Dataset, error) {
	const op = "DatasetRepo.Load"
	ctx = wrap.WithAction(ctx, types.ActionDatasetLoad)

	var ds *models.Dataset
	err := r.trm.ReadSnapshot(ctx, func(ctx context.Context, tx pgx.Tx) (err error) {
		ds, err = r.load(ctx, tx)
		return err
	})
	if err != nil {
		if errors.Is(err, types.ErrLoad) {
			return nil, err
		}
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w: %w", op, types.ErrLoad, err))
	}

	ds.Summarize(types.SourcePostgres)
	return ds, nil
}

func (r *DatasetRepo) load(ctx context.Context, q Querier) (*models.Dataset, error) {
	const op = "DatasetRepo.load"

	var (
		ds  = &models.Dataset{}
		err error
	)

	steps := []struct {
		name types.DatasetName
		read func(ctx context.Context) error
	}{
		{types.DatasetRides, func(ctx context.Context) (err error) {
			ds.Rides, err = collect[models.Ride](ctx, q, ridesQuery)
			return
		}},
		{types.DatasetDrivers, func(ctx context.Context) (err error) {
			ds.Drivers, err = collect[models.Driver](ctx, q, driversQuery)
			return
		}},
		{types.DatasetLocations, func(ctx context.Context) (err error) {
			ds.Locations, err = collectRaw(ctx, q, locationsQuery)
			return
		}},
		{types.DatasetHourlyStats, func(ctx context.Context) (err error) {
			ds.HourlyStats, err = collect[models.HourlyStat](ctx, q, hourlyStatsQuery)
			return
		}},
		{types.DatasetFareDetails, func(ctx context.Context) (err error) {
			ds.FareDetails, err = collect[models.FareDetail](ctx, q, fareDetailsQuery)
			return
		}},
	}

	for _, step := range steps {
		ctx := wrap.WithDataset(ctx, string(step.name))

		start := time.Now()
		err = step.read(ctx)
		r.observe(string(step.name), time.Since(start), err)
		if err != nil {
			return nil, wrap.Error(ctx, fmt.Errorf("%s: %w: %s: %w", op, types.ErrLoad, step.name, err))
		}
		r.l.Info(ctx, "dataset loaded", "took", time.Since(start).String())
	}

	return ds, nil
}

func (r *DatasetRepo) observe(operation string, took time.Duration, err error) {
	if r.recorder != nil {
		r.recorder.ObserveQuery(operation, took, err)
	}
}

func collect[T any](ctx context.Context, q Querier, query string) ([]T, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[T])
}

func collectRaw(ctx context.Context, q Querier, query string) (models.RawTable, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return models.RawTable{}, err
	}
	defer rows.Close()

	var table models.RawTable
	for _, fd := range rows.FieldDescriptions() {
		table.Columns = append(table.Columns, fd.Name)
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return models.RawTable{}, err
		}
		table.Rows = append(table.Rows, formatRow(values))
	}
	if err := rows.Err(); err != nil {
		return models.RawTable{}, err
	}

	return table, nil
}

func formatRow(values []any) []string {
	row := make([]string, len(values))
	for i, v := range values {
		switch val := v.(type) {
		case nil:
			row[i] = ""
		case string:
			row[i] = val
		case time.Time:
			row[i] = val.Format(time.RFC3339)
		default:
			row[i] = fmt.Sprint(val)
		}
	}
	return row
}
