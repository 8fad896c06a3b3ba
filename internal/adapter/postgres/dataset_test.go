package repo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	"github.com/Temutjin2k/ride-analytics/pkg/trm"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRows serves fixed rows through the pgx.Rows interface.
type fakeRows struct {
	columns []string
	data    [][]any
	i       int
	closed  bool
}

func (r *fakeRows) Close()                        { r.closed = true }
func (r *fakeRows) Err() error                    { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fds := make([]pgconn.FieldDescription, len(r.columns))
	for i, c := range r.columns {
		fds[i] = pgconn.FieldDescription{Name: c}
	}
	return fds
}

func (r *fakeRows) Next() bool {
	if r.closed || r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) current() []any { return r.data[r.i-1] }

func (r *fakeRows) Scan(dest ...any) error {
	row := r.current()
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d targets for %d values", len(dest), len(row))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

func (r *fakeRows) Values() ([]any, error) { return r.current(), nil }

func (r *fakeRows) RawValues() [][]byte { return make([][]byte, len(r.current())) }

// fakeQuerier answers each known query with its rows, or fails it.
type fakeQuerier struct {
	rows    map[string]*fakeRows
	fail    map[string]error
	queries []string
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.queries = append(q.queries, sql)
	if err, ok := q.fail[sql]; ok {
		return nil, err
	}
	rows, ok := q.rows[sql]
	if !ok {
		return nil, fmt.Errorf("unexpected query %q", sql)
	}
	return rows, nil
}

// fakeTx lets the repo run inside a snapshot stored in ctx.
type fakeTx struct {
	pgx.Tx
	q *fakeQuerier
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.q.Query(ctx, sql, args...)
}

type queryCall struct {
	operation string
	failed    bool
}

type fakeRecorder struct {
	calls []queryCall
}

func (r *fakeRecorder) ObserveQuery(operation string, _ time.Duration, err error) {
	r.calls = append(r.calls, queryCall{operation: operation, failed: err != nil})
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{
		rows: map[string]*fakeRows{
			ridesQuery: {data: [][]any{
				{"D001", 12.5, 14.0, 1.0, "card"},
				{"D002", 18.0, 22.0, math.NaN(), ""},
			}},
			driversQuery: {data: [][]any{
				{"D001", "Aigerim Sadykova", 4.9, 6.0, 2140},
				{"D002", "Nurlan Omarov", 4.6, 3.0, 870},
			}},
			locationsQuery: {
				columns: []string{"location_id", "name", "latitude"},
				data:    [][]any{{"L01", "Downtown", 43.2389}},
			},
			hourlyStatsQuery: {data: [][]any{
				{"Monday", 8, true, 142, 17.85},
			}},
			fareDetailsQuery: {data: [][]any{
				{2.5, 5.6, 2.8, 1.0, 0.6, 12.5, 1.0},
				{2.5, 8.9, 4.4, 0.0, 2.2, 18.0, 1.2},
			}},
		},
		fail: map[string]error{},
	}
}

func newTestRepo(rec QueryRecorder) *DatasetRepo {
	return &DatasetRepo{
		trm:      trm.New(nil),
		recorder: rec,
		l:        logger.New(io.Discard, "test", logger.LevelError),
	}
}

func TestDatasetRepo_Load(t *testing.T) {
	q := newFakeQuerier()
	rec := &fakeRecorder{}
	ctx := trm.WithTx(context.Background(), &fakeTx{q: q})

	ds, err := newTestRepo(rec).Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{ridesQuery, driversQuery, locationsQuery, hourlyStatsQuery, fareDetailsQuery}, q.queries)
	assert.Equal(t, []queryCall{
		{operation: "rides"}, {operation: "drivers"}, {operation: "locations"},
		{operation: "hourly_stats"}, {operation: "fare_details"},
	}, rec.calls)

	require.Len(t, ds.Rides, 2)
	assert.Equal(t, "D001", ds.Rides[0].DriverID)
	assert.InDelta(t, 12.5, ds.Rides[0].FareAmount, 1e-9)
	assert.True(t, math.IsNaN(ds.Rides[1].PassengerCount))
	assert.Empty(t, ds.Rides[1].PaymentType)

	require.Len(t, ds.Drivers, 2)
	assert.Equal(t, "Nurlan Omarov", ds.Drivers[1].Name)
	assert.Equal(t, 870, ds.Drivers[1].TotalRides)

	assert.Equal(t, []string{"location_id", "name", "latitude"}, ds.Locations.Columns)
	assert.Equal(t, [][]string{{"L01", "Downtown", "43.2389"}}, ds.Locations.Rows)

	require.Len(t, ds.HourlyStats, 1)
	assert.True(t, ds.HourlyStats[0].PeakHour)
	assert.Equal(t, 142, ds.HourlyStats[0].TotalRides)

	require.Len(t, ds.FareDetails, 2)
	assert.InDelta(t, 1.2, ds.FareDetails[1].SurgeMultiplier, 1e-9)

	assert.Equal(t, types.SourcePostgres, ds.Summary.Source)
	assert.Equal(t, map[types.DatasetName]int{
		types.DatasetRides:       2,
		types.DatasetDrivers:     2,
		types.DatasetLocations:   1,
		types.DatasetHourlyStats: 1,
		types.DatasetFareDetails: 2,
	}, ds.Summary.Rows)
}

func TestDatasetRepo_LoadFailingTable(t *testing.T) {
	q := newFakeQuerier()
	missing := errors.New(`relation "hourly_stats" does not exist`)
	q.fail[hourlyStatsQuery] = missing
	rec := &fakeRecorder{}
	ctx := trm.WithTx(context.Background(), &fakeTx{q: q})

	ds, err := newTestRepo(rec).Load(ctx)

	require.Error(t, err)
	assert.Nil(t, ds)
	assert.ErrorIs(t, err, types.ErrLoad)
	assert.ErrorIs(t, err, missing)
	assert.ErrorContains(t, err, "hourly_stats")

	// fare_details is never queried after the failure
	assert.Equal(t, []string{ridesQuery, driversQuery, locationsQuery, hourlyStatsQuery}, q.queries)
	assert.Equal(t, queryCall{operation: "hourly_stats", failed: true}, rec.calls[len(rec.calls)-1])
}

func TestDatasetRepo_LoadOutsideSnapshotFails(t *testing.T) {
	ctx := context.WithValue(context.Background(), trm.TxKey, "not a tx")

	_, err := newTestRepo(nil).Load(ctx)
	assert.ErrorIs(t, err, types.ErrLoad)
	assert.ErrorIs(t, err, trm.ErrInvalidTx)
}

func TestFormatRow(t *testing.T) {
	at := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)

	got := formatRow([]any{"L01", 43.2389, int32(7), nil, true, at})
	assert.Equal(t, []string{"L01", "43.2389", "7", "", "true", "2024-03-01T08:30:00Z"}, got)
}
