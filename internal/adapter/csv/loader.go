package csv

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/hasher"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Config resolves the file of each dataset.
type Config interface {
	DatasetPath(name types.DatasetName) string
}

type Loader struct {
	cfg Config
	l   logger.Logger
}

func NewLoader(cfg Config, l logger.Logger) *Loader {
	return &Loader{
		cfg: cfg,
		l:   l,
	}
}

// Load reads the five datasets. Any missing, unreadable or malformed file fails the whole load.
func (ld *Loader) Load(ctx context.Context) (*models.Dataset, error) {
	ctx = wrap.WithAction(ctx, types.ActionDatasetLoad)

	ds := &models.Dataset{}
	checksums := make(map[types.DatasetName]string, 5)

	steps := []struct {
		name  types.DatasetName
		parse func(frame) error
	}{
		{types.DatasetRides, func(f frame) (err error) { ds.Rides, err = parseRides(f); return }},
		{types.DatasetDrivers, func(f frame) (err error) { ds.Drivers, err = parseDrivers(f); return }},
		{types.DatasetLocations, func(f frame) error { ds.Locations = rawTable(f); return nil }},
		{types.DatasetHourlyStats, func(f frame) (err error) { ds.HourlyStats, err = parseHourlyStats(f); return }},
		{types.DatasetFareDetails, func(f frame) (err error) { ds.FareDetails, err = parseFareDetails(f); return }},
	}

	for _, step := range steps {
		ctx := wrap.WithDataset(ctx, string(step.name))
		if err := ctx.Err(); err != nil {
			return nil, wrap.Error(ctx, err)
		}

		f, sum, err := ld.read(ctx, step.name)
		if err != nil {
			return nil, err
		}
		if err := step.parse(f); err != nil {
			return nil, wrap.Error(ctx, fmt.Errorf("%w: %w", types.ErrLoad, err))
		}

		checksums[step.name] = sum
		ld.l.Info(ctx, "dataset loaded", "rows", f.df.Nrow(), "columns", f.df.Ncol())
	}

	ds.Summarize(types.SourceCSV)
	ds.Summary.Checksums = checksums

	return ds, nil
}

func (ld *Loader) read(ctx context.Context, name types.DatasetName) (frame, string, error) {
	const op = "Loader.read"

	path := ld.cfg.DatasetPath(name)
	ld.l.Debug(ctx, "reading dataset", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return frame{}, "", wrap.Error(ctx, fmt.Errorf("%s: %w: %w", op, types.ErrLoad, err))
	}

	// Cells stay raw text: no type detection, no NA substitution.
	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return frame{}, "", wrap.Error(ctx, fmt.Errorf("%s: %w: %s: %w", op, types.ErrLoad, path, df.Err))
	}

	return frame{name: name, df: df}, hasher.SumBytes(data), nil
}

func rawTable(f frame) models.RawTable {
	records := f.df.Records()
	if len(records) == 0 {
		return models.RawTable{}
	}
	return models.RawTable{
		Columns: records[0],
		Rows:    records[1:],
	}
}
