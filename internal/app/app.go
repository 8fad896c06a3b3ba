package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Temutjin2k/ride-analytics/config"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/console"
	"github.com/Temutjin2k/ride-analytics/internal/adapter/csv"
	repo "github.com/Temutjin2k/ride-analytics/internal/adapter/postgres"
	rabbitadapter "github.com/Temutjin2k/ride-analytics/internal/adapter/rabbit"
	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/internal/service/analytics"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-analytics/pkg/metrics"
	"github.com/Temutjin2k/ride-analytics/pkg/postgres"
	"github.com/Temutjin2k/ride-analytics/pkg/rabbit"
	"github.com/google/uuid"
)

const serviceName = "ride-analytics"

var ErrNotInitialized = errors.New("application not initialized")

// DatasetLoader reads the five tables from a source.
type DatasetLoader interface {
	Load(ctx context.Context) (*models.Dataset, error)
}

// Renderer prints the whole run: banner, load lines, the four reports and the closing banner.
type Renderer interface {
	analytics.Renderer
	Header() error
	Loaded(sum models.LoadSummary) error
	Footer() error
}

// ReportPublisher announces a finished run.
type ReportPublisher interface {
	PublishReport(ctx context.Context, msg models.ReportSummaryMessage) error
}

type App struct {
	loader    DatasetLoader
	renderer  Renderer
	service   *analytics.Service
	publisher ReportPublisher
	metrics   *metrics.Recorder

	postgresDB *postgres.PostgreDB
	rabbitMQ   *rabbit.RabbitMQ

	newRunID func() string

	cfg config.Config
	log logger.Logger
}

// NewApplication connects to the configured source and sinks. The report is written to out.
func NewApplication(ctx context.Context, cfg config.Config, out io.Writer, log logger.Logger) (*App, error) {
	app := &App{
		metrics:  metrics.New(serviceName),
		newRunID: uuid.NewString,
		cfg:      cfg,
		log:      log,
	}

	if err := app.initLoader(ctx, cfg.Source); err != nil {
		return nil, err
	}

	if err := app.initRenderer(out, cfg.Report.Format); err != nil {
		app.Close(ctx)
		return nil, err
	}

	if cfg.RabbitMQ.Enabled {
		if err := app.initPublisher(ctx); err != nil {
			app.Close(ctx)
			return nil, err
		}
	}

	app.service = analytics.NewService(cfg.Report.TopDrivers, app.metrics, log)

	return app, nil
}

func (a *App) initLoader(ctx context.Context, source types.SourceKind) error {
	switch source {
	case types.SourceCSV:
		a.loader = csv.NewLoader(a.cfg.Datasets, a.log)
	case types.SourcePostgres:
		db, err := postgres.New(wrap.WithAction(ctx, types.ActionDatabaseConnect), a.cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to setup database: %w", err)
		}
		a.postgresDB = db
		a.loader = repo.NewDatasetRepo(db.Pool, a.metrics, a.log)
	default:
		return fmt.Errorf("%w: %q", types.ErrUnknownSource, source)
	}
	return nil
}

func (a *App) initRenderer(out io.Writer, format types.OutputFormat) error {
	title, colored := a.cfg.Report.Title, a.cfg.Report.Color

	switch format {
	case types.FormatText:
		a.renderer = console.NewTextRenderer(out, title, colored)
	case types.FormatTable:
		a.renderer = console.NewTableRenderer(out, title, colored)
	default:
		return fmt.Errorf("%w: %q", types.ErrUnknownFormat, format)
	}
	return nil
}

func (a *App) initPublisher(ctx context.Context) error {
	client, err := rabbit.New(ctx, a.cfg.RabbitMQ.GetDSN(), a.log)
	if err != nil {
		return fmt.Errorf("failed to setup rabbitmq: %w", err)
	}
	a.rabbitMQ = client

	if err := client.DeclareTopicExchange(a.cfg.RabbitMQ.Exchange); err != nil {
		return err
	}

	a.publisher = rabbitadapter.NewReportProducer(client.Channel, a.cfg.RabbitMQ.Exchange, a.metrics)
	return nil
}

// Run loads the datasets and prints every report. Publishing the run summary and
// pushing metrics happen afterwards; their failures are logged and do not fail the run.
func (a *App) Run(ctx context.Context) error {
	if a.loader == nil || a.renderer == nil || a.service == nil {
		return ErrNotInitialized
	}

	runID := a.newRunID()
	ctx = wrap.WithRunID(ctx, runID)
	start := time.Now()

	defer a.pushMetrics(ctx)

	if err := a.renderer.Header(); err != nil {
		return wrap.Error(wrap.WithAction(ctx, types.ActionReportRender), fmt.Errorf("failed to print header: %w", err))
	}

	ds, err := a.loader.Load(wrap.WithAction(ctx, types.ActionDatasetLoad))
	if err != nil {
		return err
	}

	for name, rows := range ds.Summary.Rows {
		a.metrics.ObserveDataset(string(name), rows)
	}

	if err := a.renderer.Loaded(ds.Summary); err != nil {
		return wrap.Error(wrap.WithAction(ctx, types.ActionReportRender), fmt.Errorf("failed to print load summary: %w", err))
	}

	report, err := a.service.Run(ctx, ds, a.renderer)
	if err != nil {
		return err
	}

	if err := a.renderer.Footer(); err != nil {
		return wrap.Error(wrap.WithAction(ctx, types.ActionReportRender), fmt.Errorf("failed to print footer: %w", err))
	}

	a.log.Info(ctx, "analysis complete",
		"source", ds.Summary.Source,
		"took", time.Since(start).String(),
	)

	if a.publisher != nil {
		msg := models.NewReportSummaryMessage(runID, ds.Summary, report, time.Now().UTC())
		if err := a.publisher.PublishReport(ctx, msg); err != nil {
			a.log.Error(wrap.ErrorCtx(ctx, err), "failed to publish report summary", err)
		}
	}

	return nil
}

func (a *App) pushMetrics(ctx context.Context) {
	url := a.cfg.Metrics.PushgatewayURL
	if url == "" {
		return
	}

	ctx = wrap.WithAction(ctx, types.ActionMetricsPush)
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := a.metrics.Push(ctx, url, a.cfg.Metrics.Job); err != nil {
		a.log.Error(ctx, "failed to push metrics", err, "url", url)
		return
	}
	a.log.Debug(ctx, "metrics pushed", "url", url)
}

// Close releases the connections opened by NewApplication.
func (a *App) Close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if a.rabbitMQ != nil && !a.rabbitMQ.IsConnectionClosed() {
		if err := a.rabbitMQ.Close(ctx); err != nil {
			a.log.Error(ctx, "failed to close rabbitmq connection", err)
		}
	}

	if a.postgresDB != nil {
		a.postgresDB.Close()
	}
}
