package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Recorder keeps the metrics of one analysis run in its own registry.
// A batch run has nothing to scrape, so the registry is pushed to a Pushgateway at the end.
type Recorder struct {
	service  string
	registry *prometheus.Registry

	DatasetRows           *prometheus.GaugeVec
	ReportsTotal          *prometheus.CounterVec
	ReportDuration        *prometheus.HistogramVec
	DatabaseQueriesTotal  *prometheus.CounterVec
	DatabaseQueryDuration *prometheus.HistogramVec
	ReportEventsPublished *prometheus.CounterVec
}

func New(service string) *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		service:  service,
		registry: reg,

		DatasetRows: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dataset_rows",
				Help: "Number of rows loaded per dataset",
			},
			[]string{"service", "dataset"},
		),
		ReportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reports_total",
				Help: "Total number of computed reports",
			},
			[]string{"service", "report", "status"},
		),
		ReportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "report_duration_seconds",
				Help:    "Report computation duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"service", "report"},
		),
		DatabaseQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"service", "operation", "status"},
		),
		DatabaseQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "database_query_duration_seconds",
				Help:    "Database query duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "operation"},
		),
		ReportEventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rabbitmq_messages_published_total",
				Help: "Total number of messages published to RabbitMQ",
			},
			[]string{"service", "exchange", "status"},
		),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveDataset records the row count of a loaded dataset
func (r *Recorder) ObserveDataset(dataset string, rows int) {
	r.DatasetRows.WithLabelValues(r.service, dataset).Set(float64(rows))
}

// ObserveReport records report computation metrics
func (r *Recorder) ObserveReport(report string, took time.Duration, err error) {
	r.ReportsTotal.WithLabelValues(r.service, report, status(err)).Inc()
	r.ReportDuration.WithLabelValues(r.service, report).Observe(took.Seconds())
}

// ObserveQuery records database query metrics
func (r *Recorder) ObserveQuery(operation string, took time.Duration, err error) {
	r.DatabaseQueriesTotal.WithLabelValues(r.service, operation, status(err)).Inc()
	r.DatabaseQueryDuration.WithLabelValues(r.service, operation).Observe(took.Seconds())
}

// ObservePublish records RabbitMQ publish metrics
func (r *Recorder) ObservePublish(exchange string, err error) {
	r.ReportEventsPublished.WithLabelValues(r.service, exchange, status(err)).Inc()
}

func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Push sends every collected metric to the Pushgateway at url, replacing the job's previous group.
func (r *Recorder) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(r.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}
	return nil
}
