package config

import (
	"context"
	"flag"
	"fmt"

	"github.com/Temutjin2k/ride-analytics/pkg/logger"
)

const HelpMessage = `
Ride-hailing dataset analysis.

Usage:
  analyze [--config-path <file>] [--source csv|postgres] [--format text|table]
  analyze --help

Options:
  --config-path   Path to the config yaml file (default: config.yaml, optional)
  --source        Dataset source, overrides SOURCE (csv or postgres)
  --format        Report format, overrides REPORT_FORMAT (text or table)
  --help          Show this screen

Environment:
  DATASETS_DIR, DATASETS_RIDES, DATASETS_DRIVERS, DATASETS_LOCATIONS,
  DATASETS_HOURLY_STATS, DATASETS_FARE_DETAILS
  REPORT_TITLE, REPORT_TOP_DRIVERS, REPORT_FORMAT, REPORT_COLOR
  DATABASE_HOST, DATABASE_PORT, DATABASE_USER, DATABASE_PASSWORD, DATABASE_DATABASE
  RABBITMQ_ENABLED, RABBITMQ_HOST, RABBITMQ_PORT, RABBITMQ_USER, RABBITMQ_PASSWORD, RABBITMQ_EXCHANGE
  METRICS_PUSHGATEWAY_URL, METRICS_JOB
  LOG_LEVEL
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}

const masked = "******"

// PrintConfig logs the effective configuration with secrets masked.
func PrintConfig(ctx context.Context, log logger.Logger, cfg *Config) {
	db := cfg.Database
	db.Password = masked
	mq := cfg.RabbitMQ
	mq.Password = masked

	log.Debug(ctx, "configuration loaded",
		"source", cfg.Source,
		"log_level", cfg.LogLevel,
		"datasets", cfg.Datasets,
		"report", cfg.Report,
		"database", db,
		"rabbitmq", mq,
		"metrics", cfg.Metrics,
	)
}
