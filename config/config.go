package config

import (
	"flag"
	"fmt"
	"net"
	"net/url"
	"path/filepath"

	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/configparser"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
)

// Flags
var (
	sourceFlag = flag.String("source", "", "dataset source: csv or postgres")
	formatFlag = flag.String("format", "", "report format: text or table")
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Source   types.SourceKind `envconfig:"SOURCE" default:"csv"`
		LogLevel string           `envconfig:"LOG_LEVEL" default:"INFO"`

		Datasets DatasetsConfig `envconfig:"DATASETS"`
		Report   ReportConfig   `envconfig:"REPORT"`
		Database DatabaseConfig `envconfig:"DATABASE"`
		RabbitMQ RabbitMQConfig `envconfig:"RABBITMQ"`
		Metrics  MetricsConfig  `envconfig:"METRICS"`
	}

	// Nested keys come from field names under the parent prefix (DATASETS_DIR, DATABASE_USER).
	// No envconfig tag here: a tag would also be looked up bare, as DIR or USER.
	DatasetsConfig struct {
		Dir         string `split_words:"true" default:"data/raw"`
		Rides       string `split_words:"true" default:"uber_rides.csv"`
		Drivers     string `split_words:"true" default:"drivers.csv"`
		Locations   string `split_words:"true" default:"locations.csv"`
		HourlyStats string `split_words:"true" default:"hourly_stats.csv"`
		FareDetails string `split_words:"true" default:"fare_details.csv"`
	}

	ReportConfig struct {
		Title      string             `split_words:"true"`
		TopDrivers int                `split_words:"true" default:"5"`
		Format     types.OutputFormat `split_words:"true" default:"text"`
		Color      bool               `split_words:"true" default:"false"`
	}

	DatabaseConfig struct {
		Host     string `split_words:"true" default:"localhost"`
		Port     string `split_words:"true" default:"5432"`
		User     string `split_words:"true" default:"analytics"`
		Password string `split_words:"true" default:"analytics"`
		Database string `split_words:"true" default:"rides"`
	}

	RabbitMQConfig struct {
		Enabled  bool   `split_words:"true" default:"false"`
		Host     string `split_words:"true" default:"localhost"`
		Port     string `split_words:"true" default:"5672"`
		User     string `split_words:"true" default:"guest"`
		Password string `split_words:"true" default:"guest"`
		Exchange string `split_words:"true" default:"analytics_topic"`
	}

	MetricsConfig struct {
		PushgatewayURL string `split_words:"true"`
		Job            string `split_words:"true" default:"ride-analytics"`
	}
)

// DatasetPath resolves a dataset file name against the datasets directory.
// Absolute file names are used as is.
func (c DatasetsConfig) DatasetPath(name types.DatasetName) string {
	var file string
	switch name {
	case types.DatasetRides:
		file = c.Rides
	case types.DatasetDrivers:
		file = c.Drivers
	case types.DatasetLocations:
		file = c.Locations
	case types.DatasetHourlyStats:
		file = c.HourlyStats
	case types.DatasetFareDetails:
		file = c.FareDetails
	default:
		file = string(name) + ".csv"
	}

	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(c.Dir, file)
}

func (c DatabaseConfig) GetDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func (c RabbitMQConfig) GetDSN() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/",
	}
	return u.String()
}

func NewConfig(configPath string) (*Config, error) {
	cfg := &Config{}

	// Optional .env next to the binary, then the YAML file, then struct tags.
	if err := configparser.LoadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := configparser.LoadAndParseYaml(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	parseFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseFlags(cfg *Config) {
	if sourceFlag != nil && *sourceFlag != "" {
		cfg.Source = types.SourceKind(*sourceFlag)
	}
	if formatFlag != nil && *formatFlag != "" {
		cfg.Report.Format = types.OutputFormat(*formatFlag)
	}
}

// Validate checks the values that cannot be fixed by a default.
func (c *Config) Validate() error {
	if !c.Source.Valid() {
		return fmt.Errorf("%w: %q", types.ErrUnknownSource, c.Source)
	}
	if !c.Report.Format.Valid() {
		return fmt.Errorf("%w: %q", types.ErrUnknownFormat, c.Report.Format)
	}
	if !logger.ValidateLogLevel(c.LogLevel) {
		return fmt.Errorf("invalid log level: %q", c.LogLevel)
	}
	if c.Report.TopDrivers < 0 {
		return fmt.Errorf("invalid top drivers limit: %d", c.Report.TopDrivers)
	}
	return nil
}
