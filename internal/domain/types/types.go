package types

// SourceKind selects where the datasets are read from.
type SourceKind string

const (
	SourceCSV      SourceKind = "csv"
	SourcePostgres SourceKind = "postgres"
)

func (s SourceKind) Valid() bool {
	return s == SourceCSV || s == SourcePostgres
}

// OutputFormat selects how reports are rendered on stdout.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
)

func (f OutputFormat) Valid() bool {
	return f == FormatText || f == FormatTable
}

// DatasetName identifies one of the five input tables
type DatasetName string

const (
	DatasetRides       DatasetName = "rides"
	DatasetDrivers     DatasetName = "drivers"
	DatasetLocations   DatasetName = "locations"
	DatasetHourlyStats DatasetName = "hourly_stats"
	DatasetFareDetails DatasetName = "fare_details"
)

// ReportName identifies one of the report passes
type ReportName string

const (
	ReportBasic         ReportName = "basic_statistics"
	ReportPeakHours     ReportName = "peak_hours"
	ReportTopDrivers    ReportName = "top_drivers"
	ReportFareBreakdown ReportName = "fare_breakdown"
)
