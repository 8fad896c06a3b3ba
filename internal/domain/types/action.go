package types

const (
	ActionRabbitMQConnected       = "rabbitmq_connected"
	ActionRabbitConnectionClosed  = "rabbitmq_connection_closed"
	ActionRabbitConnectionClosing = "rabbitmq_connection_closing"

	ActionDatasetLoad     = "dataset_load"
	ActionReportCompute   = "report_compute"
	ActionReportRender    = "report_render"
	ActionReportPublish   = "report_publish"
	ActionMetricsPush     = "metrics_push"
	ActionJoinValidation  = "join_validation"
	ActionDatabaseConnect = "database_connect"
)
