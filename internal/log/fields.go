package log

// Common field names for structured logging.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status_code"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldYear      = "year"
	FieldSortBy    = "sort_by"
	FieldSource    = "source"
	FieldRowCount  = "row_count"
	FieldImportID  = "import_id"
	FieldBackend   = "backend"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentReport  = "report"
	ComponentSource  = "source"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentCache   = "cache"
)

// Standard operation names.
const (
	OpImport    = "import"
	OpRead      = "read"
	OpNormalize = "normalize"
	OpAggregate = "aggregate"
	OpMerge     = "merge"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
