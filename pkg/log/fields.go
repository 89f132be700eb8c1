package log

const (
	// Outbound request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"

	// Actor
	FieldUserID = "user_id"
	FieldEmail  = "email"

	// App
	FieldApp = "app"

	// Log type (for the local audit trail)
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)
