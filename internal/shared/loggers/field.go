package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	// request log record
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatusCode    = "status_code"
	FieldDurationMs    = "duration_ms"
	FieldHostIdentity  = "host_identity"
	FieldClientAddress = "client_address"
	FieldUserAgent     = "user_agent"
	FieldBot           = "bot"
)
