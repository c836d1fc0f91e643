package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldSuccess     = "success"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldDomain      = "domain"
	FieldRecordID    = "record_id"
	FieldUserID      = "user_id"
	FieldAmountCents = "amount_cents"
	FieldDay         = "day"
	FieldCacheKey    = "cache_key"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentSession   = "session"
	ComponentAPI       = "api"
	ComponentDashboard = "dashboard"
	ComponentCalories  = "calories"
	ComponentStore     = "localstore"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentExport    = "export"
	ComponentCache     = "cache"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpRefetch  = "refetch"
	OpRestore  = "restore"
	OpRefresh  = "refresh"
	OpSync     = "sync"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
