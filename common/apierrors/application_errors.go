package apierrors

// Application error codes
const (
	// System Errors
	ErrCodeConfiguration      = "CONFIGURATION_ERROR"       // Required setting missing (catalog URL, database URL)
	ErrCodeDatabaseAccess     = "DATABASE_ACCESS_ERROR"     // Database interaction failures
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"       // Upstream catalog API failing with 5xx
	ErrCodeRequestValidation  = "REQUEST_VALIDATION_ERROR"  // Input validation failures
	ErrCodeInternalProcessing = "INTERNAL_PROCESSING_ERROR" // Logic execution failures
	ErrCodeUpstreamRejected   = "UPSTREAM_REJECTED"         // Upstream answered with a 4xx
	ErrCodeRouteNotFound      = "ROUTE_NOT_FOUND"           // No handler for the path

	// Unexpected Errors
	ErrCodeSystemPanic    = "SYSTEM_PANIC"    // Recovered panics
	ErrCodeNetworkError   = "NETWORK_ERROR"   // Network-related failures
	ErrCodeMalformedData  = "MALFORMED_DATA"  // Invalid data formats (JSON parse errors, etc.)
	ErrCodeRequestTimeout = "REQUEST_TIMEOUT" // Operation timeouts
	ErrCodeUnknown        = "UNKNOWN_ERROR"   // Fallback for unclassified errors
)
