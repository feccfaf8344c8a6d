package apierrors

// ErrorCategory distinguishes between different types of errors
type ErrorCategory string

const (
	// CategoryBusiness represents catalog rule outcomes (unknown product, bad record)
	CategoryBusiness ErrorCategory = "business"

	// CategoryApplication represents technical and infrastructure errors
	CategoryApplication ErrorCategory = "application"
)
