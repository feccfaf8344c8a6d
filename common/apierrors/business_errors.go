package apierrors

// Business error codes
const (
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"    // No master or variant product matches the slug
	ErrCodeCustomerNotFound   = "CUSTOMER_NOT_FOUND"   // No customer matches the lookup code
	ErrCodeInvalidProductData = "INVALID_PRODUCT_DATA" // Record could not be normalized
	ErrCodeEmptyCatalog       = "EMPTY_CATALOG"        // Nothing to export
)
