package apiresponses

import "time"

// Standard Success Response Envelope
type SuccessResponse struct {
	Status    string      `json:"status"` // Always "success"
	Data      interface{} `json:"data"`   // Payload
	Notice    *Notice     `json:"notice,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
}

// Notice tells the page that data is missing or partial and whether a
// manual retry makes sense.
type Notice struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// Standard Error Response Envelope (used by middleware)
type ErrorResponse struct {
	Status string      `json:"status"` // Always "error"
	Error  ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string `json:"code"`    // Application-specific error code
	Message   string `json:"message"` // User-friendly message
	Retryable bool   `json:"retryable"`
	RequestID string `json:"requestId,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Helper to create a success response
func NewSuccessResponse(data interface{}) SuccessResponse {
	return SuccessResponse{
		Status:    "success",
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewErrorResponse builds the envelope rendered by the error handler.
func NewErrorResponse(code, message string, retryable bool) ErrorResponse {
	return ErrorResponse{
		Status: "error",
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			Retryable: retryable,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// WithRequestID adds a request ID to the success response
func (r SuccessResponse) WithRequestID(requestID string) SuccessResponse {
	r.RequestID = requestID
	return r
}

// WithNotice attaches a degradation notice.
func (r SuccessResponse) WithNotice(n *Notice) SuccessResponse {
	r.Notice = n
	return r
}

// WithRequestID adds a request ID to the error response
func (r ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	r.Error.RequestID = requestID
	return r
}
