package dto

import "time"

// ErrorResponse is the JSON error body returned by every endpoint.
//
// Fields:
//   - Code: machine-readable category (e.g., "NOT_FOUND", "TOO_MANY_REQUESTS").
//   - Message: human-readable description of what went wrong.
//   - ErrorDetails: optional detail from the underlying error.
//   - Timestamp: when the error response was produced.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Code         string    `json:"code,omitempty" example:"NOT_FOUND"`
	Message      string    `json:"message" example:"symbol not supported: DOGE"`
	ErrorDetails string    `json:"error,omitempty" example:"unknown symbol: DOGE"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so an ErrorResponse can be passed
// around as a regular error when convenient.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}

// NewErrorResponse builds an ErrorResponse from a message and an optional
// underlying error.
func NewErrorResponse(message string, err error) ErrorResponse {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return ErrorResponse{
		Message:      message,
		ErrorDetails: details,
		Timestamp:    time.Now().UTC(),
	}
}

// NewCodedErrorResponse builds an ErrorResponse carrying a machine-readable
// category code alongside the message.
func NewCodedErrorResponse(code, message string, err error) ErrorResponse {
	e := NewErrorResponse(message, err)
	e.Code = code
	return e
}
