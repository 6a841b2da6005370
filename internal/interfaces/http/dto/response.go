package dto

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Message   string              `json:"message"`
	Code      string              `json:"code"`
	Errors    map[string][]string `json:"errors,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

// NewErrorResponse creates an error response without field errors
func NewErrorResponse(code, message, requestID string) ErrorResponse {
	return ErrorResponse{
		Message:   message,
		Code:      code,
		RequestID: requestID,
	}
}

// NewValidationErrorResponse creates a 400 body with per-field messages
func NewValidationErrorResponse(message, requestID string, fields map[string][]string) ErrorResponse {
	return ErrorResponse{
		Message:   message,
		Code:      ErrCodeValidation,
		Errors:    fields,
		RequestID: requestID,
	}
}

// MessageResponse is returned by endpoints that only acknowledge an action
type MessageResponse struct {
	Message string `json:"message"`
}

// IDRequest represents a request with an ID path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
