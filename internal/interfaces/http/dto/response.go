package dto

// Response is the envelope for account endpoints and for unexpected failures
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo describes a failure in the envelope
type ErrorInfo struct {
	Code      string `json:"code" example:"ERR_INTERNAL"`
	Message   string `json:"message" example:"An internal error occurred"`
	RequestID string `json:"request_id,omitempty" example:"0b7f1c1e-6a55-4b7e-8d8e-0e4cf1c1e2a5"`
}

// NewSuccessResponse wraps data in a success envelope
func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewErrorResponse builds an error envelope
func NewErrorResponse(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error:   &ErrorInfo{Code: code, Message: message, RequestID: requestID},
	}
}

// ListResponse is the body of every resource list
// @Description Records matching the query filters
type ListResponse[T any] struct {
	Objects []T `json:"objects"`
	Count   int `json:"count" example:"2"`
}

// NewListResponse never renders objects as null
func NewListResponse[T any](objects []T) ListResponse[T] {
	if objects == nil {
		objects = []T{}
	}
	return ListResponse[T]{Objects: objects, Count: len(objects)}
}

// FieldErrorResponse reports business-rule failures keyed by payload field
// @Description Field-scoped validation failures
type FieldErrorResponse struct {
	Errors map[string]string `json:"errors"`
}
