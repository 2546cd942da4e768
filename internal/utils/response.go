package utils

// Response is the uniform envelope every endpoint returns: success flag
// plus data on success, or an error message describing the failure kind.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success envelope.
func NewSuccessResponse(message string, data interface{}) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates a failure envelope.
func NewErrorResponse(errMsg string) Response {
	return Response{
		Success: false,
		Error:   errMsg,
	}
}
