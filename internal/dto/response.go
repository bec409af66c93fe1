package dto

// APIResponse is the envelope every API endpoint replies with.
// Data is set on success, Errors on failure when there is field-level detail.
type APIResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// Success wraps data in a successful envelope.
func Success(message string, data any) APIResponse {
	return APIResponse{Status: true, Message: message, Data: data}
}

// Failure builds an error envelope. errs may be nil.
func Failure(message string, errs any) APIResponse {
	return APIResponse{Status: false, Message: message, Errors: errs}
}
