package dto

// ErrorResponse is the client-facing error envelope. Handlers log the real
// error server-side and return only a fixed message here.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse creates an error envelope with the given message.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
