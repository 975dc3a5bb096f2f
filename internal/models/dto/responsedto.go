package dto

type MessageResponseDTO struct {
	Message string `json:"message"`
}

type ErrorResponseDTO struct {
	Error string `json:"error"`
}

type ErrorMessageDTO struct {
	Msg string `json:"msg"`
}

// ErrorsResponseDTO is the body of a 400 validation failure.
type ErrorsResponseDTO struct {
	Errors []ErrorMessageDTO `json:"errors"`
}

// NewErrorsResponse wraps each message into the errors envelope.
func NewErrorsResponse(messages []string) *ErrorsResponseDTO {
	resp := &ErrorsResponseDTO{Errors: make([]ErrorMessageDTO, 0, len(messages))}
	for _, msg := range messages {
		resp.Errors = append(resp.Errors, ErrorMessageDTO{Msg: msg})
	}
	return resp
}
