package response

// ErrorBody is the error envelope used by middleware responses.
type ErrorBody struct {
	Success bool         `json:"success"`
	Error   ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Error(code, message string, details any) ErrorBody {
	return ErrorBody{
		Success: false,
		Error: ErrorDetails{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
