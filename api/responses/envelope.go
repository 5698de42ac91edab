package responses

// Success is the body of every 2xx response.
type Success struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}

// Failure is the body of every error response.
type Failure struct {
	Error FailureBody `json:"error"`
}

type FailureBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
