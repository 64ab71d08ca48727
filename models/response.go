package models

// Response is the uniform envelope every JSON endpoint answers with.
type Response struct {
	Status        string       `json:"status"`
	Message       string       `json:"message,omitempty"`
	TransactionID string       `json:"transaction_id,omitempty"`
	Data          *Transaction `json:"data,omitempty"`
}

func ErrorResponse(message string) Response {
	return Response{Status: "error", Message: message}
}
