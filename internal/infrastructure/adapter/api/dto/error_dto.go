package dto

// ErrorResponse represents a standardized API error payload
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
