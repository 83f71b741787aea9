package models

// Credentials is the request body of both /api/login and /api/register
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// APIResponse is the response body of both endpoints
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
