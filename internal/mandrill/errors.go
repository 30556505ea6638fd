package mandrill

import "fmt"

// APIError is returned when Mandrill answers with an error document:
//
//	{"status":"error","code":-1,"name":"Invalid_Key","message":"Invalid API key"}
//
// StatusCode is the HTTP status of the response.
type APIError struct {
	StatusCode int    `json:"-"`
	Status     string `json:"status"`
	Code       int    `json:"code"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("mandrill: unexpected status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("mandrill: %s (code %d): %s", e.Name, e.Code, e.Message)
}
