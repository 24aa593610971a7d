package mews

import "fmt"

// APIError is a failure signaled by the Mews API body. Code keeps its wire
// representation: Mews sends numbers on some endpoints and strings on others,
// and downstream matching relies on the original text.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("mews: api error: %s", e.Message)
	}
	return fmt.Sprintf("mews: api error %s: %s", e.Code, e.Message)
}
