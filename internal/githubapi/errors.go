package githubapi

import "fmt"

// APIError represents a failed GitHub API call: a transport error, a non-2xx
// status, or an undecodable body.
type APIError struct {
	Operation  string
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("github %s: HTTP %d: %s", e.Operation, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("github %s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("github %s: %s", e.Operation, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}
