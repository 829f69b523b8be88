package aiengine

import "fmt"

// Error represents a failed AI engine call. Timeouts, refused connections,
// non-2xx statuses and schema-invalid bodies all surface as this type, so
// orchestrators can treat every AI failure the same way and fall back.
type Error struct {
	Operation  string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ai engine %s: HTTP %d: %s", e.Operation, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("ai engine %s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("ai engine %s: %s", e.Operation, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
