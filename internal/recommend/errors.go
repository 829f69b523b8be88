package recommend

import "fmt"

// ErrNoSkills indicates the user has no skills to match against. Callers
// should redirect the user to skill collection (resume upload or manual
// entry) rather than retrying.
type ErrNoSkills struct{}

func (e *ErrNoSkills) Error() string {
	return "no skills on profile: upload a resume or add skills first"
}

// ErrUpstream indicates both the AI engine and the GitHub fallback failed.
// There is no further fallback.
type ErrUpstream struct {
	Cause error
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("recommendation upstreams exhausted: %v", e.Cause)
}

func (e *ErrUpstream) Unwrap() error {
	return e.Cause
}
