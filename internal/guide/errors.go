package guide

// ErrMissingRepository indicates the request did not identify a repository.
type ErrMissingRepository struct{}

func (e *ErrMissingRepository) Error() string {
	return "repository full name is required"
}
