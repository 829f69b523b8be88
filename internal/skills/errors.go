package skills

import "fmt"

// ErrSkillNotFound indicates a delete targeted a skill the user does not have.
type ErrSkillNotFound struct {
	Name string
}

func (e *ErrSkillNotFound) Error() string {
	return fmt.Sprintf("skill %q not found on profile", e.Name)
}
