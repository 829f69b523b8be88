// Package types holds the domain model shared across the service: skills,
// recommendations and contribution guides. Keeping these here lets the
// orchestrators, storage layer and HTTP handlers agree on one shape.
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Defaults applied to manually added skills, which carry no extraction
// confidence of their own.
const (
	DefaultSkillConfidence = 80
	DefaultSkillCategory   = "Manual"
)

var validate = validator.New()

// Skill is a single named capability on a user's profile. Names are unique
// per user, case-insensitively.
type Skill struct {
	Name       string `json:"name" validate:"required,max=100"`
	Confidence int    `json:"confidence" validate:"min=0,max=100"`
	Category   string `json:"category"`
}

// Validate checks field constraints.
func (s *Skill) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid skill: %w", err)
	}
	return nil
}

// Extraction is the result of analyzing a resume: the recognized skills and
// the raw text they were pulled from.
type Extraction struct {
	Skills  []Skill `json:"skills"`
	RawText string  `json:"rawText"`
}

// Resume is the stored resume record on a user profile.
type Resume struct {
	Filename   string `json:"filename"`
	UploadedAt string `json:"uploadedAt"`
	Text       string `json:"text,omitempty"`
}
