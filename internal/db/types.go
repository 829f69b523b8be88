package db

import (
	"time"

	"github.com/google/uuid"
)

// User is a stored user profile. GitHub fields are mirrored from the GitHub
// API at OAuth time; PasswordHash is set only for local accounts.
type User struct {
	ID           uuid.UUID  `json:"id"`
	GitHubID     *int64     `json:"github_id,omitempty"`
	GitHubLogin  string     `json:"github_login,omitempty"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	PasswordHash string     `json:"-"`
	GitHubToken  string     `json:"-"`
	ResumeName   *string    `json:"resume_filename,omitempty"`
	ResumeAt     *time.Time `json:"resume_uploaded_at,omitempty"`
	ResumeText   *string    `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SavedRepository is cached metadata for a repository a user bookmarked.
type SavedRepository struct {
	ID          int64      `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	RepoID      int64      `json:"repo_id"`
	Name        string     `json:"name"`
	FullName    string     `json:"full_name"`
	Description string     `json:"description,omitempty"`
	Stars       int        `json:"stars"`
	Forks       int        `json:"forks"`
	Language    string     `json:"language,omitempty"`
	Topics      []string   `json:"topics"`
	SavedAt     time.Time  `json:"saved_at"`
	RefreshedAt *time.Time `json:"refreshed_at,omitempty"`
}
