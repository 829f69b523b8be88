package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, github_id, COALESCE(github_login, ''), name, COALESCE(email, ''),
	avatar_url, password_hash, github_token,
	resume_filename, resume_uploaded_at, resume_text, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.GitHubID, &u.GitHubLogin, &u.Name, &u.Email,
		&u.AvatarURL, &u.PasswordHash, &u.GitHubToken,
		&u.ResumeName, &u.ResumeAt, &u.ResumeText, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// CreateLocalUser creates a user with an email/password credential.
func (db *DB) CreateLocalUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		name, email, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// UpsertGitHubUser creates or refreshes a user from their GitHub profile
// and stores the per-user access token. Returns the user ID.
func (db *DB) UpsertGitHubUser(ctx context.Context, githubID int64, login, name, email, avatarURL, token string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (github_id, github_login, name, email, avatar_url, github_token)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		 ON CONFLICT (github_id) DO UPDATE SET
		   github_login = $2, name = $3, avatar_url = $5, github_token = $6, updated_at = NOW()
		 RETURNING id`,
		githubID, login, name, email, avatarURL, token,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert github user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID. Returns nil when absent.
func (db *DB) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	return scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
}

// GetUserByEmail retrieves a user by email. Returns nil when absent.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// DeleteUser removes a user and, via cascade, their skills and saved repos.
func (db *DB) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// SaveResume records the latest uploaded resume for a user, replacing any
// previous one.
func (db *DB) SaveResume(ctx context.Context, userID uuid.UUID, filename, rawText string, uploadedAt time.Time) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE users SET resume_filename = $2, resume_uploaded_at = $3, resume_text = $4, updated_at = NOW()
		 WHERE id = $1`,
		userID, filename, uploadedAt, rawText,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}
