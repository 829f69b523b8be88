package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rohitkatore/gitCompass/internal/types"
)

// ListSkills returns a user's skills in insertion order.
func (db *DB) ListSkills(ctx context.Context, userID uuid.UUID) ([]types.Skill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT name, confidence, category FROM user_skills WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	var skills []types.Skill
	for rows.Next() {
		var s types.Skill
		if err := rows.Scan(&s.Name, &s.Confidence, &s.Category); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

// AddSkill inserts a skill for a user. The unique index on
// (user_id, LOWER(name)) makes this a single atomic statement: the insert is
// skipped when the name is already present in any casing. Reports whether a
// row was actually inserted.
func (db *DB) AddSkill(ctx context.Context, userID uuid.UUID, skill types.Skill) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`INSERT INTO user_skills (user_id, name, confidence, category)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, LOWER(name)) DO NOTHING`,
		userID, skill.Name, skill.Confidence, skill.Category,
	)
	if err != nil {
		return false, fmt.Errorf("failed to add skill %q: %w", skill.Name, err)
	}
	return result.RowsAffected() > 0, nil
}

// RemoveSkill deletes a skill by case-insensitive name. Reports whether a
// matching skill existed.
func (db *DB) RemoveSkill(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND LOWER(name) = LOWER($2)`,
		userID, name,
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove skill %q: %w", name, err)
	}
	return result.RowsAffected() > 0, nil
}

// ClearSkillsAndResume removes all skills and the resume record in one
// transaction so callers never observe a half-cleared profile.
func (db *DB) ClearSkillsAndResume(ctx context.Context, userID uuid.UUID) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear skills: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE users SET resume_filename = NULL, resume_uploaded_at = NULL, resume_text = NULL, updated_at = NOW()
		 WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear resume: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
