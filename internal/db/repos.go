package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SaveRepository bookmarks a repository for a user, refreshing the cached
// metadata when already saved.
func (db *DB) SaveRepository(ctx context.Context, repo *SavedRepository) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO saved_repositories (user_id, repo_id, name, full_name, description, stars, forks, language, topics)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id, repo_id) DO UPDATE SET
		   description = $5, stars = $6, forks = $7, language = $8, topics = $9, refreshed_at = NOW()
		 RETURNING id`,
		repo.UserID, repo.RepoID, repo.Name, repo.FullName, repo.Description,
		repo.Stars, repo.Forks, repo.Language, repo.Topics,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save repository %s: %w", repo.FullName, err)
	}
	return id, nil
}

// ListSavedRepositories returns a user's bookmarked repositories, most
// recently saved first.
func (db *DB) ListSavedRepositories(ctx context.Context, userID uuid.UUID) ([]SavedRepository, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, repo_id, name, full_name, description, stars, forks, language, topics, saved_at, refreshed_at
		 FROM saved_repositories WHERE user_id = $1 ORDER BY saved_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved repositories: %w", err)
	}
	defer rows.Close()

	var repos []SavedRepository
	for rows.Next() {
		var r SavedRepository
		if err := rows.Scan(&r.ID, &r.UserID, &r.RepoID, &r.Name, &r.FullName, &r.Description,
			&r.Stars, &r.Forks, &r.Language, &r.Topics, &r.SavedAt, &r.RefreshedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saved repository: %w", err)
		}
		repos = append(repos, r)
	}
	return repos, rows.Err()
}

// DeleteSavedRepository removes a bookmark. Reports whether it existed.
func (db *DB) DeleteSavedRepository(ctx context.Context, userID uuid.UUID, repoID int64) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM saved_repositories WHERE user_id = $1 AND repo_id = $2`,
		userID, repoID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete saved repository: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// UpdateSavedRepositoryMetadata refreshes the cached GitHub metadata for a
// bookmark.
func (db *DB) UpdateSavedRepositoryMetadata(ctx context.Context, userID uuid.UUID, repo *SavedRepository) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE saved_repositories
		 SET description = $3, stars = $4, forks = $5, language = $6, topics = $7, refreshed_at = NOW()
		 WHERE user_id = $1 AND repo_id = $2`,
		userID, repo.RepoID, repo.Description, repo.Stars, repo.Forks, repo.Language, repo.Topics,
	)
	if err != nil {
		return fmt.Errorf("failed to update saved repository %s: %w", repo.FullName, err)
	}
	return nil
}
