package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rohitkatore/gitCompass/internal/db"
	"github.com/rohitkatore/gitCompass/internal/server/middleware"
)

// refreshConcurrency bounds parallel GitHub calls during a bookmark refresh.
const refreshConcurrency = 4

type saveRepoRequest struct {
	RepoID      int64    `json:"repoId" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	FullName    string   `json:"fullName" validate:"required"`
	Description string   `json:"description"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	Language    string   `json:"language"`
	Topics      []string `json:"topics"`
}

// handleListSavedRepos returns the user's bookmarked repositories.
func (s *Server) handleListSavedRepos(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	repos, err := s.db.ListSavedRepositories(r.Context(), userID)
	if err != nil {
		s.domainError(w, err)
		return
	}
	if repos == nil {
		repos = []db.SavedRepository{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"repositories": repos, "count": len(repos)})
}

// handleSaveRepo bookmarks a repository with a metadata snapshot.
func (s *Server) handleSaveRepo(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req saveRepoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.domainError(w, err)
		return
	}
	if req.Topics == nil {
		req.Topics = []string{}
	}

	saved := &db.SavedRepository{
		UserID:      userID,
		RepoID:      req.RepoID,
		Name:        req.Name,
		FullName:    req.FullName,
		Description: req.Description,
		Stars:       req.Stars,
		Forks:       req.Forks,
		Language:    req.Language,
		Topics:      req.Topics,
	}
	id, err := s.db.SaveRepository(r.Context(), saved)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]any{"id": id})
}

// handleDeleteSavedRepo removes a bookmark by GitHub repository ID.
func (s *Server) handleDeleteSavedRepo(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	repoID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.domainError(w, &ErrValidation{Message: "invalid repository id"})
		return
	}

	deleted, err := s.db.DeleteSavedRepository(r.Context(), userID, repoID)
	if err != nil {
		s.domainError(w, err)
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "saved repository not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"deleted": repoID})
}

// handleRefreshSavedRepos re-fetches cached GitHub metadata for every
// bookmark. Fan-out is bounded; a repository that fails to refresh keeps its
// stale snapshot and is reported, not fatal.
func (s *Server) handleRefreshSavedRepos(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	repos, err := s.db.ListSavedRepositories(r.Context(), userID)
	if err != nil {
		s.domainError(w, err)
		return
	}

	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(refreshConcurrency)

	refreshed := make([]bool, len(repos))
	for i := range repos {
		g.Go(func() error {
			saved := &repos[i]
			owner, name, ok := strings.Cut(saved.FullName, "/")
			if !ok {
				return nil
			}

			repo, err := s.github.GetRepository(ctx, owner, name)
			if err != nil {
				log.Printf("[repos] refresh failed for %s: %v", saved.FullName, err)
				return nil
			}

			saved.Description = repo.Description
			saved.Stars = repo.Stars
			saved.Forks = repo.Forks
			saved.Language = repo.Language
			saved.Topics = repo.Topics
			if err := s.db.UpdateSavedRepositoryMetadata(ctx, userID, saved); err != nil {
				log.Printf("[repos] failed to store refresh for %s: %v", saved.FullName, err)
				return nil
			}
			refreshed[i] = true
			return nil
		})
	}
	_ = g.Wait()

	count := 0
	for _, ok := range refreshed {
		if ok {
			count++
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"total":     len(repos),
		"refreshed": count,
	})
}
