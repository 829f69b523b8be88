package server

import (
	"net/http"
	"strconv"

	"github.com/rohitkatore/gitCompass/internal/githubapi"
	"github.com/rohitkatore/gitCompass/internal/server/middleware"
)

// handleListIssues proxies the repository issue listing, defaulting to open
// good-first-issue candidates.
func (s *Server) handleListIssues(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")
	repo := r.PathValue("repo")

	opts := githubapi.IssueListOptions{State: "open", PerPage: 30}
	if labels := r.URL.Query().Get("labels"); labels != "" {
		opts.Labels = []string{labels}
	}
	if state := r.URL.Query().Get("state"); state != "" {
		opts.State = state
	}
	if perPage := r.URL.Query().Get("per_page"); perPage != "" {
		if n, err := strconv.Atoi(perPage); err == nil && n > 0 && n <= 100 {
			opts.PerPage = n
		}
	}

	issues, err := s.github.ListIssues(r.Context(), owner, repo, opts)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"issues": issues, "count": len(issues)})
}

// handleContributions returns the authenticated user's GitHub contribution
// calendar. Requires a GitHub-linked account: the GraphQL API rejects
// unauthenticated queries, so the user's own OAuth token is used.
func (s *Server) handleContributions(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		s.domainError(w, err)
		return
	}
	if user == nil || user.GitHubLogin == "" {
		s.errorResponse(w, http.StatusBadRequest, "no linked GitHub account")
		return
	}

	client := s.github
	if user.GitHubToken != "" {
		client = client.WithToken(user.GitHubToken)
	}

	calendar, err := client.ContributionCalendar(r.Context(), user.GitHubLogin)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, calendar)
}
