package server

import (
	"encoding/json"
	"net/http"

	"github.com/rohitkatore/gitCompass/internal/server/middleware"
	"github.com/rohitkatore/gitCompass/internal/types"
)

// handleRecommendations returns ranked repository recommendations for the
// authenticated user's skill profile.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	skillList, err := s.skills.List(r.Context(), userID)
	if err != nil {
		s.domainError(w, err)
		return
	}

	result, err := s.recommender.Recommend(r.Context(), userID.String(), skillList)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

type guideRequest struct {
	Repository types.RepositoryContext `json:"repository"`
	Issue      *types.IssueContext     `json:"issue,omitempty"`
}

// handleGuide generates a contribution guide for a repository, optionally
// targeted at one of its issues.
func (s *Server) handleGuide(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req guideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	skillList, err := s.skills.List(r.Context(), userID)
	if err != nil {
		s.domainError(w, err)
		return
	}

	result, err := s.guider.Generate(r.Context(), userID.String(), req.Repository, req.Issue, skillList)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
