package server

import (
	"encoding/json"
	"net/http"

	"github.com/rohitkatore/gitCompass/internal/server/middleware"
	"github.com/rohitkatore/gitCompass/internal/types"
)

// handleListSkills returns the user's skills in insertion order.
func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	list, err := s.skills.List(r.Context(), userID)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, skillsPayload(list))
}

type addSkillsRequest struct {
	Skills []types.Skill `json:"skills" validate:"required,min=1,dive"`
}

// handleAddSkills adds skills manually, skipping names already present.
func (s *Server) handleAddSkills(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req addSkillsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Skills) == 0 {
		s.domainError(w, &ErrValidation{Message: "skills list is empty"})
		return
	}

	added, err := s.skills.Add(r.Context(), userID, req.Skills)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"added": added, "count": len(added)})
}

// handleDeleteSkill removes one skill by case-insensitive name.
func (s *Server) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	name := r.PathValue("name")
	if name == "" {
		s.domainError(w, &ErrValidation{Message: "skill name is required"})
		return
	}

	if err := s.skills.Delete(r.Context(), userID, name); err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"deleted": name})
}

// handleClearSkills removes every skill and the stored resume.
func (s *Server) handleClearSkills(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := s.skills.Clear(r.Context(), userID); err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "cleared"})
}
