package server

import (
	"encoding/json"
	"net/http"

	"github.com/rohitkatore/gitCompass/internal/server/middleware"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// handleRegister creates a local email/password account and issues a session
// token.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.domainError(w, err)
		return
	}

	existing, err := s.db.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		s.domainError(w, err)
		return
	}
	if existing != nil {
		s.domainError(w, &ErrEmailAlreadyExists{Email: req.Email})
		return
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		s.domainError(w, err)
		return
	}

	userID, err := s.db.CreateLocalUser(r.Context(), req.Name, req.Email, hash)
	if err != nil {
		s.domainError(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// handleLogin authenticates an email/password account.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.domainError(w, err)
		return
	}

	user, err := s.db.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		s.domainError(w, err)
		return
	}
	if user == nil || user.PasswordHash == "" || !s.passwords.VerifyPassword(req.Password, user.PasswordHash) {
		s.domainError(w, &ErrInvalidCredentials{})
		return
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	s.jsonResponse(w, http.StatusOK, authResponse{Token: token, User: user})
}

// handleGetMe returns the authenticated user's profile.
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
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
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "user not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, user)
}
