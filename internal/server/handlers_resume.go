package server

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/rohitkatore/gitCompass/internal/server/middleware"
	"github.com/rohitkatore/gitCompass/internal/types"
)

// maxResumeSize caps resume uploads at 10 MB.
const maxResumeSize = 10 << 20

var allowedResumeExts = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

// handleUploadResume accepts a resume document, extracts skills through the
// AI engine and replaces the user's skill list with the result.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if s.aiEngine == nil {
		s.errorResponse(w, http.StatusNotImplemented, "resume analysis requires the AI engine")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxResumeSize)
	if err := r.ParseMultipartForm(maxResumeSize); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart body or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedResumeExts[ext] {
		s.errorResponse(w, http.StatusBadRequest, "unsupported file type: use pdf, docx or txt")
		return
	}

	extraction, err := s.aiEngine.ExtractSkills(r.Context(), header.Filename, file)
	if err != nil {
		s.domainError(w, err)
		return
	}

	added, err := s.skills.Replace(r.Context(), userID, extraction.Skills)
	if err != nil {
		s.domainError(w, err)
		return
	}
	if err := s.db.SaveResume(r.Context(), userID, header.Filename, extraction.RawText, time.Now()); err != nil {
		s.domainError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"filename": header.Filename,
		"skills":   added,
	})
}

type resumeURLRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// handleResumeFromURL fetches an online resume or portfolio page, extracts
// its text and runs the same skill extraction as a file upload.
func (s *Server) handleResumeFromURL(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if s.aiEngine == nil {
		s.errorResponse(w, http.StatusNotImplemented, "resume analysis requires the AI engine")
		return
	}

	var req resumeURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.domainError(w, err)
		return
	}

	text, err := s.fetcher.Text(r.Context(), req.URL)
	if err != nil {
		s.domainError(w, err)
		return
	}

	extraction, err := s.aiEngine.ExtractSkills(r.Context(), "profile.txt", strings.NewReader(text))
	if err != nil {
		s.domainError(w, err)
		return
	}

	added, err := s.skills.Replace(r.Context(), userID, extraction.Skills)
	if err != nil {
		s.domainError(w, err)
		return
	}
	if err := s.db.SaveResume(r.Context(), userID, req.URL, extraction.RawText, time.Now()); err != nil {
		s.domainError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"source": req.URL,
		"skills": added,
	})
}

// skillsPayload is the list response shape shared by the skills handlers.
func skillsPayload(list []types.Skill) map[string]any {
	return map[string]any{"skills": list, "count": len(list)}
}
