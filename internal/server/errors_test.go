package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rohitkatore/gitCompass/internal/aiengine"
	"github.com/rohitkatore/gitCompass/internal/githubapi"
	"github.com/rohitkatore/gitCompass/internal/guide"
	"github.com/rohitkatore/gitCompass/internal/recommend"
	"github.com/rohitkatore/gitCompass/internal/skills"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"no skills", &recommend.ErrNoSkills{}, http.StatusBadRequest},
		{"missing repo", &guide.ErrMissingRepository{}, http.StatusBadRequest},
		{"validation", &ErrValidation{Message: "bad"}, http.StatusBadRequest},
		{"skill not found", &skills.ErrSkillNotFound{Name: "Rust"}, http.StatusNotFound},
		{"email exists", &ErrEmailAlreadyExists{Email: "a@b.c"}, http.StatusConflict},
		{"bad login", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"upstream exhausted", &recommend.ErrUpstream{Cause: errors.New("x")}, http.StatusBadGateway},
		{"engine error", &aiengine.Error{Operation: "recommend", Message: "down"}, http.StatusBadGateway},
		{"github 404", &githubapi.APIError{Operation: "repo", StatusCode: 404}, http.StatusNotFound},
		{"github 403", &githubapi.APIError{Operation: "search", StatusCode: 403}, http.StatusBadGateway},
		{"wrapped upstream", fmt.Errorf("context: %w", &recommend.ErrUpstream{Cause: errors.New("x")}), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
