package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rohitkatore/gitCompass/internal/aiengine"
	"github.com/rohitkatore/gitCompass/internal/fetch"
	"github.com/rohitkatore/gitCompass/internal/githubapi"
	"github.com/rohitkatore/gitCompass/internal/guide"
	"github.com/rohitkatore/gitCompass/internal/recommend"
	"github.com/rohitkatore/gitCompass/internal/skills"
)

// ErrEmailAlreadyExists indicates the email is already registered.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates a failed login.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates a request that failed validation.
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return "validation error: " + e.Message
}

// HTTPStatus maps domain errors onto HTTP status codes. Validation problems
// are the caller's fault (400), exhausted upstreams are a bad gateway (502),
// and missing resources are 404; anything unrecognized is a 500.
func HTTPStatus(err error) int {
	var (
		noSkills     *recommend.ErrNoSkills
		upstream     *recommend.ErrUpstream
		missingRepo  *guide.ErrMissingRepository
		skillMissing *skills.ErrSkillNotFound
		validation   *ErrValidation
		emailExists  *ErrEmailAlreadyExists
		badLogin     *ErrInvalidCredentials
		ghErr        *githubapi.APIError
		aiErr        *aiengine.Error
		fetchErr     *fetch.Error
		fieldErrs    validator.ValidationErrors
	)

	switch {
	case errors.As(err, &noSkills), errors.As(err, &missingRepo),
		errors.As(err, &validation), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.As(err, &skillMissing):
		return http.StatusNotFound
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &badLogin):
		return http.StatusUnauthorized
	case errors.As(err, &upstream), errors.As(err, &aiErr), errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.As(err, &ghErr):
		// Pass GitHub's 404 through; everything else is an upstream failure.
		if ghErr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
