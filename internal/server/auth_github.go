package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GitHub OAuth web flow endpoints.
const (
	githubAuthorizeURL = "https://github.com/login/oauth/authorize"
	githubTokenURL     = "https://github.com/login/oauth/access_token"
	githubUserURL      = "https://api.github.com/user"
)

// handleGitHubRedirect sends the browser to GitHub's consent screen.
func (s *Server) handleGitHubRedirect(w http.ResponseWriter, r *http.Request) {
	if s.cfg.GitHubClientID == "" {
		s.errorResponse(w, http.StatusNotImplemented, "GitHub OAuth is not configured")
		return
	}

	params := url.Values{}
	params.Set("client_id", s.cfg.GitHubClientID)
	params.Set("scope", "read:user user:email")

	http.Redirect(w, r, githubAuthorizeURL+"?"+params.Encode(), http.StatusFound)
}

// handleGitHubCallback exchanges the OAuth code, upserts the user and
// redirects to the frontend with a session token.
func (s *Server) handleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		s.errorResponse(w, http.StatusBadRequest, "missing code parameter")
		return
	}

	accessToken, err := s.exchangeOAuthCode(r.Context(), code)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "GitHub token exchange failed")
		return
	}

	profile, err := fetchGitHubProfile(r.Context(), accessToken)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "failed to fetch GitHub profile")
		return
	}

	name := profile.Name
	if name == "" {
		name = profile.Login
	}
	userID, err := s.db.UpsertGitHubUser(r.Context(),
		profile.ID, profile.Login, name, profile.Email, profile.AvatarURL, accessToken)
	if err != nil {
		s.domainError(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	redirect := strings.TrimSuffix(s.cfg.FrontendURL, "/") + "/auth/callback?token=" + url.QueryEscape(token)
	http.Redirect(w, r, redirect, http.StatusFound)
}

func (s *Server) exchangeOAuthCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", s.cfg.GitHubClientID)
	form.Set("client_secret", s.cfg.GitHubClientSecret)
	form.Set("code", code)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, githubTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.Error != "" || payload.AccessToken == "" {
		return "", fmt.Errorf("token exchange rejected: %s", payload.Error)
	}
	return payload.AccessToken, nil
}

type githubProfile struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

func fetchGitHubProfile(ctx context.Context, accessToken string) (*githubProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, githubUserURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile request returned status %d", resp.StatusCode)
	}

	var profile githubProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	if profile.Login == "" {
		return nil, fmt.Errorf("profile response missing login")
	}
	return &profile, nil
}
