// Package config provides configuration loading and validation for the
// GitCompass API server.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// Config holds the runtime configuration for the server. It is constructed
// once at startup and passed by reference; nothing reads process state after
// that.
type Config struct {
	// Server
	Port int `json:"port,omitempty"`

	// Stores and upstreams
	DatabaseURL string `json:"database_url,omitempty"`  // PostgreSQL connection URL
	AIEngineURL string `json:"ai_engine_url,omitempty"` // Base URL of the AI engine service

	// GitHub API
	GitHubToken        string `json:"github_token,omitempty"`         // Service-wide token (optional)
	GitHubClientID     string `json:"github_client_id,omitempty"`     // OAuth app client ID
	GitHubClientSecret string `json:"github_client_secret,omitempty"` // OAuth app client secret

	// Optional direct Gemini guide provider, used when no AI engine is deployed
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`

	// Frontend base URL for OAuth redirects and CORS
	FrontendURL string `json:"frontend_url,omitempty"`

	// Use a headless browser when fetching SPA resume/portfolio pages
	UseBrowser bool `json:"use_browser,omitempty"`
}

// Load builds a Config from an optional JSON file and the environment.
// Environment variables override file values. Pass an empty path to load
// from the environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = "http://localhost:5173"
	}

	return cfg, nil
}

// applyEnv overlays environment variables onto the config.
func (c *Config) applyEnv() {
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.AIEngineURL, "AI_ENGINE_URL")
	setString(&c.GitHubToken, "GITHUB_TOKEN")
	setString(&c.GitHubClientID, "GITHUB_CLIENT_ID")
	setString(&c.GitHubClientSecret, "GITHUB_CLIENT_SECRET")
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.FrontendURL, "FRONTEND_URL")

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("USE_BROWSER"); v != "" {
		c.UseBrowser = v == "1" || v == "true"
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks that the configuration is usable for serving.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port out of range: %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: database_url is required")
	}
	if c.AIEngineURL != "" {
		u, err := url.Parse(c.AIEngineURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: invalid ai_engine_url: %s", c.AIEngineURL)
		}
	}
	if c.GitHubClientID != "" && c.GitHubClientSecret == "" {
		return fmt.Errorf("config error: github_client_secret is required when github_client_id is set")
	}
	return nil
}
