// Package server provides the HTTP REST API for GitCompass.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rohitkatore/gitCompass/internal/aiengine"
	"github.com/rohitkatore/gitCompass/internal/config"
	"github.com/rohitkatore/gitCompass/internal/db"
	"github.com/rohitkatore/gitCompass/internal/fetch"
	"github.com/rohitkatore/gitCompass/internal/githubapi"
	"github.com/rohitkatore/gitCompass/internal/guide"
	"github.com/rohitkatore/gitCompass/internal/llm"
	"github.com/rohitkatore/gitCompass/internal/recommend"
	"github.com/rohitkatore/gitCompass/internal/server/middleware"
	"github.com/rohitkatore/gitCompass/internal/server/ratelimit"
	"github.com/rohitkatore/gitCompass/internal/skills"
)

// Server is the GitCompass HTTP server and its wired services.
type Server struct {
	httpServer  *http.Server
	cfg         *config.Config
	db          *db.DB
	github      *githubapi.Client
	aiEngine    *aiengine.Client // nil when no engine is configured
	gemini      *llm.GeminiGuide // nil when no API key is configured
	recommender *recommend.Orchestrator
	guider      *guide.Orchestrator
	skills      *skills.Service
	fetcher     *fetch.Fetcher
	jwtService  *JWTService
	passwords   *config.PasswordConfig
	rateLimiter *ratelimit.Limiter
	validator   *validator.Validate
}

// New wires the services and builds the server. The AI engine and Gemini are
// both optional; with neither configured, recommendations come from GitHub
// search and guides from the template.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		db:        database,
		github:    githubapi.NewClient(cfg.GitHubToken),
		skills:    skills.NewService(database),
		fetcher:   fetch.NewFetcher(cfg.UseBrowser),
		validator: validator.New(),
	}

	if cfg.AIEngineURL != "" {
		s.aiEngine = aiengine.NewClient(cfg.AIEngineURL)
	}
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiGuide(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.gemini = gemini
	}

	// The recommend orchestrator only takes the engine; the guide
	// orchestrator prefers the engine and falls back to direct Gemini.
	var matcher recommend.AIMatcher
	if s.aiEngine != nil {
		matcher = s.aiEngine
	}
	s.recommender = recommend.New(matcher, s.github)

	var generator guide.Generator
	switch {
	case s.aiEngine != nil:
		generator = s.aiEngine
	case s.gemini != nil:
		generator = s.gemini
	}
	s.guider = guide.New(generator)

	passwords, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.passwords = passwords

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	s.rateLimiter = ratelimit.NewLimiter()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		// Recommendation requests can hold an AI engine call open for two
		// minutes; the write timeout must outlast it.
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the URL mux. Protected routes sit behind the auth middleware.
func (s *Server) routes() *http.ServeMux {
	authed := middleware.Auth(s.jwtService.AsTokenValidator())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Auth
	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/v1/auth/github", s.handleGitHubRedirect)
	mux.HandleFunc("GET /api/v1/auth/github/callback", s.handleGitHubCallback)
	mux.Handle("GET /api/v1/users/me", authed(http.HandlerFunc(s.handleGetMe)))
	mux.Handle("GET /api/v1/users/me/contributions", authed(http.HandlerFunc(s.handleContributions)))

	// Resume ingestion
	mux.Handle("POST /api/v1/resume", authed(http.HandlerFunc(s.handleUploadResume)))
	mux.Handle("POST /api/v1/resume/url", authed(http.HandlerFunc(s.handleResumeFromURL)))

	// Skills
	mux.Handle("GET /api/v1/skills", authed(http.HandlerFunc(s.handleListSkills)))
	mux.Handle("POST /api/v1/skills", authed(http.HandlerFunc(s.handleAddSkills)))
	mux.Handle("DELETE /api/v1/skills/{name}", authed(http.HandlerFunc(s.handleDeleteSkill)))
	mux.Handle("DELETE /api/v1/skills", authed(http.HandlerFunc(s.handleClearSkills)))

	// Orchestrators
	mux.Handle("GET /api/v1/recommendations", authed(http.HandlerFunc(s.handleRecommendations)))
	mux.Handle("POST /api/v1/guide", authed(http.HandlerFunc(s.handleGuide)))

	// GitHub passthrough
	mux.Handle("GET /api/v1/repos/{owner}/{repo}/issues", authed(http.HandlerFunc(s.handleListIssues)))

	// Saved repositories
	mux.Handle("GET /api/v1/repos/saved", authed(http.HandlerFunc(s.handleListSavedRepos)))
	mux.Handle("POST /api/v1/repos/saved", authed(http.HandlerFunc(s.handleSaveRepo)))
	mux.Handle("DELETE /api/v1/repos/saved/{id}", authed(http.HandlerFunc(s.handleDeleteSavedRepo)))
	mux.Handle("POST /api/v1/repos/saved/refresh", authed(http.HandlerFunc(s.handleRefreshSavedRepos)))

	return mux
}

// Start listens until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[server] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[server] error: %v", err)
		}
	}()

	<-stop
	log.Println("[server] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	if s.gemini != nil {
		_ = s.gemini.Close()
	}
	s.db.Close()
	log.Println("[server] stopped")
	return nil
}

// withCORS allows the configured frontend origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.FrontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, limit, remaining := s.rateLimiter.Allow(clientID(r), r.URL.Path)

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		if !allowed {
			log.Printf("[rate-limit] limit exceeded for %s on %s", clientID(r), r.URL.Path)
			s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[server] error encoding JSON response: %v", err)
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// domainError maps a service error to its HTTP status and writes it.
func (s *Server) domainError(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}
