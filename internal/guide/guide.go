// Package guide produces step-by-step contribution guides for a repository,
// optionally targeted at a specific issue. The primary path delegates prose
// generation to an AI backend; when it is unavailable the orchestrator
// substitutes a deterministic template so the operation never fails for
// upstream reasons.
package guide

import (
	"context"
	"log"
	"strings"

	"github.com/rohitkatore/gitCompass/internal/types"
)

// Source tags where a guide came from.
type Source string

const (
	SourceAI       Source = "ai"
	SourceTemplate Source = "template"
)

// Generator is a backend capable of producing a contribution guide. Both the
// AI engine client and the direct Gemini provider satisfy it.
type Generator interface {
	GenerateGuide(ctx context.Context, repo types.RepositoryContext, issue *types.IssueContext, skills []types.Skill, userID string) (*types.Guide, error)
}

// Orchestrator produces contribution guides with template fallback.
type Orchestrator struct {
	gen Generator // nil when no AI backend is configured
}

// New creates an Orchestrator. gen may be nil; every request then uses the
// template directly.
func New(gen Generator) *Orchestrator {
	return &Orchestrator{gen: gen}
}

// Result is a guide plus its provenance.
type Result struct {
	Guide  *types.Guide `json:"guide"`
	Source Source       `json:"source"`
}

// Generate returns a contribution guide for the repository, targeted at issue
// when non-nil. Validation failures are the only error path; once input is
// valid a guide is always produced.
func (o *Orchestrator) Generate(ctx context.Context, userID string, repo types.RepositoryContext, issue *types.IssueContext, skills []types.Skill) (*Result, error) {
	if strings.TrimSpace(repo.FullName) == "" {
		return nil, &ErrMissingRepository{}
	}

	if o.gen != nil {
		g, err := o.gen.GenerateGuide(ctx, repo, issue, skills, userID)
		if err == nil && g != nil {
			return &Result{Guide: g, Source: SourceAI}, nil
		}
		log.Printf("[guide] AI backend unavailable, using template: %v", err)
	}

	return &Result{Guide: TemplateGuide(repo, issue), Source: SourceTemplate}, nil
}
