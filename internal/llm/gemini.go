// Package llm provides a direct Gemini-backed guide generator, used when the
// service runs without the separate AI engine but has a Gemini API key.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/rohitkatore/gitCompass/internal/types"
)

// DefaultModel is the Gemini model used for guide generation.
const DefaultModel = "gemini-1.5-flash"

// GeminiGuide generates contribution guides with the Gemini API.
type GeminiGuide struct {
	client *genai.Client
	model  string
}

// NewGeminiGuide creates a guide generator backed by Gemini.
func NewGeminiGuide(ctx context.Context, apiKey string) (*GeminiGuide, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGuide{client: client, model: DefaultModel}, nil
}

// Close releases the underlying API client.
func (g *GeminiGuide) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// GenerateGuide produces a contribution guide as structured JSON.
func (g *GeminiGuide) GenerateGuide(ctx context.Context, repo types.RepositoryContext, issue *types.IssueContext, skills []types.Skill, userID string) (*types.Guide, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(guidePrompt(repo, issue, skills)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate guide: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	var guide types.Guide
	if err := json.Unmarshal([]byte(cleanJSONBlock(text)), &guide); err != nil {
		return nil, fmt.Errorf("failed to decode guide JSON: %w", err)
	}
	if guide.Summary == "" || len(guide.GettingStarted) == 0 {
		return nil, fmt.Errorf("guide response missing required sections")
	}
	return &guide, nil
}

func guidePrompt(repo types.RepositoryContext, issue *types.IssueContext, skills []types.Skill) string {
	var sb strings.Builder
	sb.WriteString("You are an open-source mentor. Write a contribution guide for the repository ")
	sb.WriteString(repo.FullName)
	if repo.Description != "" {
		fmt.Fprintf(&sb, " (%s)", repo.Description)
	}
	if repo.Language != "" {
		fmt.Fprintf(&sb, ". Primary language: %s", repo.Language)
	}
	sb.WriteString(".\n")

	if issue != nil {
		fmt.Fprintf(&sb, "Target issue #%d: %s. Labels: %s.\n",
			issue.Number, issue.Title, strings.Join(issue.Labels, ", "))
	}
	if len(skills) > 0 {
		names := make([]string, 0, len(skills))
		for _, s := range skills {
			names = append(names, s.Name)
		}
		fmt.Fprintf(&sb, "The contributor's skills: %s.\n", strings.Join(names, ", "))
	}

	sb.WriteString(`Respond with a single JSON object with keys:
"summary" (string), "issueAnalysis" (object with "difficulty", "estimatedTime", "labels", "skillsNeeded"; omit if no issue given), "gettingStarted" (array of step strings), "codeConventions" (array of strings), "tips" (array of strings), "resources" (array of {"title","url"}).`)
	return sb.String()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}

// cleanJSONBlock strips markdown code fences some models wrap JSON in.
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
