// Package aiengine provides the HTTP client for the external AI engine:
// resume skill extraction, semantic repository matching and contribution
// guide generation. The engine is opaque and may be unavailable; every
// failure mode surfaces as *Error so callers can fall back.
package aiengine

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rohitkatore/gitCompass/internal/types"
	"github.com/xeipuuv/gojsonschema"
)

// Per-call timeouts. The engine loads models lazily, so the first matching
// call after a cold start can take most of a minute; 120s tolerates that.
// Guide generation is a single LLM round trip and gets a tighter bound.
// Calls are never retried.
const (
	ExtractTimeout   = 120 * time.Second
	RecommendTimeout = 120 * time.Second
	GuideTimeout     = 60 * time.Second
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Client calls the AI engine over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the AI engine at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		// Timeouts are applied per call via context; the transport-level
		// timeout is a backstop.
		httpClient: &http.Client{Timeout: RecommendTimeout + 10*time.Second},
	}
}

// ExtractSkills uploads a resume document and returns the recognized skills
// plus the raw extracted text.
func (c *Client) ExtractSkills(ctx context.Context, filename string, file io.Reader) (*types.Extraction, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, &Error{Operation: "extract-skills", Message: "failed to build multipart body", Cause: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, &Error{Operation: "extract-skills", Message: "failed to read upload", Cause: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Operation: "extract-skills", Message: "failed to finalize multipart body", Cause: err}
	}

	body, err := c.post(ctx, "extract-skills", "/api/extract-skills", &buf, mw.FormDataContentType(), ExtractTimeout)
	if err != nil {
		return nil, err
	}
	if err := c.validate("extract-skills", "schemas/extract_response.json", body); err != nil {
		return nil, err
	}

	var raw struct {
		Skills []struct {
			Name       string  `json:"name"`
			Confidence float64 `json:"confidence"`
			Category   string  `json:"category"`
		} `json:"skills"`
		RawText string `json:"rawText"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &Error{Operation: "extract-skills", Message: "failed to decode response", Cause: err}
	}

	extraction := &types.Extraction{RawText: raw.RawText, Skills: make([]types.Skill, 0, len(raw.Skills))}
	for _, s := range raw.Skills {
		extraction.Skills = append(extraction.Skills, types.Skill{
			Name:       s.Name,
			Confidence: int(math.Round(s.Confidence)),
			Category:   s.Category,
		})
	}
	return extraction, nil
}

// Recommend asks the engine to rank repositories for the given skill names.
// The engine's ranking is returned verbatim; there is no local re-ranking.
func (c *Client) Recommend(ctx context.Context, skills []string, userID string) ([]types.Recommendation, error) {
	payload, err := json.Marshal(map[string]any{"skills": skills, "userId": userID})
	if err != nil {
		return nil, &Error{Operation: "recommend", Message: "failed to encode request", Cause: err}
	}

	body, err := c.post(ctx, "recommend", "/api/recommend", bytes.NewReader(payload), "application/json", RecommendTimeout)
	if err != nil {
		return nil, err
	}
	if err := c.validate("recommend", "schemas/recommend_response.json", body); err != nil {
		return nil, err
	}

	var raw struct {
		Recommendations []struct {
			ID              int64    `json:"id"`
			Name            string   `json:"name"`
			FullName        string   `json:"fullName"`
			Description     *string  `json:"description"`
			Stars           int      `json:"stars"`
			Forks           int      `json:"forks"`
			Language        *string  `json:"language"`
			Topics          []string `json:"topics"`
			MatchScore      float64  `json:"matchScore"`
			MatchReason     string   `json:"matchReason"`
			GoodFirstIssues int      `json:"goodFirstIssues"`
			Difficulty      string   `json:"difficulty"`
			Owner           struct {
				Login     string `json:"login"`
				AvatarURL string `json:"avatarUrl"`
			} `json:"owner"`
		} `json:"recommendations"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &Error{Operation: "recommend", Message: "failed to decode response", Cause: err}
	}

	recs := make([]types.Recommendation, 0, len(raw.Recommendations))
	for _, r := range raw.Recommendations {
		rec := types.Recommendation{
			ID:              r.ID,
			Name:            r.Name,
			FullName:        r.FullName,
			Stars:           r.Stars,
			Forks:           r.Forks,
			Topics:          r.Topics,
			MatchScore:      int(math.Round(r.MatchScore)),
			MatchReason:     r.MatchReason,
			GoodFirstIssues: r.GoodFirstIssues,
			Difficulty:      r.Difficulty,
			Owner:           types.RepoOwner{Login: r.Owner.Login, AvatarURL: r.Owner.AvatarURL},
		}
		if r.Description != nil {
			rec.Description = *r.Description
		}
		if r.Language != nil {
			rec.Language = *r.Language
		}
		if rec.Topics == nil {
			rec.Topics = []string{}
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// GenerateGuide asks the engine for an issue-specific contribution guide.
func (c *Client) GenerateGuide(ctx context.Context, repo types.RepositoryContext, issue *types.IssueContext, skills []types.Skill, userID string) (*types.Guide, error) {
	req := map[string]any{
		"repository": repo,
		"userSkills": skills,
		"userId":     userID,
	}
	if issue != nil {
		req["issue"] = issue
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &Error{Operation: "generate-guide", Message: "failed to encode request", Cause: err}
	}

	body, err := c.post(ctx, "generate-guide", "/api/generate-guide", bytes.NewReader(payload), "application/json", GuideTimeout)
	if err != nil {
		return nil, err
	}
	if err := c.validate("generate-guide", "schemas/guide_response.json", body); err != nil {
		return nil, err
	}

	var raw struct {
		Guide types.Guide `json:"guide"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &Error{Operation: "generate-guide", Message: "failed to decode response", Cause: err}
	}
	return &raw.Guide, nil
}

// post issues a bounded POST and returns the response body on 2xx.
func (c *Client) post(ctx context.Context, op, path string, body io.Reader, contentType string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, &Error{Operation: op, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Operation: op, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Operation: op, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Operation: op, StatusCode: resp.StatusCode, Message: bodySnippet(respBody)}
	}
	return respBody, nil
}

// validate checks a response body against one of the embedded schemas.
// A body that does not match is treated the same as an unreachable engine:
// the caller falls back rather than passing unexpected shapes through.
func (c *Client) validate(op, schemaPath string, body []byte) error {
	schemaBytes, err := schemaFS.ReadFile(schemaPath)
	if err != nil {
		return &Error{Operation: op, Message: "failed to load response schema", Cause: err}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(body),
	)
	if err != nil {
		return &Error{Operation: op, Message: "malformed response body", Cause: err}
	}
	if !result.Valid() {
		var sb strings.Builder
		for i, desc := range result.Errors() {
			if i > 0 {
				sb.WriteString("; ")
			}
			fmt.Fprintf(&sb, "%s: %s", desc.Field(), desc.Description())
		}
		return &Error{Operation: op, Message: "response failed schema validation: " + sb.String()}
	}
	return nil
}

func bodySnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 300 {
		return s[:300] + "..."
	}
	return s
}
