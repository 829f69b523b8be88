// Package githubapi provides a client for the GitHub REST and GraphQL APIs:
// repository search, issue listing and the contribution calendar.
package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds a single API call. Calls are never retried; a
// timeout is treated like any other upstream failure.
const DefaultTimeout = 30 * time.Second

const userAgent = "GitCompass/1.0"

const (
	defaultBaseURL    = "https://api.github.com"
	defaultGraphQLURL = "https://api.github.com/graphql"
)

// Client issues GitHub API calls. A nil token is permitted: requests then
// run unauthenticated at GitHub's lower rate limits.
type Client struct {
	httpClient *http.Client
	baseURL    string
	graphqlURL string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the REST and GraphQL endpoints (used by tests).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(base, "/")
		c.graphqlURL = c.baseURL + "/graphql"
	}
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a GitHub API client with an optional bearer token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    defaultBaseURL,
		graphqlURL: defaultGraphQLURL,
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a copy of the client that authenticates with the given
// user token. Used to act on behalf of a signed-in user.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// SearchQuery describes a repository search.
type SearchQuery struct {
	Query   string
	Sort    string // "stars", "forks", "updated"
	Order   string // "asc" or "desc"
	Page    int
	PerPage int
}

// SearchRepositories runs GET /search/repositories.
func (c *Client) SearchRepositories(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	if q.Query == "" {
		return nil, &APIError{Operation: "search", Message: "empty query"}
	}

	params := url.Values{}
	params.Set("q", q.Query)
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	if q.Order != "" {
		params.Set("order", q.Order)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(q.PerPage))
	}

	var raw searchJSON
	u := c.baseURL + "/search/repositories?" + params.Encode()
	if err := c.getJSON(ctx, "search", u, &raw); err != nil {
		return nil, err
	}

	result := &SearchResult{TotalCount: raw.TotalCount, Items: make([]Repository, 0, len(raw.Items))}
	for i := range raw.Items {
		result.Items = append(result.Items, raw.Items[i].toRepository())
	}
	return result, nil
}

// IssueListOptions filters an issue listing.
type IssueListOptions struct {
	Labels  []string
	State   string // "open", "closed", "all"
	PerPage int
}

// ListIssues runs GET /repos/{owner}/{repo}/issues.
func (c *Client) ListIssues(ctx context.Context, owner, repo string, opts IssueListOptions) ([]Issue, error) {
	if owner == "" || repo == "" {
		return nil, &APIError{Operation: "issues", Message: "owner and repo are required"}
	}

	params := url.Values{}
	if len(opts.Labels) > 0 {
		params.Set("labels", strings.Join(opts.Labels, ","))
	}
	if opts.State != "" {
		params.Set("state", opts.State)
	}
	if opts.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(opts.PerPage))
	}

	u := fmt.Sprintf("%s/repos/%s/%s/issues", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var raw []issueJSON
	if err := c.getJSON(ctx, "issues", u, &raw); err != nil {
		return nil, err
	}

	issues := make([]Issue, 0, len(raw))
	for i := range raw {
		issues = append(issues, raw[i].toIssue())
	}
	return issues, nil
}

// GetRepository runs GET /repos/{owner}/{repo}.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	if owner == "" || repo == "" {
		return nil, &APIError{Operation: "repo", Message: "owner and repo are required"}
	}

	var raw repoJSON
	u := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))
	if err := c.getJSON(ctx, "repo", u, &raw); err != nil {
		return nil, err
	}
	mapped := raw.toRepository()
	return &mapped, nil
}

// getJSON performs an authenticated GET and decodes the response body.
func (c *Client) getJSON(ctx context.Context, op, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &APIError{Operation: op, URL: u, Message: "failed to create request", Cause: err}
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Operation: op, URL: u, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Operation: op, URL: u, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{Operation: op, URL: u, StatusCode: resp.StatusCode, Message: snippet(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{Operation: op, URL: u, Message: "failed to decode response", Cause: err}
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 300 {
		return s[:300] + "..."
	}
	return s
}
