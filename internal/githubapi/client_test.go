package githubapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRepositories(t *testing.T) {
	var gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/repositories", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotAuth = r.Header.Get("Authorization")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"total_count": 2,
			"items": []map[string]any{
				{
					"id": 1, "name": "flask", "full_name": "pallets/flask",
					"description": "web framework", "stargazers_count": 65000,
					"forks_count": 16000, "open_issues_count": 5,
					"language": "Python", "topics": []string{"python", "wsgi"},
					"owner": map[string]any{"login": "pallets", "avatar_url": "http://a"},
				},
				{
					"id": 2, "name": "noname", "full_name": "x/noname",
					"description": nil, "language": nil,
					"stargazers_count": 10, "forks_count": 1,
				},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("tok", WithBaseURL(srv.URL))
	result, err := c.SearchRepositories(context.Background(), SearchQuery{
		Query: "python good-first-issues:>0", Sort: "stars", Order: "desc", PerPage: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, "python good-first-issues:>0", gotQuery)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, 2, result.TotalCount)
	require.Len(t, result.Items, 2)

	assert.Equal(t, "pallets/flask", result.Items[0].FullName)
	assert.Equal(t, 65000, result.Items[0].Stars)
	assert.Equal(t, "pallets", result.Items[0].Owner.Login)

	// Nullable fields map to zero values, topics to an empty slice.
	assert.Empty(t, result.Items[1].Description)
	assert.Empty(t, result.Items[1].Language)
	assert.NotNil(t, result.Items[1].Topics)
}

func TestSearchRepositoriesEmptyQuery(t *testing.T) {
	c := NewClient("")
	_, err := c.SearchRepositories(context.Background(), SearchQuery{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "search", apiErr.Operation)
}

func TestSearchRepositoriesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"API rate limit exceeded"}`))
	}))
	defer srv.Close()

	c := NewClient("", WithBaseURL(srv.URL))
	_, err := c.SearchRepositories(context.Background(), SearchQuery{Query: "go"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "rate limit")
}

func TestListIssues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/pallets/flask/issues", r.URL.Path)
		assert.Equal(t, "good first issue", r.URL.Query().Get("labels"))
		assert.Equal(t, "open", r.URL.Query().Get("state"))

		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"number": 42, "title": "Fix docs", "state": "open",
				"labels":   []map[string]any{{"name": "good first issue"}, {"name": "docs"}},
				"comments": 3, "html_url": "http://x/42",
			},
		})
	}))
	defer srv.Close()

	c := NewClient("", WithBaseURL(srv.URL))
	issues, err := c.ListIssues(context.Background(), "pallets", "flask", IssueListOptions{
		Labels: []string{"good first issue"}, State: "open",
	})

	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 42, issues[0].Number)
	assert.Equal(t, []string{"good first issue", "docs"}, issues[0].Labels)
}

func TestGetRepository(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/x/y", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 9, "name": "y", "full_name": "x/y", "stargazers_count": 7,
		})
	}))
	defer srv.Close()

	c := NewClient("", WithBaseURL(srv.URL))
	repo, err := c.GetRepository(context.Background(), "x", "y")

	require.NoError(t, err)
	assert.Equal(t, int64(9), repo.ID)
	assert.Equal(t, 7, repo.Stars)
}

func TestContributionCalendar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/graphql", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req graphqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "octocat", req.Variables["login"])

		_, _ = w.Write([]byte(`{"data":{"user":{"contributionsCollection":{"contributionCalendar":{
			"totalContributions": 321,
			"weeks": [{"contributionDays": [
				{"date": "2026-01-01", "contributionCount": 2},
				{"date": "2026-01-02", "contributionCount": 0}
			]}]
		}}}}}`))
	}))
	defer srv.Close()

	c := NewClient("tok", WithBaseURL(srv.URL))
	cal, err := c.ContributionCalendar(context.Background(), "octocat")

	require.NoError(t, err)
	assert.Equal(t, 321, cal.Total)
	require.Len(t, cal.Days, 2)
	assert.Equal(t, "2026-01-01", cal.Days[0].Date)
	assert.Equal(t, 2, cal.Days[0].Count)
}

func TestContributionCalendarRequiresToken(t *testing.T) {
	c := NewClient("")
	_, err := c.ContributionCalendar(context.Background(), "octocat")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "token")
}

func TestWithTokenDoesNotMutateOriginal(t *testing.T) {
	base := NewClient("")
	clone := base.WithToken("user-token")

	assert.Empty(t, base.token)
	assert.Equal(t, "user-token", clone.token)
}
