package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitkatore/gitCompass/internal/githubapi"
	"github.com/rohitkatore/gitCompass/internal/types"
)

type fakeMatcher struct {
	recs  []types.Recommendation
	err   error
	calls int
}

func (f *fakeMatcher) Recommend(_ context.Context, _ []string, _ string) ([]types.Recommendation, error) {
	f.calls++
	return f.recs, f.err
}

type fakeSearcher struct {
	result *githubapi.SearchResult
	err    error
	calls  int
	query  githubapi.SearchQuery
}

func (f *fakeSearcher) SearchRepositories(_ context.Context, q githubapi.SearchQuery) (*githubapi.SearchResult, error) {
	f.calls++
	f.query = q
	return f.result, f.err
}

func pythonRepos(n int) []githubapi.Repository {
	repos := make([]githubapi.Repository, 0, n)
	stars := 100000
	for i := 0; i < n; i++ {
		repos = append(repos, githubapi.Repository{
			ID:          int64(i + 1),
			Name:        "pyrepo",
			FullName:    "org/pyrepo",
			Description: "A Python toolkit",
			Stars:       stars - i*1000,
			Forks:       500,
			OpenIssues:  30,
			Language:    "Python",
			Topics:      []string{"python"},
			UpdatedAt:   time.Now(),
			Owner:       githubapi.Owner{Login: "org"},
		})
	}
	return repos
}

func TestRecommendEmptySkills(t *testing.T) {
	ai := &fakeMatcher{}
	gh := &fakeSearcher{}
	o := New(ai, gh)

	_, err := o.Recommend(context.Background(), "u1", nil)

	var noSkills *ErrNoSkills
	require.ErrorAs(t, err, &noSkills)
	assert.Zero(t, ai.calls, "no upstream call should happen for an empty profile")
	assert.Zero(t, gh.calls)
}

func TestRecommendAIPath(t *testing.T) {
	aiRecs := []types.Recommendation{
		{ID: 7, Name: "repo-a", FullName: "x/repo-a", MatchScore: 88, MatchReason: "semantic match"},
		{ID: 8, Name: "repo-b", FullName: "x/repo-b", MatchScore: 71, MatchReason: "semantic match"},
	}
	ai := &fakeMatcher{recs: aiRecs}
	gh := &fakeSearcher{}
	o := New(ai, gh)

	result, err := o.Recommend(context.Background(), "u1", []types.Skill{{Name: "Go", Confidence: 90}})

	require.NoError(t, err)
	assert.Equal(t, SourceAI, result.Source)
	assert.Equal(t, aiRecs, result.Recommendations, "engine ranking must pass through verbatim")
	assert.Zero(t, gh.calls, "fallback must not run when the engine succeeds")
}

func TestRecommendFallbackWhenAIDown(t *testing.T) {
	ai := &fakeMatcher{err: errors.New("connection refused")}
	gh := &fakeSearcher{result: &githubapi.SearchResult{TotalCount: 12, Items: pythonRepos(12)}}
	o := New(ai, gh)

	result, err := o.Recommend(context.Background(), "u1", []types.Skill{{Name: "Python", Confidence: 90}})

	require.NoError(t, err)
	assert.Equal(t, SourceFallback, result.Source)
	assert.LessOrEqual(t, len(result.Recommendations), 10)
	assert.NotEmpty(t, result.Recommendations)

	assert.Contains(t, gh.query.Query, "Python")
	assert.Contains(t, gh.query.Query, "good-first-issues:>0")
	assert.Equal(t, "stars", gh.query.Sort)
	assert.Equal(t, "desc", gh.query.Order)

	for _, rec := range result.Recommendations {
		assert.Contains(t, rec.MatchReason, "Python")
	}
}

func TestRecommendFallbackScoresMonotonic(t *testing.T) {
	ai := &fakeMatcher{err: errors.New("timeout")}
	gh := &fakeSearcher{result: &githubapi.SearchResult{Items: pythonRepos(10)}}
	o := New(ai, gh)

	result, err := o.Recommend(context.Background(), "u1", []types.Skill{{Name: "Python", Confidence: 90}})
	require.NoError(t, err)

	prev := 101
	for _, rec := range result.Recommendations {
		assert.LessOrEqual(t, rec.MatchScore, prev)
		assert.GreaterOrEqual(t, rec.MatchScore, 0)
		prev = rec.MatchScore
	}
	assert.Equal(t, 95, result.Recommendations[0].MatchScore)
	assert.Equal(t, 90, result.Recommendations[1].MatchScore)
}

func TestRecommendEmptyAIResultFallsBack(t *testing.T) {
	ai := &fakeMatcher{recs: []types.Recommendation{}}
	gh := &fakeSearcher{result: &githubapi.SearchResult{Items: pythonRepos(3)}}
	o := New(ai, gh)

	result, err := o.Recommend(context.Background(), "u1", []types.Skill{{Name: "Python", Confidence: 90}})

	require.NoError(t, err)
	assert.Equal(t, SourceFallback, result.Source)
	assert.Len(t, result.Recommendations, 3)
}

func TestRecommendBothUpstreamsFail(t *testing.T) {
	ai := &fakeMatcher{err: errors.New("engine down")}
	gh := &fakeSearcher{err: errors.New("rate limited")}
	o := New(ai, gh)

	_, err := o.Recommend(context.Background(), "u1", []types.Skill{{Name: "Go", Confidence: 80}})

	var upstream *ErrUpstream
	require.ErrorAs(t, err, &upstream)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestRecommendNilAIUsesFallback(t *testing.T) {
	gh := &fakeSearcher{result: &githubapi.SearchResult{Items: pythonRepos(2)}}
	o := New(nil, gh)

	result, err := o.Recommend(context.Background(), "u1", []types.Skill{{Name: "Python", Confidence: 90}})

	require.NoError(t, err)
	assert.Equal(t, SourceFallback, result.Source)
}

func TestTopSkills(t *testing.T) {
	skills := []types.Skill{
		{Name: "Go", Confidence: 70},
		{Name: "Python", Confidence: 95},
		{Name: "Docker", Confidence: 70},
		{Name: "React", Confidence: 60},
		{Name: "SQL", Confidence: 80},
		{Name: "Rust", Confidence: 50},
		{Name: "AWS", Confidence: 90},
	}

	top := TopSkills(skills, 5)

	assert.Equal(t, []string{"Python", "AWS", "SQL", "Go", "Docker"}, top,
		"confidence descending, ties broken by insertion order")
}

func TestTopSkillsSkipsBlankNames(t *testing.T) {
	skills := []types.Skill{
		{Name: "  ", Confidence: 99},
		{Name: "Go", Confidence: 50},
	}
	assert.Equal(t, []string{"Go"}, TopSkills(skills, 5))
}

func TestClassifyDifficulty(t *testing.T) {
	tests := []struct {
		name     string
		stars    int
		forks    int
		expected string
	}{
		{"huge by stars", 60000, 100, "Hard"},
		{"huge by forks", 1000, 20000, "Hard"},
		{"mid by stars", 20000, 100, "Medium"},
		{"mid by forks", 1000, 3000, "Medium"},
		{"small", 500, 50, "Easy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyDifficulty(tt.stars, tt.forks))
		})
	}
}

func TestClampIssues(t *testing.T) {
	assert.Equal(t, 50, clampIssues(200))
	assert.Equal(t, 1, clampIssues(0))
	assert.Equal(t, 17, clampIssues(17))
}

func TestMatchReason(t *testing.T) {
	repo := githubapi.Repository{
		Name:        "fastapi",
		Description: "Modern Python web framework",
		Language:    "Python",
	}

	reason := matchReason([]string{"Python", "Go"}, repo)
	assert.Equal(t, "Matches your Python skills", reason)

	reason = matchReason([]string{"Rust", "Elixir"}, repo)
	assert.Equal(t, "Matches your Rust skills", reason, "falls back to the top skill")
}
