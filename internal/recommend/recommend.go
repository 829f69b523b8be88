// Package recommend matches a user's skills to open-source repositories.
// The primary path delegates ranking to the AI engine; when the engine is
// unavailable the orchestrator substitutes a deterministic GitHub search
// ranked by stars.
package recommend

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/rohitkatore/gitCompass/internal/githubapi"
	"github.com/rohitkatore/gitCompass/internal/types"
)

// Source tags where a recommendation set came from, so clients can render a
// lower-confidence indicator for fallback results.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// topSkillCount is how many skills form the query basis.
const topSkillCount = 5

// fallbackLimit caps the number of fallback results.
const fallbackLimit = 10

// AIMatcher is the AI engine's recommend operation.
type AIMatcher interface {
	Recommend(ctx context.Context, skills []string, userID string) ([]types.Recommendation, error)
}

// RepoSearcher is the GitHub repository search used by the fallback path.
type RepoSearcher interface {
	SearchRepositories(ctx context.Context, q githubapi.SearchQuery) (*githubapi.SearchResult, error)
}

// Orchestrator produces ranked repository recommendations.
type Orchestrator struct {
	ai     AIMatcher // nil when no AI engine is configured
	github RepoSearcher
}

// New creates an Orchestrator. ai may be nil; every request then uses the
// GitHub fallback directly.
func New(ai AIMatcher, github RepoSearcher) *Orchestrator {
	return &Orchestrator{ai: ai, github: github}
}

// Result is a ranked recommendation list plus its provenance.
type Result struct {
	Recommendations []types.Recommendation `json:"recommendations"`
	Source          Source                 `json:"source"`
}

// Recommend returns ranked repository recommendations for a user's skills.
// Read-only: no persisted state is touched. Fails with *ErrNoSkills before
// any network call when the skill list is empty, and with *ErrUpstream when
// both the AI engine and the GitHub fallback fail.
func (o *Orchestrator) Recommend(ctx context.Context, userID string, skills []types.Skill) (*Result, error) {
	if len(skills) == 0 {
		return nil, &ErrNoSkills{}
	}

	top := TopSkills(skills, topSkillCount)

	if o.ai != nil {
		recs, err := o.ai.Recommend(ctx, top, userID)
		if err == nil && len(recs) > 0 {
			return &Result{Recommendations: recs, Source: SourceAI}, nil
		}
		// Any engine failure (timeout, refusal, non-2xx, schema-invalid
		// body, empty result) is masked by the fallback.
		log.Printf("[recommend] AI engine unavailable, falling back to GitHub search: %v", err)
	}

	recs, err := o.fallback(ctx, top)
	if err != nil {
		return nil, &ErrUpstream{Cause: err}
	}
	return &Result{Recommendations: recs, Source: SourceFallback}, nil
}

// TopSkills selects up to n skill names by descending confidence, breaking
// ties by insertion order.
func TopSkills(skills []types.Skill, n int) []string {
	ordered := make([]types.Skill, len(skills))
	copy(ordered, skills)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Confidence > ordered[j].Confidence
	})

	if len(ordered) > n {
		ordered = ordered[:n]
	}
	names := make([]string, 0, len(ordered))
	for _, s := range ordered {
		if name := strings.TrimSpace(s.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// fallback searches GitHub for repositories matching any of the skill names
// that have at least one open good-first-issue, ranked by stars.
func (o *Orchestrator) fallback(ctx context.Context, skillNames []string) ([]types.Recommendation, error) {
	query := strings.Join(skillNames, " OR ") + " good-first-issues:>0"

	result, err := o.github.SearchRepositories(ctx, githubapi.SearchQuery{
		Query:   query,
		Sort:    "stars",
		Order:   "desc",
		PerPage: fallbackLimit,
	})
	if err != nil {
		return nil, err
	}

	recs := make([]types.Recommendation, 0, len(result.Items))
	for rank, repo := range result.Items {
		if rank >= fallbackLimit {
			break
		}
		recs = append(recs, types.Recommendation{
			ID:          repo.ID,
			Name:        repo.Name,
			FullName:    repo.FullName,
			Description: repo.Description,
			Stars:       repo.Stars,
			Forks:       repo.Forks,
			Language:    repo.Language,
			Topics:      topicSample(repo.Topics),
			UpdatedAt:   repo.UpdatedAt.Format("2006-01-02"),
			MatchScore:  fallbackScore(rank),
			MatchReason: matchReason(skillNames, repo),
			// The search filter guarantees at least one open good first
			// issue; the open-issue count is the only honest proxy we have
			// without a per-repo issue query.
			GoodFirstIssues: clampIssues(repo.OpenIssues),
			Difficulty:      classifyDifficulty(repo.Stars, repo.Forks),
			Owner:           types.RepoOwner{Login: repo.Owner.Login, AvatarURL: repo.Owner.AvatarURL},
		})
	}
	return recs, nil
}

// fallbackScore synthesizes a plausible match score for a star-ranked hit:
// 95 for the top result, stepping down 5 per rank. Monotonically
// non-increasing by construction.
func fallbackScore(rank int) int {
	score := 95 - 5*rank
	if score < 0 {
		score = 0
	}
	return score
}

// matchReason names the skills that textually appear in the repository's
// name, description, language or topics; when none do, it falls back to the
// top-ranked skill.
func matchReason(skillNames []string, repo githubapi.Repository) string {
	haystack := strings.ToLower(strings.Join([]string{
		repo.Name, repo.Description, repo.Language, strings.Join(repo.Topics, " "),
	}, " "))

	var matched []string
	for _, name := range skillNames {
		if strings.Contains(haystack, strings.ToLower(name)) {
			matched = append(matched, name)
		}
	}

	switch {
	case len(matched) == 1:
		return "Matches your " + matched[0] + " skills"
	case len(matched) > 1:
		return "Matches your " + strings.Join(matched[:2], ", ") + " skills"
	case len(skillNames) > 0:
		return "Matches your " + skillNames[0] + " skills"
	default:
		return "Good match based on your skill profile"
	}
}

// classifyDifficulty estimates contribution difficulty from project scale.
// Deliberately coarse but deterministic.
func classifyDifficulty(stars, forks int) string {
	switch {
	case stars > 50000 || forks > 10000:
		return "Hard"
	case stars > 10000 || forks > 2000:
		return "Medium"
	default:
		return "Easy"
	}
}

func clampIssues(openIssues int) int {
	if openIssues > 50 {
		return 50
	}
	if openIssues < 1 {
		return 1
	}
	return openIssues
}

func topicSample(topics []string) []string {
	if len(topics) > 5 {
		return topics[:5]
	}
	if topics == nil {
		return []string{}
	}
	return topics
}
