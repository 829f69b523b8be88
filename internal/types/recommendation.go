package types

// RepoOwner identifies the account that owns a repository.
type RepoOwner struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatarUrl"`
}

// Recommendation is one ranked repository suggestion. MatchScore is 0-100;
// within a result set scores are non-increasing by rank.
type Recommendation struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"fullName"`
	Description     string    `json:"description"`
	Stars           int       `json:"stars"`
	Forks           int       `json:"forks"`
	Language        string    `json:"language"`
	Topics          []string  `json:"topics"`
	UpdatedAt       string    `json:"updatedAt,omitempty"`
	MatchScore      int       `json:"matchScore"`
	MatchReason     string    `json:"matchReason"`
	GoodFirstIssues int       `json:"goodFirstIssues"`
	Difficulty      string    `json:"difficulty"`
	Owner           RepoOwner `json:"owner"`
}
