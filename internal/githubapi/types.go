package githubapi

import "time"

// Owner is the account that owns a repository.
type Owner struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatarUrl"`
	Type      string `json:"type"`
}

// Repository is a repository summary with the fields GitCompass uses.
type Repository struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"fullName"`
	Description string    `json:"description,omitempty"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	OpenIssues  int       `json:"openIssues"`
	Language    string    `json:"language,omitempty"`
	Topics      []string  `json:"topics"`
	HTMLURL     string    `json:"htmlUrl"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Owner       Owner     `json:"owner"`
}

// SearchResult is a page of repository search hits.
type SearchResult struct {
	TotalCount int          `json:"totalCount"`
	Items      []Repository `json:"items"`
}

// Issue is an issue summary.
type Issue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	State     string    `json:"state"`
	Labels    []string  `json:"labels"`
	Comments  int       `json:"comments"`
	HTMLURL   string    `json:"htmlUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// CalendarDay is a single day of the contribution calendar.
type CalendarDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Calendar is a user's contribution calendar.
type Calendar struct {
	Total int           `json:"total"`
	Days  []CalendarDay `json:"days"`
}

// Wire shapes from the GitHub REST API. Mapped exhaustively to the exported
// types above; unexpected shapes surface as decode errors instead of passing
// through as zero values.

type repoJSON struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	FullName        string     `json:"full_name"`
	Description     *string    `json:"description"`
	StargazersCount int        `json:"stargazers_count"`
	ForksCount      int        `json:"forks_count"`
	OpenIssuesCount int        `json:"open_issues_count"`
	Language        *string    `json:"language"`
	Topics          []string   `json:"topics"`
	HTMLURL         string     `json:"html_url"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Owner           *ownerJSON `json:"owner"`
}

type ownerJSON struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	Type      string `json:"type"`
}

type searchJSON struct {
	TotalCount int        `json:"total_count"`
	Items      []repoJSON `json:"items"`
}

type issueJSON struct {
	Number    int         `json:"number"`
	Title     string      `json:"title"`
	State     string      `json:"state"`
	Labels    []labelJSON `json:"labels"`
	Comments  int         `json:"comments"`
	HTMLURL   string      `json:"html_url"`
	CreatedAt time.Time   `json:"created_at"`
}

type labelJSON struct {
	Name string `json:"name"`
}

func (r *repoJSON) toRepository() Repository {
	repo := Repository{
		ID:         r.ID,
		Name:       r.Name,
		FullName:   r.FullName,
		Stars:      r.StargazersCount,
		Forks:      r.ForksCount,
		OpenIssues: r.OpenIssuesCount,
		Topics:     r.Topics,
		HTMLURL:    r.HTMLURL,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.Description != nil {
		repo.Description = *r.Description
	}
	if r.Language != nil {
		repo.Language = *r.Language
	}
	if r.Topics == nil {
		repo.Topics = []string{}
	}
	if r.Owner != nil {
		repo.Owner = Owner{Login: r.Owner.Login, AvatarURL: r.Owner.AvatarURL, Type: r.Owner.Type}
	}
	return repo
}

func (i *issueJSON) toIssue() Issue {
	labels := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		labels = append(labels, l.Name)
	}
	return Issue{
		Number:    i.Number,
		Title:     i.Title,
		State:     i.State,
		Labels:    labels,
		Comments:  i.Comments,
		HTMLURL:   i.HTMLURL,
		CreatedAt: i.CreatedAt,
	}
}
