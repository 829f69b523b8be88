package types

import "fmt"

// RepositoryContext is the repository information a guide is generated from.
type RepositoryContext struct {
	FullName    string `json:"fullName" validate:"required"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stars"`
}

// Validate checks field constraints.
func (r *RepositoryContext) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid repository context: %w", err)
	}
	return nil
}

// IssueContext is the optional issue a guide is targeted at.
type IssueContext struct {
	Number     int      `json:"number"`
	Title      string   `json:"title"`
	Labels     []string `json:"labels"`
	Difficulty string   `json:"difficulty"`
	Comments   int      `json:"comments"`
}

// IssueAnalysis summarizes the targeted issue inside a guide.
type IssueAnalysis struct {
	Difficulty    string   `json:"difficulty"`
	EstimatedTime string   `json:"estimatedTime"`
	Labels        []string `json:"labels"`
	SkillsNeeded  []string `json:"skillsNeeded"`
}

// Resource is a titled link included in a guide.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Guide is a structured contribution guide. IssueAnalysis is nil for guides
// not targeted at a specific issue.
type Guide struct {
	Summary         string         `json:"summary"`
	IssueAnalysis   *IssueAnalysis `json:"issueAnalysis,omitempty"`
	GettingStarted  []string       `json:"gettingStarted"`
	CodeConventions []string       `json:"codeConventions"`
	Tips            []string       `json:"tips"`
	Resources       []Resource     `json:"resources"`
}
