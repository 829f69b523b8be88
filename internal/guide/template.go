package guide

import (
	"fmt"
	"strings"

	"github.com/rohitkatore/gitCompass/internal/types"
)

// Estimated completion times by issue difficulty.
const (
	timeEasy   = "1-3 hours"
	timeMedium = "3-8 hours"
	timeHard   = "1-3 days"
)

// TemplateGuide deterministically builds a contribution guide from repository
// and issue context. Pure string templating over validated inputs: identical
// input produces byte-identical output, and it cannot fail.
func TemplateGuide(repo types.RepositoryContext, issue *types.IssueContext) *types.Guide {
	repoName := repo.Name
	if repoName == "" {
		repoName = "this project"
	}
	language := repo.Language
	if language == "" {
		language = "the project's"
	}

	if issue == nil {
		return genericGuide(repo, repoName, language)
	}

	difficulty := strings.ToLower(strings.TrimSpace(issue.Difficulty))
	if difficulty == "" {
		difficulty = "medium"
	}

	estimated := timeMedium
	switch difficulty {
	case "easy":
		estimated = timeEasy
	case "hard":
		estimated = timeHard
	}

	opportunity := "an opportunity to contribute"
	for _, label := range issue.Labels {
		if strings.EqualFold(label, "good first issue") {
			opportunity = "a great first contribution opportunity"
			break
		}
	}

	var skillsNeeded []string
	if repo.Language != "" {
		skillsNeeded = []string{repo.Language}
	}

	return &types.Guide{
		Summary: fmt.Sprintf(
			"Issue #%d: %q is %s to %s. This %s difficulty issue has clear requirements and is actively maintained.",
			issue.Number, issue.Title, opportunity, repo.FullName, difficulty),
		IssueAnalysis: &types.IssueAnalysis{
			Difficulty:    difficulty,
			EstimatedTime: estimated,
			Labels:        issue.Labels,
			SkillsNeeded:  skillsNeeded,
		},
		GettingStarted: []string{
			"Fork the repository to your GitHub account",
			fmt.Sprintf("Clone your fork: `git clone https://github.com/YOUR_USERNAME/%s.git`", repoName),
			fmt.Sprintf("Read the README and install dependencies for %s", repoName),
			fmt.Sprintf("Create a new branch: `git checkout -b fix/issue-%d`", issue.Number),
			fmt.Sprintf("Read issue #%d thoroughly, including all comments", issue.Number),
			"Make your changes addressing the specific issue requirements",
			"Test your changes locally",
			fmt.Sprintf("Commit with a clear message: `git commit -m 'Fix #%d: brief description'`", issue.Number),
			fmt.Sprintf("Push to your fork: `git push origin fix/issue-%d`", issue.Number),
			fmt.Sprintf("Open a Pull Request referencing #%d", issue.Number),
		},
		CodeConventions: []string{
			"Follow the existing code style in the project",
			fmt.Sprintf("Use %s conventions consistently", language),
			"Write meaningful commit messages referencing the issue",
			"Add tests for new behavior when applicable",
			"Update documentation if you change functionality",
			"Keep changes focused on the specific issue",
		},
		Tips: []string{
			fmt.Sprintf("Comment on issue #%d to let maintainers know you're working on it", issue.Number),
			"Check if someone is already assigned before starting",
			"Ask questions in issue comments if requirements are unclear",
			fmt.Sprintf("Reference #%d in your PR title and description", issue.Number),
			"Be patient with maintainers - they are often volunteers",
		},
		Resources: []types.Resource{
			{Title: fmt.Sprintf("View Issue #%d", issue.Number),
				URL: fmt.Sprintf("https://github.com/%s/issues/%d", repo.FullName, issue.Number)},
			{Title: "Repository README",
				URL: fmt.Sprintf("https://github.com/%s#readme", repo.FullName)},
			{Title: "GitHub Pull Request Guide",
				URL: "https://docs.github.com/en/pull-requests"},
		},
	}
}

// genericGuide covers guide requests without a specific issue.
func genericGuide(repo types.RepositoryContext, repoName, language string) *types.Guide {
	description := repo.Description
	if description == "" {
		description = "an open-source project"
	}

	return &types.Guide{
		Summary: fmt.Sprintf(
			"%s is %s. With %s stars, it's a well-maintained project with an active community that welcomes new contributors.",
			repo.FullName, description, formatStars(repo.Stars)),
		GettingStarted: []string{
			"Fork the repository to your GitHub account",
			fmt.Sprintf("Clone your fork: `git clone https://github.com/YOUR_USERNAME/%s.git`", repoName),
			fmt.Sprintf("Read the README and install dependencies for %s", repoName),
			"Look for issues labeled 'good first issue' or 'help wanted'",
			"Create a new branch: `git checkout -b feature/your-feature-name`",
			"Make your changes following the project's coding standards",
			"Commit with a clear message and push to your fork",
			"Open a Pull Request on the original repository",
		},
		CodeConventions: []string{
			"Follow the existing code style in the project",
			fmt.Sprintf("Use %s conventions consistently", language),
			"Write meaningful commit messages",
			"Add tests for new behavior when applicable",
			"Keep changes focused and atomic",
		},
		Tips: []string{
			"Start by reading CONTRIBUTING.md if it exists",
			"Check if someone is already working on an issue before starting",
			"Start with documentation or test improvements if code changes seem daunting",
			"Be patient with maintainers - they are often volunteers",
		},
		Resources: []types.Resource{
			{Title: "Repository README",
				URL: fmt.Sprintf("https://github.com/%s#readme", repo.FullName)},
			{Title: "Good First Issues",
				URL: fmt.Sprintf("https://github.com/%s/issues?q=is%%3Aissue+is%%3Aopen+label%%3A%%22good+first+issue%%22", repo.FullName)},
			{Title: "GitHub Pull Request Guide",
				URL: "https://docs.github.com/en/pull-requests"},
			{Title: "Open Source Guide",
				URL: "https://opensource.guide/how-to-contribute/"},
		},
	}
}

// formatStars renders a star count the way GitHub's UI does (1.2K, 3.4M).
func formatStars(stars int) string {
	switch {
	case stars >= 1000000:
		return fmt.Sprintf("%.1fM", float64(stars)/1000000)
	case stars >= 1000:
		return fmt.Sprintf("%.1fK", float64(stars)/1000)
	default:
		return fmt.Sprintf("%d", stars)
	}
}
