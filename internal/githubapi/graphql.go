package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// contributionQuery fetches one year of contribution calendar data.
const contributionQuery = `query($login: String!) {
  user(login: $login) {
    contributionsCollection {
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            date
            contributionCount
          }
        }
      }
    }
  }
}`

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type calendarJSON struct {
	Data struct {
		User *struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int `json:"totalContributions"`
					Weeks              []struct {
						ContributionDays []struct {
							Date              string `json:"date"`
							ContributionCount int    `json:"contributionCount"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// ContributionCalendar fetches a user's contribution calendar via GraphQL.
// GitHub requires authentication for GraphQL, so a token must be configured.
func (c *Client) ContributionCalendar(ctx context.Context, login string) (*Calendar, error) {
	if login == "" {
		return nil, &APIError{Operation: "calendar", Message: "login is required"}
	}
	if c.token == "" {
		return nil, &APIError{Operation: "calendar", Message: "a token is required for GraphQL queries"}
	}

	payload, err := json.Marshal(graphqlRequest{
		Query:     contributionQuery,
		Variables: map[string]any{"login": login},
	})
	if err != nil {
		return nil, &APIError{Operation: "calendar", Message: "failed to encode query", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &APIError{Operation: "calendar", URL: c.graphqlURL, Message: "failed to create request", Cause: err}
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Operation: "calendar", URL: c.graphqlURL, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Operation: "calendar", URL: c.graphqlURL, Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Operation: "calendar", URL: c.graphqlURL, StatusCode: resp.StatusCode, Message: snippet(body)}
	}

	var raw calendarJSON
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &APIError{Operation: "calendar", Message: "failed to decode response", Cause: err}
	}
	if len(raw.Errors) > 0 {
		return nil, &APIError{Operation: "calendar", Message: raw.Errors[0].Message}
	}
	if raw.Data.User == nil {
		return nil, &APIError{Operation: "calendar", Message: "user not found: " + login}
	}

	cal := raw.Data.User.ContributionsCollection.ContributionCalendar
	result := &Calendar{Total: cal.TotalContributions}
	for _, week := range cal.Weeks {
		for _, day := range week.ContributionDays {
			result.Days = append(result.Days, CalendarDay{Date: day.Date, Count: day.ContributionCount})
		}
	}
	return result, nil
}
