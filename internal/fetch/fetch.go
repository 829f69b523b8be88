// Package fetch retrieves a candidate's online resume or portfolio page and
// reduces it to plain text suitable for skill extraction.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 30 * time.Second

const userAgent = "Mozilla/5.0 (compatible; GitCompass/1.0)"

// Error represents a failure fetching or processing a page.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Fetcher downloads and extracts text from resume and portfolio pages.
type Fetcher struct {
	client     *http.Client
	useBrowser bool
}

// NewFetcher creates a Fetcher. When useBrowser is set, pages that come back
// nearly empty over plain HTTP are re-rendered in a headless browser.
func NewFetcher(useBrowser bool) *Fetcher {
	return &Fetcher{
		client:     &http.Client{Timeout: DefaultTimeout},
		useBrowser: useBrowser,
	}
}

// Text fetches the page at rawURL and returns its main body text. Only http
// and https URLs are accepted.
func (f *Fetcher) Text(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	html, err := f.get(ctx, rawURL)
	if err != nil {
		return "", err
	}

	text, err := ExtractMainText(html)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to parse page", Cause: err}
	}

	// A near-empty extraction usually means a JavaScript-rendered page.
	if f.useBrowser && needsBrowser(text) {
		rendered, rerr := renderWithBrowser(ctx, rawURL, DefaultTimeout)
		if rerr != nil {
			return "", &Error{URL: rawURL, Message: "browser rendering failed", Cause: rerr}
		}
		if text, err = ExtractMainText(rendered); err != nil {
			return "", &Error{URL: rawURL, Message: "failed to parse rendered page", Cause: err}
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", &Error{URL: rawURL, Message: "page contained no extractable text"}
	}
	return text, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}
	return string(body), nil
}

// portfolioSelectors locate the content region on typical resume, portfolio
// and profile pages, in preference order.
var portfolioSelectors = []string{
	"main",
	"article",
	".resume",
	"#resume",
	".portfolio",
	".about",
	".content",
	"#content",
}

// ExtractMainText strips navigation and scripting noise from an HTML page
// and returns the text of its main content region, falling back to the whole
// body when no known region matches.
func ExtractMainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, .sidebar, .cookie-banner").Remove()

	var content *goquery.Selection
	for _, selector := range portfolioSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	return collapseWhitespace(content.Text()), nil
}

func collapseWhitespace(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
