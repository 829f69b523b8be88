package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const portfolioHTML = `<html><head><title>Jane Doe</title></head><body>
<nav>Home About Contact</nav>
<main>
  <h1>Jane Doe</h1>
  <p>Backend engineer working with Python, FastAPI and PostgreSQL.</p>
</main>
<footer>Copyright</footer>
<script>console.log("tracking")</script>
</body></html>`

func TestExtractMainText(t *testing.T) {
	text, err := ExtractMainText(portfolioHTML)

	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Python, FastAPI and PostgreSQL")
	assert.NotContains(t, text, "Home About Contact", "nav is stripped")
	assert.NotContains(t, text, "Copyright", "footer is stripped")
	assert.NotContains(t, text, "tracking", "scripts are stripped")
}

func TestExtractMainTextBodyFallback(t *testing.T) {
	text, err := ExtractMainText(`<html><body><p>Plain page with skills list.</p></body></html>`)

	require.NoError(t, err)
	assert.Contains(t, text, "Plain page with skills list.")
}

func TestFetcherText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(portfolioHTML))
	}))
	defer srv.Close()

	f := NewFetcher(false)
	text, err := f.Text(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, text, "Backend engineer")
}

func TestFetcherTextRejectsBadURL(t *testing.T) {
	f := NewFetcher(false)

	for _, raw := range []string{"", "not-a-url", "ftp://host/file", "file:///etc/passwd"} {
		_, err := f.Text(context.Background(), raw)

		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr, raw)
	}
}

func TestFetcherTextNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(false)
	_, err := f.Text(context.Background(), srv.URL)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "404")
}

func TestFetcherTextEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><script>only.scripts()</script></body></html>`))
	}))
	defer srv.Close()

	f := NewFetcher(false)
	_, err := f.Text(context.Background(), srv.URL)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "no extractable text")
}

func TestNeedsBrowser(t *testing.T) {
	assert.True(t, needsBrowser("short"))
	assert.False(t, needsBrowser(strings.Repeat("resume text ", 50)))
}
