package internal

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, app *App) *httptest.Server {
	t.Helper()
	server, err := NewServer(app, discardLogger())
	require.NoError(t, err)
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postForm(t *testing.T, srv *httptest.Server, apiKey, rawURL string) (int, string) {
	t.Helper()
	resp, err := http.PostForm(srv.URL+"/summarize", url.Values{
		"api_key": {apiKey},
		"url":     {rawURL},
	})
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServerIndex(t *testing.T) {
	srv := newTestServer(t, newTestApp(t, &fakeTranscripts{}, &fakeExtractor{}, &echoCompletions{}))

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `type="password"`)
	assert.Contains(t, string(body), `name="url"`)
	assert.Contains(t, string(body), "Summarize</button>")
	assert.NotContains(t, string(body), `role="alert"`)
}

func TestServerUnknownPath(t *testing.T) {
	srv := newTestServer(t, newTestApp(t, &fakeTranscripts{}, &fakeExtractor{}, &echoCompletions{}))

	resp, err := http.Get(srv.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServerHealth(t *testing.T) {
	srv := newTestServer(t, newTestApp(t, &fakeTranscripts{}, &fakeExtractor{}, &echoCompletions{}))

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", string(body))
}

func TestServerSummarySuccess(t *testing.T) {
	extractor := &fakeExtractor{docs: []Document{{Title: "Post", Text: "X"}}}
	srv := newTestServer(t, newTestApp(t, &fakeTranscripts{}, extractor, &echoCompletions{}))

	status, body := postForm(t, srv, "key", "https://example.com/post")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<p>Summary of X</p>")
	assert.Contains(t, body, "Summary of Post")
	assert.Contains(t, body, `value="https://example.com/post"`)
	assert.NotContains(t, body, `role="alert"`)
}

func TestServerSanitizesSummary(t *testing.T) {
	completions := &echoCompletions{reply: func(string) string {
		return "**bold** <script>alert(1)</script>"
	}}
	srv := newTestServer(t, newTestApp(t, &fakeTranscripts{}, &fakeExtractor{docs: []Document{{Text: "X"}}}, completions))

	status, body := postForm(t, srv, "key", "https://example.com")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<strong>bold</strong>")
	assert.NotContains(t, body, "<script>alert(1)</script>")
}

func TestServerErrorBanners(t *testing.T) {
	tests := []struct {
		name        string
		apiKey      string
		url         string
		extractor   *fakeExtractor
		completions *echoCompletions
		status      int
		marker      string
	}{
		{
			name:        "missing key",
			apiKey:      "",
			url:         "https://example.com",
			extractor:   &fakeExtractor{docs: []Document{{Text: "X"}}},
			completions: &echoCompletions{},
			status:      http.StatusBadRequest,
			marker:      "<strong>validation error:</strong> Please provide both API key and a URL.",
		},
		{
			name:        "malformed url",
			apiKey:      "key",
			url:         "not a url",
			extractor:   &fakeExtractor{docs: []Document{{Text: "X"}}},
			completions: &echoCompletions{},
			status:      http.StatusBadRequest,
			marker:      "<strong>validation error:</strong> Please enter a valid URL.",
		},
		{
			name:        "no documents",
			apiKey:      "key",
			url:         "https://example.com",
			extractor:   &fakeExtractor{},
			completions: &echoCompletions{},
			status:      http.StatusBadGateway,
			marker:      "<strong>fetch error:</strong>",
		},
		{
			name:        "provider failure",
			apiKey:      "key",
			url:         "https://example.com",
			extractor:   &fakeExtractor{docs: []Document{{Text: "X"}}},
			completions: &echoCompletions{err: io.ErrUnexpectedEOF},
			status:      http.StatusBadGateway,
			marker:      "<strong>provider error:</strong>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, newTestApp(t, &fakeTranscripts{}, tt.extractor, tt.completions))

			status, body := postForm(t, srv, tt.apiKey, tt.url)

			assert.Equal(t, tt.status, status)
			assert.Contains(t, body, tt.marker)
			assert.NotContains(t, body, `class="summary"`)
		})
	}
}

func TestServerRejectsGetOnSummarize(t *testing.T) {
	srv := newTestServer(t, newTestApp(t, &fakeTranscripts{}, &fakeExtractor{}, &echoCompletions{}))

	resp, err := http.Get(srv.URL + "/summarize")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(&ValidationError{}))
	assert.Equal(t, http.StatusBadGateway, statusFor(&FetchError{}))
	assert.Equal(t, http.StatusBadGateway, statusFor(&SummarizationError{}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(io.EOF))
}

func TestServerDefaultKeyHint(t *testing.T) {
	app := newTestApp(t, &fakeTranscripts{}, &fakeExtractor{}, &echoCompletions{})
	app.Config().APIKey = "from-env"
	srv := newTestServer(t, app)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.True(t, strings.Contains(string(body), "using the key from the environment"))
}
