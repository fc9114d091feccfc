package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html><head><title>Gophers at Work</title><script>var tracking = true;</script></head>
<body>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<article>
<h1>Gophers at Work</h1>
<p>Gophers are burrowing rodents that spend most of their lives underground, digging extensive tunnel systems that can stretch for hundreds of feet beneath fields and gardens.</p>
<p>Their tunnels aerate the soil and mix organic matter into deeper layers, which farmers sometimes appreciate and gardeners usually do not, because the same tunnels undermine roots and bulbs.</p>
<p>A single gopher can move more than a ton of soil to the surface each year, leaving the characteristic crescent shaped mounds that give away its presence to anyone walking by.</p>
</article>
<footer>Copyright nobody</footer>
</body></html>`

func TestPageExtractorHTML(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	extractor := NewPageExtractor(5*time.Second, discardLogger())
	docs, err := extractor.Extract(context.Background(), ExtractRequest{
		URL:       srv.URL + "/gophers",
		VerifyTLS: true,
		Headers:   map[string]string{"User-Agent": DefaultUserAgent},
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Contains(t, docs[0].Text, "A single gopher can move more than a ton of soil")
	assert.NotContains(t, docs[0].Text, "var tracking")
	assert.NotContains(t, docs[0].Text, "\n")
}

func TestPageExtractorPlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("just   some\n\ntext"))
	}))
	defer srv.Close()

	extractor := NewPageExtractor(5*time.Second, discardLogger())
	docs, err := extractor.Extract(context.Background(), ExtractRequest{URL: srv.URL, VerifyTLS: true})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "just some text", docs[0].Text)
}

func TestPageExtractorEmptyPageYieldsNoDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><script>x()</script></head><body>   </body></html>"))
	}))
	defer srv.Close()

	extractor := NewPageExtractor(5*time.Second, discardLogger())
	docs, err := extractor.Extract(context.Background(), ExtractRequest{URL: srv.URL, VerifyTLS: true})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestPageExtractorHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	extractor := NewPageExtractor(5*time.Second, discardLogger())
	_, err := extractor.Extract(context.Background(), ExtractRequest{URL: srv.URL, VerifyTLS: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestPageExtractorTLSVerification(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("self-signed but readable"))
	}))
	defer srv.Close()

	extractor := NewPageExtractor(5*time.Second, discardLogger())

	_, err := extractor.Extract(context.Background(), ExtractRequest{URL: srv.URL, VerifyTLS: true})
	require.Error(t, err, "self-signed certificate must be rejected when verifying")

	docs, err := extractor.Extract(context.Background(), ExtractRequest{URL: srv.URL, VerifyTLS: false})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "self-signed but readable", docs[0].Text)
}

func TestBodyText(t *testing.T) {
	title, text, err := bodyText([]byte(`<html><head><title> A  Title </title></head>
<body><style>p{}</style><p>One</p>
<p>Two</p><noscript>enable js</noscript></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "A Title", title)
	assert.Equal(t, "One Two", strings.TrimSpace(text))
}
