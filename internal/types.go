package internal

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// SourceKind identifies which fetch path serves a URL
type SourceKind int

const (
	SourceWeb SourceKind = iota
	SourceVideo
)

// String returns a human-readable representation of the source kind
func (k SourceKind) String() string {
	switch k {
	case SourceVideo:
		return "video"
	default:
		return "web"
	}
}

// videoHosts lists the domains whose URLs are served from transcripts
var videoHosts = []string{"youtube.com", "youtu.be"}

// Source is a URL resolved to exactly one fetch path
type Source struct {
	Kind SourceKind
	URL  *url.URL
	// VideoID is set only for SourceVideo and may be empty when the URL lacks one
	VideoID string
}

// String returns a formatted representation of the source
func (s Source) String() string {
	if s.Kind == SourceVideo {
		return fmt.Sprintf("Source{kind=%s, id=%q, url=%s}", s.Kind, s.VideoID, s.URL)
	}
	return fmt.Sprintf("Source{kind=%s, url=%s}", s.Kind, s.URL)
}

// ResolveSource decides the fetch path for a validated URL
func ResolveSource(u *url.URL) Source {
	host := strings.ToLower(u.Hostname())
	if !isVideoHost(host) {
		return Source{Kind: SourceWeb, URL: u}
	}

	id := strings.TrimSpace(u.Query().Get("v"))
	if id == "" && (host == "youtu.be" || strings.HasSuffix(host, ".youtu.be")) {
		id = strings.Trim(u.Path, "/")
	}
	return Source{Kind: SourceVideo, URL: u, VideoID: id}
}

func isVideoHost(host string) bool {
	for _, domain := range videoHosts {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// Request is a single user interaction
type Request struct {
	Credential string
	URL        string
}

// ContentDocument is the text handed to the summarizer
type ContentDocument struct {
	Text   string
	Title  string
	Source Source
}

// Segment is one timed piece of a video transcript
type Segment struct {
	Text     string
	Start    time.Duration
	Duration time.Duration
}

// Document is one text document returned by page extraction
type Document struct {
	Title string
	Text  string
}

// ExtractRequest describes a page extraction call
type ExtractRequest struct {
	URL       string
	VerifyTLS bool
	Headers   map[string]string
}

// CompletionRequest describes a single completion call
type CompletionRequest struct {
	Model  string
	APIKey string
	Prompt string
}

// Result is the outcome of a successful summarization
type Result struct {
	Summary string
	Source  Source
	Title   string
}
