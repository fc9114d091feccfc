package internal

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
)

// TranscriptProvider returns the ordered transcript segments of a video
type TranscriptProvider interface {
	Transcript(ctx context.Context, videoID string) ([]Segment, error)
}

// ExtractionProvider fetches a web page and returns its textual documents
type ExtractionProvider interface {
	Extract(ctx context.Context, req ExtractRequest) ([]Document, error)
}

// Fetcher turns a validated URL into a ContentDocument
type Fetcher struct {
	transcripts TranscriptProvider
	extractor   ExtractionProvider
	verifyTLS   bool
	userAgent   string
	logger      *slog.Logger
}

// NewFetcher creates a fetcher over the given providers
func NewFetcher(transcripts TranscriptProvider, extractor ExtractionProvider, config *Config, logger *slog.Logger) *Fetcher {
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		transcripts: transcripts,
		extractor:   extractor,
		verifyTLS:   !config.InsecureSkipVerify,
		userAgent:   userAgent,
		logger:      logger,
	}
}

// Fetch retrieves the text behind u, choosing the path once from its host
func (f *Fetcher) Fetch(ctx context.Context, u *url.URL) (ContentDocument, error) {
	source := ResolveSource(u)
	f.logger.Debug("resolved source", "kind", source.Kind, "url", u.String())

	switch source.Kind {
	case SourceVideo:
		return f.fetchTranscript(ctx, source)
	default:
		return f.fetchPage(ctx, source)
	}
}

func (f *Fetcher) fetchTranscript(ctx context.Context, source Source) (ContentDocument, error) {
	if source.VideoID == "" {
		return ContentDocument{}, &FetchError{Msg: "no video id found in URL (expected a v= query parameter)"}
	}

	segments, err := f.transcripts.Transcript(ctx, source.VideoID)
	if err != nil {
		return ContentDocument{}, &FetchError{Msg: "transcript unavailable for " + source.VideoID, Err: err}
	}

	text := JoinSegments(segments)
	if strings.TrimSpace(text) == "" {
		return ContentDocument{}, &FetchError{Msg: "transcript for " + source.VideoID + " is empty"}
	}

	f.logger.Debug("fetched transcript", "video_id", source.VideoID, "segments", len(segments), "chars", len(text))
	return ContentDocument{Text: text, Source: source}, nil
}

func (f *Fetcher) fetchPage(ctx context.Context, source Source) (ContentDocument, error) {
	docs, err := f.extractor.Extract(ctx, ExtractRequest{
		URL:       source.URL.String(),
		VerifyTLS: f.verifyTLS,
		Headers:   map[string]string{"User-Agent": f.userAgent},
	})
	if err != nil {
		return ContentDocument{}, &FetchError{Msg: "extracting page content", Err: err}
	}
	if len(docs) == 0 {
		return ContentDocument{}, &FetchError{Msg: "no content could be extracted from " + source.URL.String()}
	}

	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if t := strings.TrimSpace(doc.Text); t != "" {
			texts = append(texts, t)
		}
	}
	if len(texts) == 0 {
		return ContentDocument{}, &FetchError{Msg: "page at " + source.URL.String() + " has no text"}
	}

	text := strings.Join(texts, "\n\n")
	f.logger.Debug("extracted page", "url", source.URL.String(), "documents", len(docs), "chars", len(text))
	return ContentDocument{Text: text, Title: docs[0].Title, Source: source}, nil
}

// JoinSegments concatenates segment texts with single spaces, keeping their order
func JoinSegments(segments []Segment) string {
	var sb strings.Builder
	for i, seg := range segments {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(seg.Text)
	}
	return sb.String()
}
