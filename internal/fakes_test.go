package internal

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *Config {
	return &Config{
		Model:              "test-model",
		APIKey:             "",
		InsecureSkipVerify: true,
		UserAgent:          DefaultUserAgent,
	}
}

type fakeTranscripts struct {
	mu       sync.Mutex
	segments []Segment
	err      error
	calls    []string
}

func (f *fakeTranscripts) Transcript(ctx context.Context, videoID string) ([]Segment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, videoID)
	return f.segments, f.err
}

func (f *fakeTranscripts) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeExtractor struct {
	mu    sync.Mutex
	docs  []Document
	err   error
	calls []ExtractRequest
}

func (f *fakeExtractor) Extract(ctx context.Context, req ExtractRequest) ([]Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.docs, f.err
}

func (f *fakeExtractor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// echoCompletions answers "Summary of <text>" for the bare "{{.Text}}" template
type echoCompletions struct {
	mu    sync.Mutex
	err   error
	reply func(prompt string) string
	calls []CompletionRequest
}

func (f *echoCompletions) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return "", f.err
	}
	if f.reply != nil {
		return f.reply(req.Prompt), nil
	}
	return "Summary of " + req.Prompt, nil
}

func (f *echoCompletions) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// newTestApp wires fakes into an App whose prompt is just the document text
func newTestApp(t interface{ TempDir() string }, transcripts *fakeTranscripts, extractor *fakeExtractor, completions *echoCompletions) *App {
	config := testConfig()
	config.ConfigDir = t.TempDir()
	config.Prompt = "{{.Text}}"
	return NewApp(config, discardLogger(),
		WithTranscriptProvider(transcripts),
		WithExtractionProvider(extractor),
		WithCompletionProvider(completions),
	)
}
