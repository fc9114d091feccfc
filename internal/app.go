package internal

import (
	"context"
	"log/slog"
	"strings"
)

// App holds the application state and dependencies
type App struct {
	transcripts TranscriptProvider
	extractor   ExtractionProvider
	completions CompletionProvider

	fetcher    *Fetcher
	summarizer *Summarizer
	config     *Config
	logger     *slog.Logger
}

// NewApp initializes the application
func NewApp(config *Config, logger *slog.Logger, options ...AppOption) *App {
	app := &App{
		config: config,
		logger: logger,
	}

	for _, option := range options {
		option(app)
	}

	if app.transcripts == nil {
		app.transcripts = NewYouTube(config.CacheDir, logger)
	}
	if app.extractor == nil {
		app.extractor = NewPageExtractor(config.FetchTimeout, logger)
	}
	if app.completions == nil {
		app.completions = NewOpenAIClient(config.BaseURL)
	}

	app.fetcher = NewFetcher(app.transcripts, app.extractor, config, logger)
	app.summarizer = NewSummarizer(
		app.completions,
		NewPromptManager(config.ConfigDir, config.Prompt),
		config.Model,
		config.SummaryTimeout,
		logger,
	)
	return app
}

// AppOption customizes App creation
type AppOption func(*App)

// WithTranscriptProvider sets a custom transcript source
func WithTranscriptProvider(p TranscriptProvider) AppOption {
	return func(a *App) {
		a.transcripts = p
	}
}

// WithExtractionProvider sets a custom page extractor
func WithExtractionProvider(p ExtractionProvider) AppOption {
	return func(a *App) {
		a.extractor = p
	}
}

// WithCompletionProvider sets a custom completion model client
func WithCompletionProvider(p CompletionProvider) AppOption {
	return func(a *App) {
		a.completions = p
	}
}

// SetPromptManager sets a new prompt manager
func (app *App) SetPromptManager(pm *PromptManager) {
	app.summarizer.SetPromptManager(pm)
}

// Config returns the configuration the app was built with
func (app *App) Config() *Config {
	return app.config
}

// Fetch validates rawURL and returns the text behind it without summarizing
func (app *App) Fetch(ctx context.Context, rawURL string) (ContentDocument, error) {
	if strings.TrimSpace(rawURL) == "" {
		return ContentDocument{}, &ValidationError{Msg: "Please provide a URL."}
	}
	u, ok := ParseURL(rawURL)
	if !ok {
		return ContentDocument{}, &ValidationError{Msg: msgInvalidURL}
	}
	return app.fetcher.Fetch(ctx, u)
}

// Summarize runs the complete workflow: validate -> fetch -> summarize.
// An empty credential falls back to the configured default.
func (app *App) Summarize(ctx context.Context, req Request) (*Result, error) {
	req.Credential = app.config.Credential(req.Credential)

	u, err := ValidateRequest(req)
	if err != nil {
		app.logger.Info("request rejected", "category", Category(err), "error", err)
		return nil, err
	}

	doc, err := app.fetcher.Fetch(ctx, u)
	if err != nil {
		app.logger.Warn("fetch failed", "url", u.String(), "error", err)
		return nil, err
	}

	summary, err := app.summarizer.Summarize(ctx, doc, req.Credential)
	if err != nil {
		app.logger.Warn("summarization failed", "url", u.String(), "error", err)
		return nil, err
	}

	app.logger.Info("summarized", "url", u.String(), "source", doc.Source.Kind, "chars", len(doc.Text))
	return &Result{
		Summary: summary,
		Source:  doc.Source,
		Title:   doc.Title,
	}, nil
}
