package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// CompletionProvider sends a prompt to a hosted language model and returns its reply
type CompletionProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint
type OpenAIClient struct {
	baseURL string
}

// NewOpenAIClient creates a completion provider for baseURL; an empty baseURL targets OpenAI
func NewOpenAIClient(baseURL string) *OpenAIClient {
	return &OpenAIClient{baseURL: baseURL}
}

// Complete issues a single chat completion with the caller's credential
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(req.APIKey),
		option.WithMaxRetries(0),
	}
	if c.baseURL != "" {
		opts = append(opts, option.WithBaseURL(c.baseURL))
	}
	client := openai.NewClient(opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response choices from model")
	}
	return resp.Choices[0].Message.Content, nil
}

// Summarizer wraps fetched content in the prompt template and asks the model for a summary
type Summarizer struct {
	client        CompletionProvider
	promptManager *PromptManager
	model         string
	timeout       time.Duration
	logger        *slog.Logger
}

// NewSummarizer creates a summarizer; a zero timeout leaves the provider's default in place
func NewSummarizer(client CompletionProvider, promptManager *PromptManager, model string, timeout time.Duration, logger *slog.Logger) *Summarizer {
	return &Summarizer{
		client:        client,
		promptManager: promptManager,
		model:         model,
		timeout:       timeout,
		logger:        logger,
	}
}

// SetPromptManager replaces the prompt template source
func (s *Summarizer) SetPromptManager(pm *PromptManager) {
	s.promptManager = pm
}

// Summarize returns the model's summary of doc
func (s *Summarizer) Summarize(ctx context.Context, doc ContentDocument, credential string) (string, error) {
	prompt, err := s.promptManager.CreatePrompt(doc)
	if err != nil {
		return "", fmt.Errorf("creating prompt: %w", err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.Debug("requesting completion", "model", s.model, "prompt_chars", len(prompt))
	content, err := s.client.Complete(ctx, CompletionRequest{
		Model:  s.model,
		APIKey: credential,
		Prompt: prompt,
	})
	if err != nil {
		return "", &SummarizationError{Failure: classifyProviderError(err), Err: err}
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", &SummarizationError{Failure: FailureEmpty}
	}
	return content, nil
}

// classifyProviderError maps an API error onto the failures users can act on
func classifyProviderError(err error) ProviderFailure {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return FailureUnknown
	}

	switch {
	case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
		return FailureAuth
	case apiErr.StatusCode == http.StatusTooManyRequests:
		return FailureRateLimit
	case apiErr.StatusCode == http.StatusRequestEntityTooLarge,
		apiErr.Code == "context_length_exceeded",
		strings.Contains(strings.ToLower(apiErr.Message), "context length"),
		strings.Contains(strings.ToLower(apiErr.Message), "too large"):
		return FailureContextLength
	default:
		return FailureUnknown
	}
}
