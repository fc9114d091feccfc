package internal

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

//go:embed templates/index.html
var templateFS embed.FS

// maxFormSize bounds the body of a form submission
const maxFormSize = 64 << 10

// pageData feeds templates/index.html
type pageData struct {
	URL           string
	HasDefaultKey bool
	Summary       template.HTML
	Title         string
	Source        string
	Category      string
	Error         string
}

// Server is the web UI: one form, one summary at a time
type Server struct {
	app      *App
	tmpl     *template.Template
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
	logger   *slog.Logger

	// serializes the fetch -> summarize chain so only one request is in flight
	mu sync.Mutex
}

// NewServer creates the web UI for app
func NewServer(app *App, logger *slog.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	return &Server{
		app:      app,
		tmpl:     tmpl,
		markdown: goldmark.New(),
		policy:   bluemonday.UGCPolicy(),
		logger:   logger,
	}, nil
}

// Handler returns the HTTP routes of the UI
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /summarize", s.handleSummarize)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// ListenAndServe serves the UI on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web UI listening", "addr", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down web UI")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, s.newPage(""))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseForm(); err != nil {
		page := s.newPage("")
		page.Category = CategoryValidation
		page.Error = "could not read the submitted form"
		s.render(w, http.StatusBadRequest, page)
		return
	}

	req := Request{
		Credential: r.PostForm.Get("api_key"),
		URL:        r.PostForm.Get("url"),
	}
	page := s.newPage(req.URL)

	s.mu.Lock()
	result, err := s.app.Summarize(r.Context(), req)
	s.mu.Unlock()

	if err != nil {
		page.Category = Category(err)
		page.Error = err.Error()
		s.render(w, statusFor(err), page)
		return
	}

	page.Summary = s.renderSummary(result.Summary)
	page.Title = result.Title
	page.Source = result.Source.Kind.String()
	s.render(w, http.StatusOK, page)
}

func (s *Server) newPage(url string) pageData {
	return pageData{
		URL:           url,
		HasDefaultKey: s.app.Config().APIKey != "",
	}
}

// renderSummary turns the model's markdown into sanitized HTML
func (s *Server) renderSummary(summary string) template.HTML {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(summary), &buf); err != nil {
		s.logger.Warn("rendering summary markdown failed", "error", err)
		return template.HTML(template.HTMLEscapeString(summary)) //nolint:gosec // escaped above
	}
	return template.HTML(s.policy.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitized by bluemonday
}

func (s *Server) render(w http.ResponseWriter, status int, page pageData) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, page); err != nil {
		s.logger.Error("rendering page failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// statusFor maps an error category onto an HTTP status
func statusFor(err error) int {
	switch Category(err) {
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryFetch, CategoryProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
