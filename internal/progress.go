package internal

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// UIManager handles terminal output concerns (progress, status messages)
type UIManager interface {
	NewSpinner(description string) ProgressBar
	Printf(format string, args ...any)
	Println(args ...any)
}

// ProgressBar abstracts an indeterminate progress indicator
type ProgressBar interface {
	Finish()
}

// StandardUIManager writes progress to stderr unless quiet
type StandardUIManager struct {
	quiet bool
}

// NewUIManager creates a UI manager; quiet also applies when stderr is not a terminal
func NewUIManager(quiet bool) UIManager {
	return &StandardUIManager{
		quiet: quiet || !IsTerminal(os.Stderr),
	}
}

func (ui *StandardUIManager) NewSpinner(description string) ProgressBar {
	if ui.quiet {
		return &SilentProgressBar{bar: progressbar.DefaultSilent(-1)}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowElapsedTimeOnFinish(),
	)
	_ = bar.RenderBlank()
	return &VisibleProgressBar{bar: bar}
}

func (ui *StandardUIManager) Printf(format string, args ...any) {
	if !ui.quiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func (ui *StandardUIManager) Println(args ...any) {
	if !ui.quiet {
		fmt.Fprintln(os.Stderr, args...)
	}
}

// VisibleProgressBar wraps the actual progress bar
type VisibleProgressBar struct {
	bar *progressbar.ProgressBar
}

func (v *VisibleProgressBar) Finish() {
	_ = v.bar.Finish()
}

// SilentProgressBar implements a silent progress bar
type SilentProgressBar struct {
	bar *progressbar.ProgressBar
}

func (s *SilentProgressBar) Finish() {
	_ = s.bar.Finish()
}
