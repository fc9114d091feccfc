package internal

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// PromptData for template injection
type PromptData struct {
	Text  string
	Title string
	URL   string
	Kind  string
}

// PromptManager handles loading and processing prompt templates
type PromptManager struct {
	promptFile   string
	promptString string
	configDir    string
}

// NewPromptManager creates a new prompt manager
func NewPromptManager(configDir, promptSetting string) *PromptManager {
	pm := &PromptManager{
		configDir: configDir,
	}

	if promptSetting != "" {
		if IsLikelyFilePath(promptSetting) && FileExists(promptSetting) {
			pm.promptFile = promptSetting
		} else {
			pm.promptString = promptSetting
		}
	}

	return pm
}

// CreatePrompt substitutes the document into the prompt template
func (pm *PromptManager) CreatePrompt(doc ContentDocument) (string, error) {
	tmplContent, err := pm.templateContent()
	if err != nil {
		return "", err
	}
	return buildPromptFromTemplate(tmplContent, doc)
}

// templateContent picks the custom string, the custom file, the user's
// prompt.txt in the config directory, or the embedded default, in that order
func (pm *PromptManager) templateContent() (string, error) {
	if pm.promptString != "" {
		return pm.promptString, nil
	}

	if pm.promptFile != "" {
		content, err := os.ReadFile(pm.promptFile)
		if err != nil {
			return "", fmt.Errorf("reading prompt template: %w", err)
		}
		return string(content), nil
	}

	if pm.configDir != "" {
		userPrompt := filepath.Join(pm.configDir, "prompt.txt")
		if FileExists(userPrompt) {
			content, err := os.ReadFile(userPrompt)
			if err != nil {
				return "", fmt.Errorf("reading prompt template: %w", err)
			}
			return string(content), nil
		}
	}

	return DefaultPrompt(), nil
}

// DefaultPrompt returns the built-in prompt template
func DefaultPrompt() string {
	content, err := defaultFS.ReadFile("prompt.txt")
	if err != nil {
		// the file is embedded at build time
		panic(err)
	}
	return string(content)
}

func buildPromptFromTemplate(templateContent string, doc ContentDocument) (string, error) {
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(templateContent)
	if err != nil {
		return "", fmt.Errorf("parsing prompt template: %w", err)
	}

	data := PromptData{
		Text:  doc.Text,
		Title: doc.Title,
		Kind:  doc.Source.Kind.String(),
	}
	if doc.Source.URL != nil {
		data.URL = doc.Source.URL.String()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}

	return buf.String(), nil
}

// IsLikelyFilePath uses heuristics to determine if a string is likely a file path
func IsLikelyFilePath(s string) bool {
	if strings.Contains(s, "/") || strings.Contains(s, "\\") {
		return true
	}

	if strings.HasSuffix(s, ".txt") || strings.HasSuffix(s, ".md") ||
		strings.HasSuffix(s, ".tmpl") || strings.HasSuffix(s, ".template") {
		return true
	}

	if len(s) > 200 {
		return false
	}

	return !strings.Contains(s, " ") && !strings.Contains(s, "\n")
}
