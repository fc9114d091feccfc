package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPromptAsksForShortSummary(t *testing.T) {
	pm := NewPromptManager("", "")

	prompt, err := pm.CreatePrompt(ContentDocument{Text: "the body"})
	require.NoError(t, err)

	assert.Equal(t, "Provide a summary of the content in 300 words:\nContext: the body\n", prompt)
}

func TestPromptFromConfigDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prompt.txt"), []byte("TLDR {{.Title}}: {{.Text}}"), 0644))

	pm := NewPromptManager(dir, "")
	prompt, err := pm.CreatePrompt(ContentDocument{Text: "body", Title: "Post"})
	require.NoError(t, err)
	assert.Equal(t, "TLDR Post: body", prompt)
}

func TestPromptFromString(t *testing.T) {
	pm := NewPromptManager(t.TempDir(), "Summarize this {{.Kind}} from {{.URL}}: {{.Text}}")

	doc := ContentDocument{
		Text:   "words",
		Source: Source{Kind: SourceVideo, URL: mustParseURL(t, "https://youtu.be/abc")},
	}
	prompt, err := pm.CreatePrompt(doc)
	require.NoError(t, err)
	assert.Equal(t, "Summarize this video from https://youtu.be/abc: words", prompt)
}

func TestPromptFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("file: {{.Text}}"), 0644))

	pm := NewPromptManager(t.TempDir(), path)
	prompt, err := pm.CreatePrompt(ContentDocument{Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, "file: x", prompt)
}

func TestPromptTemplateErrors(t *testing.T) {
	_, err := NewPromptManager("", "broken {{.Text").CreatePrompt(ContentDocument{Text: "x"})
	assert.ErrorContains(t, err, "parsing prompt template")

	_, err = NewPromptManager("", "unknown {{.Missing}}").CreatePrompt(ContentDocument{Text: "x"})
	assert.ErrorContains(t, err, "executing prompt template")
}

func TestIsLikelyFilePath(t *testing.T) {
	assert.True(t, IsLikelyFilePath("/etc/prompt"))
	assert.True(t, IsLikelyFilePath("prompt.txt"))
	assert.True(t, IsLikelyFilePath("prompt"))
	assert.False(t, IsLikelyFilePath("summarize {{.Text}}"))
}
