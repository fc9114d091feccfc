package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupTempDir(t *testing.T) {
	dir := t.TempDir()
	staged := filepath.Join(dir, "subs-123")
	require.NoError(t, os.MkdirAll(staged, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(staged, "abc.en.srt"), []byte("1"), 0644))
	kept := filepath.Join(dir, "mcp.log")
	require.NoError(t, os.WriteFile(kept, nil, 0644))

	require.NoError(t, CleanupTempDir(dir))

	assert.NoDirExists(t, staged)
	assert.FileExists(t, kept)
}

func TestFormatForTerminalWhenPiped(t *testing.T) {
	// go test does not attach stdout to a terminal
	if IsTerminal(os.Stdout) {
		t.Skip("stdout is a terminal")
	}
	assert.Equal(t, "**raw**", FormatForTerminal("**raw**"))
}
