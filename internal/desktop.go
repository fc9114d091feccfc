package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DesktopServer is one entry under "mcpServers" in claude_desktop_config.json
type DesktopServer struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

// DesktopConfigPath returns where Claude Desktop keeps its config on goos
func DesktopConfigPath(goos, homeDir, appData string) (string, error) {
	const file = "claude_desktop_config.json"

	switch goos {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "Claude", file), nil
	case "windows":
		if appData == "" {
			return "", errors.New("APPDATA environment variable not set")
		}
		return filepath.Join(appData, "Claude", file), nil
	case "linux":
		return filepath.Join(homeDir, ".config", "Claude", file), nil
	default:
		return "", fmt.Errorf("unsupported platform: %s", goos)
	}
}

// RegisterDesktopServer adds or replaces the server called name in the config
// at configPath. Other servers and unrelated top-level settings are preserved.
func RegisterDesktopServer(configPath, name string, server DesktopServer) error {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("config for Claude Desktop not found at %s", configPath)
	}
	if err != nil {
		return fmt.Errorf("reading existing config: %w", err)
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("parsing existing config: %w", err)
	}
	if root == nil {
		root = make(map[string]json.RawMessage)
	}

	servers := make(map[string]json.RawMessage)
	if raw, ok := root["mcpServers"]; ok {
		if err := json.Unmarshal(raw, &servers); err != nil {
			return fmt.Errorf("parsing mcpServers: %w", err)
		}
		if servers == nil {
			servers = make(map[string]json.RawMessage)
		}
	}

	entry, err := json.Marshal(server)
	if err != nil {
		return fmt.Errorf("encoding server entry: %w", err)
	}
	servers[name] = entry

	if root["mcpServers"], err = json.Marshal(servers); err != nil {
		return fmt.Errorf("encoding mcpServers: %w", err)
	}

	data, err = json.MarshalIndent(root, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(configPath, append(data, '\n'), 0644)
}
