package internal

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppName names the XDG directories and the environment prefix
const AppName = "tldr"

// Config holds application settings
type Config struct {
	// User configurable settings
	Model              string
	BaseURL            string
	APIKey             string
	Prompt             string
	InsecureSkipVerify bool
	UserAgent          string
	FetchTimeout       time.Duration
	SummaryTimeout     time.Duration
	ListenAddr         string
	LogLevel           string
	Verbose            bool
	Quiet              bool

	// Fixed XDG paths (not configurable)
	ConfigDir string
	CacheDir  string
}

//go:embed config.toml prompt.txt
var defaultFS embed.FS

// ensureDefaultFile creates configDir/embedFilename from the embedded default
// when it does not exist yet
func ensureDefaultFile(configDir, embedFilename, description string) (bool, error) {
	filePath := filepath.Join(configDir, embedFilename)
	if FileExists(filePath) {
		return false, nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return false, fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return false, fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return false, fmt.Errorf("writing default %s: %w", description, err)
	}
	return true, nil
}

// EnsureDefaultConfig writes the default config.toml into configDir if missing
func EnsureDefaultConfig(configDir string) (bool, error) {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// EnsureDefaultPrompt writes the default prompt.txt into configDir if missing
func EnsureDefaultPrompt(configDir string) (bool, error) {
	return ensureDefaultFile(configDir, "prompt.txt", "prompt template")
}

// ConfigDirs returns the XDG config and cache directories
func ConfigDirs() (string, string) {
	return filepath.Join(xdg.ConfigHome, AppName), filepath.Join(xdg.CacheHome, AppName)
}

// newViper sets up defaults, search paths and environment bindings
func newViper(configDir, configFile string) *viper.Viper {
	v := viper.New()

	v.SetDefault("model", "llama-3.1-8b-instant")
	v.SetDefault("base_url", "https://api.groq.com/openai/v1/")
	v.SetDefault("prompt", "") // if empty will use the default prompt template
	v.SetDefault("insecure_skip_verify", true)
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("fetch_timeout", 30*time.Second)
	v.SetDefault("summary_timeout", time.Duration(0))
	v.SetDefault("listen_addr", "127.0.0.1:8501")
	v.SetDefault("log_level", "info")
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// the credential keeps the provider's conventional variable name
	_ = v.BindEnv("api_key", "TLDR_API_KEY", "GROQ_API_KEY")

	return v
}

// LoadConfig reads .env, the config file and the environment once into a Config
func LoadConfig(configFile string) (*Config, error) {
	// a missing .env is the normal case
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	configDir, cacheDir := ConfigDirs()
	v := newViper(configDir, configFile)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	config := configFromViper(v)
	config.ConfigDir = configDir
	config.CacheDir = cacheDir
	return config, nil
}

func configFromViper(v *viper.Viper) *Config {
	return &Config{
		Model:              v.GetString("model"),
		BaseURL:            v.GetString("base_url"),
		APIKey:             v.GetString("api_key"),
		Prompt:             v.GetString("prompt"),
		InsecureSkipVerify: v.GetBool("insecure_skip_verify"),
		UserAgent:          v.GetString("user_agent"),
		FetchTimeout:       v.GetDuration("fetch_timeout"),
		SummaryTimeout:     v.GetDuration("summary_timeout"),
		ListenAddr:         v.GetString("listen_addr"),
		LogLevel:           v.GetString("log_level"),
		Verbose:            v.GetBool("verbose"),
		Quiet:              v.GetBool("quiet"),
	}
}

// Credential returns override when the user supplied one, else the configured default
func (c *Config) Credential(override string) string {
	if strings.TrimSpace(override) != "" {
		return strings.TrimSpace(override)
	}
	return c.APIKey
}
