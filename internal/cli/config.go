package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/evcraddock/comments/internal/client"
)

const defaultServerURL = "http://localhost:8080"

// Environment overrides for the CLI settings.
const (
	envServerURL = "COMMENTS_SERVER_URL"
	envBasePath  = "COMMENTS_BASE_PATH"
	envAuthor    = "COMMENTS_AUTHOR"
)

// CLIConfig holds the settings saved by 'comments config set'.
type CLIConfig struct {
	ServerURL string `yaml:"server_url,omitempty"`
	BasePath  string `yaml:"base_path,omitempty"`
	Author    string `yaml:"author,omitempty"`
}

// configPath returns ~/.config/comments/config.yaml.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "comments", "config.yaml"), nil
}

// loadConfig reads the saved settings. A missing file is an empty config.
func loadConfig() (CLIConfig, error) {
	var cfg CLIConfig

	path, err := configPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return cfg, nil
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// saveConfig replaces the config file, writing to a temp file first so a
// failed write never leaves a truncated config behind.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing config: %w", err)
	}
	return nil
}

// resolve picks the first non-empty of the flag, the environment variable
// and the saved config.
func resolve(flagValue, env string, saved func(CLIConfig) string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	if cfg, err := loadConfig(); err == nil {
		return saved(cfg)
	}
	return ""
}

// getServerURL resolves the API server URL, defaulting to localhost:8080.
func getServerURL() string {
	if u := resolve(flagServer, envServerURL, func(c CLIConfig) string { return c.ServerURL }); u != "" {
		return u
	}
	return defaultServerURL
}

// getBasePath resolves where the server mounts the comment resource. It
// matches the server's base_path setting and defaults to /api/comments.
func getBasePath() string {
	if p := resolve(flagBasePath, envBasePath, func(c CLIConfig) string { return c.BasePath }); p != "" {
		return p
	}
	return client.DefaultBasePath
}

// validBasePath reports whether p can be a mount point.
func validBasePath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.ContainsAny(p, "?# ")
}

// getAuthor resolves the comment author.
func getAuthor(flagValue string) string {
	return resolve(flagValue, envAuthor, func(c CLIConfig) string { return c.Author })
}
