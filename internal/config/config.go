package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	pkgerrors "github.com/zhubert/nftdesk/internal/errors"
)

// DefaultAPIURL is the backend address used when nothing else is configured.
const DefaultAPIURL = "http://localhost:5000"

// DefaultWelcomeMessage is the banner shown as the first chat message.
const DefaultWelcomeMessage = "Welcome to the NFT Customer Service Bot! Ask about a collection, " +
	"or press ctrl+t to simulate an NFT transfer."

// EnvAPIURL overrides the configured API URL.
const EnvAPIURL = "NFTDESK_API_URL"

// Config holds the client configuration
type Config struct {
	APIURL               string `json:"api_url,omitempty"`
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notification after a simulated transfer
	WelcomeMessage       string `json:"welcome_message,omitempty"`

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".nftdesk"), nil
}

// DefaultPath returns the path to the config file in the user's home directory
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from the default path, or returns defaults if it doesn't exist
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, pkgerrors.ConfigLoadFailed("~/.nftdesk/config.json", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields defaults.
// The NFTDESK_API_URL environment variable overrides the file's api_url.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, pkgerrors.ConfigLoadFailed(path, err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, pkgerrors.ConfigLoadFailed(path, err)
		}
	}

	if env := strings.TrimSpace(os.Getenv(EnvAPIURL)); env != "" {
		cfg.APIURL = env
	}
	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ensureDefaults fills empty fields. Only called before the Config is shared.
func (c *Config) ensureDefaults() {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.WelcomeMessage == "" {
		c.WelcomeMessage = DefaultWelcomeMessage
	}
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, err := url.Parse(c.APIURL)
	if err != nil {
		return pkgerrors.ConfigInvalid("api_url is not a valid URL: " + err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return pkgerrors.ConfigInvalid("api_url must use http or https, got " + c.APIURL)
	}
	if u.Host == "" {
		return pkgerrors.ConfigInvalid("api_url has no host: " + c.APIURL)
	}
	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		return pkgerrors.ConfigSaveFailed("", pkgerrors.ConfigInvalid("config has no file path"))
	}
	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return pkgerrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return pkgerrors.ConfigSaveFailed(c.filePath, err)
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return pkgerrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// GetAPIURL returns the backend base URL
func (c *Config) GetAPIURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.APIURL
}

// SetAPIURL sets the backend base URL (e.g. from the --api flag)
func (c *Config) SetAPIURL(apiURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.APIURL = strings.TrimRight(apiURL, "/")
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetWelcomeMessage returns the chat welcome banner
func (c *Config) GetWelcomeMessage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WelcomeMessage
}

// Default returns an in-memory config with defaults and no backing file.
func Default() *Config {
	cfg := &Config{}
	cfg.ensureDefaults()
	return cfg
}
