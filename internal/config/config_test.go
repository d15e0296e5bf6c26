package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgerrors "github.com/zhubert/nftdesk/internal/errors"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.GetAPIURL() != DefaultAPIURL {
		t.Errorf("APIURL = %q, want %q", cfg.GetAPIURL(), DefaultAPIURL)
	}
	if cfg.GetWelcomeMessage() != DefaultWelcomeMessage {
		t.Errorf("unexpected welcome message %q", cfg.GetWelcomeMessage())
	}
	if cfg.GetNotificationsEnabled() {
		t.Error("notifications should be off by default")
	}
}

func TestLoadFrom_ReadsFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"api_url": "http://bots.example:8080", "notifications_enabled": true, "welcome_message": "gm"}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.GetAPIURL() != "http://bots.example:8080" {
		t.Errorf("APIURL = %q", cfg.GetAPIURL())
	}
	if !cfg.GetNotificationsEnabled() {
		t.Error("notifications should be enabled")
	}
	if cfg.GetWelcomeMessage() != "gm" {
		t.Errorf("WelcomeMessage = %q", cfg.GetWelcomeMessage())
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"api_url": "http://file:1"}`), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAPIURL, "http://env:2")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.GetAPIURL() != "http://env:2" {
		t.Errorf("APIURL = %q, want env override", cfg.GetAPIURL())
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if !pkgerrors.Is(err, pkgerrors.KindConfig) {
		t.Errorf("expected KindConfig, got %v", pkgerrors.GetKind(err))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		apiURL  string
		wantErr bool
	}{
		{"http", "http://localhost:5000", false},
		{"https", "https://bots.example", false},
		{"no scheme", "localhost:5000", true},
		{"ftp", "ftp://localhost", true},
		{"no host", "http://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{APIURL: tt.apiURL}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSave_RoundTripsThroughLoad(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.SetAPIURL("http://saved:9000/")
	cfg.SetNotificationsEnabled(true)
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"api_url": "http://saved:9000"`) {
		t.Errorf("saved config missing trimmed api_url: %s", data)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.GetAPIURL() != "http://saved:9000" || !reloaded.GetNotificationsEnabled() {
		t.Errorf("reloaded config mismatch: %+v", reloaded)
	}
}

func TestSave_WithoutPath(t *testing.T) {
	if err := Default().Save(); err == nil {
		t.Error("Save without a path should fail")
	}
}

func TestLoadServer(t *testing.T) {
	t.Setenv("NFTDESK_ADDR", ":7000")
	t.Setenv("NFTDESK_CATALOG", "catalog.yaml")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("NFTDESK_MAX_TURNS", "abc")

	cfg := LoadServer()
	if cfg.Addr != ":7000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.CatalogPath != "catalog.yaml" {
		t.Errorf("CatalogPath = %q", cfg.CatalogPath)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.MaxTurns != 50 {
		t.Errorf("MaxTurns = %d, want default for non-numeric", cfg.MaxTurns)
	}
}
