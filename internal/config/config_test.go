package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lectern/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[storage]
endpoint = "acct.r2.cloudflarestorage.com"
bucket = "lectern-test"

[podcast]
base_url = "https://podcasts.example.com/"
`)

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Queue.PollInterval != 10 {
		t.Fatalf("poll interval default = %d, want 10", cfg.Queue.PollInterval)
	}
	if cfg.TTS.Model != "tts-1-hd" {
		t.Fatalf("tts model default = %q", cfg.TTS.Model)
	}
	if cfg.Podcast.BaseURL != "https://podcasts.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Podcast.BaseURL)
	}
	if cfg.Podcast.ImageURL != "https://podcasts.example.com/cover-general.jpg" {
		t.Fatalf("derived image url = %q", cfg.Podcast.ImageURL)
	}
	if !strings.HasPrefix(cfg.Paths.StateDir, "/") {
		t.Fatalf("state dir not expanded: %q", cfg.Paths.StateDir)
	}
}

func TestLoadRejectsEndpointWithScheme(t *testing.T) {
	path := writeConfig(t, `
[storage]
endpoint = "https://acct.r2.cloudflarestorage.com"
bucket = "lectern-test"

[podcast]
base_url = "https://podcasts.example.com"
`)

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for endpoint with scheme")
	}
}

func TestLoadRequiresBucket(t *testing.T) {
	path := writeConfig(t, `
[storage]
endpoint = "acct.r2.cloudflarestorage.com"

[podcast]
base_url = "https://podcasts.example.com"
`)

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for missing bucket")
	}
}

func TestValidateForConsume(t *testing.T) {
	cfg := config.Default()
	cfg.Queue.AccountID = "acct"
	cfg.Queue.QueueID = "queue"
	if err := cfg.ValidateForConsume(); err == nil {
		t.Fatal("expected error when api token missing")
	}
	cfg.Queue.APIToken = "token"
	if err := cfg.ValidateForConsume(); err != nil {
		t.Fatalf("ValidateForConsume failed: %v", err)
	}
}

func TestSecretsFromEnvironment(t *testing.T) {
	t.Setenv("LECTERN_STORAGE_ACCESS_KEY", "ak")
	t.Setenv("LECTERN_STORAGE_SECRET_KEY", "sk")
	t.Setenv("OPENAI_API_KEY", "oak")

	path := writeConfig(t, `
[storage]
endpoint = "acct.r2.cloudflarestorage.com"
bucket = "lectern-test"

[podcast]
base_url = "https://podcasts.example.com"
`)

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.AccessKey != "ak" || cfg.Storage.SecretKey != "sk" {
		t.Fatalf("storage credentials not taken from env: %+v", cfg.Storage)
	}
	if cfg.TTS.APIKey != "oak" {
		t.Fatalf("tts api key not taken from env: %q", cfg.TTS.APIKey)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[storage]") {
		t.Fatal("sample config missing storage section")
	}
	if string(contents) != config.SampleConfig() {
		t.Fatal("sample file does not match embedded document")
	}
}
