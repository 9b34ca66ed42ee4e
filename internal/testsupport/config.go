package testsupport

import (
	"path/filepath"
	"testing"

	"lectern/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Storage.Endpoint = "127.0.0.1:9000"
	cfgVal.Storage.Bucket = "lectern-test"
	cfgVal.Storage.AccessKey = "test-access"
	cfgVal.Storage.SecretKey = "test-secret"
	cfgVal.Podcast.BaseURL = "https://podcast.example.com"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	return builder.cfg
}

// WithQueueCredentials sets the Cloudflare Queues consumer settings on the
// test config so ValidateForConsume passes.
func WithQueueCredentials(accountID, queueID, token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Queue.AccountID = accountID
		b.cfg.Queue.QueueID = queueID
		b.cfg.Queue.APIToken = token
	}
}

// WithTTSEndpoint points the speech synthesis client at the provided base URL.
func WithTTSEndpoint(baseURL, apiKey string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TTS.BaseURL = baseURL
		b.cfg.TTS.APIKey = apiKey
	}
}

// WithNtfyTopic sets the notification topic on the test config.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
	}
}
