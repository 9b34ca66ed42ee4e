package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeStorage()
	c.normalizeQueue()
	c.normalizeTTS()
	c.normalizePodcast()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStorage() {
	c.Storage.Endpoint = strings.TrimSpace(c.Storage.Endpoint)
	c.Storage.Bucket = strings.TrimSpace(c.Storage.Bucket)
	if c.Storage.AccessKey == "" {
		if value, ok := os.LookupEnv("LECTERN_STORAGE_ACCESS_KEY"); ok {
			c.Storage.AccessKey = strings.TrimSpace(value)
		}
	}
	if c.Storage.SecretKey == "" {
		if value, ok := os.LookupEnv("LECTERN_STORAGE_SECRET_KEY"); ok {
			c.Storage.SecretKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeQueue() {
	c.Queue.AccountID = strings.TrimSpace(c.Queue.AccountID)
	c.Queue.QueueID = strings.TrimSpace(c.Queue.QueueID)
	if c.Queue.APIToken == "" {
		if value, ok := os.LookupEnv("CLOUDFLARE_API_TOKEN"); ok {
			c.Queue.APIToken = strings.TrimSpace(value)
		}
	}
	if c.Queue.PollInterval <= 0 {
		c.Queue.PollInterval = defaultPollInterval
	}
	if c.Queue.BatchSize <= 0 {
		c.Queue.BatchSize = defaultBatchSize
	}
	if c.Queue.VisibilityTimeout <= 0 {
		c.Queue.VisibilityTimeout = defaultVisibilityTimeout
	}
}

func (c *Config) normalizeTTS() {
	c.TTS.BaseURL = strings.TrimSpace(c.TTS.BaseURL)
	if c.TTS.BaseURL == "" {
		c.TTS.BaseURL = defaultTTSBaseURL
	}
	c.TTS.Model = strings.TrimSpace(c.TTS.Model)
	if c.TTS.Model == "" {
		c.TTS.Model = defaultTTSModel
	}
	c.TTS.Voice = strings.TrimSpace(c.TTS.Voice)
	if c.TTS.Voice == "" {
		c.TTS.Voice = defaultTTSVoice
	}
	if c.TTS.TimeoutSeconds <= 0 {
		c.TTS.TimeoutSeconds = defaultTTSTimeoutSeconds
	}
	if c.TTS.APIKey == "" {
		if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			c.TTS.APIKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizePodcast() {
	c.Podcast.BaseURL = strings.TrimRight(strings.TrimSpace(c.Podcast.BaseURL), "/")
	c.Podcast.Title = strings.TrimSpace(c.Podcast.Title)
	if c.Podcast.Title == "" {
		c.Podcast.Title = defaultPodcastTitle
	}
	if strings.TrimSpace(c.Podcast.Language) == "" {
		c.Podcast.Language = defaultPodcastLanguage
	}
	if strings.TrimSpace(c.Podcast.DefaultCategory) == "" {
		c.Podcast.DefaultCategory = defaultPodcastCategory
	}
	if strings.TrimSpace(c.Podcast.ImageURL) == "" && c.Podcast.BaseURL != "" {
		c.Podcast.ImageURL = c.Podcast.BaseURL + "/cover-general.jpg"
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
