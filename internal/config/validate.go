package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateQueue(); err != nil {
		return err
	}
	if err := c.validateTTS(); err != nil {
		return err
	}
	if err := c.validatePodcast(); err != nil {
		return err
	}
	if c.Notifications.RequestTimeout < 0 {
		return errors.New("notifications.request_timeout must not be negative")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Storage.Endpoint == "" {
		return errors.New("storage.endpoint must be set")
	}
	if strings.Contains(c.Storage.Endpoint, "://") {
		return fmt.Errorf("storage.endpoint must be host[:port] without a scheme, got %q", c.Storage.Endpoint)
	}
	if c.Storage.Bucket == "" {
		return errors.New("storage.bucket must be set")
	}
	return nil
}

func (c *Config) validateQueue() error {
	if c.Queue.BatchSize > 100 {
		return errors.New("queue.batch_size must be at most 100")
	}
	return nil
}

func (c *Config) validateTTS() error {
	if !strings.HasPrefix(c.TTS.BaseURL, "http://") && !strings.HasPrefix(c.TTS.BaseURL, "https://") {
		return fmt.Errorf("tts.base_url must be an http(s) URL, got %q", c.TTS.BaseURL)
	}
	return nil
}

func (c *Config) validatePodcast() error {
	if c.Podcast.BaseURL == "" {
		return errors.New("podcast.base_url must be set")
	}
	return nil
}

// ValidateForConsume checks the additional settings the queue consumer needs.
// The local process command works without them, so Validate leaves them
// optional.
func (c *Config) ValidateForConsume() error {
	if c.Queue.AccountID == "" {
		return errors.New("queue.account_id is required to consume. Set it in config or run 'lectern config init'")
	}
	if c.Queue.QueueID == "" {
		return errors.New("queue.queue_id is required to consume")
	}
	if c.Queue.APIToken == "" {
		return errors.New("queue.api_token is required to consume. Set CLOUDFLARE_API_TOKEN or edit the config file")
	}
	return nil
}
