package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"lectern/internal/config"
)

const (
	defaultBaseURL     = "https://api.openai.com"
	defaultModel       = "tts-1-hd"
	defaultVoice       = "ash"
	defaultHTTPTimeout = 5 * time.Minute
)

// Client wraps the OpenAI speech synthesis API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	voice      string
	httpClient *http.Client
}

// Option customizes the speech client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithVoice overrides the default voice.
func WithVoice(voice string) Option {
	return func(c *Client) {
		voice = strings.TrimSpace(voice)
		if voice != "" {
			c.voice = voice
		}
	}
}

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *Client) {
		model = strings.TrimSpace(model)
		if model != "" {
			c.model = model
		}
	}
}

// NewClient constructs a speech synthesis client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		voice:      defaultVoice,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// NewClientFromConfig builds a client from the tts configuration section.
func NewClientFromConfig(cfg *config.Config, opts ...Option) *Client {
	base := []Option{
		WithBaseURL(cfg.TTS.BaseURL),
		WithModel(cfg.TTS.Model),
		WithVoice(cfg.TTS.Voice),
	}
	if cfg.TTS.TimeoutSeconds > 0 {
		base = append(base, WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.TTS.TimeoutSeconds) * time.Second,
		}))
	}
	return NewClient(cfg.TTS.APIKey, append(base, opts...)...)
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

// Synthesize converts text to MP3 audio with the given voice and writes it
// to outputPath. An empty voice selects the client default. Long texts are
// split into chunks under the API input limit and the resulting audio
// segments are concatenated in order.
func (c *Client) Synthesize(ctx context.Context, text, voice, outputPath string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("synthesize: text required")
	}
	if c.apiKey == "" {
		return errors.New("synthesize: api key required")
	}
	if voice = strings.TrimSpace(voice); voice == "" {
		voice = c.voice
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("synthesize: create output: %w", err)
	}
	defer out.Close()

	for i, chunk := range splitForSynthesis(text, maxInputChars) {
		audio, err := c.synthesizeChunk(ctx, chunk, voice)
		if err != nil {
			return fmt.Errorf("synthesize: chunk %d: %w", i+1, err)
		}
		if _, err := out.Write(audio); err != nil {
			return fmt.Errorf("synthesize: write output: %w", err)
		}
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("synthesize: close output: %w", err)
	}
	return nil
}

func (c *Client) synthesizeChunk(ctx context.Context, input, voice string) ([]byte, error) {
	endpoint, err := url.JoinPath(c.baseURL, "/v1/audio/speech")
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}
	encoded, err := json.Marshal(speechRequest{
		Model:          c.model,
		Input:          input,
		Voice:          voice,
		ResponseFormat: "mp3",
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if len(body) == 0 {
		return nil, errors.New("empty audio response")
	}
	return body, nil
}
