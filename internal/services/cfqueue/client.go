package cfqueue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lectern/internal/config"
)

const (
	defaultBaseURL     = "https://api.cloudflare.com/client/v4"
	defaultHTTPTimeout = 30 * time.Second
)

// Message is one inbound notification pulled from the queue: the storage key
// of a raw newsletter message plus the routing tag assigned by the mail
// ingress worker.
type Message struct {
	ID       string
	LeaseID  string
	Key      string
	RouteTag string
}

// Client is a pull consumer for a Cloudflare queue.
type Client struct {
	accountID  string
	queueID    string
	apiToken   string
	baseURL    string
	httpClient *http.Client
}

// Option customizes the queue client.
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

// NewClient constructs a queue consumer client.
func NewClient(accountID, queueID, apiToken string, opts ...Option) *Client {
	client := &Client{
		accountID:  strings.TrimSpace(accountID),
		queueID:    strings.TrimSpace(queueID),
		apiToken:   strings.TrimSpace(apiToken),
		baseURL:    defaultBaseURL,
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

// NewClientFromConfig builds a client from the queue configuration section.
func NewClientFromConfig(cfg *config.Config, opts ...Option) *Client {
	return NewClient(cfg.Queue.AccountID, cfg.Queue.QueueID, cfg.Queue.APIToken, opts...)
}

type pullRequest struct {
	BatchSize         int `json:"batch_size"`
	VisibilityTimeout int `json:"visibility_timeout"`
}

type pullResponse struct {
	Result struct {
		Messages []rawMessage `json:"messages"`
	} `json:"result"`
}

type rawMessage struct {
	ID        string          `json:"id"`
	MessageID string          `json:"message_id"`
	LeaseID   string          `json:"lease_id"`
	Body      json.RawMessage `json:"body"`
}

type messageBody struct {
	Key      string `json:"key"`
	RouteTag string `json:"route_tag"`
}

// Pull fetches up to batchSize messages, leasing them for visibilityTimeout
// seconds. Messages missing an id, lease, or storage key are dropped.
func (c *Client) Pull(ctx context.Context, batchSize, visibilityTimeout int) ([]Message, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}
	payload := pullRequest{BatchSize: batchSize, VisibilityTimeout: visibilityTimeout}
	body, err := c.post(ctx, "pull", payload)
	if err != nil {
		return nil, fmt.Errorf("queue pull: %w", err)
	}

	var decoded pullResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("queue pull: decode response: %w", err)
	}

	var messages []Message
	for _, raw := range decoded.Result.Messages {
		msg := Message{
			ID:      raw.ID,
			LeaseID: raw.LeaseID,
		}
		if msg.ID == "" {
			msg.ID = raw.MessageID
		}
		parsed := parseBody(raw.Body)
		msg.Key = parsed.Key
		msg.RouteTag = parsed.RouteTag
		if msg.ID == "" || msg.LeaseID == "" || msg.Key == "" {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Ack acknowledges the given messages so the queue stops redelivering them.
// A nil or empty slice is a no-op.
func (c *Client) Ack(ctx context.Context, messages []Message) error {
	if len(messages) == 0 {
		return nil
	}
	if err := c.checkCredentials(); err != nil {
		return err
	}
	type ackEntry struct {
		ID      string `json:"id"`
		LeaseID string `json:"lease_id"`
	}
	acks := make([]ackEntry, 0, len(messages))
	for _, msg := range messages {
		acks = append(acks, ackEntry{ID: msg.ID, LeaseID: msg.LeaseID})
	}
	if _, err := c.post(ctx, "ack", map[string]any{"acks": acks}); err != nil {
		return fmt.Errorf("queue ack: %w", err)
	}
	return nil
}

// parseBody tolerates both object bodies and bodies delivered as a JSON
// string that itself encodes the object.
func parseBody(raw json.RawMessage) messageBody {
	var body messageBody
	if len(raw) == 0 {
		return body
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		return body
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return body
	}
	_ = json.Unmarshal([]byte(encoded), &body)
	return body
}

func (c *Client) checkCredentials() error {
	if c.accountID == "" || c.queueID == "" || c.apiToken == "" {
		return errors.New("queue: account id, queue id, and api token are required")
	}
	return nil
}

func (c *Client) post(ctx context.Context, action string, payload any) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/accounts/%s/queues/%s/messages/%s",
		c.baseURL, c.accountID, c.queueID, action)
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
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
	return body, nil
}
