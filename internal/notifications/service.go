package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lectern/internal/config"
)

const userAgent = "Lectern/0.1.0"

// Service defines the notification surface exposed to pipeline components.
type Service interface {
	NotifyEpisodePublished(ctx context.Context, title, feedSlug string) error
	NotifyProcessingFailed(ctx context.Context, messageKey string, cause error) error
	NotifyConsumerStarted(ctx context.Context) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyEpisodePublished(ctx context.Context, title, feedSlug string) error {
	title = strings.TrimSpace(title)
	feedSlug = strings.TrimSpace(feedSlug)
	if feedSlug == "" {
		feedSlug = "general"
	}
	data := payload{
		title:   "Lectern - Episode Published",
		message: fmt.Sprintf("🎧 New episode in %s: %s", feedSlug, title),
		tags:    []string{"lectern", "episode", "published"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyProcessingFailed(ctx context.Context, messageKey string, cause error) error {
	var builder strings.Builder
	builder.WriteString("❌ Failed to process")
	if messageKey = strings.TrimSpace(messageKey); messageKey != "" {
		builder.WriteString(" ")
		builder.WriteString(messageKey)
	}
	builder.WriteString(": ")
	if cause != nil {
		builder.WriteString(strings.TrimSpace(cause.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Lectern - Error",
		message:  builder.String(),
		tags:     []string{"lectern", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyConsumerStarted(ctx context.Context) error {
	data := payload{
		title:   "Lectern - Consumer Started",
		message: "Queue consumer is polling for newsletters",
		tags:    []string{"lectern", "consumer", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Lectern - Test",
		message:  "🧪 Notification system test",
		tags:     []string{"lectern", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyEpisodePublished(context.Context, string, string) error  { return nil }
func (noopService) NotifyProcessingFailed(context.Context, string, error) error   { return nil }
func (noopService) NotifyConsumerStarted(context.Context) error                   { return nil }
func (noopService) TestNotification(context.Context) error                        { return nil }
