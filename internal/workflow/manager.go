package workflow

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"lectern/internal/config"
	"lectern/internal/logging"
	"lectern/internal/notifications"
	"lectern/internal/queue"
	"lectern/internal/services"
	"lectern/internal/services/cfqueue"
)

// Consumer is the queue surface the manager polls.
type Consumer interface {
	Pull(ctx context.Context, batchSize, visibilityTimeout int) ([]cfqueue.Message, error)
	Ack(ctx context.Context, messages []cfqueue.Message) error
}

// Manager drives the consume loop: pull queued notifications, run the
// pipeline for each, and acknowledge the ones that should not be redelivered.
type Manager struct {
	cfg      *config.Config
	consumer Consumer
	pipeline *Pipeline
	store    *queue.Store
	notifier notifications.Service
	logger   *slog.Logger

	pollInterval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewManager constructs a consume-loop manager.
func NewManager(cfg *config.Config, consumer Consumer, pipeline *Pipeline, store *queue.Store, notifier notifications.Service, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	pollInterval := time.Duration(cfg.Queue.PollInterval) * time.Second
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}
	return &Manager{
		cfg:          cfg,
		consumer:     consumer,
		pipeline:     pipeline,
		store:        store,
		notifier:     notifier,
		logger:       logger,
		pollInterval: pollInterval,
	}
}

// Start begins background polling.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("consumer already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.wg.Add(1)
	m.mu.Unlock()

	if err := m.notifier.NotifyConsumerStarted(runCtx); err != nil {
		m.logger.Warn("consumer start notification failed", logging.Error(err))
	}
	go m.run(runCtx)
	return nil
}

// Stop terminates background polling and waits for completion.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
}

func (m *Manager) run(ctx context.Context) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !m.pollOnce(ctx) {
			select {
			case <-ctx.Done():
				return
			case <-time.After(m.pollInterval):
			}
		}
	}
}

// pollOnce pulls and handles one batch. It reports whether any messages were
// received, so the caller knows to poll again immediately.
func (m *Manager) pollOnce(ctx context.Context) bool {
	messages, err := m.consumer.Pull(ctx, m.cfg.Queue.BatchSize, m.cfg.Queue.VisibilityTimeout)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			m.logger.Error("queue pull failed", logging.Error(err))
		}
		return false
	}
	if len(messages) == 0 {
		return false
	}

	acks := make([]cfqueue.Message, 0, len(messages))
	for _, msg := range messages {
		if ctx.Err() != nil {
			break
		}
		if m.handleMessage(ctx, msg) {
			acks = append(acks, msg)
		}
	}

	if err := m.consumer.Ack(ctx, acks); err != nil {
		m.logger.Error("queue ack failed", logging.Error(err),
			logging.Int("count", len(acks)))
	}
	return true
}

// handleMessage processes one notification and reports whether it should be
// acknowledged. Processed duplicates and permanent failures are acknowledged;
// transient failures stay leased for redelivery.
func (m *Manager) handleMessage(ctx context.Context, msg cfqueue.Message) bool {
	log := m.logger.With(
		logging.String("message_key", msg.Key),
		logging.String("route_tag", msg.RouteTag))

	done, err := m.store.IsProcessed(ctx, msg.Key)
	if err != nil {
		log.Error("processed lookup failed", logging.Error(err))
		return false
	}
	if done {
		log.Info("skipping already-processed message")
		return true
	}

	episode, err := m.pipeline.ProcessKey(ctx, msg.Key, msg.RouteTag)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return false
		}
		log.Error("processing failed", logging.Error(err))
		if notifyErr := m.notifier.NotifyProcessingFailed(ctx, msg.Key, err); notifyErr != nil {
			log.Warn("failure notification failed", logging.Error(notifyErr))
		}
		return services.Permanent(err)
	}

	if err := m.notifier.NotifyEpisodePublished(ctx, episode.Title, episode.FeedSlug); err != nil {
		log.Warn("publish notification failed", logging.Error(err))
	}
	return true
}
