package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"lectern/internal/audio"
	"lectern/internal/config"
	"lectern/internal/email"
	"lectern/internal/feed"
	"lectern/internal/logging"
	"lectern/internal/processor"
	"lectern/internal/queue"
	"lectern/internal/services"
	"lectern/internal/sources"
	"lectern/internal/speechtext"
)

// Storage is the slice of the object store the pipeline touches.
type Storage interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	PutBytes(ctx context.Context, key string, data []byte, contentType string) error
	UploadFile(ctx context.Context, localPath, key, contentType string) error
}

// Synthesizer converts text to speech audio on disk.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice, outputPath string) error
}

// ProbeFunc inspects a synthesized audio file.
type ProbeFunc func(ctx context.Context, binary, path string) (audio.Info, error)

// Pipeline turns one raw newsletter message into a published episode:
// normalize, synthesize, upload, record, regenerate feeds.
type Pipeline struct {
	cfg      *config.Config
	store    *queue.Store
	storage  Storage
	synth    Synthesizer
	registry *sources.Registry
	feeds    *feed.Generator
	logger   *slog.Logger

	probe ProbeFunc
	now   func() time.Time
	newID func() string
}

// PipelineOption configures optional Pipeline behavior.
type PipelineOption func(*Pipeline)

// WithProbe overrides the audio probe (used in tests).
func WithProbe(probe ProbeFunc) PipelineOption {
	return func(p *Pipeline) {
		if probe != nil {
			p.probe = probe
		}
	}
}

// WithClock overrides the publication timestamp source (used in tests).
func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithIDGenerator overrides episode ID generation (used in tests).
func WithIDGenerator(newID func() string) PipelineOption {
	return func(p *Pipeline) {
		if newID != nil {
			p.newID = newID
		}
	}
}

// NewPipeline constructs the processing pipeline.
func NewPipeline(cfg *config.Config, store *queue.Store, storage Storage, synth Synthesizer, registry *sources.Registry, logger *slog.Logger, opts ...PipelineOption) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Pipeline{
		cfg:      cfg,
		store:    store,
		storage:  storage,
		synth:    synth,
		registry: registry,
		feeds:    feed.NewGenerator(cfg, store),
		logger:   logger,
		probe:    audio.Probe,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessKey downloads a raw message from storage and processes it.
func (p *Pipeline) ProcessKey(ctx context.Context, key, routeTag string) (*queue.Episode, error) {
	raw, err := p.storage.GetBytes(ctx, key)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "fetch", "get raw message", key, err)
	}
	return p.ProcessRaw(ctx, raw, key, routeTag)
}

// ProcessRaw runs the full pipeline over raw message bytes. sourceKey names
// the message for bookkeeping; it is marked processed on success.
func (p *Pipeline) ProcessRaw(ctx context.Context, raw []byte, sourceKey, routeTag string) (*queue.Episode, error) {
	ctx = services.WithMessageKey(ctx, sourceKey)
	log := p.logger.With(logging.String("message_key", sourceKey))

	result, err := processor.Process(raw)
	if err != nil {
		return nil, classifyProcessError(err)
	}

	msg, err := email.Parse(raw)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "normalize", "parse message", sourceKey, err)
	}

	preset := p.registry.Resolve(routeTag)
	adapter := preset.Adapter

	title := adapter.FormatTitle(result.Date, result.SubjectRaw, result.SubjectSlug)
	body := adapter.CleanBody(msg, result.Body)
	sourceURL := adapter.SourceURL(ctx, msg, result.Date, result.SubjectRaw)

	episodeSlug := fmt.Sprintf("%s-%s", result.Date, result.SubjectSlug)
	storageKey := fmt.Sprintf("episodes/%s/%s.mp3", preset.FeedSlug, episodeSlug)

	log.Info("processing newsletter",
		logging.String("title", title),
		logging.String("feed_slug", preset.FeedSlug),
		logging.String("adapter", preset.Name))

	tmpDir, err := os.MkdirTemp("", "lectern-")
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "synthesize", "create temp dir", "", err)
	}
	defer os.RemoveAll(tmpDir)

	outputPath := filepath.Join(tmpDir, episodeSlug+".mp3")
	if err := p.synth.Synthesize(ctx, body, preset.Voice, outputPath); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "synthesize", "speech api", episodeSlug, err)
	}

	stat, err := os.Stat(outputPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "synthesize", "stat output", outputPath, err)
	}

	info, err := p.probe(ctx, p.cfg.FFprobeBinary(), outputPath)
	if err != nil {
		log.Warn("audio probe failed, duration unknown", logging.Error(err))
		info = audio.Info{}
	}

	if err := p.storage.UploadFile(ctx, outputPath, storageKey, "audio/mpeg"); err != nil {
		return nil, services.Wrap(services.ErrTransient, "upload", "episode audio", storageKey, err)
	}

	episode := &queue.Episode{
		ID:              p.newID(),
		Title:           title,
		Slug:            episodeSlug,
		PubDate:         p.now().UTC().Format(time.RFC1123Z),
		StorageKey:      storageKey,
		FeedSlug:        preset.FeedSlug,
		Category:        preset.Category,
		SourceTag:       routeTag,
		AdapterName:     preset.Name,
		SourceURL:       sourceURL,
		SizeBytes:       stat.Size(),
		DurationSeconds: int64(info.DurationSeconds),
		DurationKnown:   info.Known,
	}

	if err := p.store.InsertEpisode(ctx, episode); err != nil {
		return nil, services.Wrap(services.ErrTransient, "persist", "insert episode", episode.Slug, err)
	}
	if err := p.store.MarkProcessed(ctx, sourceKey); err != nil {
		return nil, services.Wrap(services.ErrTransient, "persist", "mark processed", sourceKey, err)
	}

	if err := p.feeds.Publish(ctx, p.storage); err != nil {
		return nil, services.Wrap(services.ErrTransient, "publish", "regenerate feeds", "", err)
	}

	log.Info("episode published",
		logging.String("episode_id", episode.ID),
		logging.String("storage_key", episode.StorageKey),
		logging.Int64("size_bytes", episode.SizeBytes))
	return episode, nil
}

// classifyProcessError tags normalization failures. Structurally deficient
// messages will not improve on redelivery, so they are marked permanent.
func classifyProcessError(err error) error {
	switch {
	case errors.Is(err, email.ErrNoRenderableContent):
		return services.Wrap(services.ErrValidation, "normalize", "select content", "", err)
	case errors.Is(err, email.ErrMalformedMessage):
		return services.Wrap(services.ErrValidation, "normalize", "decode message", "", err)
	case errors.Is(err, email.ErrDecode):
		return services.Wrap(services.ErrValidation, "normalize", "decode payload", "", err)
	case errors.Is(err, speechtext.ErrDanglingFootnote):
		return services.Wrap(services.ErrValidation, "normalize", "inline footnotes", "", err)
	default:
		return services.Wrap(services.ErrTransient, "normalize", "", "", err)
	}
}
