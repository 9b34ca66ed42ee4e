package main

import (
	"fmt"
	"log/slog"

	"lectern/internal/config"
	"lectern/internal/notifications"
	"lectern/internal/queue"
	"lectern/internal/services/cfqueue"
	"lectern/internal/services/storage"
	"lectern/internal/services/tts"
	"lectern/internal/sources"
	"lectern/internal/workflow"
)

// buildManager wires the queue consumer, processing pipeline, and
// notification service into a workflow manager.
func buildManager(cfg *config.Config, store *queue.Store, logger *slog.Logger) (*workflow.Manager, error) {
	objects, err := storage.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}

	synth := tts.NewClientFromConfig(cfg)
	registry := sources.NewRegistry(nil)
	pipeline := workflow.NewPipeline(cfg, store, objects, synth, registry, logger)

	consumer := cfqueue.NewClientFromConfig(cfg)
	notifier := notifications.NewService(cfg)
	return workflow.NewManager(cfg, consumer, pipeline, store, notifier, logger), nil
}
