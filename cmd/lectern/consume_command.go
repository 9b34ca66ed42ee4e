package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lectern/internal/daemon"
	"lectern/internal/logging"
	"lectern/internal/notifications"
	"lectern/internal/queue"
	"lectern/internal/services/cfqueue"
	"lectern/internal/workflow"
)

func newConsumeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "consume",
		Short: "Run the queue consumer in the foreground",
		Long: "Consume polls the message queue and processes newsletter " +
			"notifications until interrupted. Only one consumer may run at a " +
			"time; a lock file in the state directory enforces this.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateForConsume(); err != nil {
				return err
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			store, err := queue.Open(cfg)
			if err != nil {
				return fmt.Errorf("open episode store: %w", err)
			}

			pipeline, err := ctx.buildPipeline(cfg, store, logger)
			if err != nil {
				store.Close()
				return err
			}
			consumer := cfqueue.NewClientFromConfig(cfg)
			manager := workflow.NewManager(cfg, consumer, pipeline, store, notifications.NewService(cfg), logger)

			d, err := daemon.New(cfg, store, logger, manager)
			if err != nil {
				store.Close()
				return err
			}
			defer d.Close()

			if err := d.Start(signalCtx); err != nil {
				return err
			}

			<-signalCtx.Done()
			d.Stop()
			return nil
		},
	}
}
