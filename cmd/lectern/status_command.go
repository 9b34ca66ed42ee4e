package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lectern/internal/queue"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and readiness summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Lectern Status", colorize) {
				fmt.Fprintln(out, line)
			}

			configKind, configMsg := statusOK, ctx.configPath
			if !ctx.configExists {
				configKind, configMsg = statusWarn, "not found; defaults in use"
			}
			fmt.Fprintln(out, renderStatusLine("Config file", configKind, configMsg, colorize))

			if store, openErr := queue.Open(cfg); openErr != nil {
				fmt.Fprintln(out, renderStatusLine("State database", statusError, openErr.Error(), colorize))
			} else {
				episodes, listErr := store.ListEpisodes(cmd.Context(), "")
				store.Close()
				if listErr != nil {
					fmt.Fprintln(out, renderStatusLine("State database", statusError, listErr.Error(), colorize))
				} else {
					fmt.Fprintln(out, renderStatusLine("State database", statusOK,
						fmt.Sprintf("%d episodes recorded", len(episodes)), colorize))
				}
			}

			storageKind := statusOK
			storageMsg := cfg.Storage.Endpoint + "/" + cfg.Storage.Bucket
			if cfg.Storage.AccessKey == "" || cfg.Storage.SecretKey == "" {
				storageKind, storageMsg = statusWarn, "credentials not set"
			}
			fmt.Fprintln(out, renderStatusLine("Object storage", storageKind, storageMsg, colorize))

			queueKind, queueMsg := statusOK, "pull consumer configured"
			if consumeErr := cfg.ValidateForConsume(); consumeErr != nil {
				queueKind, queueMsg = statusWarn, "queue credentials not set"
			}
			fmt.Fprintln(out, renderStatusLine("Queue", queueKind, queueMsg, colorize))

			ttsKind, ttsMsg := statusOK, cfg.TTS.Model+" / "+cfg.TTS.Voice
			if cfg.TTS.APIKey == "" {
				ttsKind, ttsMsg = statusWarn, "api key not set"
			}
			fmt.Fprintln(out, renderStatusLine("Speech synthesis", ttsKind, ttsMsg, colorize))

			notifyKind, notifyMsg := statusInfo, "disabled"
			if strings.TrimSpace(cfg.Notifications.NtfyTopic) != "" {
				notifyKind, notifyMsg = statusOK, cfg.Notifications.NtfyTopic
			}
			fmt.Fprintln(out, renderStatusLine("Notifications", notifyKind, notifyMsg, colorize))

			return nil
		},
	}
}
