package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lectern/internal/config"
	"lectern/internal/feed"
	"lectern/internal/queue"
	"lectern/internal/services/storage"
)

func newFeedCommand(ctx *commandContext) *cobra.Command {
	feedCmd := &cobra.Command{
		Use:   "feed",
		Short: "Generate and publish RSS feeds",
	}

	feedCmd.AddCommand(newFeedShowCommand(ctx))
	feedCmd.AddCommand(newFeedPublishCommand(ctx))

	return feedCmd
}

func newFeedShowCommand(ctx *commandContext) *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "show [slug]",
		Short: "Print feed XML for one feed (or the aggregate feed)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				slug := ""
				if len(args) == 1 {
					slug = args[0]
				}
				document, err := feed.NewGenerator(cfg, store).Generate(cmd.Context(), slug)
				if err != nil {
					return err
				}
				if outputFile != "" {
					path, err := config.ExpandPath(outputFile)
					if err != nil {
						return err
					}
					if err := os.WriteFile(path, document, 0o644); err != nil {
						return fmt.Errorf("write feed file: %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote feed to %s\n", path)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(document))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "Write the feed XML to a file instead of stdout")
	return cmd
}

func newFeedPublishCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Regenerate all feeds and upload them to object storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				objects, err := storage.NewClient(cfg)
				if err != nil {
					return err
				}
				if err := feed.NewGenerator(cfg, store).Publish(cmd.Context(), objects); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Feeds published")
				return nil
			})
		},
	}
}
