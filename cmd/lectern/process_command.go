package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lectern/internal/config"
	"lectern/internal/email"
	"lectern/internal/logging"
	"lectern/internal/processor"
	"lectern/internal/queue"
	"lectern/internal/sources"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var routeTag string
	var storageKey string
	var skipSynthesis bool

	cmd := &cobra.Command{
		Use:   "process [message-file]",
		Short: "Convert one newsletter message into a published episode",
		Long: "Process runs the full pipeline for a single message: normalize the " +
			"email, synthesize speech, upload the audio, record the episode, and " +
			"regenerate the affected feeds. The message comes from a local file or, " +
			"with --key, from object storage.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if storageKey == "" && len(args) == 0 {
				return errors.New("provide a message file or --key")
			}
			if storageKey != "" && len(args) > 0 {
				return errors.New("--key and a message file are mutually exclusive")
			}

			if skipSynthesis {
				if len(args) == 0 {
					return errors.New("--skip-synthesis requires a local message file")
				}
				return previewMessage(cmd, args[0], routeTag)
			}

			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				logger, err := logging.NewFromConfig(cfg)
				if err != nil {
					return fmt.Errorf("init logger: %w", err)
				}
				pipeline, err := ctx.buildPipeline(cfg, store, logger)
				if err != nil {
					return err
				}

				var episode *queue.Episode
				if storageKey != "" {
					episode, err = pipeline.ProcessKey(cmd.Context(), storageKey, routeTag)
				} else {
					path, pathErr := config.ExpandPath(args[0])
					if pathErr != nil {
						return pathErr
					}
					raw, readErr := os.ReadFile(path)
					if readErr != nil {
						return fmt.Errorf("read message file: %w", readErr)
					}
					episode, err = pipeline.ProcessRaw(cmd.Context(), raw, "local/"+filepath.Base(path), routeTag)
				}
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Published %s\n", episode.Title)
				fmt.Fprintf(out, "  Feed:  %s\n", episode.FeedSlug)
				fmt.Fprintf(out, "  Audio: %s\n", episode.StorageKey)
				if episode.SourceURL != "" {
					fmt.Fprintf(out, "  Source: %s\n", episode.SourceURL)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&routeTag, "tag", "t", "", "Route tag selecting the newsletter preset")
	cmd.Flags().StringVar(&storageKey, "key", "", "Process a raw message already in object storage")
	cmd.Flags().BoolVar(&skipSynthesis, "skip-synthesis", false, "Print the normalized title and body instead of producing audio")
	return cmd
}

// previewMessage runs normalization and adapter cleanup only, printing the
// text the synthesizer would receive.
func previewMessage(cmd *cobra.Command, inputPath, routeTag string) error {
	path, err := config.ExpandPath(inputPath)
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read message file: %w", err)
	}

	result, err := processor.Process(raw)
	if err != nil {
		return err
	}
	msg, err := email.Parse(raw)
	if err != nil {
		return err
	}

	preset := sources.NewRegistry(nil).Resolve(routeTag)
	title := preset.Adapter.FormatTitle(result.Date, result.SubjectRaw, result.SubjectSlug)
	body := preset.Adapter.CleanBody(msg, result.Body)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, title)
	fmt.Fprintln(out)
	fmt.Fprintln(out, body)
	return nil
}
