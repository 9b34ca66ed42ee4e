package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lectern/internal/audio"
	"lectern/internal/config"
	"lectern/internal/queue"
)

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	var feedSlug string

	cmd := &cobra.Command{
		Use:   "episodes",
		Short: "List published episodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				episodes, err := store.ListEpisodes(cmd.Context(), feedSlug)
				if err != nil {
					return err
				}
				if len(episodes) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No episodes published yet")
					return nil
				}

				rows := make([][]string, 0, len(episodes))
				for _, episode := range episodes {
					duration := audio.FormatDuration(audio.Info{
						DurationSeconds: int(episode.DurationSeconds),
						Known:           episode.DurationKnown,
					})
					rows = append(rows, []string{
						episode.Title,
						episode.FeedSlug,
						duration,
						formatSize(episode.SizeBytes),
						episode.PubDate,
					})
				}

				rendered := renderTable(
					[]string{"Title", "Feed", "Duration", "Size", "Published"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), rendered)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&feedSlug, "feed", "f", "", "Only list episodes from one feed")
	return cmd
}

func formatSize(bytes int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
	)
	switch {
	case bytes <= 0:
		return "-"
	case bytes < mb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	}
}
