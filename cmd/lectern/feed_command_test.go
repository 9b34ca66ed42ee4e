package main

import (
	"strings"
	"testing"

	"lectern/internal/queue"
)

func TestFeedShow(t *testing.T) {
	env := setupCLIEnv(t)
	env.seedEpisode(t, &queue.Episode{
		ID:              "ep-1",
		Title:           "2026-02-12 - Money Stuff - The Market",
		Slug:            "2026-02-12-the-market",
		PubDate:         "Thu, 12 Feb 2026 19:00:00 +0000",
		StorageKey:      "episodes/levine/2026-02-12-the-market.mp3",
		FeedSlug:        "levine",
		Category:        "Business",
		AdapterName:     "Matt Levine - Money Stuff",
		SizeBytes:       4 << 20,
		DurationSeconds: 614,
		DurationKnown:   true,
	})

	out, err := runCLI(t, []string{"feed", "show", "levine"}, env.configPath)
	if err != nil {
		t.Fatalf("feed show: %v", err)
	}
	requireContains(t, out, "<rss version=\"2.0\"")
	requireContains(t, out, "Money Stuff - The Market")
	requireContains(t, out, "episodes/levine/2026-02-12-the-market.mp3")

	aggregate, err := runCLI(t, []string{"feed", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("feed show aggregate: %v", err)
	}
	if !strings.Contains(aggregate, "Money Stuff - The Market") {
		t.Fatalf("expected aggregate feed to include the episode, got:\n%s", aggregate)
	}
}
