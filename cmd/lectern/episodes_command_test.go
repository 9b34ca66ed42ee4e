package main

import (
	"strings"
	"testing"

	"lectern/internal/queue"
)

func TestEpisodesEmpty(t *testing.T) {
	env := setupCLIEnv(t)

	out, err := runCLI(t, []string{"episodes"}, env.configPath)
	if err != nil {
		t.Fatalf("episodes: %v", err)
	}
	requireContains(t, out, "No episodes published yet")
}

func TestEpisodesListsAndFilters(t *testing.T) {
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
	env.seedEpisode(t, &queue.Episode{
		ID:          "ep-2",
		Title:       "2026-02-13 - Weekly Roundup",
		Slug:        "2026-02-13-weekly-roundup",
		PubDate:     "Fri, 13 Feb 2026 08:00:00 +0000",
		StorageKey:  "episodes/general/2026-02-13-weekly-roundup.mp3",
		FeedSlug:    "general",
		Category:    "News",
		AdapterName: "General Newsletter",
		SizeBytes:   512 << 10,
	})

	out, err := runCLI(t, []string{"episodes"}, env.configPath)
	if err != nil {
		t.Fatalf("episodes: %v", err)
	}
	requireContains(t, out, "Money Stuff - The Market")
	requireContains(t, out, "Weekly Roundup")
	requireContains(t, out, "10:14")
	requireContains(t, out, "4.0 MB")
	requireContains(t, out, "512.0 KB")

	out, err = runCLI(t, []string{"episodes", "--feed", "levine"}, env.configPath)
	if err != nil {
		t.Fatalf("episodes --feed: %v", err)
	}
	requireContains(t, out, "Money Stuff - The Market")
	if strings.Contains(out, "Weekly Roundup") {
		t.Fatalf("expected feed filter to exclude general episodes, got:\n%s", out)
	}
}

func TestFormatSize(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{0, "-"},
		{512, "0.5 KB"},
		{1 << 20, "1.0 MB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tc := range cases {
		if got := formatSize(tc.bytes); got != tc.want {
			t.Errorf("formatSize(%d) = %q, want %q", tc.bytes, got, tc.want)
		}
	}
}
