package queue_test

import (
	"context"
	"testing"

	"lectern/internal/queue"
	"lectern/internal/testsupport"
)

func TestInsertAndListEpisodes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	first := &queue.Episode{
		ID:              "id-1",
		Title:           "2024-03-01 - Money Stuff - A Column",
		Slug:            "2024-03-01-Money-Stuff-A-Column",
		PubDate:         "Fri, 01 Mar 2024 12:00:00 +0000",
		StorageKey:      "episodes/levine/2024-03-01-Money-Stuff-A-Column.mp3",
		FeedSlug:        "levine",
		Category:        "Business",
		SourceTag:       "levine",
		AdapterName:     "Matt Levine - Money Stuff",
		SourceURL:       "https://www.bloomberg.com/opinion/newsletters/2024-03-01/a-column",
		SizeBytes:       1024,
		DurationSeconds: 600,
		DurationKnown:   true,
	}
	if err := store.InsertEpisode(ctx, first); err != nil {
		t.Fatalf("InsertEpisode failed: %v", err)
	}

	second := &queue.Episode{
		ID:          "id-2",
		Title:       "A general letter",
		Slug:        "2024-03-02-A-general-letter",
		PubDate:     "Sat, 02 Mar 2024 12:00:00 +0000",
		StorageKey:  "episodes/general/2024-03-02-A-general-letter.mp3",
		FeedSlug:    "general",
		Category:    "News",
		AdapterName: "General Newsletter",
		SizeBytes:   2048,
	}
	if err := store.InsertEpisode(ctx, second); err != nil {
		t.Fatalf("InsertEpisode failed: %v", err)
	}

	all, err := store.ListEpisodes(ctx, "")
	if err != nil {
		t.Fatalf("ListEpisodes failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 episodes, got %d", len(all))
	}

	levine, err := store.ListEpisodes(ctx, "levine")
	if err != nil {
		t.Fatalf("ListEpisodes(levine) failed: %v", err)
	}
	if len(levine) != 1 || levine[0].ID != "id-1" {
		t.Fatalf("unexpected levine episodes: %#v", levine)
	}
	if !levine[0].DurationKnown || levine[0].DurationSeconds != 600 {
		t.Fatalf("duration not round-tripped: %#v", levine[0])
	}
	if levine[0].SourceURL == "" {
		t.Fatalf("source url not round-tripped: %#v", levine[0])
	}

	general, err := store.ListEpisodes(ctx, "general")
	if err != nil {
		t.Fatalf("ListEpisodes(general) failed: %v", err)
	}
	if len(general) != 1 {
		t.Fatalf("unexpected general episodes: %#v", general)
	}
	if general[0].DurationKnown {
		t.Fatalf("expected unknown duration, got %#v", general[0])
	}
	if general[0].SourceTag != "" {
		t.Fatalf("expected empty source tag, got %q", general[0].SourceTag)
	}

	slugs, err := store.ListFeedSlugs(ctx)
	if err != nil {
		t.Fatalf("ListFeedSlugs failed: %v", err)
	}
	if len(slugs) != 2 || slugs[0] != "general" || slugs[1] != "levine" {
		t.Fatalf("unexpected feed slugs: %v", slugs)
	}
}

func TestInsertEpisodeRequiresID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	err := store.InsertEpisode(context.Background(), &queue.Episode{Title: "no id"})
	if err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestProcessedMessages(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	key := "inbound/levine/msg-1.eml"

	done, err := store.IsProcessed(ctx, key)
	if err != nil {
		t.Fatalf("IsProcessed failed: %v", err)
	}
	if done {
		t.Fatal("expected unprocessed key")
	}

	if err := store.MarkProcessed(ctx, key); err != nil {
		t.Fatalf("MarkProcessed failed: %v", err)
	}
	if err := store.MarkProcessed(ctx, key); err != nil {
		t.Fatalf("MarkProcessed twice failed: %v", err)
	}

	done, err = store.IsProcessed(ctx, key)
	if err != nil {
		t.Fatalf("IsProcessed failed: %v", err)
	}
	if !done {
		t.Fatal("expected processed key")
	}
}

func TestOpenTwiceReusesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
}
