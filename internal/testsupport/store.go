package testsupport

import (
	"context"
	"testing"

	"lectern/internal/config"
	"lectern/internal/queue"
)

// MustOpenStore opens a queue.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedEpisode inserts an episode row for tests using the provided store.
func SeedEpisode(t testing.TB, store *queue.Store, episode *queue.Episode) {
	t.Helper()

	if err := store.InsertEpisode(context.Background(), episode); err != nil {
		t.Fatalf("store.InsertEpisode: %v", err)
	}
}
