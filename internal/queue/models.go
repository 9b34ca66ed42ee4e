package queue

import "time"

// Episode is one published podcast episode row.
type Episode struct {
	ID              string
	Title           string
	Slug            string
	PubDate         string
	StorageKey      string
	FeedSlug        string
	Category        string
	SourceTag       string
	AdapterName     string
	SourceURL       string
	SizeBytes       int64
	DurationSeconds int64
	// DurationKnown is false when ffprobe could not measure the audio.
	DurationKnown bool
	CreatedAt     time.Time
}
