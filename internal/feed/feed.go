package feed

import (
	"context"
	"encoding/xml"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"lectern/internal/audio"
	"lectern/internal/config"
	"lectern/internal/queue"
)

const (
	// ContentType is the media type feeds are uploaded with.
	ContentType = "application/rss+xml"

	// GeneralSlug names the catch-all feed that aggregates every episode.
	GeneralSlug = "general"

	itunesNamespace = "http://www.itunes.com/dtds/podcast-1.0.dtd"
)

// Uploader is the slice of the storage client the publisher needs.
type Uploader interface {
	PutBytes(ctx context.Context, key string, data []byte, contentType string) error
}

// Generator renders RSS documents from the episode store.
type Generator struct {
	cfg   *config.Config
	store *queue.Store
}

func NewGenerator(cfg *config.Config, store *queue.Store) *Generator {
	return &Generator{cfg: cfg, store: store}
}

type rssDocument struct {
	XMLName     xml.Name   `xml:"rss"`
	Version     string     `xml:"version,attr"`
	ITunesXMLNS string     `xml:"xmlns:itunes,attr"`
	Channel     rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string         `xml:"title"`
	Link        string         `xml:"link"`
	Description string         `xml:"description"`
	Language    string         `xml:"language"`
	Author      string         `xml:"itunes:author"`
	Image       rssImage       `xml:"itunes:image"`
	Category    itunesCategory `xml:"itunes:category"`
	Items       []rssItem      `xml:"item"`
}

type rssImage struct {
	Href string `xml:"href,attr"`
}

type itunesCategory struct {
	Text string `xml:"text,attr"`
}

type rssItem struct {
	Title          string         `xml:"title"`
	Link           string         `xml:"link,omitempty"`
	Description    string         `xml:"description,omitempty"`
	Enclosure      rssEnclosure   `xml:"enclosure"`
	GUID           rssGUID        `xml:"guid"`
	PubDate        string         `xml:"pubDate"`
	Category       string         `xml:"category"`
	ITunesCategory itunesCategory `xml:"itunes:category"`
	Duration       string         `xml:"itunes:duration"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Generate renders the RSS document for one feed. An empty or "general" slug
// yields the aggregate feed covering every episode.
func (g *Generator) Generate(ctx context.Context, feedSlug string) ([]byte, error) {
	slugFilter := feedSlug
	if slugFilter == GeneralSlug {
		slugFilter = ""
	}
	episodes, err := g.store.ListEpisodes(ctx, slugFilter)
	if err != nil {
		return nil, fmt.Errorf("feed: list episodes: %w", err)
	}

	podcast := g.cfg.Podcast
	title := podcast.Title
	imageURL := podcast.ImageURL
	if feedSlug != "" && feedSlug != GeneralSlug {
		title = fmt.Sprintf("%s - %s", podcast.Title, cases.Title(language.Und).String(feedSlug))
		imageURL = fmt.Sprintf("%s/cover-%s.jpg", podcast.BaseURL, feedSlug)
	}

	category := podcast.DefaultCategory
	if len(episodes) > 0 && episodes[0].Category != "" {
		category = episodes[0].Category
	}

	doc := rssDocument{
		Version:     "2.0",
		ITunesXMLNS: itunesNamespace,
		Channel: rssChannel{
			Title:       title,
			Link:        podcast.BaseURL,
			Description: podcast.Description,
			Language:    podcast.Language,
			Author:      podcast.Author,
			Image:       rssImage{Href: imageURL},
			Category:    itunesCategory{Text: category},
		},
	}

	for _, episode := range episodes {
		item := rssItem{
			Title: episode.Title,
			Enclosure: rssEnclosure{
				URL:    fmt.Sprintf("%s/%s", podcast.BaseURL, episode.StorageKey),
				Length: episode.SizeBytes,
				Type:   "audio/mpeg",
			},
			GUID:           rssGUID{IsPermaLink: "false", Value: episode.ID},
			PubDate:        episode.PubDate,
			Category:       episode.Category,
			ITunesCategory: itunesCategory{Text: episode.Category},
			Duration: audio.FormatDuration(audio.Info{
				DurationSeconds: int(episode.DurationSeconds),
				Known:           episode.DurationKnown,
			}),
		}
		if episode.SourceURL != "" {
			item.Link = episode.SourceURL
			item.Description = episode.SourceURL
		}
		doc.Channel.Items = append(doc.Channel.Items, item)
	}

	rendered, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("feed: marshal rss: %w", err)
	}
	return append([]byte(xml.Header), rendered...), nil
}

// Publish regenerates the aggregate feed plus one feed per known slug and
// uploads them to the object store. The aggregate lives at feed.xml, per-slug
// feeds under feeds/.
func (g *Generator) Publish(ctx context.Context, uploader Uploader) error {
	general, err := g.Generate(ctx, "")
	if err != nil {
		return err
	}
	if err := uploader.PutBytes(ctx, "feed.xml", general, ContentType); err != nil {
		return fmt.Errorf("feed: upload feed.xml: %w", err)
	}

	slugs, err := g.store.ListFeedSlugs(ctx)
	if err != nil {
		return fmt.Errorf("feed: list feed slugs: %w", err)
	}
	for _, slug := range slugs {
		if slug == GeneralSlug {
			continue
		}
		rendered, err := g.Generate(ctx, slug)
		if err != nil {
			return err
		}
		key := fmt.Sprintf("feeds/%s.xml", slug)
		if err := uploader.PutBytes(ctx, key, rendered, ContentType); err != nil {
			return fmt.Errorf("feed: upload %s: %w", key, err)
		}
	}
	return nil
}
