package sources

import (
	"context"
	"net/http"
	"strings"

	"lectern/internal/email"
)

// Adapter shapes episode titles, body text, and the canonical web link for
// one newsletter source.
type Adapter interface {
	// FormatTitle builds the episode title from the message date and subject.
	FormatTitle(date, subjectRaw, subjectSlug string) string
	// CleanBody returns the text handed to speech synthesis. The fallback is
	// the output of the normalization pipeline; adapters may prefer another
	// representation of the same message.
	CleanBody(msg *email.Message, fallback string) string
	// SourceURL returns the canonical web URL for the newsletter issue, or an
	// empty string when none can be determined.
	SourceURL(ctx context.Context, msg *email.Message, date, subjectRaw string) string
}

// Preset bundles the per-source settings applied to every episode from one
// newsletter.
type Preset struct {
	Name     string
	FeedSlug string
	Voice    string
	Category string
	Adapter  Adapter
}

// Registry maps inbound route tags to newsletter presets. Unknown tags fall
// back to the general preset.
type Registry struct {
	byTag    map[string]Preset
	fallback Preset
}

// NewRegistry builds the preset registry. The HTTP client is used by adapters
// that resolve tracking shortlinks; nil selects a default client.
func NewRegistry(client *http.Client) *Registry {
	r := &Registry{
		byTag: make(map[string]Preset),
		fallback: Preset{
			Name:     "General Newsletter",
			FeedSlug: "general",
			Voice:    "ash",
			Category: "News",
			Adapter:  DefaultAdapter{},
		},
	}
	r.register(Preset{
		Name:     "Matt Levine - Money Stuff",
		FeedSlug: "levine",
		Voice:    "ash",
		Category: "Business",
		Adapter:  NewLevineAdapter(client),
	}, "levine", "money-stuff", "moneystuff", "bloomberg")
	r.register(Preset{
		Name:     "Yglesias Substack",
		FeedSlug: "yglesias",
		Voice:    "sage",
		Category: "News",
		Adapter:  NewSubstackAdapter("Slow Boring", "slowboring.com", client),
	}, "yglesias", "slowboring", "substack-yglesias")
	r.register(Preset{
		Name:     "Nate Silver - Silver Bulletin",
		FeedSlug: "silver",
		Voice:    "echo",
		Category: "News",
		Adapter:  NewSubstackAdapter("Silver Bulletin", "natesilver.net", client),
	}, "silver", "natesilver", "silverbulletin")
	return r
}

func (r *Registry) register(preset Preset, tags ...string) {
	for _, tag := range tags {
		r.byTag[tag] = preset
	}
}

// Resolve returns the preset for a route tag. Tags are matched after trimming
// and lowercasing; an empty or unknown tag yields the general preset.
func (r *Registry) Resolve(routeTag string) Preset {
	tag := strings.ToLower(strings.TrimSpace(routeTag))
	if tag == "" {
		return r.fallback
	}
	if preset, ok := r.byTag[tag]; ok {
		return preset
	}
	return r.fallback
}

// DefaultAdapter passes the pipeline output through untouched and claims no
// source URL.
type DefaultAdapter struct{}

func (DefaultAdapter) FormatTitle(date, subjectRaw, subjectSlug string) string {
	return displaySubject(subjectRaw, subjectSlug)
}

func (DefaultAdapter) CleanBody(msg *email.Message, fallback string) string {
	return fallback
}

func (DefaultAdapter) SourceURL(ctx context.Context, msg *email.Message, date, subjectRaw string) string {
	return ""
}

// displaySubject prefers the raw subject and falls back to the slug with
// dashes restored to spaces.
func displaySubject(subjectRaw, subjectSlug string) string {
	if subject := strings.TrimSpace(subjectRaw); subject != "" {
		return subject
	}
	return strings.ReplaceAll(subjectSlug, "-", " ")
}
