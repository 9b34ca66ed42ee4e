package sources

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var (
	linkPattern     = regexp.MustCompile(`https?://[^\s<>'"]+`)
	urlSlugStrip    = regexp.MustCompile(`[^a-z0-9\s-]`)
	urlSlugSpaces   = regexp.MustCompile(`\s+`)
	urlSlugDashRuns = regexp.MustCompile(`-+`)
)

type textProvider interface {
	TextParts() []string
}

// candidateLinks collects every HTTP link from the text parts of a message,
// stripped of trailing punctuation and deduplicated in first-seen order.
func candidateLinks(msg textProvider) []string {
	seen := make(map[string]struct{})
	var links []string
	for _, text := range msg.TextParts() {
		for _, match := range linkPattern.FindAllString(text, -1) {
			link := strings.TrimRight(match, ").,>")
			if _, ok := seen[link]; ok {
				continue
			}
			seen[link] = struct{}{}
			links = append(links, link)
		}
	}
	return links
}

// canonicalizeURL drops the query and fragment so tracking parameters never
// reach the feed.
func canonicalizeURL(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return link
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String()
}

// slugifyForURL lowercases and reduces text to the dash-separated form
// newsletter platforms use in article paths.
func slugifyForURL(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	lower = urlSlugStrip.ReplaceAllString(lower, "")
	lower = urlSlugSpaces.ReplaceAllString(lower, "-")
	lower = urlSlugDashRuns.ReplaceAllString(lower, "-")
	return strings.Trim(lower, "-")
}

// resolver follows a single redirect hop to unwrap tracking shortlinks.
type resolver struct {
	client *http.Client
}

func newResolver(client *http.Client) *resolver {
	base := client
	if base == nil {
		base = &http.Client{Timeout: 10 * time.Second}
	}
	clone := *base
	clone.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &resolver{client: &clone}
}

// resolveOnce fetches the link without following redirects and returns the
// Location target, made absolute against the request URL when relative. It
// returns an empty string when no redirect is offered or the request fails.
func (r *resolver) resolveOnce(ctx context.Context, link string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return ""
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	location := resp.Header.Get("Location")
	if location == "" {
		return ""
	}
	if strings.HasPrefix(location, "/") {
		parsed, err := url.Parse(link)
		if err != nil {
			return ""
		}
		return parsed.Scheme + "://" + parsed.Host + location
	}
	return location
}
