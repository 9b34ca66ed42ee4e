package sources

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"lectern/internal/email"
)

var (
	moneyStuffSubject = regexp.MustCompile(`(?i)^Money Stuff:\s*(.+)$`)
	bloombergArticle  = regexp.MustCompile(`(?i)^https://www\.bloomberg\.com/opinion/newsletters/\d{4}-\d{2}-\d{2}/[^/?#]+`)
)

// LevineAdapter handles Bloomberg's Money Stuff newsletter. Bloomberg mails
// carry tracking shortlinks rather than direct article links, so the source
// URL lookup falls through several strategies before giving up.
type LevineAdapter struct {
	resolver *resolver
}

func NewLevineAdapter(client *http.Client) *LevineAdapter {
	return &LevineAdapter{resolver: newResolver(client)}
}

func (a *LevineAdapter) FormatTitle(date, subjectRaw, subjectSlug string) string {
	subject := displaySubject(subjectRaw, subjectSlug)
	if m := moneyStuffSubject.FindStringSubmatch(subject); m != nil {
		return fmt.Sprintf("%s - Money Stuff - %s", date, strings.TrimSpace(m[1]))
	}
	return fmt.Sprintf("%s - %s", date, subject)
}

func (a *LevineAdapter) CleanBody(msg *email.Message, fallback string) string {
	return fallback
}

// SourceURL tries, in order: a direct article link in the message body, a
// resolved Bloomberg shortlink, and finally a URL constructed from the
// column title.
func (a *LevineAdapter) SourceURL(ctx context.Context, msg *email.Message, date, subjectRaw string) string {
	links := candidateLinks(msg)

	for _, link := range links {
		if bloombergArticle.MatchString(link) {
			return canonicalizeURL(link)
		}
	}

	for _, link := range links {
		if !strings.HasPrefix(link, "https://bloom.bg/") &&
			!strings.HasPrefix(link, "https://links.message.bloomberg.com/") {
			continue
		}
		redirected := a.resolver.resolveOnce(ctx, link)
		if redirected != "" && bloombergArticle.MatchString(redirected) {
			return canonicalizeURL(redirected)
		}
	}

	if m := moneyStuffSubject.FindStringSubmatch(strings.TrimSpace(subjectRaw)); m != nil {
		if slug := slugifyForURL(m[1]); slug != "" {
			return fmt.Sprintf("https://www.bloomberg.com/opinion/newsletters/%s/%s", date, slug)
		}
	}
	return ""
}
