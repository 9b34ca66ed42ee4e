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
	webPostBanner   = regexp.MustCompile(`^View this post on the web at .*\n+`)
	bracketedLink   = regexp.MustCompile(`\s*\[\s*https?://[^\]]+\s*\]`)
	unsubscribeTail = regexp.MustCompile(`(?s)\nUnsubscribe\s+https?://.*`)
	blankRuns       = regexp.MustCompile(`\n{3,}`)
	spaceRuns       = regexp.MustCompile(`[ \t]+`)
	trailingSpaces  = regexp.MustCompile(` +\n`)
)

// SubstackAdapter handles Substack-hosted newsletters. Substack's plain-text
// rendering reads better aloud than the HTML pipeline output, so CleanBody
// prefers it when present.
type SubstackAdapter struct {
	brand       string
	domain      string
	resolver    *resolver
	brandPrefix *regexp.Regexp
	articleLink *regexp.Regexp
}

func NewSubstackAdapter(brand, domain string, client *http.Client) *SubstackAdapter {
	return &SubstackAdapter{
		brand:    brand,
		domain:   domain,
		resolver: newResolver(client),
		brandPrefix: regexp.MustCompile(
			`(?i)^` + regexp.QuoteMeta(brand) + `:\s*`),
		articleLink: regexp.MustCompile(
			`(?i)https://(?:www\.)?` + regexp.QuoteMeta(domain) + `/p/[^\s<>?#]+`),
	}
}

func (a *SubstackAdapter) FormatTitle(date, subjectRaw, subjectSlug string) string {
	subject := displaySubject(subjectRaw, subjectSlug)
	subject = a.brandPrefix.ReplaceAllString(subject, "")
	return fmt.Sprintf("%s - %s - %s", date, a.brand, subject)
}

// CleanBody scrubs Substack chrome from the plain-text part: the web banner,
// bracketed link targets, the unsubscribe footer, and app prompts.
func (a *SubstackAdapter) CleanBody(msg *email.Message, fallback string) string {
	text := msg.PlainPart()
	if text == "" {
		text = fallback
	}
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "­", "")
	text = strings.ReplaceAll(text, "͏", "")

	text = webPostBanner.ReplaceAllString(text, "")
	text = bracketedLink.ReplaceAllString(text, "")
	text = unsubscribeTail.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "READ IN APP", "")
	text = strings.ReplaceAll(text, "Subscribed", "")

	text = blankRuns.ReplaceAllString(text, "\n\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	text = trailingSpaces.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// SourceURL checks the List-Post header first, then body links, then resolves
// Substack redirect links one hop.
func (a *SubstackAdapter) SourceURL(ctx context.Context, msg *email.Message, date, subjectRaw string) string {
	if listPost := msg.Header("List-Post", ""); listPost != "" {
		if m := a.articleLink.FindString(listPost); m != "" {
			return canonicalizeURL(m)
		}
	}

	links := candidateLinks(msg)
	for _, link := range links {
		if m := a.articleLink.FindString(link); m != "" && strings.HasPrefix(link, m) {
			return canonicalizeURL(m)
		}
	}

	for _, link := range links {
		if !strings.HasPrefix(link, "https://substack.com/redirect/") &&
			!strings.Contains(link, a.domain+"/action/") {
			continue
		}
		redirected := a.resolver.resolveOnce(ctx, link)
		if redirected == "" {
			continue
		}
		if m := a.articleLink.FindString(redirected); m != "" && strings.HasPrefix(redirected, m) {
			return canonicalizeURL(m)
		}
	}
	return ""
}
