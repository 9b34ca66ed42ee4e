package email

import (
	"regexp"
	"strings"

	"github.com/emersion/go-message/mail"
)

// DateSentinel is used when the Date header is absent or unparsable. It sorts
// after every real date, so undatable messages rank last lexicographically.
const DateSentinel = "9999-12-31"

const defaultSubject = "No Subject"

// Metadata carries the filing fields derived from message headers.
type Metadata struct {
	// Date is YYYY-MM-DD from the Date header, or DateSentinel.
	Date string
	// SubjectRaw is the decoded, trimmed Subject header.
	SubjectRaw string
	// SubjectSlug is the filesystem-safe rendering of SubjectRaw.
	SubjectSlug string
}

// Metadata derives the calendar date and subject identifiers from the
// message headers.
func (m *Message) Metadata() Metadata {
	header := mail.Header{Header: m.header}

	date := DateSentinel
	if t, err := header.Date(); err == nil && !t.IsZero() {
		date = t.Format("2006-01-02")
	}

	subject := defaultSubject
	if raw := strings.TrimSpace(m.header.Get("Subject")); raw != "" {
		// Subject returns the best-effort decoded text alongside any
		// encoded-word error; the text is still the right thing to use.
		decoded, _ := header.Subject()
		if strings.TrimSpace(decoded) != "" {
			subject = decoded
		} else {
			subject = raw
		}
	}
	subject = strings.TrimSpace(subject)

	return Metadata{
		Date:        date,
		SubjectRaw:  subject,
		SubjectSlug: Slugify(subject),
	}
}

var (
	// Word characters follow the Unicode definition, so letters outside
	// ASCII survive slugging.
	nonSlugPattern  = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	spaceRunPattern = regexp.MustCompile(`\s+`)
)

// Slugify deletes every character that is not a word character, whitespace,
// or hyphen, then collapses whitespace runs to single hyphens. Slugifying a
// slug is a no-op.
func Slugify(text string) string {
	cleaned := nonSlugPattern.ReplaceAllString(text, "")
	return spaceRunPattern.ReplaceAllString(strings.TrimSpace(cleaned), "-")
}
