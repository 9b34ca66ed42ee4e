package processor

import (
	"lectern/internal/email"
	"lectern/internal/speechtext"
)

// Result is the sole artifact of processing one newsletter message. It is
// immutable once produced.
type Result struct {
	// Date is YYYY-MM-DD from the Date header, or the 9999-12-31 sentinel.
	Date string
	// SubjectSlug is the filesystem-safe subject identifier.
	SubjectSlug string
	// SubjectRaw is the decoded, trimmed Subject header.
	SubjectRaw string
	// Body is the speech-ready text.
	Body string
}

// Process converts a raw newsletter message into speech-ready text plus
// filing metadata: decode the message, select its first HTML part, linearize
// the markup, normalize whitespace, and inline footnotes. It holds no state
// across invocations; concurrent calls need no coordination.
//
// Errors are the typed kinds from the email and speechtext packages. A
// failure never yields a partially filled Result.
func Process(raw []byte) (Result, error) {
	msg, err := email.Parse(raw)
	if err != nil {
		return Result{}, err
	}

	markup, err := msg.HTMLPart()
	if err != nil {
		return Result{}, err
	}

	body, err := speechtext.InlineFootnotes(speechtext.Normalize(speechtext.CleanHTML(markup)))
	if err != nil {
		return Result{}, err
	}

	meta := msg.Metadata()
	return Result{
		Date:        meta.Date,
		SubjectSlug: meta.SubjectSlug,
		SubjectRaw:  meta.SubjectRaw,
		Body:        body,
	}, nil
}
