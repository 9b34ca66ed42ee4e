package speechtext

import (
	"regexp"
	"strings"
)

var (
	softWrapPattern      = regexp.MustCompile(`=\s*\n`)
	blankRunPattern      = regexp.MustCompile(`\n\s*\n\s*\n+`)
	horizontalRunPattern = regexp.MustCompile(`[^\S\r\n]+`)
	trailingSpacePattern = regexp.MustCompile(` +\n`)
)

// Normalize collapses the whitespace noise left after flattening markup to
// text. The rewrites are order-sensitive: quoted-printable soft wraps
// ("=" before a line break) are deleted, runs of three or more blank lines
// collapse to one blank line, horizontal whitespace runs collapse to a single
// space, trailing spaces before line breaks are stripped, and the whole text
// is trimmed. Normalizing already-normalized text is a no-op.
func Normalize(text string) string {
	text = softWrapPattern.ReplaceAllString(text, "")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	text = horizontalRunPattern.ReplaceAllString(text, " ")
	text = trailingSpacePattern.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
