package speechtext

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrDanglingFootnote reports an in-text footnote pointer with no matching
// definition line.
var ErrDanglingFootnote = errors.New("dangling footnote pointer")

// DanglingFootnoteError names the footnote number a pointer referenced but no
// definition supplied, so the operator can inspect the source message.
type DanglingFootnoteError struct {
	Number string
}

func (e *DanglingFootnoteError) Error() string {
	return fmt.Sprintf("footnote %s not found", e.Number)
}

func (e *DanglingFootnoteError) Unwrap() error {
	return ErrDanglingFootnote
}

var (
	footnoteDefPattern     = regexp.MustCompile(`(?m)^\[(\d+)\]\s*(.+)$`)
	footnotePointerPattern = regexp.MustCompile(`\[(\d+)\]`)
)

// InlineFootnotes resolves footnote cross-references into spoken asides. It
// runs two sequential passes over the text: a collection pass records every
// definition line ("[1] Some remark.") into a table and deletes the line, and
// a substitution pass replaces each remaining in-text pointer "[1]" with the
// definition wrapped in "Footnote begins. ... Footnote ends." markers.
//
// A pointer with no definition aborts the whole operation with a
// DanglingFootnoteError; no partially substituted text is returned. Texts
// without footnotes pass through unchanged apart from trimming.
func InlineFootnotes(text string) (string, error) {
	footnotes := map[string]string{}
	for _, match := range footnoteDefPattern.FindAllStringSubmatch(text, -1) {
		// A duplicate id keeps its last definition.
		footnotes[match[1]] = match[2]
	}
	remaining := footnoteDefPattern.ReplaceAllString(text, "")

	var b strings.Builder
	last := 0
	for _, loc := range footnotePointerPattern.FindAllStringSubmatchIndex(remaining, -1) {
		number := remaining[loc[2]:loc[3]]
		definition, ok := footnotes[number]
		if !ok {
			return "", &DanglingFootnoteError{Number: number}
		}
		b.WriteString(remaining[last:loc[0]])
		b.WriteString("Footnote begins. ")
		b.WriteString(strings.TrimSpace(definition))
		b.WriteString(" Footnote ends.")
		last = loc[1]
	}
	b.WriteString(remaining[last:])

	return strings.TrimSpace(b.String()), nil
}
