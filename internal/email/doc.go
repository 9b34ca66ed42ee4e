// Package email decodes raw newsletter messages into an immutable part tree,
// selects the first renderable text/html part in document order, and derives
// filing metadata (date, subject, slug) from headers.
//
// Parsing is built on github.com/emersion/go-message; charset conversion for
// selected parts falls back to golang.org/x/text's IANA index when the
// declared charset is not UTF-8. Failures are reported through the sentinel
// errors in errors.go and never produce partial results.
package email
