package email

import "errors"

var (
	// ErrMalformedMessage reports input that cannot be parsed as a MIME
	// message at all.
	ErrMalformedMessage = errors.New("malformed message")

	// ErrNoRenderableContent reports a message with no text/html part
	// anywhere in its tree. Callers treat this as "nothing to synthesize"
	// rather than a bug, so it must stay distinguishable from the other
	// kinds.
	ErrNoRenderableContent = errors.New("no html content found")

	// ErrDecode reports a part payload that cannot be represented as text
	// under its declared or default charset.
	ErrDecode = errors.New("part decode failed")
)
