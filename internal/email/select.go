package email

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"
)

// htmlContentType is the renderable markup type the selector looks for.
const (
	htmlContentType  = "text/html"
	plainContentType = "text/plain"
)

// HTMLPart walks the part tree depth-first in document order and returns the
// decoded text of the first text/html part. A message without one yields
// ErrNoRenderableContent; a payload that cannot be represented as text under
// its declared (or default UTF-8) charset yields ErrDecode.
func (m *Message) HTMLPart() (string, error) {
	part := findFirst(m.root, htmlContentType)
	if part == nil {
		return "", fmt.Errorf("%w: no %s part in the message", ErrNoRenderableContent, htmlContentType)
	}
	return decodeText(part)
}

// PlainPart returns the decoded text of the first text/plain part in document
// order, or an empty string when the message carries none or the payload
// cannot be decoded.
func (m *Message) PlainPart() string {
	part := findFirst(m.root, plainContentType)
	if part == nil {
		return ""
	}
	text, err := decodeText(part)
	if err != nil {
		return ""
	}
	return text
}

// TextParts returns the decoded text of every text/plain and text/html leaf
// in document order. Undecodable payloads are skipped.
func (m *Message) TextParts() []string {
	var texts []string
	walkLeaves(m.root, func(part *Part) {
		if part.ContentType != plainContentType && part.ContentType != htmlContentType {
			return
		}
		text, err := decodeText(part)
		if err != nil {
			return
		}
		texts = append(texts, text)
	})
	return texts
}

func walkLeaves(part *Part, fn func(*Part)) {
	if part == nil {
		return
	}
	if len(part.Children) == 0 {
		fn(part)
		return
	}
	for _, child := range part.Children {
		walkLeaves(child, fn)
	}
}

func findFirst(part *Part, contentType string) *Part {
	if part == nil {
		return nil
	}
	if len(part.Children) == 0 {
		if part.ContentType == contentType {
			return part
		}
		return nil
	}
	for _, child := range part.Children {
		if found := findFirst(child, contentType); found != nil {
			return found
		}
	}
	return nil
}

// decodeText converts a leaf payload to a UTF-8 string using the part's
// declared charset, defaulting to UTF-8 when absent or unrecognized.
func decodeText(part *Part) (string, error) {
	charset := strings.ToLower(part.Charset)
	if charset == "" || charset == "utf-8" || charset == "us-ascii" || charset == "ascii" {
		if !utf8.Valid(part.Payload) {
			return "", fmt.Errorf("%w: payload is not valid %s text", ErrDecode, charset)
		}
		return string(part.Payload), nil
	}

	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return "", fmt.Errorf("%w: unknown charset %q", ErrDecode, part.Charset)
	}
	decoded, err := enc.NewDecoder().Bytes(part.Payload)
	if err != nil {
		return "", fmt.Errorf("%w: charset %q: %v", ErrDecode, part.Charset, err)
	}
	if !utf8.Valid(decoded) {
		return "", fmt.Errorf("%w: charset %q produced invalid text", ErrDecode, part.Charset)
	}
	return string(decoded), nil
}
