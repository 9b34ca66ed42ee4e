package email

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message"
)

// Part is one node of a message's content tree: a leaf carrying a payload or
// a multipart container carrying children in declared order.
type Part struct {
	// ContentType is the lowercased media type, e.g. "text/html".
	ContentType string
	// Charset is the declared charset parameter, possibly empty.
	Charset string
	// Payload holds the transfer-decoded body bytes of a leaf part. Charset
	// conversion is deferred until a part is selected.
	Payload []byte
	// Children holds sub-parts of a multipart container, in declared order.
	Children []*Part
}

// Message is an immutable, parsed newsletter email. The part tree is built
// once at Parse time; the engine never mutates it afterwards.
type Message struct {
	header message.Header
	root   *Part
}

// Parse decodes raw message bytes into a Message tree. Input that lacks
// message framing entirely yields an error wrapping ErrMalformedMessage.
func Parse(raw []byte) (*Message, error) {
	entity, err := message.Read(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) && !message.IsUnknownEncoding(err) {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	root, err := buildPart(entity)
	if err != nil {
		return nil, err
	}

	return &Message{header: entity.Header, root: root}, nil
}

func buildPart(entity *message.Entity) (*Part, error) {
	mediaType, params, err := entity.Header.ContentType()
	if err != nil {
		// Unparsable Content-Type values degrade to the RFC 2045 default.
		mediaType, params = "text/plain", nil
	}

	part := &Part{
		ContentType: strings.ToLower(strings.TrimSpace(mediaType)),
		Charset:     strings.TrimSpace(params["charset"]),
	}

	if mr := entity.MultipartReader(); mr != nil {
		for {
			child, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil && !message.IsUnknownCharset(err) && !message.IsUnknownEncoding(err) {
				return nil, fmt.Errorf("%w: read part: %v", ErrMalformedMessage, err)
			}
			built, err := buildPart(child)
			if err != nil {
				return nil, err
			}
			part.Children = append(part.Children, built)
		}
		return part, nil
	}

	payload, err := io.ReadAll(entity.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrMalformedMessage, err)
	}
	part.Payload = payload
	return part, nil
}

// Header returns the first occurrence of the named header, case-insensitive,
// or fallback when the header is absent.
func (m *Message) Header(name, fallback string) string {
	if value := m.header.Get(name); value != "" {
		return value
	}
	return fallback
}

// Root returns the root part of the content tree.
func (m *Message) Root() *Part {
	return m.root
}
