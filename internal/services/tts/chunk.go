package tts

import "strings"

// maxInputChars is the per-request input ceiling imposed by the speech API.
const maxInputChars = 4096

// splitForSynthesis breaks text into chunks no longer than limit characters.
// Splits land on paragraph boundaries when possible, then sentence
// boundaries, then whitespace, so audio segments join without clipped words.
func splitForSynthesis(text string, limit int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	flush := func() {
		if chunk := strings.TrimSpace(current.String()); chunk != "" {
			chunks = append(chunks, chunk)
		}
		current.Reset()
	}

	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		for _, piece := range splitLong(paragraph, limit) {
			if current.Len() > 0 && current.Len()+len(piece)+2 > limit {
				flush()
			}
			if current.Len() > 0 {
				current.WriteString("\n\n")
			}
			current.WriteString(piece)
		}
	}
	flush()
	return chunks
}

// splitLong cuts a single paragraph that exceeds the limit at sentence ends,
// falling back to the last space before the limit, then to a hard cut.
func splitLong(paragraph string, limit int) []string {
	if len(paragraph) <= limit {
		return []string{paragraph}
	}

	var pieces []string
	rest := paragraph
	for len(rest) > limit {
		cut := lastSentenceEnd(rest[:limit])
		if cut <= 0 {
			cut = strings.LastIndex(rest[:limit], " ")
		}
		if cut <= 0 {
			cut = limit
		}
		pieces = append(pieces, strings.TrimSpace(rest[:cut]))
		rest = strings.TrimSpace(rest[cut:])
	}
	if rest != "" {
		pieces = append(pieces, rest)
	}
	return pieces
}

func lastSentenceEnd(s string) int {
	best := -1
	for _, mark := range []string{". ", "! ", "? "} {
		if idx := strings.LastIndex(s, mark); idx >= 0 && idx+len(mark) > best {
			best = idx + len(mark)
		}
	}
	return best
}
