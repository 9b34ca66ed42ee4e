package speechtext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

const (
	blockQuoteBegins = "\n\nBlock quote begins.\n"
	blockQuoteEnds   = "\n\nBlock quote ends.\n"
	paragraphBreak   = "\n\n"
)

var (
	hiddenStylePattern = regexp.MustCompile(`display\s*:\s*none`)
	footnoteIDPattern  = regexp.MustCompile(`^footnote-\d+$`)
	headingElements    = map[string]bool{
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	}
)

// CleanHTML linearizes newsletter markup into a spoken-word-friendly text
// stream. In order: subtrees styled display:none are dropped, everything
// following the last footnote block is truncated, blockquotes are announced
// with audible markers, paragraph and heading boundaries get blank-line
// spacing, and the remaining text content is concatenated in document order.
//
// The returned text still carries soft-wrap and blank-line noise; callers
// normalize it with Normalize. Markup-free or empty input yields an empty
// string; CleanHTML never fails.
func CleanHTML(markup string) string {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	removeHidden(doc)
	truncateAfterFootnotes(doc)
	annotateBlockquotes(doc)
	spaceParagraphs(doc)
	return flatten(doc)
}

// walk visits nodes depth-first in document order. Callers collect nodes
// during the walk and mutate afterwards, so the traversal never sees a
// half-edited tree.
func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func textNode(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// removeHidden deletes every subtree whose style declares zero visibility.
func removeHidden(doc *html.Node) {
	var hidden []*html.Node
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && hiddenStylePattern.MatchString(attrValue(n, "style")) {
			hidden = append(hidden, n)
		}
	})
	for _, n := range hidden {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

// truncateAfterFootnotes finds the last element whose id matches
// footnote-<digits> and, walking from it up to the root, removes every
// subsequent sibling at each ancestor level. This keeps everything up through
// the end of the footnote block and discards trailing sections ("related
// articles" and the like) at any nesting depth. Without footnote elements it
// is a no-op.
func truncateAfterFootnotes(doc *html.Node) {
	var last *html.Node
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && footnoteIDPattern.MatchString(attrValue(n, "id")) {
			last = n
		}
	})
	if last == nil {
		return
	}

	for node := last; node.Parent != nil; node = node.Parent {
		var trailing []*html.Node
		for sib := node.NextSibling; sib != nil; sib = sib.NextSibling {
			trailing = append(trailing, sib)
		}
		for _, sib := range trailing {
			node.Parent.RemoveChild(sib)
		}
	}
}

// annotateBlockquotes wraps every blockquote with audible begin/end markers
// so flattened text announces quoted material.
func annotateBlockquotes(doc *html.Node) {
	var quotes []*html.Node
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "blockquote" {
			quotes = append(quotes, n)
		}
	})
	for _, bq := range quotes {
		if bq.Parent == nil {
			continue
		}
		bq.Parent.InsertBefore(textNode(blockQuoteBegins), bq)
		bq.Parent.InsertBefore(textNode(blockQuoteEnds), bq.NextSibling)
	}
}

// spaceParagraphs inserts a blank line before every paragraph and heading so
// flattening retains breaks that plain concatenation would lose.
func spaceParagraphs(doc *html.Node) {
	var blocks []*html.Node
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "p" || headingElements[n.Data]) {
			blocks = append(blocks, n)
		}
	})
	for _, block := range blocks {
		if block.Parent == nil {
			continue
		}
		block.Parent.InsertBefore(textNode(paragraphBreak), block)
	}
}

// flatten concatenates all remaining text content in document order.
func flatten(doc *html.Node) string {
	var b strings.Builder
	walk(doc, func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	})
	return b.String()
}
