package speechtext_test

import (
	"strings"
	"testing"

	"lectern/internal/speechtext"
)

func cleanAndNormalize(markup string) string {
	return speechtext.Normalize(speechtext.CleanHTML(markup))
}

func TestCleanHTMLRemovesHiddenContent(t *testing.T) {
	markup := `<html><body>
<div style="display: none;">Hidden preview text</div>
<p>Visible content</p>
</body></html>`

	cleaned := cleanAndNormalize(markup)
	if strings.Contains(cleaned, "Hidden preview text") {
		t.Fatalf("hidden content survived: %q", cleaned)
	}
	if !strings.Contains(cleaned, "Visible content") {
		t.Fatalf("visible content missing: %q", cleaned)
	}
}

func TestCleanHTMLHiddenStyleVariants(t *testing.T) {
	variants := []string{
		`<div style="display: none;">Hidden</div><p>Kept</p>`,
		`<div style="display:none">Hidden</div><p>Kept</p>`,
		`<div style="color: red; display : none;">Hidden</div><p>Kept</p>`,
	}
	for _, markup := range variants {
		cleaned := cleanAndNormalize(markup)
		if strings.Contains(cleaned, "Hidden") {
			t.Errorf("hidden content survived in %q: %q", markup, cleaned)
		}
		if !strings.Contains(cleaned, "Kept") {
			t.Errorf("visible content missing in %q: %q", markup, cleaned)
		}
	}
}

func TestCleanHTMLBlockquoteMarkers(t *testing.T) {
	markup := `<html><body>
<p>Regular paragraph</p>
<blockquote>
  <p>Blockquoted text, line one.</p>
  <p>Blockquoted text, line two.</p>
</blockquote>
<p>Another paragraph</p>
</body></html>`

	cleaned := cleanAndNormalize(markup)
	for _, want := range []string{
		"Block quote begins.",
		"Block quote ends.",
		"Blockquoted text, line one.",
		"Blockquoted text, line two.",
		"Regular paragraph",
		"Another paragraph",
	} {
		if !strings.Contains(cleaned, want) {
			t.Errorf("missing %q in %q", want, cleaned)
		}
	}

	begins := strings.Index(cleaned, "Block quote begins.")
	quoted := strings.Index(cleaned, "Blockquoted text, line one.")
	ends := strings.Index(cleaned, "Block quote ends.")
	if !(begins < quoted && quoted < ends) {
		t.Fatalf("marker ordering wrong: %q", cleaned)
	}
}

func TestCleanHTMLParagraphSpacing(t *testing.T) {
	markup := `<html><body><p>First paragraph</p><p>Second paragraph</p></body></html>`
	cleaned := cleanAndNormalize(markup)

	paragraphs := strings.Split(cleaned, "\n\n")
	if len(paragraphs) < 2 {
		t.Fatalf("expected at least 2 paragraphs, got %q", cleaned)
	}
	if !strings.Contains(paragraphs[0], "First paragraph") {
		t.Fatalf("first paragraph wrong: %q", paragraphs[0])
	}
	if !strings.Contains(paragraphs[1], "Second paragraph") {
		t.Fatalf("second paragraph wrong: %q", paragraphs[1])
	}
}

func TestCleanHTMLHeadingSpacing(t *testing.T) {
	markup := `<html><body>Intro text<h2>The Headline</h2><p>Body paragraph</p></body></html>`
	cleaned := cleanAndNormalize(markup)
	if !strings.Contains(cleaned, "Intro text\n\nThe Headline\n\nBody paragraph") {
		t.Fatalf("heading not separated from surrounding text: %q", cleaned)
	}
}

func TestCleanHTMLTruncatesAfterFootnotes(t *testing.T) {
	markup := `<html><body>
<p>Article text before footnotes.</p>
<div>
  <p id="footnote-1">[1] First footnote.</p>
  <p id="footnote-2">[2] Second footnote.</p>
</div>
<div>
  <h2>Related Articles</h2>
  <p>You may also like this.</p>
</div>
</body></html>`

	cleaned := cleanAndNormalize(markup)
	if strings.Contains(cleaned, "Related Articles") {
		t.Fatalf("trailing boilerplate survived: %q", cleaned)
	}
	if strings.Contains(cleaned, "You may also like") {
		t.Fatalf("trailing boilerplate survived: %q", cleaned)
	}
	if !strings.Contains(cleaned, "Article text before footnotes.") {
		t.Fatalf("content before footnotes missing: %q", cleaned)
	}
	if !strings.Contains(cleaned, "Second footnote.") {
		t.Fatalf("footnote block itself missing: %q", cleaned)
	}
}

func TestCleanHTMLTruncationRemovesDeepTrailingSiblings(t *testing.T) {
	markup := `<html><body>
<div>
  <p>Keep this.</p>
  <span id="footnote-3">[3] Note.</span>
  <span>dropped sibling</span>
</div>
<div>dropped section</div>
</body></html>`

	cleaned := cleanAndNormalize(markup)
	if strings.Contains(cleaned, "dropped sibling") || strings.Contains(cleaned, "dropped section") {
		t.Fatalf("trailing content survived: %q", cleaned)
	}
	if !strings.Contains(cleaned, "Keep this.") || !strings.Contains(cleaned, "Note.") {
		t.Fatalf("kept content missing: %q", cleaned)
	}
}

func TestCleanHTMLNoFootnotesIsNoTruncation(t *testing.T) {
	markup := `<html><body><p>Alpha</p><p>Omega</p></body></html>`
	cleaned := cleanAndNormalize(markup)
	if !strings.Contains(cleaned, "Alpha") || !strings.Contains(cleaned, "Omega") {
		t.Fatalf("content lost without footnotes: %q", cleaned)
	}
}

func TestCleanHTMLIgnoresNonNumericFootnoteIDs(t *testing.T) {
	markup := `<html><body>
<p id="footnote-intro">Not a real footnote id.</p>
<p>Trailing text stays.</p>
</body></html>`
	cleaned := cleanAndNormalize(markup)
	if !strings.Contains(cleaned, "Trailing text stays.") {
		t.Fatalf("truncation triggered on non-numeric id: %q", cleaned)
	}
}

func TestCleanHTMLEmptyInput(t *testing.T) {
	if got := speechtext.CleanHTML(""); got != "" {
		t.Fatalf("CleanHTML(\"\") = %q", got)
	}
	if got := cleanAndNormalize("no markup at all"); got != "no markup at all" {
		t.Fatalf("plain text mangled: %q", got)
	}
}

func TestCleanHTMLHiddenBlockquoteGetsNoMarkers(t *testing.T) {
	markup := `<html><body>
<blockquote style="display: none;">Hidden quote</blockquote>
<p>Visible</p>
</body></html>`
	cleaned := cleanAndNormalize(markup)
	if strings.Contains(cleaned, "Block quote begins.") {
		t.Fatalf("markers emitted for hidden blockquote: %q", cleaned)
	}
}
