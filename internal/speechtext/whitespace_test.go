package speechtext_test

import (
	"strings"
	"testing"

	"lectern/internal/speechtext"
)

func TestNormalizeSoftWraps(t *testing.T) {
	in := "Second line=\nmore text\nAnother=\nline=\nbreak\n"
	got := speechtext.Normalize(in)
	if strings.Contains(got, "=") {
		t.Fatalf("soft wrap artifacts remain: %q", got)
	}
	if !strings.Contains(got, "Second linemore text") {
		t.Fatalf("soft-wrapped line not rejoined: %q", got)
	}
	if !strings.Contains(got, "Anotherlinebreak") {
		t.Fatalf("chained soft wraps not rejoined: %q", got)
	}
}

func TestNormalizeCollapsesBlankRuns(t *testing.T) {
	in := "one\n\n\n\ntwo\n \n\t\n\nthree"
	got := speechtext.Normalize(in)
	if got != "one\n\ntwo\n\nthree" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestNormalizeCollapsesHorizontalRuns(t *testing.T) {
	in := "a  b\tc   d"
	if got := speechtext.Normalize(in); got != "a b c d" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestNormalizeStripsTrailingSpaces(t *testing.T) {
	in := "line one   \nline two"
	if got := speechtext.Normalize(in); got != "line one\nline two" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestNormalizeTrims(t *testing.T) {
	in := "\n\n  body  \n\n"
	if got := speechtext.Normalize(in); got != "body" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Second line=\nmore text\n\n\n\nnext   para\t\thi  \n",
		"already normal",
		"para one\n\npara two",
		"",
	}
	for _, in := range inputs {
		once := speechtext.Normalize(in)
		if twice := speechtext.Normalize(once); twice != once {
			t.Errorf("not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}
