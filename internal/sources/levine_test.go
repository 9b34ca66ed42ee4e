package sources

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"lectern/internal/email"
)

func parseMessage(t *testing.T, raw string) *email.Message {
	t.Helper()
	msg, err := email.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return msg
}

func levineMessage(t *testing.T, body string) *email.Message {
	t.Helper()
	return parseMessage(t, "Subject: Money Stuff: Insider Trading on War\n"+
		"Date: Thu, 12 Feb 2026 18:27:14 +0000\n"+
		"Content-Type: text/plain; charset=utf-8\n\n"+
		body+"\n")
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func redirectClient(t *testing.T, location string) *http.Client {
	t.Helper()
	return &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		header := make(http.Header)
		header.Set("Location", location)
		return &http.Response{
			StatusCode: http.StatusFound,
			Header:     header,
			Body:       io.NopCloser(strings.NewReader("")),
			Request:    req,
		}, nil
	})}
}

func TestLevineTitleNormalizesMoneyStuffSubject(t *testing.T) {
	adapter := NewLevineAdapter(nil)
	got := adapter.FormatTitle("2026-02-12", "Money Stuff: Insider Trading on War", "Money-Stuff-Insider-Trading-on-War")
	if got != "2026-02-12 - Money Stuff - Insider Trading on War" {
		t.Fatalf("title = %q", got)
	}
}

func TestLevineTitleKeepsOtherSubjects(t *testing.T) {
	adapter := NewLevineAdapter(nil)
	got := adapter.FormatTitle("2026-02-12", "A Different Column", "A-Different-Column")
	if got != "2026-02-12 - A Different Column" {
		t.Fatalf("title = %q", got)
	}
}

func TestLevineTitleFallsBackToSlug(t *testing.T) {
	adapter := NewLevineAdapter(nil)
	got := adapter.FormatTitle("2026-02-12", "  ", "No-Subject")
	if got != "2026-02-12 - No Subject" {
		t.Fatalf("title = %q", got)
	}
}

func TestLevineSourceURLFromDirectLink(t *testing.T) {
	msg := levineMessage(t, "View in browser "+
		"<https://www.bloomberg.com/opinion/newsletters/2026-02-12/insider-trading-on-war?utm_source=newsletter>")

	adapter := NewLevineAdapter(nil)
	got := adapter.SourceURL(context.Background(), msg, "2026-02-12", "Money Stuff: Insider Trading on War")
	want := "https://www.bloomberg.com/opinion/newsletters/2026-02-12/insider-trading-on-war"
	if got != want {
		t.Fatalf("source url = %q, want %q", got, want)
	}
}

func TestLevineSourceURLResolvesShortlink(t *testing.T) {
	msg := levineMessage(t, "View in browser <https://bloom.bg/4aeB1mX>")

	client := redirectClient(t, "https://www.bloomberg.com/opinion/newsletters/2026-02-12/insider-trading-on-war?cmpid=foo")
	adapter := NewLevineAdapter(client)
	got := adapter.SourceURL(context.Background(), msg, "2026-02-12", "Money Stuff: Insider Trading on War")
	want := "https://www.bloomberg.com/opinion/newsletters/2026-02-12/insider-trading-on-war"
	if got != want {
		t.Fatalf("source url = %q, want %q", got, want)
	}
}

func TestLevineSourceURLInferredFromSubject(t *testing.T) {
	msg := levineMessage(t, "No links here")

	adapter := NewLevineAdapter(nil)
	got := adapter.SourceURL(context.Background(), msg, "2026-02-12", "Money Stuff: Insider Trading on War")
	want := "https://www.bloomberg.com/opinion/newsletters/2026-02-12/insider-trading-on-war"
	if got != want {
		t.Fatalf("source url = %q, want %q", got, want)
	}
}

func TestLevineSourceURLEmptyForUnmatchedSubject(t *testing.T) {
	msg := levineMessage(t, "No links here")

	adapter := NewLevineAdapter(nil)
	if got := adapter.SourceURL(context.Background(), msg, "2026-02-12", "Not the usual subject"); got != "" {
		t.Fatalf("expected empty source url, got %q", got)
	}
}
