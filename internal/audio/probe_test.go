package audio

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func stubProbe(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestProbeParsesDuration(t *testing.T) {
	binary := stubProbe(t, `echo '{"format": {"duration": "613.512000"}}'`)

	info, err := Probe(context.Background(), binary, "episode.mp3")
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if !info.Known || info.DurationSeconds != 614 {
		t.Fatalf("info = %#v", info)
	}
}

func TestProbeMissingDurationIsUnknown(t *testing.T) {
	binary := stubProbe(t, `echo '{"format": {}}'`)

	info, err := Probe(context.Background(), binary, "episode.mp3")
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if info.Known {
		t.Fatalf("info = %#v", info)
	}
}

func TestProbeCommandFailure(t *testing.T) {
	binary := stubProbe(t, `echo "broken file" >&2; exit 1`)

	if _, err := Probe(context.Background(), binary, "episode.mp3"); err == nil {
		t.Fatal("expected error")
	}
}

func TestProbeRequiresPath(t *testing.T) {
	if _, err := Probe(context.Background(), "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		info Info
		want string
	}{
		{Info{}, "00:00"},
		{Info{DurationSeconds: 59, Known: true}, "00:59"},
		{Info{DurationSeconds: 614, Known: true}, "10:14"},
		{Info{DurationSeconds: 3600, Known: true}, "01:00:00"},
		{Info{DurationSeconds: 3723, Known: true}, "01:02:03"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.info); got != tc.want {
			t.Fatalf("FormatDuration(%#v) = %q, want %q", tc.info, got, tc.want)
		}
	}
}
