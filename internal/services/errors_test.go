package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ErrExternalTool, "synthesize", "request", "upstream rejected", cause)
	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("marker lost: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
	want := "external tool error: synthesize: request: upstream rejected: boom"
	if err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if err.Error() != "transient failure: service failure" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestPermanent(t *testing.T) {
	if !Permanent(Wrap(ErrValidation, "adapt", "", "bad subject", nil)) {
		t.Fatal("validation errors are permanent")
	}
	if !Permanent(Wrap(ErrConfiguration, "", "", "missing bucket", nil)) {
		t.Fatal("configuration errors are permanent")
	}
	if Permanent(Wrap(ErrTransient, "fetch", "", "network blip", nil)) {
		t.Fatal("transient errors are retryable")
	}
	if Permanent(Wrap(ErrExternalTool, "probe", "", "ffprobe exit 1", nil)) {
		t.Fatal("external tool errors are retryable")
	}
}
