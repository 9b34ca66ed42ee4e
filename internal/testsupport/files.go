package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteAudioFile writes a placeholder audio file with the requested number of
// bytes. A size <= 0 writes a single byte.
func WriteAudioFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	buf := make([]byte, size)
	copy(buf, "ID3")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
