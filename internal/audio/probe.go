package audio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// Info holds the container metadata the pipeline cares about. Known is false
// when ffprobe could not report a duration.
type Info struct {
	DurationSeconds int
	Known           bool
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe executes ffprobe against the provided audio file and returns the
// rounded duration. Probe failures are reported as an unknown duration with
// the underlying error.
func Probe(ctx context.Context, binary, path string) (Info, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Info{}, errors.New("audio probe: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-show_format", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Info{}, fmt.Errorf("audio probe: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var decoded probeOutput
	if err := json.Unmarshal(output, &decoded); err != nil {
		return Info{}, fmt.Errorf("audio probe: parse output: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(decoded.Format.Duration), 64)
	if err != nil || math.IsNaN(seconds) || seconds < 0 {
		return Info{}, nil
	}
	return Info{DurationSeconds: int(math.Round(seconds)), Known: true}, nil
}

// FormatDuration renders seconds as MM:SS, or HH:MM:SS past an hour, the
// shape podcast clients expect for itunes duration tags.
func FormatDuration(info Info) string {
	if !info.Known {
		return "00:00"
	}
	seconds := info.DurationSeconds
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	rem := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, rem)
	}
	return fmt.Sprintf("%02d:%02d", minutes, rem)
}
