// Package audio inspects synthesized episode files with ffprobe.
package audio
