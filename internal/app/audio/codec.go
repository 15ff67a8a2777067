package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Codec crops and transcodes audio on local disk. Implementations must
// be safe for concurrent use.
type Codec interface {
	// Duration returns the length of the file in seconds.
	Duration(ctx context.Context, path string) (float64, error)

	// ExtractSegment crops [startSec, startSec+durationSec) from src
	// into dst as 16kHz mono PCM WAV, the format voiceprint encoders
	// expect.
	ExtractSegment(ctx context.Context, src, dst string, startSec, durationSec float64) error
}

// FFmpegCodec shells out to ffmpeg/ffprobe.
type FFmpegCodec struct{}

func NewFFmpegCodec() *FFmpegCodec {
	return &FFmpegCodec{}
}

func (c *FFmpegCodec) Duration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1", path)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: unparsable duration %q", path, output)
	}
	return duration, nil
}

func (c *FFmpegCodec) ExtractSegment(ctx context.Context, src, dst string, startSec, durationSec float64) error {
	if durationSec <= 0 {
		return fmt.Errorf("extract segment from %s: non-positive duration %v", src, durationSec)
	}
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("extract segment: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-ss", formatSeconds(startSec),
		"-t", formatSeconds(durationSec),
		"-i", src,
		"-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1",
		dst)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg error: %v, stderr: %s", err, stderr.String())
	}
	return nil
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
