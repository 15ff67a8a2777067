package audio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSegmentRejectsNonPositiveDuration(t *testing.T) {
	codec := NewFFmpegCodec()
	err := codec.ExtractSegment(context.Background(), "in.wav", "out.wav", 10, 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "non-positive duration")
}

func TestExtractSegmentMissingSource(t *testing.T) {
	codec := NewFFmpegCodec()
	err := codec.ExtractSegment(context.Background(), "/nonexistent/in.wav", "out.wav", 0, 1)
	assert.Error(t, err)
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0.000", formatSeconds(0))
	assert.Equal(t, "12.500", formatSeconds(12.5))
	assert.Equal(t, "1.042", formatSeconds(1.042))
}
