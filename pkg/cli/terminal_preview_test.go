package cli

import (
	"bytes"
	"image"
	"image/color"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainTerminal(t *testing.T) {
	t.Helper()
	t.Setenv("KITTY_WINDOW_ID", "")
	t.Setenv("TERM_PROGRAM", "")
	t.Setenv("ITERM_SESSION_ID", "")
	t.Setenv("TERM", "xterm-256color")
}

func noise(w, h int) *image.NRGBA {
	rng := rand.New(rand.NewSource(7))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255})
		}
	}
	return img
}

func TestPreviewInlineSequence(t *testing.T) {
	plainTerminal(t)
	t.Setenv("TERM_PROGRAM", "WezTerm")

	var buf bytes.Buffer
	require.NoError(t, PreviewImage(&buf, screenshot(64, 32), ""))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\x1b]1337;File=name=preview.png;inline=1;"), "got %q", out[:min(len(out), 60)])
	assert.Contains(t, out, "width=64px;height=48px")
	assert.True(t, strings.HasSuffix(out, "\a\n"))
}

func TestPreviewKittyChunks(t *testing.T) {
	plainTerminal(t)
	t.Setenv("KITTY_WINDOW_ID", "1")

	var buf bytes.Buffer
	require.NoError(t, PreviewImage(&buf, noise(200, 200), ""))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\x1b_Ga=T,f=100,t=d,q=2,"))
	assert.Greater(t, strings.Count(out, "\x1b_G"), 1)
	assert.Contains(t, out, "\x1b_Gm=0;")
	for _, chunk := range strings.Split(strings.TrimSuffix(out, "\n"), "\x1b\\") {
		if chunk == "" {
			continue
		}
		payload := chunk[strings.Index(chunk, ";")+1:]
		assert.LessOrEqual(t, len(payload), kittyChunkSize)
	}
}

func TestPreviewForcedBackend(t *testing.T) {
	plainTerminal(t)

	var buf bytes.Buffer
	require.NoError(t, PreviewImage(&buf, screenshot(8, 8), "inline"))
	assert.Contains(t, buf.String(), "1337;File=")

	buf.Reset()
	require.NoError(t, PreviewImage(&buf, screenshot(8, 8), "kitty"))
	assert.Contains(t, buf.String(), "\x1b_Ga=T")

	assert.Error(t, PreviewImage(&buf, screenshot(8, 8), "sixel"))
}

func TestPreviewNoProtocol(t *testing.T) {
	plainTerminal(t)
	var buf bytes.Buffer
	assert.Error(t, PreviewImage(&buf, screenshot(8, 8), ""))
	assert.Zero(t, buf.Len())
	assert.Error(t, PreviewImage(&buf, nil, "kitty"))
}

func TestComputePreviewSize(t *testing.T) {
	assert.Equal(t, PreviewSize{Cols: 80, Rows: 10, PixelWidth: 640, PixelHeight: 160}, computePreviewSize(1600, 400))
	assert.Equal(t, PreviewSize{Cols: 6, Rows: 3, PixelWidth: 48, PixelHeight: 48}, computePreviewSize(10, 10))
	assert.Equal(t, PreviewSize{Cols: 6, Rows: 3, PixelWidth: 48, PixelHeight: 48}, computePreviewSize(0, 0))
}

func TestScaleForPreview(t *testing.T) {
	size := computePreviewSize(1600, 400)
	scaled := scaleForPreview(screenshot(1600, 400), size)
	assert.Equal(t, 640, scaled.Bounds().Dx())
	assert.Equal(t, 160, scaled.Bounds().Dy())

	small := screenshot(10, 10)
	assert.Same(t, small, scaleForPreview(small, computePreviewSize(10, 10)))
}
