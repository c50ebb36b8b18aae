package cli

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// clearPadifyEnv blanks every variable LoadConfig reads so the caller's
// shell cannot leak into a test.
func clearPadifyEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvBackground, EnvPad, EnvNoCrop, EnvDebugCrop, EnvPreview, EnvDebug, EnvPreviewBackend} {
		t.Setenv(k, "")
	}
}

// screenshot draws a light page with a few dark text bands.
func screenshot(w, h int, bands ...[2]int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{250, 250, 250, 255})
		}
	}
	for _, b := range bands {
		for y := b[0]; y <= b[1] && y < h; y++ {
			for x := 10; x < w-10; x++ {
				img.SetNRGBA(x, y, color.NRGBA{20, 20, 20, 255})
			}
		}
	}
	return img
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, SaveImage(path, img))
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
