package padify

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func makeSolidNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// fillRows paints rows [from, to] inclusive across the full width.
func fillRows(img *image.NRGBA, from, to int, c color.NRGBA) {
	for y := from; y <= to; y++ {
		for x := 0; x < img.Rect.Dx(); x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// saveTestOutput writes img next to the test when PADIFY_SAVE_TEST_OUTPUT=1.
func saveTestOutput(t *testing.T, name string, img image.Image) {
	t.Helper()
	if os.Getenv("PADIFY_SAVE_TEST_OUTPUT") != "1" {
		return
	}
	f, err := os.Create(filepath.Join(".", name))
	if err != nil {
		t.Logf("could not save %s: %v", name, err)
		return
	}
	defer f.Close()
	_ = png.Encode(f, img)
}
