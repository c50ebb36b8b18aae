package padify

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// ToNRGBA returns a non-premultiplied 8-bit copy of src with its bounds moved
// to the origin. The input is never modified.
func ToNRGBA(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	return imaging.Clone(src)
}

// pixelAt reads the pixel at (x, y) relative to the image origin.
func pixelAt(img *image.NRGBA, x, y int) color.NRGBA {
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	return color.NRGBA{img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
}

// clampInt clamps v to [lo,hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
