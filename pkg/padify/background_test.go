package padify

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectBackgroundUniform(t *testing.T) {
	c := color.NRGBA{R: 30, G: 40, B: 50, A: 255}
	assert.Equal(t, c, DetectBackground(makeSolidNRGBA(120, 80, c)))
}

func TestDetectBackgroundAveragesBucket(t *testing.T) {
	// both colors fall in the same quantized bucket and cover every sample
	a := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	b := color.NRGBA{R: 203, G: 102, B: 53, A: 255}
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if x%2 == 0 {
				img.SetNRGBA(x, y, a)
			} else {
				img.SetNRGBA(x, y, b)
			}
		}
	}
	// equal sample counts, so the integer means land on 201, 101, 51
	assert.Equal(t, color.NRGBA{R: 201, G: 101, B: 51, A: 255}, DetectBackground(img))
}

func TestDetectBackgroundPrefersBorder(t *testing.T) {
	img := makeSolidNRGBA(400, 400, white)
	// content covers most of the image but leaves the border band alone
	for y := 40; y < 360; y++ {
		for x := 40; x < 360; x++ {
			img.SetNRGBA(x, y, black)
		}
	}
	assert.Equal(t, white, DetectBackground(img))
}

func TestDetectBackgroundTransparentBorder(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for y := 30; y < 70; y++ {
		for x := 30; x < 70; x++ {
			img.SetNRGBA(x, y, black)
		}
	}
	assert.Equal(t, Transparent, DetectBackground(img))
}

func TestDetectBackgroundFallsBackToWholeImage(t *testing.T) {
	blue := color.NRGBA{B: 255, A: 255}
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			// band is 8px for a 100px image; the border is a noisy gradient
			if x < 8 || x >= 92 || y < 8 || y >= 92 {
				img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 8), G: uint8(y * 8), A: 255})
			} else {
				img.SetNRGBA(x, y, blue)
			}
		}
	}
	assert.Equal(t, blue, DetectBackground(img))
}

func TestDetectBackgroundDegenerate(t *testing.T) {
	assert.Equal(t, Transparent, DetectBackground(image.NewNRGBA(image.Rect(0, 0, 0, 10))))
	assert.Equal(t, Transparent, DetectBackground(image.NewNRGBA(image.Rect(0, 0, 10, 0))))
	assert.Equal(t, Transparent, DetectBackground(nil))
}

func TestDetectBackgroundLargeImageSamplesSparsely(t *testing.T) {
	gray := color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	img := makeSolidNRGBA(2000, 1000, gray)
	// a 1px line every 10 columns is skipped by the 10px stride
	for x := 5; x < 2000; x += 10 {
		for y := 0; y < 1000; y++ {
			img.SetNRGBA(x, y, black)
		}
	}
	assert.Equal(t, gray, DetectBackground(img))
}

func TestDetectBackgroundHonorsOffsetBounds(t *testing.T) {
	c := color.NRGBA{R: 9, G: 99, B: 199, A: 255}
	img := image.NewNRGBA(image.Rect(10, 20, 60, 70))
	for y := 20; y < 70; y++ {
		for x := 10; x < 60; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	assert.Equal(t, c, DetectBackground(img))
}
