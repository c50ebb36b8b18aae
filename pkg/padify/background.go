package padify

import (
	"image"
	"image/color"
)

const (
	// backgroundGrid is the approximate number of samples taken along each axis.
	backgroundGrid = 200

	minBand = 8
	maxBand = 64

	// alpha at or below this counts as transparent and is never bucketed
	transparentAlpha = 5

	borderConfidence     = 0.2
	borderTransparentMin = 0.6
	wholeImageConfidence = 0.1
)

// bucket accumulates samples that share a quantized color.
type bucket struct {
	key   uint32
	count int
	sumR  uint64
	sumG  uint64
	sumB  uint64
	sumA  uint64
}

func (b *bucket) add(c color.NRGBA) {
	b.count++
	b.sumR += uint64(c.R)
	b.sumG += uint64(c.G)
	b.sumB += uint64(c.B)
	b.sumA += uint64(c.A)
}

// mean is the per-channel integer average of the bucket's samples.
func (b *bucket) mean() color.NRGBA {
	n := uint64(b.count)
	return color.NRGBA{
		R: uint8(b.sumR / n),
		G: uint8(b.sumG / n),
		B: uint8(b.sumB / n),
		A: uint8(b.sumA / n),
	}
}

// sampleResult summarizes one sampling pass.
type sampleResult struct {
	total       int
	transparent int
	best        *bucket
}

// colorIfConfident returns the winning bucket's mean color when it covers at
// least threshold of the non-transparent samples.
func (s sampleResult) colorIfConfident(threshold float64) (color.NRGBA, bool) {
	opaque := s.total - s.transparent
	if opaque <= 0 || s.best == nil {
		return color.NRGBA{}, false
	}
	if float64(s.best.count)/float64(opaque) < threshold {
		return color.NRGBA{}, false
	}
	return s.best.mean(), true
}

func (s sampleResult) transparentRatio() float64 {
	if s.total == 0 {
		return 1
	}
	return float64(s.transparent) / float64(s.total)
}

// DetectBackground guesses the dominant background color of img.
//
// The border band is sampled first since screenshots usually carry a uniform
// margin. If no color dominates the border and the border is not mostly
// transparent, the whole image is sampled with a lower confidence bar.
// Degenerate images yield fully transparent.
func DetectBackground(img *image.NRGBA) color.NRGBA {
	if img == nil {
		return Transparent
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return Transparent
	}

	strideX := maxInt(1, w/backgroundGrid)
	strideY := maxInt(1, h/backgroundGrid)
	band := clampInt(minInt(w, h)/20, minBand, maxBand)
	right := maxInt(0, w-band)
	bottom := maxInt(0, h-band)

	border := dominantSample(img, strideX, strideY, func(x, y int) bool {
		return x < band || x >= right || y < band || y >= bottom
	})
	if c, ok := border.colorIfConfident(borderConfidence); ok {
		return c
	}
	if border.transparentRatio() >= borderTransparentMin {
		return Transparent
	}

	overall := dominantSample(img, strideX, strideY, nil)
	if c, ok := overall.colorIfConfident(wholeImageConfidence); ok {
		return c
	}
	return Transparent
}

// dominantSample walks the sampling grid, bucketing every included pixel by
// its quantized color. A nil include admits every grid point.
func dominantSample(img *image.NRGBA, strideX, strideY int, include func(x, y int) bool) sampleResult {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	buckets := make(map[uint32]*bucket)
	var res sampleResult

	for y := 0; y < h; y += strideY {
		for x := 0; x < w; x += strideX {
			if include != nil && !include(x, y) {
				continue
			}
			px := pixelAt(img, x, y)
			res.total++
			if px.A <= transparentAlpha {
				res.transparent++
				continue
			}
			key := quantizeKey(px)
			b, ok := buckets[key]
			if !ok {
				b = &bucket{key: key}
				buckets[key] = b
			}
			b.add(px)
		}
	}

	// equal counts resolve to the smaller key so map order never matters
	for _, b := range buckets {
		if res.best == nil || b.count > res.best.count || (b.count == res.best.count && b.key < res.best.key) {
			res.best = b
		}
	}
	return res
}
