package padify

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

var (
	// ErrPaddingConflict means explicit horizontal and vertical padding disagree.
	ErrPaddingConflict = errors.New("pad-x and pad-y must be equal (or use --all/--pad)")
	// ErrOverflow means the padded canvas cannot be represented.
	ErrOverflow = errors.New("padding overflow")
)

const (
	autoPadRatio = 0.06
	autoPadMin   = 48
	autoPadMax   = 320
)

// Padding is the caller's padding request. Nil fields are unset; with every
// field unset the padding is derived from the image size.
type Padding struct {
	All *uint32
	X   *uint32
	Y   *uint32
}

// Validate reports a configuration conflict without looking at any image.
func (p Padding) Validate() error {
	if p.All == nil && p.X != nil && p.Y != nil && *p.X != *p.Y {
		return fmt.Errorf("%w: got %d and %d", ErrPaddingConflict, *p.X, *p.Y)
	}
	return nil
}

// Resolve returns the per-axis padding for an image of the given size.
// Both axes always receive the same amount.
func (p Padding) Resolve(width, height int) (padX, padY uint32, err error) {
	if err := p.Validate(); err != nil {
		return 0, 0, err
	}
	var pad uint32
	switch {
	case p.All != nil:
		pad = *p.All
	case p.X != nil:
		pad = *p.X
	case p.Y != nil:
		pad = *p.Y
	default:
		pad = AutoPad(width, height)
	}
	return pad, pad, nil
}

// AutoPad is 6% of the shorter side, rounded and clamped to [48, 320].
func AutoPad(width, height int) uint32 {
	scaled := int(math.Round(float64(minInt(width, height)) * autoPadRatio))
	return uint32(clampInt(scaled, autoPadMin, autoPadMax))
}

// PaddedDimensions computes width+2*padX by height+2*padY, failing with
// ErrOverflow instead of wrapping.
func PaddedDimensions(width, height, padX, padY uint32) (uint32, uint32, error) {
	padX2, ok := checkedAdd(padX, padX)
	if !ok {
		return 0, 0, fmt.Errorf("%w: horizontal padding is too large", ErrOverflow)
	}
	padY2, ok := checkedAdd(padY, padY)
	if !ok {
		return 0, 0, fmt.Errorf("%w: vertical padding is too large", ErrOverflow)
	}
	newW, ok := checkedAdd(width, padX2)
	if !ok {
		return 0, 0, fmt.Errorf("%w: resulting width is too large", ErrOverflow)
	}
	newH, ok := checkedAdd(height, padY2)
	if !ok {
		return 0, 0, fmt.Errorf("%w: resulting height is too large", ErrOverflow)
	}
	return newW, newH, nil
}

func checkedAdd(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

// canvasFits reports whether a w x h NRGBA buffer can be allocated on this
// platform without overflowing int.
func canvasFits(w, h uint32) bool {
	if uint64(w) > math.MaxInt || uint64(h) > math.MaxInt {
		return false
	}
	if w == 0 || h == 0 {
		return true
	}
	return uint64(w) <= math.MaxInt/4/uint64(h)
}

// Compose places src at (padX, padY) on a new canvas filled with bg. Pixels
// are copied verbatim; nothing is blended.
func Compose(src *image.NRGBA, bg color.NRGBA, padX, padY uint32) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	sw, sh := src.Rect.Dx(), src.Rect.Dy()
	newW, newH, err := PaddedDimensions(uint32(sw), uint32(sh), padX, padY)
	if err != nil {
		return nil, err
	}
	if !canvasFits(newW, newH) {
		return nil, fmt.Errorf("%w: canvas %dx%d is too large to allocate", ErrOverflow, newW, newH)
	}

	dst := imaging.New(int(newW), int(newH), bg)
	if sw == 0 || sh == 0 {
		return dst, nil
	}
	xoff, yoff := int(padX), int(padY)
	rowBytes := sw * 4
	for y := 0; y < sh; y++ {
		si := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		di := dst.PixOffset(xoff, yoff+y)
		copy(dst.Pix[di:di+rowBytes], src.Pix[si:si+rowBytes])
	}
	return dst, nil
}
