// Package padify frames screenshots for presentation.
//
// Process runs the whole pipeline on one in-memory image: it infers the
// background color (unless one is given), trims a truncated last line or a
// stray cursor from the bottom, and surrounds the result with an even margin
// of background color.
package padify

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
)

var discardLogger = slog.New(slog.DiscardHandler)

// Options configures Process.
type Options struct {
	// Background overrides automatic detection when non-nil.
	Background *color.NRGBA
	Padding    Padding
	// NoCrop bypasses the bottom crop heuristics.
	NoCrop bool
	Logger *slog.Logger
}

// Result is the output of Process.
type Result struct {
	Image      *image.NRGBA
	Background color.NRGBA
	Crop       CropReport
	PadX       uint32
	PadY       uint32
}

// Process detects the background, crops bottom artifacts and pads img.
// The source image is not modified.
func Process(img image.Image, opts Options) (*Result, error) {
	if img == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	if err := opts.Padding.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger
	}

	src := ToNRGBA(img)

	var bg color.NRGBA
	if opts.Background != nil {
		bg = *opts.Background
	} else {
		bg = DetectBackground(src)
		logger.Debug("detected background", slog.String("color", FormatColor(bg)))
	}

	var crop CropResult
	if opts.NoCrop {
		crop = NoCrop(src, ReasonDisabled)
	} else {
		crop = autoCropBottom(src, bg, logger)
	}
	logger.Debug("crop decision",
		slog.Int("original_height", crop.Report.OriginalHeight),
		slog.Int("new_height", crop.Report.NewHeight),
		slog.String("reason", string(crop.Report.Reason)),
		slog.Bool("cropped", crop.Report.Cropped()))

	cw, ch := crop.Image.Rect.Dx(), crop.Image.Rect.Dy()
	padX, padY, err := opts.Padding.Resolve(cw, ch)
	if err != nil {
		return nil, err
	}
	out, err := Compose(crop.Image, bg, padX, padY)
	if err != nil {
		return nil, err
	}
	logger.Debug("padded",
		slog.Int("pad_x", int(padX)),
		slog.Int("pad_y", int(padY)),
		slog.Int("width", out.Rect.Dx()),
		slog.Int("height", out.Rect.Dy()))

	return &Result{
		Image:      out,
		Background: bg,
		Crop:       crop.Report,
		PadX:       padX,
		PadY:       padY,
	}, nil
}
