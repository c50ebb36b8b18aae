package padify

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"sort"

	"github.com/disintegration/imaging"
)

// CropReason records which rule decided the outcome of AutoCropBottom.
type CropReason string

const (
	ReasonDisabled      CropReason = "disabled"
	ReasonEmpty         CropReason = "empty"
	ReasonNoClusters    CropReason = "no_clusters"
	ReasonPartialLine   CropReason = "partial_line"
	ReasonCursorResidue CropReason = "cursor_residue"
	ReasonClean         CropReason = "clean"
)

const (
	// clusters shorter than this are ignored when estimating line height
	minLineRows = 4

	// a last cluster this close to the bottom edge may be a cut-off line
	maxBottomMargin = 2

	partialLineRatio = 0.7

	thinBlockRatio  = 0.35
	maxBlockRatio   = 0.6
	minGapRatio     = 0.2
	minGapRows      = 2
	fallbackLineDiv = 30
	fallbackLineMin = 12
	fallbackLineMax = 28
)

// CropReport is a diagnostic record of the crop decision.
type CropReport struct {
	OriginalHeight int
	NewHeight      int
	Reason         CropReason
}

func (r CropReport) String() string {
	return fmt.Sprintf("crop %d -> %d (%s)", r.OriginalHeight, r.NewHeight, r.Reason)
}

// Cropped reports whether any rows were removed.
func (r CropReport) Cropped() bool { return r.NewHeight < r.OriginalHeight }

// CropResult pairs the (possibly cropped) image with its report.
type CropResult struct {
	Image  *image.NRGBA
	Report CropReport
}

// NoCrop returns a copy of img unchanged, tagged with reason.
func NoCrop(img *image.NRGBA, reason CropReason) CropResult {
	h := img.Rect.Dy()
	return CropResult{
		Image:  imaging.Clone(img),
		Report: CropReport{OriginalHeight: h, NewHeight: h, Reason: reason},
	}
}

// keepTop returns a new image holding rows [0, rows) of img.
func keepTop(img *image.NRGBA, rows int, reason CropReason) CropResult {
	b := img.Rect
	out := imaging.Crop(img, image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+rows))
	return CropResult{
		Image:  out,
		Report: CropReport{OriginalHeight: b.Dy(), NewHeight: out.Rect.Dy(), Reason: reason},
	}
}

// AutoCropBottom removes a truncated trailing line or a cursor-like residue
// block from the bottom of img. Only a bottom suffix of rows is ever removed.
func AutoCropBottom(img *image.NRGBA, bg color.NRGBA) CropResult {
	return autoCropBottom(img, bg, nil)
}

func autoCropBottom(img *image.NRGBA, bg color.NRGBA, logger *slog.Logger) CropResult {
	if logger == nil {
		logger = discardLogger
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return NoCrop(img, ReasonEmpty)
	}

	major, minor := ClassifyRows(RowRatios(img, bg))
	clusters := FindClusters(major)
	if len(clusters) == 0 {
		return NoCrop(img, ReasonNoClusters)
	}

	bottomMargin := h - 1 - lastTrue(major)
	median := typicalClusterHeight(clusters)
	last := clusters[len(clusters)-1]
	logger.Debug("row clusters",
		slog.Int("clusters", len(clusters)),
		slog.Int("bottom_margin", bottomMargin),
		slog.Float64("median_height", median),
		slog.Int("last_start", last.Start),
		slog.Int("last_height", last.Height()))

	if len(clusters) >= 2 && bottomMargin <= maxBottomMargin && median > 0 {
		if float64(last.Height()) < median*partialLineRatio && last.Start > 0 {
			return keepTop(img, last.Start, ReasonPartialLine)
		}
	}

	lastMajor := lastTrue(major)
	lastMinor := lastTrue(minor)
	if lastMinor > lastMajor {
		startMinor := lastMinor
		for startMinor > 0 && minor[startMinor-1] {
			startMinor--
		}
		block := float64(lastMinor - startMinor + 1)
		gap := maxInt(0, startMinor-(lastMajor+1))

		lineHeight := median
		if lineHeight <= 0 {
			lineHeight = float64(clampInt(h/fallbackLineDiv, fallbackLineMin, fallbackLineMax))
		}
		thin := block < lineHeight*thinBlockRatio
		minGap := maxInt(minGapRows, int(math.Round(lineHeight*minGapRatio)))
		gapOK := gap >= minGap || (thin && gap >= 1)
		logger.Debug("trailing minor block",
			slog.Int("start", startMinor),
			slog.Float64("height", block),
			slog.Int("gap", gap),
			slog.Int("min_gap", minGap),
			slog.Bool("thin", thin))

		if gapOK && block < lineHeight*maxBlockRatio {
			return keepTop(img, startMinor, ReasonCursorResidue)
		}
	}

	return NoCrop(img, ReasonClean)
}

// typicalClusterHeight is the median height of every cluster but the last,
// ignoring clusters under minLineRows; if nothing survives the filter the
// median of all cluster heights is used instead.
func typicalClusterHeight(clusters []Cluster) float64 {
	heights := make([]int, 0, len(clusters))
	for _, c := range clusters[:len(clusters)-1] {
		if c.Height() >= minLineRows {
			heights = append(heights, c.Height())
		}
	}
	if len(heights) == 0 {
		for _, c := range clusters {
			heights = append(heights, c.Height())
		}
	}
	return median(heights)
}

// median returns 0 for an empty slice and averages the middle pair for even
// lengths. values is sorted in place.
func median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Ints(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return float64(values[mid])
	}
	return float64(values[mid-1]+values[mid]) / 2
}
