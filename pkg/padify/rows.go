package padify

import (
	"image"
	"image/color"
)

const (
	// rowSamples is the approximate number of columns sampled per row.
	rowSamples = 400

	// summed per-channel difference above which a pixel is content
	backgroundTolerance = 18

	majorRowRatio = 0.02
	minorRowRatio = 0.005
)

// RowRatios returns, for every row, the fraction of sampled columns whose
// pixel differs from bg by more than the background tolerance.
func RowRatios(img *image.NRGBA, bg color.NRGBA) []float64 {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	strideX := maxInt(1, w/rowSamples)
	ratios := make([]float64, h)
	for y := 0; y < h; y++ {
		samples, content := 0, 0
		for x := 0; x < w; x += strideX {
			samples++
			if channelDistance(pixelAt(img, x, y), bg) > backgroundTolerance {
				content++
			}
		}
		if samples > 0 {
			ratios[y] = float64(content) / float64(samples)
		}
	}
	return ratios
}

// ClassifyRows derives the major (solid content) and minor (faint content)
// row flags from the same ratios. Every major row is also minor.
func ClassifyRows(ratios []float64) (major, minor []bool) {
	major = make([]bool, len(ratios))
	minor = make([]bool, len(ratios))
	for i, r := range ratios {
		major[i] = r > majorRowRatio
		minor[i] = r > minorRowRatio
	}
	return major, minor
}

// Cluster is an inclusive run of consecutive content rows.
type Cluster struct {
	Start int
	End   int
}

// Height is the number of rows in the cluster.
func (c Cluster) Height() int { return c.End - c.Start + 1 }

// FindClusters returns the maximal runs of true values in rows.
func FindClusters(rows []bool) []Cluster {
	var clusters []Cluster
	start := -1
	for i, content := range rows {
		switch {
		case content && start < 0:
			start = i
		case !content && start >= 0:
			clusters = append(clusters, Cluster{Start: start, End: i - 1})
			start = -1
		}
	}
	if start >= 0 {
		clusters = append(clusters, Cluster{Start: start, End: len(rows) - 1})
	}
	return clusters
}

// lastTrue returns the index of the last true value, or -1.
func lastTrue(rows []bool) int {
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i] {
			return i
		}
	}
	return -1
}
