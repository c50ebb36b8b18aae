package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/image/draw"
)

// Terminal preview for the kitty graphics protocol and the iTerm2 inline
// image OSC 1337 sequence (also understood by WezTerm, VSCode, Warp, Tabby).
// PREVIEW_BACKEND=kitty|inline forces a backend.

const (
	// character cell size assumed when sizing the preview
	cellW = 8
	cellH = 16

	maxPreviewCols = 80
	maxPreviewRows = 40
	minPreviewCols = 6
	minPreviewRows = 3

	kittyChunkSize = 4096
)

// PreviewSize conveys a target placement for terminal preview backends.
type PreviewSize struct {
	Cols        int
	Rows        int
	PixelWidth  int
	PixelHeight int
}

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "kitty") || strings.Contains(term, "ghostty")
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "Tabby":
		return true
	}
	if os.Getenv("ITERM_SESSION_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "wezterm")
}

// PreviewImage renders a downscaled copy of img to w using the first
// supported protocol. backend may force "kitty" or "inline".
func PreviewImage(w io.Writer, img image.Image, backend string) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	size := computePreviewSize(img.Bounds().Dx(), img.Bounds().Dy())

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaleForPreview(img, size)); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}

	switch {
	case backend == "kitty" || (backend == "" && isKitty()):
		debugf("preview via kitty protocol (%d bytes)", buf.Len())
		return sendKittyImage(w, buf.Bytes(), size)
	case backend == "inline" || backend == "iterm" || (backend == "" && isInlineImageCapable()):
		debugf("preview via inline protocol (%d bytes)", buf.Len())
		return sendInlineImage(w, buf.Bytes(), size)
	case backend != "":
		return fmt.Errorf("unknown preview backend %q", backend)
	}
	return fmt.Errorf("no preview protocol matched")
}

// computePreviewSize fits the image into at most maxPreviewCols x
// maxPreviewRows character cells, never scaling up.
func computePreviewSize(w, h int) PreviewSize {
	if w <= 0 || h <= 0 {
		return PreviewSize{Cols: minPreviewCols, Rows: minPreviewRows, PixelWidth: minPreviewCols * cellW, PixelHeight: minPreviewRows * cellH}
	}
	scale := math.Min(1, math.Min(float64(maxPreviewCols*cellW)/float64(w), float64(maxPreviewRows*cellH)/float64(h)))
	targetW := int(math.Round(float64(w) * scale))
	targetH := int(math.Round(float64(h) * scale))

	cols := clampInt(int(math.Round(float64(targetW)/cellW)), minPreviewCols, maxPreviewCols)
	rows := clampInt(int(math.Round(float64(targetH)/cellH)), minPreviewRows, maxPreviewRows)
	return PreviewSize{
		Cols:        cols,
		Rows:        rows,
		PixelWidth:  cols * cellW,
		PixelHeight: rows * cellH,
	}
}

// scaleForPreview shrinks img so the payload stays small; the terminal does
// the final placement.
func scaleForPreview(img image.Image, size PreviewSize) image.Image {
	b := img.Bounds()
	if b.Dx() <= size.PixelWidth && b.Dy() <= size.PixelHeight {
		return img
	}
	scale := math.Min(float64(size.PixelWidth)/float64(b.Dx()), float64(size.PixelHeight)/float64(b.Dy()))
	dw := max(1, int(math.Round(float64(b.Dx())*scale)))
	dh := max(1, int(math.Round(float64(b.Dy())*scale)))
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// sendKittyImage transmits PNG bytes with the kitty graphics protocol in
// base64 chunks of at most 4096 bytes. The first chunk carries the control
// keys; q=2 suppresses terminal responses.
func sendKittyImage(w io.Writer, data []byte, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	enc := base64.StdEncoding.EncodeToString(data)
	for pos := 0; pos < len(enc); pos += kittyChunkSize {
		end := min(pos+kittyChunkSize, len(enc))
		more := "0"
		if end < len(enc) {
			more = "1"
		}
		var seq string
		if pos == 0 {
			seq = fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%s;%s\x1b\\", size.Cols, size.Rows, more, enc[pos:end])
		} else {
			seq = "\x1b_Gm=" + more + ";" + enc[pos:end] + "\x1b\\"
		}
		if _, err := io.WriteString(w, seq); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// sendInlineImage emits the iTerm2-style OSC 1337 inline file sequence.
func sendInlineImage(w io.Writer, data []byte, size PreviewSize) error {
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	enc := base64.StdEncoding.EncodeToString(data)
	seq := fmt.Sprintf("\x1b]1337;File=name=preview.png;inline=1;size=%d;width=%dpx;height=%dpx:%s\a\n",
		len(data), size.PixelWidth, size.PixelHeight, enc)
	_, err := io.WriteString(w, seq)
	return err
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
