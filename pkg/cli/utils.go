package cli

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const jpegQuality = 95

// LoadImage decodes an image file, applying the EXIF orientation of JPEGs.
// PNG, JPEG, GIF (first frame), BMP, TIFF and WebP are supported.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", path, err)
	}
	return img, nil
}

// SaveImage encodes img in the format implied by path's extension. The data
// is written to a temporary file in the same directory and renamed over path,
// so a failed save leaves any existing file untouched.
func SaveImage(path string, img image.Image) (err error) {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("cannot save %s: %w", path, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = imaging.Encode(tmp, img, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

// DefaultOutputPath derives <dir>/<stem>_pad.<ext> from the input path.
// Extensions the encoder cannot write fall back to .png.
func DefaultOutputPath(input string) string {
	dir := filepath.Dir(input)
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" && ext != "" {
		// dotfile such as ".png": the whole name is the stem
		stem, ext = base, ""
	}
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		stem = "output"
	}
	if ext == "" || ext == "." {
		ext = ".png"
	} else if _, err := imaging.FormatFromExtension(ext); err != nil {
		ext = ".png"
	}
	return filepath.Join(dir, stem+"_pad"+ext)
}

// imageInfo returns a short description of img for debug output.
func imageInfo(img image.Image) string {
	b := img.Bounds()
	kind := "unknown"
	switch img.(type) {
	case *image.YCbCr:
		kind = "ycbcr"
	case *image.Paletted:
		kind = "paletted"
	case *image.NRGBA, *image.NRGBA64:
		kind = "nrgba"
	case *image.RGBA, *image.RGBA64:
		kind = "rgba"
	case *image.Gray, *image.Gray16:
		kind = "gray"
	}
	return fmt.Sprintf("%dx%d %s", b.Dx(), b.Dy(), kind)
}
