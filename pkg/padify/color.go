package padify

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned by ParseColor for strings it cannot interpret.
var ErrInvalidColor = errors.New("invalid color")

// Transparent is the fallback background used when no color can be inferred.
var Transparent = color.NRGBA{}

// CSS Color Level 4 names missing from the SVG 1.1 keyword set in colornames.
var extraColorNames = map[string]color.NRGBA{
	"rebeccapurple": {0x66, 0x33, 0x99, 0xff},
}

// ParseBackground parses a --bg style value. "auto" (any case) yields a nil
// color, meaning the caller should run DetectBackground.
func ParseBackground(s string) (*color.NRGBA, error) {
	if strings.EqualFold(strings.TrimSpace(s), "auto") {
		return nil, nil
	}
	c, err := ParseColor(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ParseColor accepts "transparent", CSS named colors, and hex in the forms
// RGB, RGBA, RRGGBB and RRGGBBAA with an optional leading '#'.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("%w: empty color", ErrInvalidColor)
	}
	lower := strings.ToLower(s)
	if lower == "transparent" {
		return Transparent, nil
	}
	if named, ok := colornames.Map[lower]; ok {
		// colornames entries are opaque, so RGBA and NRGBA agree.
		return color.NRGBA{named.R, named.G, named.B, named.A}, nil
	}
	if named, ok := extraColorNames[lower]; ok {
		return named, nil
	}

	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3, 4:
		// #rgb / #rgba: each nibble is doubled
		expanded := make([]byte, 0, len(hex)*2)
		for i := 0; i < len(hex); i++ {
			expanded = append(expanded, hex[i], hex[i])
		}
		hex = string(expanded)
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("%w: %q must be #RRGGBB, #RRGGBBAA, a color name, or 'transparent'", ErrInvalidColor, s)
	}

	var ch [4]uint8
	ch[3] = 0xff
	for i := 0; i < len(hex)/2; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: invalid color component %q, expected hex", ErrInvalidColor, hex[i*2:i*2+2])
		}
		ch[i] = uint8(v)
	}
	return color.NRGBA{ch[0], ch[1], ch[2], ch[3]}, nil
}

// FormatColor renders c as #RRGGBBAA.
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// channelDistance is the sum of absolute per-channel differences (0..1020).
func channelDistance(a, b color.NRGBA) int {
	return absDiff(a.R, b.R) + absDiff(a.G, b.G) + absDiff(a.B, b.B) + absDiff(a.A, b.A)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// quantizeKey drops the low 3 bits of every channel and packs the remaining
// 5 bits per channel into one bucket key.
func quantizeKey(c color.NRGBA) uint32 {
	r := uint32(c.R >> 3)
	g := uint32(c.G >> 3)
	b := uint32(c.B >> 3)
	a := uint32(c.A >> 3)
	return r<<15 | g<<10 | b<<5 | a
}
