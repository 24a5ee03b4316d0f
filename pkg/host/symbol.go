package host

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ElementKind classifies graphic elements.
type ElementKind int

const (
	ElementMarker ElementKind = iota
	ElementLine
	ElementFill
	ElementCircle
	ElementGroup
	ElementText
)

func (k ElementKind) String() string {
	switch k {
	case ElementMarker:
		return "marker"
	case ElementLine:
		return "line"
	case ElementFill:
		return "fill"
	case ElementCircle:
		return "circle"
	case ElementGroup:
		return "group"
	case ElementText:
		return "text"
	}
	return "unknown"
}

// SymbolStyle selects how a symbol is drawn.
type SymbolStyle int

const (
	SimpleMarker SymbolStyle = iota
	ArrowMarker
	SimpleLine
	SimpleFill
)

// Symbol describes the rendering of one element. Marker symbols use Size and
// Angle (degrees counter-clockwise from east); line symbols use Width; fill
// symbols use the outline fields and Hollow.
type Symbol struct {
	Style        SymbolStyle
	Color        Color
	Size         float64
	Angle        float64
	Width        float64
	Outline      bool
	OutlineColor Color
	OutlineWidth float64
	// Hollow draws the fill fully transparent.
	Hollow bool
}

// Color is an RGBA color. A is opacity, 255 is fully opaque.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Named colors used by the default style.
var (
	Black = RGB(0, 0, 0)
	Red   = RGB(255, 0, 0)
	Blue  = RGB(0, 0, 255)
)

// ParseColor parses "#RRGGBB" or "#RRGGBBAA".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// String returns the color as "#RRGGBB", with an alpha suffix when the
// color is not opaque.
func (c Color) String() string {
	hex := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
	if c.A != 255 {
		return fmt.Sprintf("%s%02x", hex, c.A)
	}
	return hex
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
