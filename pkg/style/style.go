// Package style holds the configurable colors, sizes and widths used when
// drawing graphics.
//
// A [Defaults] value is threaded into each drawing call. Graphics copy the
// values they need when they are created, so changing a Defaults after a
// draw affects only later graphics.
//
// # Configuration
//
// Defaults are written as TOML. Any key left out keeps its built-in value:
//
//	graphics_layer_name = "DNRGPS_Realtime_Graphics"
//
//	[gps]
//	current_color = "#ff0000"
//	current_size = 12.0
//
//	[cep]
//	circle_outline_colors = ["#c8c8c8", "#9b9b9b", "#646464", "#373737"]
//	circle_outline_widths = [0.1, 0.2, 0.5, 1.0]
package style

import (
	"bytes"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
)

// DefaultGraphicsLayerName is the name of the scratch graphics layer.
const DefaultGraphicsLayerName = "DNRGPS_Realtime_Graphics"

// Defaults is the drawing configuration.
type Defaults struct {
	GraphicsLayerName string `toml:"graphics_layer_name"`

	GPS     GPS     `toml:"gps"`
	CEP     CEP     `toml:"cep"`
	Marker  Marker  `toml:"marker"`
	Line    Line    `toml:"line"`
	Polygon Polygon `toml:"polygon"`
}

// GPS styles the moving GPS marker and its trail.
type GPS struct {
	CurrentColor  host.Color `toml:"current_color"`
	CurrentSize   float64    `toml:"current_size"`
	PreviousColor host.Color `toml:"previous_color"`
	PreviousSize  float64    `toml:"previous_size"`
	TrackColor    host.Color `toml:"track_color"`
	TrackWidth    float64    `toml:"track_width"`
}

// CEP styles circular error probable graphics.
type CEP struct {
	CenterColor         host.Color   `toml:"center_color"`
	CenterSize          float64      `toml:"center_size"`
	CircleOutlineColors []host.Color `toml:"circle_outline_colors"`
	CircleOutlineWidths []float64    `toml:"circle_outline_widths"`
}

// Marker styles point graphics added from tables.
type Marker struct {
	Size         float64    `toml:"size"`
	Color        host.Color `toml:"color"`
	OutlineColor host.Color `toml:"outline_color"`
	OutlineWidth float64    `toml:"outline_width"`
}

// Line styles polyline graphics added from tables.
type Line struct {
	Color host.Color `toml:"color"`
	Width float64    `toml:"width"`
}

// Polygon styles polygon graphics added from tables.
type Polygon struct {
	FillColor    host.Color `toml:"fill_color"`
	OutlineColor host.Color `toml:"outline_color"`
	OutlineWidth float64    `toml:"outline_width"`
}

// Default returns the built-in drawing configuration.
func Default() *Defaults {
	return &Defaults{
		GraphicsLayerName: DefaultGraphicsLayerName,
		GPS: GPS{
			CurrentColor:  host.Red,
			CurrentSize:   12,
			PreviousColor: host.RGB(175, 0, 0),
			PreviousSize:  4,
			TrackColor:    host.RGB(200, 125, 125),
			TrackWidth:    0.1,
		},
		CEP: CEP{
			CenterColor: host.Blue,
			CenterSize:  9,
			CircleOutlineColors: []host.Color{
				host.RGB(200, 200, 200),
				host.RGB(155, 155, 155),
				host.RGB(100, 100, 100),
				host.RGB(55, 55, 55),
			},
			CircleOutlineWidths: []float64{0.1, 0.2, 0.5, 1.0},
		},
		Marker: Marker{
			Size:         7,
			Color:        host.RGB(0, 255, 85),
			OutlineColor: host.Black,
			OutlineWidth: 1,
		},
		Line: Line{
			Color: host.Black,
			Width: 1,
		},
		Polygon: Polygon{
			FillColor:    host.RGB(255, 255, 190),
			OutlineColor: host.RGB(110, 110, 110),
			OutlineWidth: 1,
		},
	}
}

// Clone returns a deep copy.
func (d *Defaults) Clone() *Defaults {
	c := *d
	c.CEP.CircleOutlineColors = append([]host.Color(nil), d.CEP.CircleOutlineColors...)
	c.CEP.CircleOutlineWidths = append([]float64(nil), d.CEP.CircleOutlineWidths...)
	return &c
}

// Validate reports configuration that cannot be drawn.
func (d *Defaults) Validate() error {
	if err := errors.ValidateLayerName(d.GraphicsLayerName); err != nil {
		return err
	}
	if d.GPS.CurrentSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gps.current_size must be positive")
	}
	if d.GPS.PreviousSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gps.previous_size must be positive")
	}
	for i, w := range d.CEP.CircleOutlineWidths {
		if w < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "cep.circle_outline_widths[%d] must not be negative", i)
		}
	}
	return nil
}

// CircleOutline returns the outline color and width for the i-th CEP
// circle. Indices past the end of a palette use its last entry; an empty
// palette falls back to black and width 1.
func (d *Defaults) CircleOutline(i int) (host.Color, float64) {
	color := host.Black
	if n := len(d.CEP.CircleOutlineColors); n > 0 {
		color = d.CEP.CircleOutlineColors[min(i, n-1)]
	}
	width := 1.0
	if n := len(d.CEP.CircleOutlineWidths); n > 0 {
		width = d.CEP.CircleOutlineWidths[min(i, n-1)]
	}
	return color, width
}

// ShrinkRatio is the scale applied to a superseded GPS marker.
func (d *Defaults) ShrinkRatio() float64 {
	return d.GPS.PreviousSize / d.GPS.CurrentSize
}

// Parse decodes TOML on top of the built-in defaults.
func Parse(data []byte) (*Defaults, error) {
	d := Default()
	if _, err := toml.Decode(string(data), d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode style")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Load reads a TOML style file.
func Load(path string) (*Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read style %s", path)
	}
	return Parse(data)
}

// Encode writes d as TOML.
func Encode(w io.Writer, d *Defaults) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(d); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode style")
	}
	_, err := w.Write(buf.Bytes())
	return err
}
