package memhost

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
	"github.com/dnrgps/dnrgps/pkg/wkt"
)

// Fixture is the YAML description of a simulated host:
//
//	caption: Lakes.mxd - ArcMap
//	selected: "0"
//	maps:
//	  - name: Layers
//	    sr: utm15n
//	    layers:
//	      - name: Lakes
//	        type: feature
//	        sr: wgs84
//	        fields:
//	          - {name: OBJECTID, type: oid}
//	          - {name: Shape, type: geometry}
//	        features:
//	          - [1, "POINT(-93.3 45.1)"]
//
// Geometry values are well-known text in the layer's reference.
type Fixture struct {
	Caption  string       `yaml:"caption"`
	Hidden   bool         `yaml:"hidden"`
	Focus    int          `yaml:"focus"`
	Selected string       `yaml:"selected"`
	Maps     []MapFixture `yaml:"maps"`
}

// MapFixture describes one data frame.
type MapFixture struct {
	Name     string           `yaml:"name"`
	SR       SRFixture        `yaml:"sr"`
	Extent   []float64        `yaml:"extent"`
	Layers   []LayerFixture   `yaml:"layers"`
	Graphics []GraphicFixture `yaml:"graphics"`
}

// LayerFixture describes a feature, group or plain layer.
type LayerFixture struct {
	Name     string         `yaml:"name"`
	Type     string         `yaml:"type"`
	SR       SRFixture      `yaml:"sr"`
	Fields   []FieldFixture `yaml:"fields"`
	Features [][]any        `yaml:"features"`
	Selected []int          `yaml:"selected"`
	Layers   []LayerFixture `yaml:"layers"`
}

// FieldFixture describes a feature class field.
type FieldFixture struct {
	Name  string `yaml:"name"`
	Alias string `yaml:"alias"`
	Type  string `yaml:"type"`
}

// GraphicFixture describes a graphic on the map's active graphics layer.
type GraphicFixture struct {
	Kind     string `yaml:"kind"`
	WKT      string `yaml:"wkt"`
	Selected bool   `yaml:"selected"`
}

// SRFixture is a spatial reference, written either as a well-known short
// name (wgs84, webmercator, utm15n, stateplane-feet) or as a mapping.
type SRFixture struct {
	Kind string `yaml:"kind"`
	Code int    `yaml:"code"`
	Name string `yaml:"name"`
	Unit string `yaml:"unit"`
}

var namedReferences = map[string]host.SpatialReference{
	"wgs84":           host.WGS84,
	"webmercator":     WebMercator,
	"utm15n":          UTM15N,
	"stateplane-feet": StatePlaneFeet,
}

// UnmarshalYAML accepts the short-name form.
func (f *SRFixture) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		f.Name = n.Value
		return nil
	}
	type plain SRFixture
	return n.Decode((*plain)(f))
}

func (f SRFixture) reference() (host.SpatialReference, error) {
	if f == (SRFixture{}) {
		return host.SpatialReference{}, nil
	}
	if sr, ok := namedReferences[strings.ToLower(f.Name)]; ok && f.Kind == "" {
		return sr, nil
	}
	sr := host.SpatialReference{Code: f.Code, Name: f.Name}
	switch strings.ToLower(f.Kind) {
	case "geographic":
		sr.Kind = host.SRGeographic
	case "projected":
		sr.Kind = host.SRProjected
	case "", "unknown":
	default:
		return sr, fmt.Errorf("unknown reference kind %q", f.Kind)
	}
	if f.Unit != "" {
		u, ok := host.ParseUnit(f.Unit)
		if !ok {
			return sr, fmt.Errorf("unknown unit %q", f.Unit)
		}
		sr.Unit = u
	}
	return sr, nil
}

// LoadFixture reads a YAML fixture file.
func LoadFixture(path string) (*App, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read fixture %s", path)
	}
	return ParseFixture(data)
}

// ParseFixture builds an application from YAML.
func ParseFixture(data []byte) (*App, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode fixture")
	}
	app, err := f.Build()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "build fixture")
	}
	return app, nil
}

// Build assembles the application the fixture describes.
func (f *Fixture) Build() (*App, error) {
	caption := f.Caption
	if caption == "" {
		caption = "Untitled - ArcMap"
	}
	if len(f.Maps) == 0 {
		app := NewApp(caption, nil)
		app.SetVisible(!f.Hidden)
		return app, nil
	}

	doc := NewDocument()
	for i, mf := range f.Maps {
		m, err := mf.build()
		if err != nil {
			return nil, fmt.Errorf("map %d: %w", i, err)
		}
		doc.AddMap(m)
	}
	if err := doc.SetFocus(f.Focus); err != nil {
		return nil, err
	}
	if f.Selected != "" {
		l, err := selectByAddress(doc.Focus(), f.Selected)
		if err != nil {
			return nil, err
		}
		doc.Select(l)
	}
	app := NewApp(caption, doc)
	app.SetVisible(!f.Hidden)
	return app, nil
}

func (mf MapFixture) build() (*Map, error) {
	sr, err := mf.SR.reference()
	if err != nil {
		return nil, err
	}
	name := mf.Name
	if name == "" {
		name = "Layers"
	}
	m := NewMap(name, sr)
	if len(mf.Extent) == 4 {
		m.view.SetExtent(orb.Bound{Min: orb.Point{mf.Extent[0], mf.Extent[1]}, Max: orb.Point{mf.Extent[2], mf.Extent[3]}})
	} else if mf.Extent != nil {
		return nil, fmt.Errorf("extent needs 4 values, got %d", len(mf.Extent))
	}
	for _, lf := range mf.Layers {
		l, err := lf.build(sr)
		if err != nil {
			return nil, err
		}
		m.With(l)
	}
	for i, gf := range mf.Graphics {
		e, err := gf.build(sr)
		if err != nil {
			return nil, fmt.Errorf("graphic %d: %w", i, err)
		}
		if err := m.active.AddElement(e); err != nil {
			return nil, err
		}
		if gf.Selected {
			m.active.Select(e)
		}
	}
	return m, nil
}

func (lf LayerFixture) build(mapSR host.SpatialReference) (host.Layer, error) {
	switch strings.ToLower(lf.Type) {
	case "group":
		g := NewGroup(lf.Name)
		for _, child := range lf.Layers {
			l, err := child.build(mapSR)
			if err != nil {
				return nil, err
			}
			g.Add(l)
		}
		return g, nil
	case "", "layer", "raster":
		return NewLayer(lf.Name), nil
	case "feature":
		return lf.buildFeature(mapSR)
	}
	return nil, fmt.Errorf("layer %q: unknown type %q", lf.Name, lf.Type)
}

func (lf LayerFixture) buildFeature(mapSR host.SpatialReference) (*FeatureLayer, error) {
	sr, err := lf.SR.reference()
	if err != nil {
		return nil, fmt.Errorf("layer %q: %w", lf.Name, err)
	}
	if !sr.Defined() {
		sr = mapSR
	}
	fields := make([]host.Field, len(lf.Fields))
	for i, ff := range lf.Fields {
		t, ok := host.ParseFieldType(strings.ToLower(ff.Type))
		if !ok {
			return nil, fmt.Errorf("layer %q: field %q has unknown type %q", lf.Name, ff.Name, ff.Type)
		}
		fields[i] = host.Field{Name: ff.Name, Alias: ff.Alias, Type: t}
	}
	fl := NewFeatureLayer(lf.Name, sr, fields...)
	for r, raw := range lf.Features {
		if len(raw) != len(fields) {
			return nil, fmt.Errorf("layer %q: feature %d has %d values for %d fields", lf.Name, r, len(raw), len(fields))
		}
		values := make([]any, len(raw))
		for i, v := range raw {
			if values[i], err = fieldValue(fields[i].Type, v, sr); err != nil {
				return nil, fmt.Errorf("layer %q: feature %d field %q: %w", lf.Name, r, fields[i].Name, err)
			}
		}
		fl.rows = append(fl.rows, values)
	}
	fl.Select(lf.Selected...)
	return fl, nil
}

// fieldValue converts a YAML scalar to the value the host returns for a
// field of type t.
func fieldValue(t host.FieldType, v any, sr host.SpatialReference) (any, error) {
	if t == host.FieldGeometry {
		s, _ := v.(string)
		if strings.TrimSpace(s) == "" {
			return host.Shape{SR: sr}, nil
		}
		return wkt.DecodeShape(s, sr)
	}
	if v == nil {
		return nil, nil
	}
	switch t {
	case host.FieldOID, host.FieldInteger:
		n, ok := v.(int)
		if !ok {
			return nil, fmt.Errorf("want integer, got %T", v)
		}
		return int32(n), nil
	case host.FieldSmallInteger:
		n, ok := v.(int)
		if !ok {
			return nil, fmt.Errorf("want integer, got %T", v)
		}
		return int16(n), nil
	case host.FieldSingle, host.FieldDouble:
		var f float64
		switch x := v.(type) {
		case int:
			f = float64(x)
		case float64:
			f = x
		default:
			return nil, fmt.Errorf("want number, got %T", v)
		}
		if t == host.FieldSingle {
			return float32(f), nil
		}
		return f, nil
	case host.FieldDate:
		switch x := v.(type) {
		case time.Time:
			return x, nil
		case string:
			return time.Parse(time.RFC3339, x)
		}
		return nil, fmt.Errorf("want timestamp, got %T", v)
	case host.FieldBlob, host.FieldRaster:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("want string, got %T", v)
		}
		return []byte(s), nil
	}
	return fmt.Sprint(v), nil
}

func (gf GraphicFixture) build(sr host.SpatialReference) (host.Element, error) {
	shape, err := wkt.DecodeShape(gf.WKT, sr)
	if err != nil {
		return nil, err
	}
	var kind host.ElementKind
	switch strings.ToLower(gf.Kind) {
	case "marker", "":
		kind = host.ElementMarker
	case "line":
		kind = host.ElementLine
	case "fill":
		kind = host.ElementFill
	case "text":
		kind = host.ElementText
	default:
		return nil, fmt.Errorf("unknown graphic kind %q", gf.Kind)
	}
	return Factory{}.NewElement(kind, shape, host.Symbol{Color: host.Black, Size: 7, Width: 1})
}

func selectByAddress(m *Map, address string) (host.Layer, error) {
	var c host.Container = m
	var l host.Layer
	for _, tok := range strings.Split(address, "-") {
		var i int
		if _, err := fmt.Sscanf(tok, "%d", &i); err != nil {
			return nil, fmt.Errorf("selected address %q: %w", address, err)
		}
		if c == nil || i < 0 || i >= c.Count() {
			return nil, fmt.Errorf("selected address %q does not resolve", address)
		}
		l = c.Layer(i)
		c, _ = l.(host.Container)
	}
	return l, nil
}
