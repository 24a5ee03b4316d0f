// Package wkt converts host shapes to and from well-known text, the only
// geometry encoding that crosses the dnrgps interchange boundary.
//
// Encoding and decoding are delegated to orb's WKT codec. This package adds
// the boundary rules: empty shapes encode as the empty string, true
// circular arcs have no encoding, and decoded geometries must be of a kind
// the host can draw.
package wkt

import (
	stderrors "errors"
	"strings"

	"github.com/paulmach/orb"
	orbwkt "github.com/paulmach/orb/encoding/wkt"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
)

// ErrNonLinear is returned by Encode for shapes with curved segments.
var ErrNonLinear = stderrors.New("wkt: shape has no linear representation")

// Encode returns the well-known text of s. Empty shapes encode as "".
func Encode(s host.Shape) (string, error) {
	if s.Circle != nil {
		return "", ErrNonLinear
	}
	if s.IsEmpty() {
		return "", nil
	}
	g := s.Geometry
	if b, ok := g.(orb.Bound); ok {
		g = b.ToPolygon()
	}
	if host.KindOf(g) == host.KindUnknown {
		return "", errors.New(errors.ErrCodeUnsupported, "cannot encode %s geometry", g.GeoJSONType())
	}
	return orbwkt.MarshalString(g), nil
}

// Decode parses well-known text into a geometry the host can draw.
func Decode(text string) (orb.Geometry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty well-known text")
	}
	g, err := orbwkt.Unmarshal(text)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse well-known text")
	}
	if host.KindOf(g) == host.KindUnknown {
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported geometry %s", g.GeoJSONType())
	}
	return g, nil
}

// DecodeShape parses text into a shape tagged with sr.
func DecodeShape(text string, sr host.SpatialReference) (host.Shape, error) {
	g, err := Decode(text)
	if err != nil {
		return host.Shape{}, err
	}
	return host.Shape{Geometry: g, SR: sr}, nil
}
