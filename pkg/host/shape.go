package host

import (
	"github.com/paulmach/orb"
)

// GeometryKind is the tag used to dispatch on geometry type.
type GeometryKind int

const (
	KindUnknown GeometryKind = iota
	KindPoint
	KindMultipoint
	KindPolyline
	KindPolygon
)

func (k GeometryKind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindMultipoint:
		return "multipoint"
	case KindPolyline:
		return "polyline"
	case KindPolygon:
		return "polygon"
	}
	return "unknown"
}

// KindOf tags an orb geometry. Multi-part lines and polygons share the
// single-part kind, matching how the host models parts.
func KindOf(g orb.Geometry) GeometryKind {
	switch g.(type) {
	case orb.Point:
		return KindPoint
	case orb.MultiPoint:
		return KindMultipoint
	case orb.LineString, orb.MultiLineString:
		return KindPolyline
	case orb.Polygon, orb.MultiPolygon, orb.Ring:
		return KindPolygon
	}
	return KindUnknown
}

// Circle is a closed circular arc. It has no linear (well-known text)
// representation.
type Circle struct {
	Center orb.Point
	Radius float64
}

// Shape is a geometry tagged with its spatial reference.
type Shape struct {
	Geometry orb.Geometry
	Circle   *Circle
	SR       SpatialReference
}

// PointShape returns a point shape in the given reference.
func PointShape(x, y float64, sr SpatialReference) Shape {
	return Shape{Geometry: orb.Point{x, y}, SR: sr}
}

// Kind returns the geometry kind. Circles are polygons.
func (s Shape) Kind() GeometryKind {
	if s.Circle != nil {
		return KindPolygon
	}
	return KindOf(s.Geometry)
}

// IsEmpty reports whether the shape has no coordinates.
func (s Shape) IsEmpty() bool {
	if s.Circle != nil {
		return false
	}
	return pointCount(s.Geometry) == 0
}

// Point returns the shape as a point when it is one.
func (s Shape) Point() (orb.Point, bool) {
	p, ok := s.Geometry.(orb.Point)
	return p, ok
}

func pointCount(g orb.Geometry) int {
	switch v := g.(type) {
	case nil:
		return 0
	case orb.Point:
		return 1
	case orb.MultiPoint:
		return len(v)
	case orb.LineString:
		return len(v)
	case orb.Ring:
		return len(v)
	case orb.MultiLineString:
		n := 0
		for _, ls := range v {
			n += len(ls)
		}
		return n
	case orb.Polygon:
		n := 0
		for _, r := range v {
			n += len(r)
		}
		return n
	case orb.MultiPolygon:
		n := 0
		for _, p := range v {
			n += pointCount(p)
		}
		return n
	case orb.Collection:
		n := 0
		for _, c := range v {
			n += pointCount(c)
		}
		return n
	case orb.Bound:
		return 2
	}
	return 0
}

// SRKind classifies a spatial reference.
type SRKind int

const (
	SRUnknown SRKind = iota
	SRGeographic
	SRProjected
)

// SpatialReference identifies a coordinate reference frame. The zero value
// is the undefined reference.
type SpatialReference struct {
	Kind SRKind
	Code int
	Name string
	Unit Unit
}

// WGS84 is the fixed geographic frame used at the interchange boundary.
var WGS84 = SpatialReference{Kind: SRGeographic, Code: 4326, Name: "GCS_WGS_1984", Unit: DecimalDegrees}

// Defined reports whether the reference is known.
func (r SpatialReference) Defined() bool {
	return r.Kind != SRUnknown
}

// Projected reports whether the reference is a projected coordinate system.
func (r SpatialReference) Projected() bool {
	return r.Kind == SRProjected
}

// Unit is a linear or angular map unit.
type Unit int

const (
	UnknownUnits Unit = iota
	DecimalDegrees
	Meters
	Kilometers
	Feet
	USSurveyFeet
	Miles
	NauticalMiles
)

var unitNames = map[Unit]string{
	UnknownUnits:   "unknown",
	DecimalDegrees: "degrees",
	Meters:         "meters",
	Kilometers:     "kilometers",
	Feet:           "feet",
	USSurveyFeet:   "us-feet",
	Miles:          "miles",
	NauticalMiles:  "nautical-miles",
}

func (u Unit) String() string {
	if s, ok := unitNames[u]; ok {
		return s
	}
	return "unknown"
}

// ParseUnit parses the String form of a Unit.
func ParseUnit(s string) (Unit, bool) {
	for u, name := range unitNames {
		if name == s {
			return u, true
		}
	}
	return UnknownUnits, false
}

// Linear reports whether the unit measures distance on the map.
func (u Unit) Linear() bool {
	return u != UnknownUnits && u != DecimalDegrees
}
