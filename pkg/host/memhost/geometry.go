package memhost

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"github.com/dnrgps/dnrgps/pkg/host"
)

// MercatorLimit is the largest latitude Web Mercator can represent.
const MercatorLimit = 85.05112878

// Common references used by fixtures and tests.
var (
	WebMercator    = host.SpatialReference{Kind: host.SRProjected, Code: 3857, Name: "WGS_1984_Web_Mercator_Auxiliary_Sphere", Unit: host.Meters}
	UTM15N         = host.SpatialReference{Kind: host.SRProjected, Code: 26915, Name: "NAD_1983_UTM_Zone_15N", Unit: host.Meters}
	StatePlaneFeet = host.SpatialReference{Kind: host.SRProjected, Code: 2812, Name: "NAD_1983_HARN_StatePlane_Minnesota_South_FIPS_2203_Feet", Unit: host.USSurveyFeet}
)

var metersPer = map[host.Unit]float64{
	host.Meters:        1,
	host.Kilometers:    1000,
	host.Feet:          0.3048,
	host.USSurveyFeet:  1200.0 / 3937.0,
	host.Miles:         1609.344,
	host.NauticalMiles: 1852,
}

// Units converts between linear units.
type Units struct{}

func (Units) Convert(v float64, from, to host.Unit) (float64, error) {
	f, ok := metersPer[from]
	if !ok {
		return 0, fmt.Errorf("memhost: cannot convert from %s", from)
	}
	t, ok := metersPer[to]
	if !ok {
		return 0, fmt.Errorf("memhost: cannot convert to %s", to)
	}
	return v * f / t, nil
}

// Projector reprojects between geographic coordinates and Web Mercator.
type Projector struct{}

func (Projector) Project(s host.Shape, to host.SpatialReference) (host.Shape, error) {
	if !s.SR.Defined() || !to.Defined() {
		return s, nil
	}
	if s.SR == to || s.IsEmpty() {
		s.SR = to
		return s, nil
	}
	toMeters, err := stage(s.SR, true)
	if err != nil {
		return host.Shape{}, err
	}
	fromMeters, err := stage(to, false)
	if err != nil {
		return host.Shape{}, err
	}
	if s.SR.Kind == host.SRGeographic && !mercatorSafe(s) {
		return host.Shape{SR: to}, nil
	}

	out := host.Shape{SR: to}
	if s.Circle != nil {
		center := fromMeters(toMeters(s.Circle.Center))
		ratio := 1.0
		if s.SR.Unit.Linear() && to.Unit.Linear() {
			ratio = metersPer[s.SR.Unit] / metersPer[to.Unit]
		}
		out.Circle = &host.Circle{Center: center, Radius: s.Circle.Radius * ratio}
		return out, nil
	}
	g := orb.Clone(s.Geometry)
	g = project.Geometry(g, func(p orb.Point) orb.Point { return fromMeters(toMeters(p)) })
	out.Geometry = g
	return out, nil
}

// stage returns the projection from sr to Web Mercator meters, or the
// reverse when forward is false.
func stage(sr host.SpatialReference, forward bool) (orb.Projection, error) {
	switch sr.Kind {
	case host.SRGeographic:
		if forward {
			return project.WGS84.ToMercator, nil
		}
		return project.Mercator.ToWGS84, nil
	case host.SRProjected:
		f, ok := metersPer[sr.Unit]
		if !ok {
			return nil, fmt.Errorf("memhost: projected reference %s has no linear unit", sr.Name)
		}
		if forward {
			return func(p orb.Point) orb.Point { return orb.Point{p[0] * f, p[1] * f} }, nil
		}
		return func(p orb.Point) orb.Point { return orb.Point{p[0] / f, p[1] / f} }, nil
	}
	return nil, fmt.Errorf("memhost: unsupported reference %s", sr.Name)
}

func mercatorSafe(s host.Shape) bool {
	var b orb.Bound
	if s.Circle != nil {
		b = orb.Bound{Min: s.Circle.Center, Max: s.Circle.Center}
	} else {
		b = s.Geometry.Bound()
	}
	for _, v := range []float64{b.Min[1], b.Max[1], b.Min[0], b.Max[0]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.Min[1] >= -MercatorLimit && b.Max[1] <= MercatorLimit
}
