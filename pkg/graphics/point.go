package graphics

import (
	"context"
	"math"

	"github.com/paulmach/orb"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
	"github.com/dnrgps/dnrgps/pkg/style"
)

// SymbolAngle converts a compass heading (degrees clockwise from north) to
// a symbol angle (degrees counter-clockwise from east) in [0, 360).
func SymbolAngle(heading float64) float64 {
	a := math.Mod(360-heading+90, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// ProjectPoint places a WGS84 coordinate on m. An undefined map reference
// leaves the coordinate as is.
func (e *Engine) ProjectPoint(m host.Map, lat, lon float64) (host.Shape, error) {
	if err := errors.ValidateCoordinate(lat, lon); err != nil {
		return host.Shape{}, err
	}
	s, err := e.Session.Projector.Project(host.PointShape(lon, lat, host.WGS84), m.SpatialReference())
	if err != nil {
		return host.Shape{}, errors.Wrap(errors.ErrCodeUnprojectablePoint, err, "project (%v, %v)", lat, lon)
	}
	if s.IsEmpty() {
		return host.Shape{}, errors.New(errors.ErrCodeUnprojectablePoint, "unable to project (%v, %v) onto map %q; it may be out of bounds", lat, lon, m.Name())
	}
	return s, nil
}

// DrawPoint shows the GPS position (lat, lon) with the given heading and
// returns the id of the current marker.
func (e *Engine) DrawPoint(ctx context.Context, d *style.Defaults, lat, lon, heading float64, mode Breadcrumbs) (GraphicID, error) {
	if math.IsNaN(heading) || math.IsInf(heading, 0) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "heading must be finite")
	}
	m, err := e.focusMap()
	if err != nil {
		return 0, err
	}
	pt, err := e.ProjectPoint(m, lat, lon)
	if err != nil {
		return 0, err
	}
	gc, err := e.Scratch(ctx, d)
	if err != nil {
		return 0, err
	}
	if e.marker != nil && !onLayer(gc, e.marker) {
		// The marker may still live on another map; its tag stays so the id
		// can be cleared once that map has focus again.
		e.Logger.Debug("current marker is not on this map, starting a new one")
		e.marker = nil
	}

	angle := SymbolAngle(heading)
	if e.marker == nil {
		if err := e.newMarker(ctx, d, gc, pt, angle); err != nil {
			return 0, err
		}
		id, _ := e.tags.IDOf(e.marker)
		return id, nil
	}

	switch mode {
	case None:
		err = e.moveMarker(pt, angle)
	case SmallSymbols:
		prev := e.marker
		err = e.newMarker(ctx, d, gc, pt, angle)
		if err == nil {
			err = supersede(d, prev)
		}
	case Lines:
		err = e.trackTo(ctx, d, gc, pt)
		if err == nil {
			err = e.moveMarker(pt, angle)
		}
	default:
		err = errors.New(errors.ErrCodeInvalidInput, "unknown breadcrumb mode %d", int(mode))
	}
	if err != nil {
		return 0, err
	}
	id, _ := e.tags.IDOf(e.marker)
	return id, nil
}

func (e *Engine) newMarker(ctx context.Context, d *style.Defaults, gc host.GraphicsContainer, pt host.Shape, angle float64) error {
	sym := host.Symbol{
		Style: host.ArrowMarker,
		Color: d.GPS.CurrentColor,
		Size:  d.GPS.CurrentSize,
		Angle: angle,
	}
	el, err := e.Session.Factory.NewElement(host.ElementMarker, pt, sym)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create marker")
	}
	if _, err := e.add(ctx, gc, el); err != nil {
		return err
	}
	e.marker = el
	return nil
}

func (e *Engine) moveMarker(pt host.Shape, angle float64) error {
	if err := e.marker.SetShape(pt); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "move marker")
	}
	sym := e.marker.Symbol()
	sym.Angle = angle
	if err := e.marker.SetSymbol(sym); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "rotate marker")
	}
	return nil
}

// supersede shrinks a marker left behind as a breadcrumb and gives it the
// previous-position color.
func supersede(d *style.Defaults, el host.Element) error {
	sym := el.Symbol()
	sym.Size *= d.ShrinkRatio()
	sym.Color = d.GPS.PreviousColor
	if err := el.SetSymbol(sym); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "shrink marker")
	}
	return nil
}

// trackTo adds a track segment from the marker to pt and hands the
// marker's id to the segment.
func (e *Engine) trackTo(ctx context.Context, d *style.Defaults, gc host.GraphicsContainer, pt host.Shape) error {
	from, ok := e.marker.Shape().Point()
	if !ok {
		return errors.New(errors.ErrCodeInternal, "current marker has no point")
	}
	to, _ := pt.Point()
	seg := host.Shape{Geometry: orb.LineString{from, to}, SR: pt.SR}
	sym := host.Symbol{
		Style: host.SimpleLine,
		Color: d.GPS.TrackColor,
		Width: d.GPS.TrackWidth,
	}
	line, err := e.Session.Factory.NewElement(host.ElementLine, seg, sym)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create track line")
	}
	if _, err := e.add(ctx, gc, line); err != nil {
		return err
	}
	e.tags.Swap(line, e.marker)
	return nil
}
