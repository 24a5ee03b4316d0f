package graphics

import (
	"github.com/paulmach/orb"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
	"github.com/dnrgps/dnrgps/pkg/style"
)

// AddStyled adds s to gc as untagged graphics styled from d, dispatching on
// the geometry kind. A multipoint becomes one marker per point. It returns
// the number of graphics added.
func (e *Engine) AddStyled(d *style.Defaults, gc host.GraphicsContainer, s host.Shape) (int, error) {
	if s.IsEmpty() {
		return 0, errors.New(errors.ErrCodeInvalidInput, "empty geometry")
	}
	switch s.Kind() {
	case host.KindPoint:
		return added(e.addElement(gc, host.ElementMarker, s, markerSymbol(d)))
	case host.KindMultipoint:
		mp := s.Geometry.(orb.MultiPoint)
		for i, p := range mp {
			if err := e.addElement(gc, host.ElementMarker, host.Shape{Geometry: p, SR: s.SR}, markerSymbol(d)); err != nil {
				return i, err
			}
		}
		return len(mp), nil
	case host.KindPolyline:
		return added(e.addElement(gc, host.ElementLine, s, host.Symbol{
			Style: host.SimpleLine,
			Color: d.Line.Color,
			Width: d.Line.Width,
		}))
	case host.KindPolygon:
		return added(e.addElement(gc, host.ElementFill, s, host.Symbol{
			Style:        host.SimpleFill,
			Color:        d.Polygon.FillColor,
			Outline:      true,
			OutlineColor: d.Polygon.OutlineColor,
			OutlineWidth: d.Polygon.OutlineWidth,
		}))
	}
	return 0, errors.New(errors.ErrCodeUnsupported, "cannot draw %s geometry", s.Kind())
}

func added(err error) (int, error) {
	if err != nil {
		return 0, err
	}
	return 1, nil
}

func (e *Engine) addElement(gc host.GraphicsContainer, kind host.ElementKind, s host.Shape, sym host.Symbol) error {
	el, err := e.Session.Factory.NewElement(kind, s, sym)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s graphic", kind)
	}
	if err := gc.AddElement(el); err != nil {
		return errors.Wrap(errors.ErrCodeLayerUnavailable, err, "add %s graphic", kind)
	}
	return nil
}

// markerSymbol styles table markers. A non-positive outline width turns
// the outline off.
func markerSymbol(d *style.Defaults) host.Symbol {
	sym := host.Symbol{
		Style: host.SimpleMarker,
		Color: d.Marker.Color,
		Size:  d.Marker.Size,
	}
	if d.Marker.OutlineWidth > 0 {
		sym.Outline = true
		sym.OutlineColor = d.Marker.OutlineColor
		sym.OutlineWidth = d.Marker.OutlineWidth
	}
	return sym
}
