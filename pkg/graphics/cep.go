package graphics

import (
	"context"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
	"github.com/dnrgps/dnrgps/pkg/style"
)

// DrawCEP draws a circular error probable around (lat, lon). radii are in
// meters and are converted to the map's units. The focus map must use a
// projected reference with a linear unit.
func (e *Engine) DrawCEP(ctx context.Context, d *style.Defaults, lat, lon float64, radii []float64) (GraphicID, error) {
	if err := errors.ValidateRadii(radii); err != nil {
		return 0, err
	}
	m, err := e.focusMap()
	if err != nil {
		return 0, err
	}
	sr := m.SpatialReference()
	if !sr.Projected() {
		return 0, errors.New(errors.ErrCodeUnprojectablePoint, "map %q must have a projected coordinate system to draw a circle", m.Name())
	}
	units := m.MapUnits()
	if !units.Linear() {
		return 0, errors.New(errors.ErrCodeUnprojectablePoint, "map %q must have linear units to draw a circle, not %s", m.Name(), units)
	}
	mapRadii := make([]float64, len(radii))
	for i, r := range radii {
		if mapRadii[i], err = e.Session.Units.Convert(r, host.Meters, units); err != nil {
			return 0, errors.Wrap(errors.ErrCodeUnprojectablePoint, err, "convert radius %v m to %s", r, units)
		}
	}
	pt, err := e.ProjectPoint(m, lat, lon)
	if err != nil {
		return 0, err
	}
	center, _ := pt.Point()

	f := e.Session.Factory
	marker, err := f.NewElement(host.ElementMarker, pt, host.Symbol{
		Style: host.SimpleMarker,
		Color: d.CEP.CenterColor,
		Size:  d.CEP.CenterSize,
	})
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "create CEP center")
	}
	children := []host.Element{marker}
	for i, r := range mapRadii {
		color, width := d.CircleOutline(i)
		circle, err := f.NewElement(host.ElementCircle,
			host.Shape{Circle: &host.Circle{Center: center, Radius: r}, SR: pt.SR},
			host.Symbol{
				Style:        host.SimpleFill,
				Outline:      true,
				OutlineColor: color,
				OutlineWidth: width,
				Hollow:       true,
			})
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInternal, err, "create CEP circle %d", i)
		}
		children = append(children, circle)
	}
	group, err := f.NewGroup(children)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "group CEP graphics")
	}

	gc, err := e.Scratch(ctx, d)
	if err != nil {
		return 0, err
	}
	return e.add(ctx, gc, group)
}
