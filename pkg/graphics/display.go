package graphics

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/dnrgps/dnrgps/pkg/errors"
)

// Refresh redraws the graphics of the focus map.
func (e *Engine) Refresh() error {
	m, err := e.focusMap()
	if err != nil {
		return err
	}
	m.View().RefreshGraphics()
	return nil
}

// RefreshAt keeps (lat, lon) in view. The current extent is scaled by
// factor around its center (a factor below 1 shrinks it); if the point
// lies inside, only graphics are redrawn. Otherwise the view is recentered
// on the point and fully redrawn. It reports whether the view moved.
func (e *Engine) RefreshAt(lat, lon, factor float64) (bool, error) {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return false, errors.New(errors.ErrCodeInvalidInput, "extent factor %v must be positive", factor)
	}
	m, err := e.focusMap()
	if err != nil {
		return false, err
	}
	pt, err := e.ProjectPoint(m, lat, lon)
	if err != nil {
		return false, err
	}
	p, _ := pt.Point()
	view := m.View()
	extent := view.Extent()
	if scaleBound(extent, factor).Contains(p) {
		view.RefreshGraphics()
		return false, nil
	}
	view.SetExtent(centerAt(extent, p))
	view.Refresh()
	return true, nil
}

func scaleBound(b orb.Bound, f float64) orb.Bound {
	c := b.Center()
	hw, hh := (b.Max[0]-b.Min[0])*f/2, (b.Max[1]-b.Min[1])*f/2
	return orb.Bound{Min: orb.Point{c[0] - hw, c[1] - hh}, Max: orb.Point{c[0] + hw, c[1] + hh}}
}

func centerAt(b orb.Bound, p orb.Point) orb.Bound {
	c := b.Center()
	dx, dy := p[0]-c[0], p[1]-c[1]
	return orb.Bound{Min: orb.Point{b.Min[0] + dx, b.Min[1] + dy}, Max: orb.Point{b.Max[0] + dx, b.Max[1] + dy}}
}
