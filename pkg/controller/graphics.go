package controller

import (
	"context"

	"github.com/dnrgps/dnrgps/pkg/featuretable"
	"github.com/dnrgps/dnrgps/pkg/graphics"
	"github.com/dnrgps/dnrgps/pkg/table"
)

// DrawPoint shows a GPS fix using the controller's breadcrumb mode and
// returns the id of the current marker.
func (c *Controller) DrawPoint(ctx context.Context, lat, lon, heading float64) (graphics.GraphicID, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	d, err := c.Style()
	if err != nil {
		return 0, err
	}
	return c.engine.DrawPoint(ctx, d, lat, lon, heading, c.Breadcrumbs)
}

// DrawCEP draws a circular error probable with radii in meters.
func (c *Controller) DrawCEP(ctx context.Context, lat, lon float64, radii []float64) (graphics.GraphicID, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	d, err := c.Style()
	if err != nil {
		return 0, err
	}
	return c.engine.DrawCEP(ctx, d, lat, lon, radii)
}

// Clear deletes one graphic. Unknown ids are ignored.
func (c *Controller) Clear(ctx context.Context, id graphics.GraphicID) error {
	return c.ClearIDs(ctx, []graphics.GraphicID{id})
}

// ClearIDs deletes each graphic in ids. Unknown ids are ignored.
func (c *Controller) ClearIDs(ctx context.Context, ids []graphics.GraphicID) error {
	if err := c.check(); err != nil {
		return err
	}
	d, err := c.Style()
	if err != nil {
		return err
	}
	return c.engine.ClearIDs(ctx, d, ids)
}

// ClearAll removes every graphic this controller drew and restarts ids.
func (c *Controller) ClearAll(ctx context.Context) error {
	if err := c.check(); err != nil {
		return err
	}
	d, err := c.Style()
	if err != nil {
		return err
	}
	return c.engine.ClearAll(ctx, d)
}

// RefreshDisplay redraws the graphics of the focus map.
func (c *Controller) RefreshDisplay() error {
	if err := c.check(); err != nil {
		return err
	}
	return c.engine.Refresh()
}

// RefreshDisplayAt keeps (lat, lon) in view; see [graphics.Engine.RefreshAt].
// It reports whether the view moved.
func (c *Controller) RefreshDisplayAt(lat, lon, percent float64) (bool, error) {
	if err := c.check(); err != nil {
		return false, err
	}
	return c.engine.RefreshAt(lat, lon, percent)
}

// Graphics reads the active graphics layer into a table.
func (c *Controller) Graphics(ctx context.Context) (*table.Table, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	return c.codec.ExtractGraphics(ctx)
}

// AddGraphics draws the geometries of t on the active graphics layer.
func (c *Controller) AddGraphics(ctx context.Context, t *table.Table) (featuretable.InjectResult, error) {
	if err := c.check(); err != nil {
		return featuretable.InjectResult{}, err
	}
	d, err := c.Style()
	if err != nil {
		return featuretable.InjectResult{}, err
	}
	return c.codec.Inject(ctx, d, t)
}
