package featuretable

import (
	"context"
	"fmt"
	"time"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
	"github.com/dnrgps/dnrgps/pkg/observability"
	"github.com/dnrgps/dnrgps/pkg/style"
	"github.com/dnrgps/dnrgps/pkg/table"
	"github.com/dnrgps/dnrgps/pkg/wkt"
)

// InjectResult counts the outcome of an injection.
type InjectResult struct {
	// Rows is the number of rows that were drawn.
	Rows int
	// Graphics is the number of graphics added. A multipoint row adds one
	// graphic per point.
	Graphics int
	// Skipped is the number of rows that could not be drawn.
	Skipped int
}

// Inject draws the geometry of every row of t on the focus map's active
// graphics layer, styled from d. The table must have a geometry column.
func (c *Codec) Inject(ctx context.Context, d *style.Defaults, t *table.Table) (res InjectResult, err error) {
	if t == nil {
		return res, errors.New(errors.ErrCodeInvalidInput, "no table")
	}
	shape := t.GeometryIndex()
	if shape < 0 {
		return res, errors.New(errors.ErrCodeMissingShapeColumn, "table has no %q column", table.ShapeColumn)
	}
	m, err := c.focusMap()
	if err != nil {
		return res, err
	}
	gc := m.ActiveGraphics()
	if gc == nil {
		return res, errors.New(errors.ErrCodeLayerUnavailable, "map %q has no active graphics layer", m.Name())
	}

	start := time.Now()
	observability.Codec().OnInjectStart(ctx, t.Len())
	defer func() {
		observability.Codec().OnInjectComplete(ctx, res.Graphics, res.Skipped, time.Since(start), err)
	}()

	p := c.newProgress(t.Len())
	for r, row := range t.Rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		n, err := c.injectRow(d, m, gc, row, shape)
		res.Graphics += n
		if err != nil {
			res.Skipped++
			c.Logger.Warn("row skipped", "row", r, "err", err)
			observability.Codec().OnRowSkipped(ctx, "inject", r, err)
		} else {
			res.Rows++
		}
		p.step()
	}
	p.finish()
	if res.Graphics > 0 {
		m.View().RefreshGraphics()
	}
	c.Logger.Debug("injected table", "rows", res.Rows, "graphics", res.Graphics, "skipped", res.Skipped)
	return res, nil
}

func (c *Codec) injectRow(d *style.Defaults, m host.Map, gc host.GraphicsContainer, row []any, shape int) (int, error) {
	if shape >= len(row) {
		return 0, fmt.Errorf("row has %d values, geometry is column %d", len(row), shape)
	}
	text, ok := row[shape].(string)
	if !ok {
		return 0, fmt.Errorf("geometry holds %T, want well-known text", row[shape])
	}
	s, err := wkt.DecodeShape(text, host.WGS84)
	if err != nil {
		return 0, err
	}
	s, err = c.Session.Projector.Project(s, m.SpatialReference())
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeUnprojectablePoint, err, "project onto map %q", m.Name())
	}
	if s.IsEmpty() {
		return 0, errors.New(errors.ErrCodeUnprojectablePoint, "geometry is out of bounds for map %q", m.Name())
	}
	return c.Engine.AddStyled(d, gc, s)
}
