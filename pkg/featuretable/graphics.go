package featuretable

import (
	"context"
	stderrors "errors"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
	"github.com/dnrgps/dnrgps/pkg/observability"
	"github.com/dnrgps/dnrgps/pkg/table"
	"github.com/dnrgps/dnrgps/pkg/wkt"
)

// ExtractGraphics reads the focus map's active graphics layer into a table
// with a single [table.ShapeColumn] column. The selected graphics are read
// when any are selected, otherwise all of them; a selection forced for the
// read is cleared again afterwards.
func (c *Codec) ExtractGraphics(ctx context.Context) (*table.Table, error) {
	m, err := c.focusMap()
	if err != nil {
		return nil, err
	}
	gc := m.ActiveGraphics()
	if gc == nil {
		return nil, errors.New(errors.ErrCodeLayerUnavailable, "map %q has no active graphics layer", m.Name())
	}

	elems := gc.SelectedElements()
	if len(elems) == 0 {
		gc.SelectAll()
		elems = gc.SelectedElements()
		defer gc.UnselectAll()
	}

	t, err := table.New(table.ShapeColumn, table.Column{Name: table.ShapeColumn, Type: table.Text})
	if err != nil {
		return nil, err
	}
	p := c.newProgress(len(elems))
	for i, el := range elems {
		p.step()
		if el.Kind() == host.ElementText {
			continue
		}
		text, err := c.encode(el.Shape())
		switch {
		case stderrors.Is(err, wkt.ErrNonLinear):
			text = ""
		case err != nil:
			c.Logger.Warn("graphic skipped", "index", i, "kind", el.Kind(), "err", err)
			observability.Codec().OnRowSkipped(ctx, "graphics", i, err)
			continue
		}
		t.Rows = append(t.Rows, []any{text})
	}
	p.finish()
	return t, nil
}
