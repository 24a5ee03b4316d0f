package featuretable

import (
	"context"
	stderrors "errors"
	"io"
	"strings"
	"time"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
	"github.com/dnrgps/dnrgps/pkg/observability"
	"github.com/dnrgps/dnrgps/pkg/table"
	"github.com/dnrgps/dnrgps/pkg/wkt"
)

// column ties an output column to the position of its source field in a
// host row.
type column struct {
	table.Column
	field int
}

// columns picks the fields of l to extract. A field is kept when its name
// or alias matches a filter entry case-insensitively; an empty filter keeps
// every field. The shape field is always kept.
func columns(l host.FeatureLayer, filter []string) []column {
	shape := l.ShapeField()
	var out []column
	for i, f := range l.Fields() {
		if f.Name != shape && !matches(filter, f) {
			continue
		}
		out = append(out, column{
			Column: table.Column{Name: f.Name, Caption: f.Alias, Type: ColumnTypeOf(f.Type)},
			field:  i,
		})
	}
	return out
}

func matches(filter []string, f host.Field) bool {
	if len(filter) == 0 {
		return true
	}
	for _, want := range filter {
		want = strings.TrimSpace(want)
		if strings.EqualFold(want, f.Name) || (f.Alias != "" && strings.EqualFold(want, f.Alias)) {
			return true
		}
	}
	return false
}

// Extract reads l into a table. The layer must support feature queries.
// Its selection is read when non-empty, otherwise every displayed feature.
func (c *Codec) Extract(ctx context.Context, l host.Layer, filter []string) (t *table.Table, err error) {
	fl, ok := l.(host.FeatureLayer)
	if !ok {
		name := "<nil>"
		if l != nil {
			name = l.Name()
		}
		return nil, errors.New(errors.ErrCodeNotAFeatureLayer, "layer %q does not support feature queries", name)
	}

	cols := columns(fl, filter)
	plain := make([]table.Column, len(cols))
	for i, col := range cols {
		plain[i] = col.Column
	}
	t, err = table.New(fl.ShapeField(), plain...)
	if err != nil {
		return nil, err
	}

	search, total := fl.SearchDisplay, fl.DisplayCount()
	if n := fl.SelectionCount(); n > 0 {
		search, total = fl.SearchSelection, n
	}

	start := time.Now()
	rows := 0
	observability.Codec().OnExtractStart(ctx, fl.Name(), total)
	defer func() {
		observability.Codec().OnExtractComplete(ctx, fl.Name(), rows, time.Since(start), err)
	}()

	cur, err := search()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayerUnavailable, err, "query layer %q", fl.Name())
	}
	defer cur.Close()

	shape := t.GeometryIndex()
	p := c.newProgress(total)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cur.Next()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeLayerUnavailable, err, "read layer %q", fl.Name())
		}
		values := make([]any, len(cols))
		for i, col := range cols {
			var v any
			if col.field < len(row) {
				v = row[col.field]
			}
			if i == shape {
				values[i] = c.shapeText(v, p.done)
				continue
			}
			if values[i], err = convert(col.Type, v); err != nil {
				c.Logger.Warn("value dropped", "layer", fl.Name(), "row", p.done, "field", col.Name, "err", err)
				values[i] = nil
			}
		}
		t.Rows = append(t.Rows, values)
		rows++
		p.step()
	}
	p.finish()
	c.Logger.Debug("extracted layer", "layer", fl.Name(), "rows", t.Len(), "columns", len(cols))
	return t, nil
}

// shapeText encodes a row geometry as WGS84 well-known text. Geometries
// that cannot be placed in WGS84 or encoded are written empty.
func (c *Codec) shapeText(v any, row int) string {
	s, ok := v.(host.Shape)
	if !ok || s.IsEmpty() {
		return ""
	}
	text, err := c.encode(s)
	if err != nil {
		c.Logger.Warn("geometry dropped", "row", row, "err", err)
		return ""
	}
	return text
}

// encode projects s to WGS84 and returns its well-known text.
func (c *Codec) encode(s host.Shape) (string, error) {
	g, err := c.Session.Projector.Project(s, host.WGS84)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeUnprojectablePoint, err, "project to WGS84")
	}
	return wkt.Encode(g)
}
