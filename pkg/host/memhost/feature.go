package memhost

import (
	"fmt"
	"io"

	"github.com/dnrgps/dnrgps/pkg/host"
)

// FeatureLayer is a layer over an in-memory feature class.
type FeatureLayer struct {
	name       string
	sr         host.SpatialReference
	fields     []host.Field
	shapeField string
	rows       [][]any
	selection  []int

	// OpenCursors counts cursors not yet closed.
	OpenCursors int
}

// NewFeatureLayer returns an empty feature layer. One of fields must be of
// type host.FieldGeometry; it becomes the shape field.
func NewFeatureLayer(name string, sr host.SpatialReference, fields ...host.Field) *FeatureLayer {
	fl := &FeatureLayer{name: name, sr: sr, fields: fields}
	for _, f := range fields {
		if f.Type == host.FieldGeometry {
			fl.shapeField = f.Name
			break
		}
	}
	return fl
}

func (l *FeatureLayer) Name() string                            { return l.name }
func (l *FeatureLayer) SetName(name string)                     { l.name = name }
func (l *FeatureLayer) Fields() []host.Field                    { return append([]host.Field(nil), l.fields...) }
func (l *FeatureLayer) ShapeField() string                      { return l.shapeField }
func (l *FeatureLayer) SpatialReference() host.SpatialReference { return l.sr }
func (l *FeatureLayer) SelectionCount() int                     { return len(l.selection) }
func (l *FeatureLayer) DisplayCount() int                       { return len(l.rows) }

// Add appends a feature with one value per field and returns its row
// number. Geometry values are host.Shape.
func (l *FeatureLayer) Add(values ...any) (int, error) {
	if len(values) != len(l.fields) {
		return 0, fmt.Errorf("memhost: feature has %d values for %d fields", len(values), len(l.fields))
	}
	l.rows = append(l.rows, values)
	return len(l.rows) - 1, nil
}

// MustAdd is Add for test setup; it panics on arity errors.
func (l *FeatureLayer) MustAdd(values ...any) int {
	n, err := l.Add(values...)
	if err != nil {
		panic(err)
	}
	return n
}

// Select replaces the selection with the given row numbers.
func (l *FeatureLayer) Select(rows ...int) {
	l.selection = append([]int(nil), rows...)
}

func (l *FeatureLayer) SearchSelection() (host.Cursor, error) {
	rows := make([][]any, 0, len(l.selection))
	for _, i := range l.selection {
		if i >= 0 && i < len(l.rows) {
			rows = append(rows, l.rows[i])
		}
	}
	return l.open(rows), nil
}

func (l *FeatureLayer) SearchDisplay() (host.Cursor, error) {
	return l.open(l.rows), nil
}

func (l *FeatureLayer) open(rows [][]any) *cursor {
	l.OpenCursors++
	return &cursor{layer: l, rows: rows}
}

type cursor struct {
	layer  *FeatureLayer
	rows   [][]any
	pos    int
	closed bool
}

func (c *cursor) Next() ([]any, error) {
	if c.closed {
		return nil, fmt.Errorf("memhost: cursor closed")
	}
	if c.pos >= len(c.rows) {
		return nil, io.EOF
	}
	row := append([]any(nil), c.rows[c.pos]...)
	c.pos++
	return row, nil
}

func (c *cursor) Close() error {
	if !c.closed {
		c.closed = true
		c.layer.OpenCursors--
	}
	return nil
}
