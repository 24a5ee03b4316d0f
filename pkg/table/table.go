// Package table defines FeatureTable, the generic tabular structure that
// carries attribute and geometry data across the dnrgps boundary.
//
// A table is an ordered list of named, typed columns and a list of rows.
// Exactly one column is the geometry column; its values are well-known
// text in WGS84, with "" standing for an empty geometry.
//
// # Values
//
// Each column type has one Go representation:
//
//	Integer   int64
//	Double    float64
//	Single    float32
//	DateTime  time.Time
//	GUID      uuid.UUID
//	Bytes     []byte
//	Text      string
//
// A nil value is a null. The geometry column never holds nil.
//
// # Interchange
//
// [Encode] and [Decode] write and read tables as JSON, YAML or MessagePack.
// Decoding coerces each value back to its column's Go representation.
package table

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dnrgps/dnrgps/pkg/errors"
)

// ShapeColumn is the conventional name of the geometry column.
const ShapeColumn = "Shape"

// ColumnType is the storage type of a column.
type ColumnType int

const (
	Text ColumnType = iota
	Integer
	Double
	Single
	DateTime
	GUID
	Bytes
)

var columnTypeNames = [...]string{
	Text:     "text",
	Integer:  "integer",
	Double:   "double",
	Single:   "single",
	DateTime: "datetime",
	GUID:     "guid",
	Bytes:    "bytes",
}

func (t ColumnType) String() string {
	if t >= 0 && int(t) < len(columnTypeNames) {
		return columnTypeNames[t]
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

// ParseColumnType parses the String form of a ColumnType.
func ParseColumnType(s string) (ColumnType, error) {
	for i, name := range columnTypeNames {
		if strings.EqualFold(name, s) {
			return ColumnType(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidFormat, "unknown column type %q", s)
}

// Column describes one column. Caption is the display name (a field alias)
// and may be empty.
type Column struct {
	Name    string
	Caption string
	Type    ColumnType
}

// Title returns the caption, or the name when there is none.
func (c Column) Title() string {
	if c.Caption != "" {
		return c.Caption
	}
	return c.Name
}

// Table is a FeatureTable.
type Table struct {
	Columns []Column
	// Geometry is the name of the geometry column.
	Geometry string
	Rows     [][]any
}

// New returns an empty table with the given columns. geometry names the
// geometry column, which must be one of cols and of type Text.
func New(geometry string, cols ...Column) (*Table, error) {
	t := &Table{Columns: cols, Geometry: geometry}
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		key := strings.ToLower(c.Name)
		if c.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "column name is empty")
		}
		if seen[key] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate column %q", c.Name)
		}
		seen[key] = true
	}
	if geometry != "" {
		i := t.Index(geometry)
		if i < 0 {
			return nil, errors.New(errors.ErrCodeMissingShapeColumn, "geometry column %q is not declared", geometry)
		}
		if cols[i].Type != Text {
			return nil, errors.New(errors.ErrCodeInvalidInput, "geometry column %q must be text, not %s", geometry, cols[i].Type)
		}
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Index returns the position of the named column, or -1. Names match
// case-insensitively.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return i
		}
	}
	return -1
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, bool) {
	i := t.Index(name)
	if i < 0 {
		return Column{}, false
	}
	return t.Columns[i], true
}

// GeometryIndex returns the position of the geometry column. Tables without
// a designated geometry fall back to a column named [ShapeColumn].
func (t *Table) GeometryIndex() int {
	if t.Geometry != "" {
		if i := t.Index(t.Geometry); i >= 0 {
			return i
		}
	}
	return t.Index(ShapeColumn)
}

// AddRow appends a row. The row must have one value per column, each nil
// or of its column's Go type; the geometry value must be a string.
func (t *Table) AddRow(values ...any) error {
	if err := t.checkRow(values); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "row %d", len(t.Rows))
	}
	t.Rows = append(t.Rows, values)
	return nil
}

// Value returns the value at row r in the named column.
func (t *Table) Value(r int, name string) (any, bool) {
	i := t.Index(name)
	if i < 0 || r < 0 || r >= len(t.Rows) {
		return nil, false
	}
	return t.Rows[r][i], true
}

// Validate checks every row against the column declarations.
func (t *Table) Validate() error {
	for r, row := range t.Rows {
		if err := t.checkRow(row); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "row %d", r)
		}
	}
	return nil
}

func (t *Table) checkRow(values []any) error {
	if len(values) != len(t.Columns) {
		return fmt.Errorf("has %d values for %d columns", len(values), len(t.Columns))
	}
	g := t.GeometryIndex()
	for i, v := range values {
		if i == g {
			if _, ok := v.(string); !ok {
				return fmt.Errorf("geometry column %q holds %T, want string", t.Columns[i].Name, v)
			}
			continue
		}
		if v != nil && !t.Columns[i].Type.accepts(v) {
			return fmt.Errorf("column %q (%s) holds %T", t.Columns[i].Name, t.Columns[i].Type, v)
		}
	}
	return nil
}

func (t ColumnType) accepts(v any) bool {
	switch v.(type) {
	case int64:
		return t == Integer
	case float64:
		return t == Double
	case float32:
		return t == Single
	case time.Time:
		return t == DateTime
	case uuid.UUID:
		return t == GUID
	case []byte:
		return t == Bytes
	case string:
		return t == Text
	}
	return false
}
