package table

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/dnrgps/dnrgps/pkg/errors"
)

// Format is an interchange encoding.
type Format string

const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	MsgPack Format = "msgpack"
)

// Formats lists the supported encodings.
var Formats = []Format{JSON, YAML, MsgPack}

// ParseFormat parses a format name. "yml" and "mp" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "msgpack", "mp":
		return MsgPack, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown table format %q (want json, yaml or msgpack)", s)
}

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return JSON
}

type wireColumn struct {
	Name    string `json:"name" yaml:"name" msgpack:"name"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty" msgpack:"caption,omitempty"`
	Type    string `json:"type" yaml:"type" msgpack:"type"`
}

type wireTable struct {
	Columns  []wireColumn `json:"columns" yaml:"columns" msgpack:"columns"`
	Geometry string       `json:"geometry,omitempty" yaml:"geometry,omitempty" msgpack:"geometry,omitempty"`
	Rows     [][]any      `json:"rows" yaml:"rows" msgpack:"rows"`
}

// Encode writes t to w in the given format.
func Encode(w io.Writer, t *Table, f Format) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return wrapEncode(enc.Encode(t.wire(false)), f)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(t.wire(false)); err != nil {
			return wrapEncode(err, f)
		}
		return wrapEncode(enc.Close(), f)
	case MsgPack:
		return wrapEncode(msgpack.NewEncoder(w).Encode(t.wire(true)), f)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown table format %q", f)
}

// Decode reads a table in the given format from r.
func Decode(r io.Reader, f Format) (*Table, error) {
	var w wireTable
	var err error
	switch f {
	case JSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		err = dec.Decode(&w)
	case YAML:
		err = yaml.NewDecoder(r).Decode(&w)
	case MsgPack:
		err = msgpack.NewDecoder(r).Decode(&w)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown table format %q", f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s table", f)
	}
	return w.table()
}

// MarshalJSON implements json.Marshaler.
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.wire(false))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Table) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(bytes.NewReader(data), JSON)
	if err != nil {
		return err
	}
	*t = *decoded
	return nil
}

func wrapEncode(err error, f Format) error {
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s table", f)
	}
	return nil
}

// wire converts t to its encodable form. Binary formats keep []byte and
// time.Time values native.
func (t *Table) wire(binary bool) wireTable {
	w := wireTable{
		Columns:  make([]wireColumn, len(t.Columns)),
		Geometry: t.Geometry,
		Rows:     make([][]any, len(t.Rows)),
	}
	for i, c := range t.Columns {
		w.Columns[i] = wireColumn{Name: c.Name, Caption: c.Caption, Type: c.Type.String()}
	}
	for r, row := range t.Rows {
		out := make([]any, len(row))
		for i, v := range row {
			out[i] = toWire(v, binary)
		}
		w.Rows[r] = out
	}
	return w
}

func toWire(v any, binary bool) any {
	switch x := v.(type) {
	case time.Time:
		if binary {
			return x.UTC()
		}
		return x.UTC().Format(time.RFC3339Nano)
	case uuid.UUID:
		return x.String()
	case []byte:
		if binary {
			return x
		}
		return base64.StdEncoding.EncodeToString(x)
	}
	return v
}

func (w wireTable) table() (*Table, error) {
	cols := make([]Column, len(w.Columns))
	for i, c := range w.Columns {
		typ, err := ParseColumnType(c.Type)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "column %q", c.Name)
		}
		cols[i] = Column{Name: c.Name, Caption: c.Caption, Type: typ}
	}
	t, err := New(w.Geometry, cols...)
	if err != nil {
		return nil, err
	}
	g := t.GeometryIndex()
	for r, row := range w.Rows {
		if len(row) != len(cols) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "row %d has %d values for %d columns", r, len(row), len(cols))
		}
		values := make([]any, len(row))
		for i, v := range row {
			if i == g && v == nil {
				values[i] = ""
				continue
			}
			if values[i], err = fromWire(v, cols[i].Type); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "row %d column %q", r, cols[i].Name)
			}
		}
		t.Rows = append(t.Rows, values)
	}
	return t, nil
}

func fromWire(v any, typ ColumnType) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch typ {
	case Integer:
		return toInt64(v)
	case Double:
		return toFloat64(v)
	case Single:
		f, err := toFloat64(v)
		return float32(f), err
	case DateTime:
		switch x := v.(type) {
		case time.Time:
			return x, nil
		case string:
			return time.Parse(time.RFC3339Nano, x)
		}
	case GUID:
		switch x := v.(type) {
		case string:
			return uuid.Parse(x)
		case []byte:
			return uuid.FromBytes(x)
		}
	case Bytes:
		switch x := v.(type) {
		case []byte:
			return x, nil
		case string:
			return base64.StdEncoding.DecodeString(x)
		}
	case Text:
		switch x := v.(type) {
		case string:
			return x, nil
		case json.Number:
			return x.String(), nil
		}
	}
	return nil, fmt.Errorf("cannot read %T as %s", v, typ)
}

func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("integer %d overflows int64", x)
		}
		return int64(x), nil
	case json.Number:
		return x.Int64()
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("%v is not an integer", x)
		}
		return int64(x), nil
	}
	return 0, fmt.Errorf("cannot read %T as integer", v)
}

func toFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case json.Number:
		return x.Float64()
	}
	if i, err := toInt64(v); err == nil {
		return float64(i), nil
	}
	return 0, fmt.Errorf("cannot read %T as a number", v)
}
