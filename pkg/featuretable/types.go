package featuretable

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dnrgps/dnrgps/pkg/host"
	"github.com/dnrgps/dnrgps/pkg/table"
)

// ColumnTypeOf maps a host field type to the column type it is extracted
// as. Geometry and XML fields are text.
func ColumnTypeOf(t host.FieldType) table.ColumnType {
	switch t {
	case host.FieldOID, host.FieldSmallInteger, host.FieldInteger:
		return table.Integer
	case host.FieldSingle:
		return table.Single
	case host.FieldDouble:
		return table.Double
	case host.FieldDate:
		return table.DateTime
	case host.FieldGUID, host.FieldGlobalID:
		return table.GUID
	case host.FieldBlob, host.FieldRaster:
		return table.Bytes
	}
	return table.Text
}

// convert coerces a host row value to the Go type of column type t.
func convert(t table.ColumnType, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch t {
	case table.Integer:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int16:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		case uint8:
			return int64(n), nil
		case uint16:
			return int64(n), nil
		case uint32:
			return int64(n), nil
		}
	case table.Double:
		switch f := v.(type) {
		case float64:
			return f, nil
		case float32:
			return float64(f), nil
		}
	case table.Single:
		switch f := v.(type) {
		case float32:
			return f, nil
		case float64:
			return float32(f), nil
		}
	case table.DateTime:
		if tm, ok := v.(time.Time); ok {
			return tm, nil
		}
	case table.GUID:
		switch id := v.(type) {
		case uuid.UUID:
			return id, nil
		case [16]byte:
			return uuid.UUID(id), nil
		case string:
			return uuid.Parse(id)
		}
	case table.Bytes:
		switch b := v.(type) {
		case []byte:
			return b, nil
		case string:
			return []byte(b), nil
		}
	case table.Text:
		switch s := v.(type) {
		case string:
			return s, nil
		case fmt.Stringer:
			return s.String(), nil
		}
		return fmt.Sprint(v), nil
	}
	return nil, fmt.Errorf("cannot hold %T in a %s column", v, t)
}
