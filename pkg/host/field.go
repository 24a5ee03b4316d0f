package host

// FieldType is the host's storage type of a feature-class field.
type FieldType int

const (
	FieldOID FieldType = iota
	FieldSmallInteger
	FieldInteger
	FieldSingle
	FieldDouble
	FieldString
	FieldDate
	FieldGeometry
	FieldBlob
	FieldRaster
	FieldGUID
	FieldGlobalID
	FieldXML
)

var fieldTypeNames = map[FieldType]string{
	FieldOID:          "oid",
	FieldSmallInteger: "smallint",
	FieldInteger:      "integer",
	FieldSingle:       "single",
	FieldDouble:       "double",
	FieldString:       "string",
	FieldDate:         "date",
	FieldGeometry:     "geometry",
	FieldBlob:         "blob",
	FieldRaster:       "raster",
	FieldGUID:         "guid",
	FieldGlobalID:     "globalid",
	FieldXML:          "xml",
}

func (t FieldType) String() string {
	if s, ok := fieldTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseFieldType parses the String form of a FieldType.
func ParseFieldType(s string) (FieldType, bool) {
	for t, name := range fieldTypeNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// Field describes one column of a feature class.
type Field struct {
	Name  string
	Alias string
	Type  FieldType
}
