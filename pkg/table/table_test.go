package table

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dnrgps/dnrgps/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		geometry string
		cols     []Column
		wantCode errors.Code
	}{
		{"ok", "Shape", []Column{{Name: "OBJECTID", Type: Integer}, {Name: "Shape", Type: Text}}, ""},
		{"no geometry", "", []Column{{Name: "NAME", Type: Text}}, ""},
		{"missing geometry", "Shape", []Column{{Name: "NAME", Type: Text}}, errors.ErrCodeMissingShapeColumn},
		{"geometry not text", "Shape", []Column{{Name: "Shape", Type: Bytes}}, errors.ErrCodeInvalidInput},
		{"duplicate", "", []Column{{Name: "a"}, {Name: "A"}}, errors.ErrCodeInvalidInput},
		{"empty name", "", []Column{{Name: ""}}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.geometry, tt.cols...)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("New() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("New() error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestAddRow(t *testing.T) {
	tbl, err := New("Shape",
		Column{Name: "OBJECTID", Type: Integer},
		Column{Name: "NAME", Caption: "Name", Type: Text},
		Column{Name: "WHEN", Type: DateTime},
		Column{Name: "GID", Type: GUID},
		Column{Name: "Shape", Type: Text},
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := tbl.AddRow(int64(1), "lake", time.Now(), uuid.New(), "POINT(1 2)"); err != nil {
		t.Errorf("AddRow(valid) error = %v", err)
	}
	if err := tbl.AddRow(int64(2), nil, nil, nil, ""); err != nil {
		t.Errorf("AddRow(nulls) error = %v", err)
	}
	if err := tbl.AddRow(int64(3), "short"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("AddRow(short) error = %v, want INVALID_INPUT", err)
	}
	if err := tbl.AddRow(3, "int not int64", nil, nil, ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("AddRow(int) error = %v, want INVALID_INPUT", err)
	}
	if err := tbl.AddRow(int64(4), "x", nil, nil, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("AddRow(nil geometry) error = %v, want INVALID_INPUT", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
	if err := tbl.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLookup(t *testing.T) {
	tbl, _ := New("SHAPE", Column{Name: "Name", Caption: "Lake name"}, Column{Name: "SHAPE"})
	_ = tbl.AddRow("Mille Lacs", "POINT(0 0)")

	if got := tbl.Index("name"); got != 0 {
		t.Errorf("Index(name) = %d, want 0", got)
	}
	if got := tbl.Index("missing"); got != -1 {
		t.Errorf("Index(missing) = %d, want -1", got)
	}
	if got := tbl.GeometryIndex(); got != 1 {
		t.Errorf("GeometryIndex() = %d, want 1", got)
	}
	c, ok := tbl.Column("NAME")
	if !ok || c.Title() != "Lake name" {
		t.Errorf("Column(NAME).Title() = %q, %v", c.Title(), ok)
	}
	if v, ok := tbl.Value(0, "shape"); !ok || v != "POINT(0 0)" {
		t.Errorf("Value(0, shape) = %v, %v", v, ok)
	}
	if _, ok := tbl.Value(1, "shape"); ok {
		t.Error("Value(1, shape) ok = true, want false")
	}
}

func TestGeometryIndexFallback(t *testing.T) {
	tbl := &Table{Columns: []Column{{Name: "id", Type: Integer}, {Name: "shape"}}}
	if got := tbl.GeometryIndex(); got != 1 {
		t.Errorf("GeometryIndex() = %d, want 1", got)
	}
}

func TestParseColumnType(t *testing.T) {
	for _, typ := range []ColumnType{Text, Integer, Double, Single, DateTime, GUID, Bytes} {
		got, err := ParseColumnType(typ.String())
		if err != nil || got != typ {
			t.Errorf("ParseColumnType(%q) = %v, %v", typ.String(), got, err)
		}
	}
	if _, err := ParseColumnType("decimal"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseColumnType(decimal) error = %v", err)
	}
}
