package table

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/dnrgps/dnrgps/pkg/errors"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New("Shape",
		Column{Name: "OBJECTID", Type: Integer},
		Column{Name: "DEPTH", Caption: "Depth (ft)", Type: Double},
		Column{Name: "AREA", Type: Single},
		Column{Name: "SURVEYED", Type: DateTime},
		Column{Name: "GlobalID", Type: GUID},
		Column{Name: "PHOTO", Type: Bytes},
		Column{Name: "NAME", Type: Text},
		Column{Name: "Shape", Type: Text},
	)
	if err != nil {
		t.Fatal(err)
	}
	when := time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	rows := [][]any{
		{int64(1), 12.5, float32(3.25), when, id, []byte{0xde, 0xad}, "Cedar Lake", "POINT(-93.3 45.1)"},
		{int64(2), nil, nil, nil, nil, nil, nil, ""},
		{int64(9007199254740993), -0.5, float32(0), when.Add(time.Hour), uuid.Nil, []byte{0x01}, "123", "LINESTRING(0 0,1 1)"},
	}
	for _, r := range rows {
		if err := tbl.AddRow(r...); err != nil {
			t.Fatal(err)
		}
	}
	return tbl
}

func TestRoundTrip(t *testing.T) {
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			want := sampleTable(t)
			var buf bytes.Buffer
			if err := Encode(&buf, want, f); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := Decode(&buf, f)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	want := sampleTable(t)
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"type":"datetime"`) {
		t.Errorf("json output missing column type: %s", data)
	}
	var got Table
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, &got); diff != "" {
		t.Errorf("json mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errors.Code
	}{
		{"syntax", `{"columns":`, errors.ErrCodeInvalidFormat},
		{"bad type", `{"columns":[{"name":"a","type":"decimal"}],"rows":[]}`, errors.ErrCodeInvalidFormat},
		{"arity", `{"columns":[{"name":"a","type":"text"}],"rows":[["x","y"]]}`, errors.ErrCodeInvalidFormat},
		{"bad guid", `{"columns":[{"name":"g","type":"guid"}],"rows":[["nope"]]}`, errors.ErrCodeInvalidFormat},
		{"fractional integer", `{"columns":[{"name":"n","type":"integer"}],"rows":[[1.5]]}`, errors.ErrCodeInvalidFormat},
		{"missing geometry", `{"columns":[{"name":"a","type":"text"}],"geometry":"Shape","rows":[]}`, errors.ErrCodeMissingShapeColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), JSON)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Decode() error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestDecodeNullGeometry(t *testing.T) {
	in := `{"columns":[{"name":"Shape","type":"text"}],"rows":[[null]]}`
	tbl, err := Decode(strings.NewReader(in), JSON)
	if err != nil {
		t.Fatal(err)
	}
	if got := tbl.Rows[0][0]; got != "" {
		t.Errorf("null geometry decoded as %#v, want empty string", got)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", JSON}, {"YAML", YAML}, {"yml", YAML}, {"msgpack", MsgPack}, {"mp", MsgPack},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat("csv"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(csv) error = %v", err)
	}
	if got := FormatFromPath("lakes.yml"); got != YAML {
		t.Errorf("FormatFromPath(lakes.yml) = %q", got)
	}
	if got := FormatFromPath("lakes.out"); got != JSON {
		t.Errorf("FormatFromPath(lakes.out) = %q", got)
	}
}
