package wkt

import (
	stderrors "errors"
	"testing"

	"github.com/paulmach/orb"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		shape   host.Shape
		want    string
		wantErr error
	}{
		{"point", host.PointShape(-93.1, 45.2, host.WGS84), "POINT(-93.1 45.2)", nil},
		{"line", host.Shape{Geometry: orb.LineString{{0, 0}, {1, 1}}}, "LINESTRING(0 0,1 1)", nil},
		{"empty", host.Shape{}, "", nil},
		{"empty polygon", host.Shape{Geometry: orb.Polygon{}}, "", nil},
		{"circle", host.Shape{Circle: &host.Circle{Radius: 10}}, "", ErrNonLinear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.shape)
			if !stderrors.Is(err, tt.wantErr) {
				t.Fatalf("Encode() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantKind host.GeometryKind
		wantCode errors.Code
	}{
		{"point", "POINT(1 2)", host.KindPoint, ""},
		{"multipoint", "MULTIPOINT((1 2),(3 4))", host.KindMultipoint, ""},
		{"linestring", "LINESTRING(0 0,1 1,2 0)", host.KindPolyline, ""},
		{"polygon", "POLYGON((0 0,1 0,1 1,0 0))", host.KindPolygon, ""},
		{"multipolygon", "MULTIPOLYGON(((0 0,1 0,1 1,0 0)))", host.KindPolygon, ""},
		{"empty", "   ", host.KindUnknown, errors.ErrCodeInvalidFormat},
		{"garbage", "CIRCLE(1 2 3)", host.KindUnknown, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Decode(tt.text)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("Decode(%q) error = %v, want %s", tt.text, err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode(%q) error = %v", tt.text, err)
			}
			if got := host.KindOf(g); got != tt.wantKind {
				t.Errorf("KindOf(Decode(%q)) = %v, want %v", tt.text, got, tt.wantKind)
			}
		})
	}
}

func TestDecodeShape(t *testing.T) {
	s, err := DecodeShape("POINT(10 20)", host.WGS84)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := s.Point()
	if !ok || p != (orb.Point{10, 20}) {
		t.Errorf("Point() = %v, %v, want (10 20)", p, ok)
	}
	if s.SR != host.WGS84 {
		t.Errorf("SR = %+v, want WGS84", s.SR)
	}
}
