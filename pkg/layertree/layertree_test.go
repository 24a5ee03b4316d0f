package layertree_test

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
	"github.com/dnrgps/dnrgps/pkg/host/memhost"
	"github.com/dnrgps/dnrgps/pkg/layertree"
)

type tree struct {
	doc                  *memhost.Document
	main                 *memhost.Map
	roads, lakes, rivers *memhost.FeatureLayer
	hydro, empty, nested *memhost.Group
	basemap, wells       host.Layer
}

// newTree builds:
//
//	Layers
//	  0 Roads (feature)
//	  1 Hydro
//	      0 Lakes (feature)
//	      1 Nested
//	          0 Rivers (feature)
//	          1 Wells (feature)
//	  2 Empty
//	  3 Basemap (raster)
func newTree() *tree {
	t := &tree{
		roads:   memhost.NewFeatureLayer("Roads", memhost.UTM15N),
		lakes:   memhost.NewFeatureLayer("Lakes", memhost.UTM15N),
		rivers:  memhost.NewFeatureLayer("Rivers", memhost.UTM15N),
		basemap: memhost.NewLayer("Basemap"),
		wells:   memhost.NewFeatureLayer("Wells", memhost.UTM15N),
	}
	t.nested = memhost.NewGroup("Nested", t.rivers, t.wells)
	t.hydro = memhost.NewGroup("Hydro", t.lakes, t.nested)
	t.empty = memhost.NewGroup("Empty")
	t.main = memhost.NewMap("Layers", memhost.UTM15N).With(t.roads, t.hydro, t.empty, t.basemap)
	t.doc = memhost.NewDocument(t.main)
	return t
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in      string
		want    layertree.Address
		wantErr bool
	}{
		{"0", layertree.Address{0}, false},
		{"1-1-0", layertree.Address{1, 1, 0}, false},
		{" 2 - 3 ", layertree.Address{2, 3}, false},
		{"1--2", layertree.Address{1, 2}, false},
		{"", nil, true},
		{"-", nil, true},
		{"a-1", nil, true},
		{"1.5", nil, true},
	}
	for _, tt := range tests {
		got, err := layertree.ParseAddress(tt.in)
		if tt.wantErr {
			if !errors.Is(err, errors.ErrCodeMalformedAddress) {
				t.Errorf("ParseAddress(%q) error = %v, want MALFORMED_ADDRESS", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAddress(%q) error = %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseAddress(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	tr := newTree()
	tests := []struct {
		addr string
		want host.Layer
	}{
		{"0", tr.roads},
		{"1", tr.hydro},
		{"1-0", tr.lakes},
		{"1-1-1", tr.wells},
		{"3", tr.basemap},
	}
	for _, tt := range tests {
		got, err := layertree.ResolveString(tr.main, tt.addr)
		if err != nil {
			t.Errorf("Resolve(%q) error = %v", tt.addr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %s, want %s", tt.addr, got.Name(), tt.want.Name())
		}
	}
}

func TestResolveOutOfRange(t *testing.T) {
	tr := newTree()
	tests := []struct {
		addr      string
		component int
		empty     bool
		container string
	}{
		{"4", 0, false, "Layers"},
		{"1-2", 1, false, "Hydro"},
		{"2-0", 1, true, "Empty"},
		{"0-0", 1, true, "Roads"},
		{"1-1-5", 2, false, "Nested"},
	}
	for _, tt := range tests {
		_, err := layertree.ResolveString(tr.main, tt.addr)
		var oor *errors.IndexOutOfRangeError
		if !stderrors.As(err, &oor) {
			t.Errorf("Resolve(%q) error = %v, want IndexOutOfRangeError", tt.addr, err)
			continue
		}
		if !errors.Is(err, errors.ErrCodeIndexOutOfRange) {
			t.Errorf("Resolve(%q) code = %q", tt.addr, errors.GetCode(err))
		}
		if oor.Component != tt.component || oor.Empty() != tt.empty || oor.Container != tt.container {
			t.Errorf("Resolve(%q) = %+v, want component %d empty %v container %q",
				tt.addr, oor, tt.component, tt.empty, tt.container)
		}
	}
}

func TestResolveAddressOfRoundTrip(t *testing.T) {
	tr := newTree()
	// every valid address in the tree
	addrs := []string{"0", "1", "1-0", "1-1", "1-1-0", "1-1-1", "2", "3"}
	for _, s := range addrs {
		a, _ := layertree.ParseAddress(s)
		l, err := layertree.Resolve(tr.main, a)
		if err != nil {
			t.Fatalf("Resolve(%q) error = %v", s, err)
		}
		got, ok := layertree.AddressOf(tr.main, l)
		if !ok {
			t.Fatalf("AddressOf(%s) not found", l.Name())
		}
		if got.String() != s {
			t.Errorf("AddressOf(Resolve(%q)) = %q", s, got)
		}
	}
}

func TestAddressOfNotFound(t *testing.T) {
	tr := newTree()
	if a, ok := layertree.AddressOf(tr.main, memhost.NewLayer("Roads")); ok {
		t.Errorf("AddressOf(stranger) = %v, want not found", a)
	}
}

func TestAddressHasPrefix(t *testing.T) {
	tests := []struct {
		a, p layertree.Address
		want bool
	}{
		{layertree.Address{1, 1, 0}, layertree.Address{1}, true},
		{layertree.Address{1, 1, 0}, layertree.Address{1, 1, 0}, true},
		{layertree.Address{1, 1}, layertree.Address{1, 1, 0}, false},
		{layertree.Address{2, 1}, layertree.Address{1}, false},
		{layertree.Address{0}, nil, true},
	}
	for _, tt := range tests {
		if got := tt.a.HasPrefix(tt.p); got != tt.want {
			t.Errorf("%q.HasPrefix(%q) = %v, want %v", tt.a, tt.p, got, tt.want)
		}
	}
}

func TestDocumentRoot(t *testing.T) {
	tr := newTree()
	inset := memhost.NewMap("Inset", memhost.WebMercator).With(memhost.NewLayer("Locator"))

	root := layertree.Root(tr.doc)
	if a, _ := layertree.AddressOf(root, tr.wells); a.String() != "1-1-1" {
		t.Errorf("single map AddressOf = %q, want 1-1-1", a)
	}

	tr.doc.AddMap(inset)
	root = layertree.Root(tr.doc)
	if a, _ := layertree.AddressOf(root, tr.wells); a.String() != "0-1-1-1" {
		t.Errorf("two map AddressOf = %q, want 0-1-1-1", a)
	}
	l, err := layertree.ResolveString(root, "1-0")
	if err != nil || l.Name() != "Locator" {
		t.Errorf("Resolve(1-0) = %v, %v", l, err)
	}
}

func TestQualifiedNameOf(t *testing.T) {
	tr := newTree()

	got, ok := layertree.QualifiedNameOf(layertree.Root(tr.doc), tr.rivers)
	if !ok || got != "Hydro/Nested/Rivers" {
		t.Errorf("single map name = %q, %v; want Hydro/Nested/Rivers", got, ok)
	}

	tr.doc.AddMap(memhost.NewMap("Inset", memhost.WebMercator))
	root := layertree.Root(tr.doc)
	got, _ = layertree.QualifiedNameOf(root, tr.rivers)
	if got != "Layers:Hydro/Nested/Rivers" {
		t.Errorf("two map name = %q, want Layers:Hydro/Nested/Rivers", got)
	}
	got, _ = layertree.QualifiedNameOfSep(root, tr.roads, " | ", ".")
	if got != "Layers | Roads" {
		t.Errorf("custom separators = %q", got)
	}
	if _, ok := layertree.QualifiedNameOf(root, memhost.NewLayer("x")); ok {
		t.Error("QualifiedNameOf(stranger) ok = true")
	}
}

func TestQualifiedNamePrefixProperty(t *testing.T) {
	tr := newTree()
	all := []host.Layer{tr.roads, tr.hydro, tr.lakes, tr.nested, tr.rivers, tr.wells, tr.empty, tr.basemap}
	check := func(wantPrefix bool) {
		root := layertree.Root(tr.doc)
		for _, l := range all {
			n, ok := layertree.QualifiedNameOf(root, l)
			if !ok {
				t.Fatalf("%s not found", l.Name())
			}
			has := len(n) > len("Layers:") && n[:len("Layers:")] == "Layers:"
			if has != wantPrefix {
				t.Errorf("maps=%d: name %q prefix=%v, want %v", tr.doc.MapCount(), n, has, wantPrefix)
			}
		}
	}
	check(false)
	tr.doc.AddMap(memhost.NewMap("Inset", memhost.WebMercator))
	check(true)
}

func TestFindByCapability(t *testing.T) {
	tr := newTree()
	got := layertree.FindByCapability(tr.main, layertree.FeatureQueries)
	var names, addrs []string
	for _, nl := range got {
		names = append(names, nl.Name)
		addrs = append(addrs, nl.Address.String())
	}
	wantNames := []string{"Roads", "Hydro/Lakes", "Hydro/Nested/Rivers", "Hydro/Nested/Wells"}
	wantAddrs := []string{"0", "1-0", "1-1-0", "1-1-1"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantAddrs, addrs); diff != "" {
		t.Errorf("addresses mismatch (-want +got):\n%s", diff)
	}

	groups := layertree.FindByCapability(tr.main, layertree.Groups)
	if len(groups) != 3 {
		t.Errorf("groups = %d, want 3 (Hydro, Nested, Empty)", len(groups))
	}

	feats := layertree.Filter(layertree.FindByCapability(tr.main, layertree.AnyLayer), layertree.FeatureQueries)
	if len(feats) != 4 {
		t.Errorf("Filter() = %d layers, want 4", len(feats))
	}
}

func TestFindByCapabilityDocument(t *testing.T) {
	tr := newTree()
	tr.doc.AddMap(memhost.NewMap("Inset", memhost.WebMercator).With(memhost.NewFeatureLayer("Counties", memhost.WebMercator)))
	got := layertree.FindByCapability(layertree.Root(tr.doc), layertree.AnyLayer)
	last := got[len(got)-1]
	if last.Name != "Inset:Counties" || last.Address.String() != "1-0" {
		t.Errorf("last = %q at %q, want Inset:Counties at 1-0", last.Name, last.Address)
	}
	for _, nl := range got {
		if _, isMap := nl.Layer.(host.Map); isMap {
			t.Errorf("map %q yielded as a layer", nl.Name)
		}
	}
}

func TestNames(t *testing.T) {
	tr := newTree()
	n, ok := layertree.NameOf(tr.doc, tr.wells)
	if !ok {
		t.Fatal("NameOf(wells) not found")
	}
	want := layertree.Name{Groups: []string{"Hydro", "Nested"}, Leaf: "Wells"}
	if !n.Equal(want) {
		t.Errorf("NameOf(wells) = %+v, want %+v", n, want)
	}

	tr.doc.AddMap(memhost.NewMap("Inset", memhost.WebMercator))
	n, _ = layertree.NameOf(tr.doc, tr.roads)
	if n.String() != "Layers:Roads" || n.Groups != nil {
		t.Errorf("NameOf(roads) = %+v", n)
	}

	parsed, err := layertree.ParseName("Layers:Hydro/Nested/Wells")
	if err != nil {
		t.Fatal(err)
	}
	l, err := layertree.ResolveName(tr.doc, parsed)
	if err != nil || l != tr.wells {
		t.Errorf("ResolveName() = %v, %v", l, err)
	}
	if _, err := layertree.ResolveName(tr.doc, layertree.Name{Leaf: "Nope"}); !errors.Is(err, errors.ErrCodeLayerNotFound) {
		t.Errorf("ResolveName(Nope) error = %v", err)
	}
	if _, err := layertree.ResolveName(tr.doc, layertree.Name{Dataframe: "Missing", Leaf: "Roads"}); !errors.Is(err, errors.ErrCodeLayerNotFound) {
		t.Errorf("ResolveName(Missing:Roads) error = %v", err)
	}
	if _, err := layertree.ParseName("Layers:Hydro/"); err == nil {
		t.Error("ParseName(trailing separator) error = nil")
	}
}

func TestResolveNameFirstMatchWins(t *testing.T) {
	first := memhost.NewLayer("Dup")
	second := memhost.NewLayer("Dup")
	doc := memhost.NewDocument(memhost.NewMap("Layers", memhost.UTM15N).With(first, second))
	l, err := layertree.ResolveName(doc, layertree.Name{Leaf: "Dup"})
	if err != nil || l != first {
		t.Errorf("ResolveName(Dup) = %v, %v; want first", l, err)
	}
}

func TestTreeMutation(t *testing.T) {
	tr := newTree()
	a, _ := layertree.AddressOf(tr.main, tr.basemap)
	tr.main.RemoveLayer(0)
	if l, err := layertree.Resolve(tr.main, a); err == nil {
		t.Errorf("stale address %s resolved to %s after removal", a, l.Name())
	}
	if b, _ := layertree.AddressOf(tr.main, tr.basemap); b.String() != "2" {
		t.Errorf("AddressOf after removal = %q, want 2", b)
	}
}
