package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/style"
	"github.com/dnrgps/dnrgps/pkg/table"
)

const lakesFixture = "testdata/lakes.yaml"

// swapOutput redirects command output and spinner frames for the test.
func swapOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &out, io.Discard
	t.Cleanup(func() { stdout, stderr = oldOut, oldErr })
	return &out
}

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(configEnv, "")
	out := swapOutput(t)
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out
}

func TestRootCommandRegistersCommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var got []string
	for _, c := range root.Commands() {
		got = append(got, c.Name())
	}
	for _, want := range []string{"instances", "layers", "load", "extract", "graphics", "inject",
		"point", "cep", "clear", "track", "defaults", "serve", "completion"} {
		found := false
		for _, name := range got {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Errorf("command %q is not registered (have %v)", want, got)
		}
	}
}

func TestNotAttached(t *testing.T) {
	_, err := run(t, "--process", "no-such-host", "layers")
	if !errors.Is(err, errors.ErrCodeNotAttached) {
		t.Errorf("layers without a host: error = %v, want NOT_ATTACHED", err)
	}
}

func TestBadFixture(t *testing.T) {
	_, err := run(t, "--fixture", filepath.Join(t.TempDir(), "missing.yaml"), "layers")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestInstances(t *testing.T) {
	out := mustRun(t, "--fixture", lakesFixture, "instances")
	if !strings.Contains(out, "Lakes.mxd - ArcMap") || !strings.Contains(out, "1000") {
		t.Errorf("instances output = %q", out)
	}

	out = mustRun(t, "--fixture", lakesFixture, "instances", "top")
	if !strings.Contains(out, "Lakes.mxd - ArcMap") || !strings.Contains(out, "true") {
		t.Errorf("instances top output = %q", out)
	}

	out = mustRun(t, "--process", "no-such-host", "instances")
	if !strings.Contains(out, "No running no-such-host instances") {
		t.Errorf("instances output without host = %q", out)
	}
}

func TestLayers(t *testing.T) {
	out := mustRun(t, "--fixture", lakesFixture, "layers")
	if !strings.Contains(out, "Hydro/Lakes") || strings.Contains(out, "Roads") {
		t.Errorf("selection-aware layers = %q, want only Hydro/Lakes", out)
	}

	out = mustRun(t, "--fixture", lakesFixture, "layers", "--all")
	for _, want := range []string{"0-0", "Hydro/Lakes", "1", "Roads"} {
		if !strings.Contains(out, want) {
			t.Errorf("layers --all output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Basemap") {
		t.Errorf("layers --all lists a non-feature layer:\n%s", out)
	}
}

func TestExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lakes.yaml")
	mustRun(t, "--fixture", lakesFixture, "extract", "0-0", "--fields", "NAME", "-o", path)

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	tbl, err := table.Decode(in, table.YAML)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, col := range tbl.Columns {
		names = append(names, col.Name)
	}
	if diff := cmp.Diff([]string{"NAME", "Shape"}, names); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
	if v, _ := tbl.Value(1, "NAME"); v != "Long" {
		t.Errorf("row 1 NAME = %v, want Long", v)
	}
	if v, _ := tbl.Value(0, "Shape"); !strings.HasPrefix(v.(string), "POINT") {
		t.Errorf("row 0 Shape = %v", v)
	}
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		args []string
		code errors.Code
	}{
		{[]string{"extract", "x"}, errors.ErrCodeMalformedAddress},
		{[]string{"extract", "5"}, errors.ErrCodeLayerNotFound},
		{[]string{"extract", "2"}, errors.ErrCodeNotAFeatureLayer},
		{[]string{"extract", "0-0", "--format", "csv"}, errors.ErrCodeInvalidFormat},
		{[]string{"extract", "0-0", "--format", "msgpack"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		_, err := run(t, append([]string{"--fixture", lakesFixture}, tt.args...)...)
		if !errors.Is(err, tt.code) {
			t.Errorf("%v: error = %v, want %s", tt.args, err, tt.code)
		}
	}
}

func TestExtractSelectedLayerToStdout(t *testing.T) {
	out := mustRun(t, "--fixture", lakesFixture, "extract")
	tbl, err := table.Decode(strings.NewReader(out), table.JSON)
	if err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if tbl.Len() != 2 {
		t.Errorf("rows = %d, want 2", tbl.Len())
	}
}

func TestInject(t *testing.T) {
	tbl, err := table.New(table.ShapeColumn, table.Column{Name: table.ShapeColumn, Type: table.Text})
	if err != nil {
		t.Fatal(err)
	}
	for _, wkt := range []string{"POINT (-93 45)", "LINESTRING (-93 45, -93.01 45.01)", "nope"} {
		if err := tbl.AddRow(wkt); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "shapes.json")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := table.Encode(f, tbl, table.JSON); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out := mustRun(t, "--fixture", lakesFixture, "inject", path)
	if !strings.Contains(out, "Added") || !strings.Contains(out, "1 skipped") {
		t.Errorf("inject output = %q", out)
	}

	_, err = run(t, "--fixture", lakesFixture, "inject", filepath.Join(t.TempDir(), "none.json"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("inject missing file: error = %v, want INVALID_INPUT", err)
	}
}

func TestGraphicsCommand(t *testing.T) {
	out := mustRun(t, "--fixture", lakesFixture, "graphics", "--format", "yaml")
	tbl, err := table.Decode(strings.NewReader(out), table.YAML)
	if err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if tbl.Len() != 0 || tbl.Index(table.ShapeColumn) < 0 {
		t.Errorf("graphics table = %d rows, columns %v", tbl.Len(), tbl.Columns)
	}
}

func TestPointAndCEP(t *testing.T) {
	out := mustRun(t, "--fixture", lakesFixture, "point", "--heading", "90", "--breadcrumbs", "lines", "45", "-93")
	if !strings.Contains(out, "graphic") {
		t.Errorf("point output = %q", out)
	}

	out = mustRun(t, "--fixture", lakesFixture, "cep", "--radii", "10,20", "45", "-93")
	if !strings.Contains(out, "2 circles") {
		t.Errorf("cep output = %q", out)
	}

	tests := []struct {
		args []string
		code errors.Code
	}{
		{[]string{"point", "north", "-93"}, errors.ErrCodeInvalidInput},
		{[]string{"point", "91", "-93"}, errors.ErrCodeInvalidInput},
		{[]string{"point", "--breadcrumbs", "dots", "45", "-93"}, errors.ErrCodeInvalidInput},
		{[]string{"cep", "--radii", "10,x", "45", "-93"}, errors.ErrCodeInvalidInput},
		{[]string{"cep", "--radii", "0", "45", "-93"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		_, err := run(t, append([]string{"--fixture", lakesFixture}, tt.args...)...)
		if !errors.Is(err, tt.code) {
			t.Errorf("%v: error = %v, want %s", tt.args, err, tt.code)
		}
	}
}

func TestClear(t *testing.T) {
	out := mustRun(t, "--fixture", lakesFixture, "clear")
	if !strings.Contains(out, "Cleared") {
		t.Errorf("clear output = %q", out)
	}
	if _, err := run(t, "--fixture", lakesFixture, "clear", "one"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("clear one: error = %v, want INVALID_INPUT", err)
	}
}

func TestReadTrack(t *testing.T) {
	f, err := os.Open("testdata/track.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	fixes, err := readTrack(f)
	if err != nil {
		t.Fatal(err)
	}
	want := []fix{
		{line: 2, lat: 45.000, lon: -93.000, heading: 0},
		{line: 3, lat: 45.001, lon: -93.000, heading: 10},
		{line: 5, lat: 45.002, lon: -93.001, heading: 20},
		{line: 6, lat: 45.003, lon: -93.001},
	}
	if diff := cmp.Diff(want, fixes, cmp.AllowUnexported(fix{})); diff != "" {
		t.Errorf("readTrack() mismatch (-want +got):\n%s", diff)
	}

	_, err = readTrack(strings.NewReader("45,-93\n45,east\n"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad line: error = %v, want INVALID_FORMAT", err)
	}
}

func TestTrack(t *testing.T) {
	out := mustRun(t, "--fixture", lakesFixture, "track", "--follow", "testdata/track.csv")
	if !strings.Contains(out, "Replayed") || !strings.Contains(out, "4") {
		t.Errorf("track output = %q", out)
	}
}

func TestDefaults(t *testing.T) {
	out := mustRun(t, "defaults", "--builtin")
	d, err := style.Parse([]byte(out))
	if err != nil {
		t.Fatalf("parse defaults output: %v", err)
	}
	if diff := cmp.Diff(style.Default(), d); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "style.toml")
	if err := os.WriteFile(path, []byte("graphics_layer_name = \"Field Crew\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out = mustRun(t, "--config", path, "defaults")
	if !strings.Contains(out, "Field Crew") {
		t.Errorf("defaults with --config = %q", out)
	}
}

func TestParseRadii(t *testing.T) {
	got, err := parseRadii(formatRadii(defaultRadii))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(defaultRadii, got); diff != "" {
		t.Errorf("parseRadii() mismatch (-want +got):\n%s", diff)
	}
}
