package locator

import (
	"context"
	stderrors "errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
	"github.com/dnrgps/dnrgps/pkg/host/memhost"
)

type fakeSystem struct {
	procs      []Process
	windows    []Window
	procErr    error
	windowsErr error
}

func (f fakeSystem) Processes() ([]Process, error) { return f.procs, f.procErr }
func (f fakeSystem) Windows() ([]Window, error)    { return f.windows, f.windowsErr }

var quiet = log.New(io.Discard)

// stack returns n anonymous windows owned by an unrelated process.
func stack(n int) []Window {
	out := make([]Window, n)
	for i := range out {
		out[i] = Window{Handle: uintptr(i + 1), PID: 1, Title: "Explorer", Visible: true}
	}
	return out
}

func TestFindTopNone(t *testing.T) {
	tests := []struct {
		name string
		sys  System
	}{
		{"no processes", fakeSystem{procs: []Process{{PID: 1, Name: "explorer.exe"}}, windows: stack(3)}},
		{"no windows", fakeSystem{procs: []Process{{PID: 7, Name: "ArcMap.exe"}}, windows: stack(3)}},
		{"hidden window", fakeSystem{
			procs:   []Process{{PID: 7, Name: "ArcMap.exe"}},
			windows: []Window{{Handle: 9, PID: 7, Title: "ArcMap", Visible: false}},
		}},
		{"process error", fakeSystem{procErr: stderrors.New("access denied")}},
		{"window error", fakeSystem{procs: []Process{{PID: 7, Name: "ArcMap.exe"}}, windowsErr: stderrors.New("boom")}},
		{"nil system", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.sys, nil, "ArcMap", quiet)
			if inst, ok := l.FindTop(context.Background()); ok {
				t.Errorf("FindTop() = %+v, want not found", inst)
			}
		})
	}
}

func TestFindTopByDepth(t *testing.T) {
	// A's main window has depth 0, B's has depth 3.
	windows := []Window{
		{Handle: 100, PID: 10, Title: "a.mxd - ArcMap", Visible: true},
		{Handle: 2, PID: 1, Visible: true},
		{Handle: 3, PID: 1, Visible: true},
		{Handle: 200, PID: 20, Title: "b.mxd - ArcMap", Visible: true},
	}
	procs := []Process{
		{PID: 20, Name: "ArcMap.exe"},
		{PID: 1, Name: "explorer.exe"},
		{PID: 10, Name: "arcmap.EXE"},
	}
	l := New(fakeSystem{procs: procs, windows: windows}, nil, "arcmap", quiet)

	inst, ok := l.FindTop(context.Background())
	if !ok {
		t.Fatal("FindTop() not found")
	}
	if inst.PID != 10 || inst.Depth != 0 || inst.Title != "a.mxd - ArcMap" {
		t.Errorf("FindTop() = %+v, want process 10 at depth 0", inst)
	}

	all := l.Instances(context.Background())
	if len(all) != 2 || all[1].PID != 20 || all[1].Depth != 3 {
		t.Errorf("Instances() = %+v, want A then B at depth 3", all)
	}
	if all[0].ID == all[1].ID {
		t.Error("instances share an id")
	}
	if again, _ := l.FindTop(context.Background()); again.ID != inst.ID {
		t.Error("instance id changed between scans")
	}
}

func TestFindTopFirstVisibleWindow(t *testing.T) {
	windows := []Window{
		{Handle: 1, PID: 10, Title: "splash", Visible: false},
		{Handle: 2, PID: 1, Visible: true},
		{Handle: 3, PID: 10, Title: "Untitled - ArcMap", Visible: true},
		{Handle: 4, PID: 10, Title: "Table", Visible: true},
	}
	l := New(fakeSystem{procs: []Process{{PID: 10, Name: "ArcMap.exe"}}, windows: windows}, nil, "", quiet)
	inst, ok := l.FindTop(context.Background())
	if !ok || inst.Window != 3 || inst.Depth != 2 {
		t.Errorf("FindTop() = %+v, %v, want window 3 at depth 2", inst, ok)
	}
}

func TestConnectWithoutBridge(t *testing.T) {
	l := New(fakeSystem{
		procs:   []Process{{PID: 10, Name: "ArcMap.exe"}},
		windows: []Window{{Handle: 1, PID: 10, Visible: true}},
	}, nil, "ArcMap", quiet)
	if app, ok := l.Top(context.Background()); ok || app != nil {
		t.Errorf("Top() = %v, %v, want not found", app, ok)
	}
}

func newApps() (*memhost.App, *memhost.App) {
	front := memhost.NewApp("front.mxd - ArcMap", memhost.NewDocument(memhost.NewMap("Layers", host.WGS84)))
	back := memhost.NewApp("back.mxd - ArcMap", memhost.NewDocument(memhost.NewMap("Layers", host.WGS84)))
	return front, back
}

func TestSimulated(t *testing.T) {
	front, back := newApps()
	l := NewSimulated("ArcMap", quiet, front, back)
	ctx := context.Background()

	app, ok := l.Top(ctx)
	if !ok || app != front {
		t.Fatalf("Top() = %v, %v, want the front app", app, ok)
	}
	if title, ok := l.TopTitle(ctx); !ok || title != "front.mxd - ArcMap" {
		t.Errorf("TopTitle() = %q, %v", title, ok)
	}

	front.SetVisible(false)
	if app, _ := l.Top(ctx); app != back {
		t.Error("hidden front app still selected")
	}
}

func TestApplicationOperations(t *testing.T) {
	front, _ := newApps()
	l := NewSimulated("ArcMap", quiet, front)
	ctx := context.Background()

	if !l.HasOpenDocuments(ctx) {
		t.Error("HasOpenDocuments() = false")
	}
	if err := l.StartNewDocument(ctx); err != nil {
		t.Fatalf("StartNewDocument() error = %v", err)
	}
	if front.NewDocuments != 1 || front.ActiveDocument().MapCount() != 1 {
		t.Errorf("new document not started (count %d)", front.NewDocuments)
	}

	front.SetDocument(nil)
	if l.HasOpenDocuments(ctx) {
		t.Error("HasOpenDocuments() = true with no document")
	}

	if err := l.ShutdownTop(ctx); err != nil {
		t.Fatalf("ShutdownTop() error = %v", err)
	}
	if !front.IsShutdown() {
		t.Error("front app not shut down")
	}
	if err := l.ShutdownTop(ctx); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("ShutdownTop() with nothing running error = %v, want NOT_FOUND", err)
	}
	if _, ok := l.TopTitle(ctx); ok {
		t.Error("TopTitle() found a shut down instance")
	}
}
