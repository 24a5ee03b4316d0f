package locator

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
	"github.com/dnrgps/dnrgps/pkg/observability"
)

// DefaultProcess is the host executable name.
const DefaultProcess = "ArcMap"

// Process is a running process.
type Process struct {
	PID  int
	Name string
}

// Window is a top-level window.
type Window struct {
	Handle  uintptr
	PID     int
	Title   string
	Visible bool
}

// System enumerates processes and top-level windows.
type System interface {
	// Processes returns every running process.
	Processes() ([]Process, error)
	// Windows returns every top-level window in stacking order, topmost
	// first.
	Windows() ([]Window, error)
}

// Bridge connects to a located instance through the host's object
// creation capability.
type Bridge interface {
	Connect(ctx context.Context, inst Instance) (host.Application, error)
}

// Instance is a running host process with a visible main window.
type Instance struct {
	// ID is stable for the lifetime of the process and window.
	ID      uuid.UUID
	PID     int
	Process string
	Title   string
	Window  uintptr
	// Depth is the number of top-level windows above the main window.
	Depth int
}

var instanceSpace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("dnrgps.instance"))

func instanceID(pid int, window uintptr) uuid.UUID {
	return uuid.NewSHA1(instanceSpace, []byte(fmt.Sprintf("%d/%x", pid, window)))
}

// Locator finds host instances.
type Locator struct {
	System System
	// Bridge is nil when no bridge to the host is available; Connect then
	// never finds anything.
	Bridge Bridge
	// Process is the executable name to look for, with or without ".exe".
	Process string
	Logger  *log.Logger
}

// New creates a locator for processes named process. If logger is nil,
// log.Default() is used.
func New(sys System, bridge Bridge, process string, logger *log.Logger) *Locator {
	if logger == nil {
		logger = log.Default()
	}
	if process == "" {
		process = DefaultProcess
	}
	return &Locator{
		System:  sys,
		Bridge:  bridge,
		Process: process,
		Logger:  logger.WithPrefix("locator"),
	}
}

// Instances returns every matching process that has a visible main window,
// frontmost first. Processes with equal depth keep enumeration order.
func (l *Locator) Instances(ctx context.Context) []Instance {
	start := time.Now()
	found := l.scan()
	observability.Locator().OnScan(ctx, l.Process, len(found), time.Since(start))
	return found
}

func (l *Locator) scan() []Instance {
	if l.System == nil {
		return nil
	}
	procs, err := l.System.Processes()
	if err != nil {
		l.Logger.Warn("process enumeration failed", "err", err)
		return nil
	}
	names := make(map[int]string)
	var order []int
	for _, p := range procs {
		if sameExe(p.Name, l.Process) {
			names[p.PID] = p.Name
			order = append(order, p.PID)
		}
	}
	if len(order) == 0 {
		return nil
	}
	windows, err := l.System.Windows()
	if err != nil {
		l.Logger.Warn("window enumeration failed", "err", err)
		return nil
	}

	mains := make(map[int]Instance)
	for depth, w := range windows {
		if _, ok := names[w.PID]; !ok || !w.Visible {
			continue
		}
		if _, seen := mains[w.PID]; seen {
			continue
		}
		mains[w.PID] = Instance{
			ID:      instanceID(w.PID, w.Handle),
			PID:     w.PID,
			Process: names[w.PID],
			Title:   w.Title,
			Window:  w.Handle,
			Depth:   depth,
		}
	}

	var out []Instance
	for _, pid := range order {
		if inst, ok := mains[pid]; ok {
			out = append(out, inst)
		}
	}
	slices.SortStableFunc(out, func(a, b Instance) int { return cmp.Compare(a.Depth, b.Depth) })
	l.Logger.Debug("scanned instances", "process", l.Process, "processes", len(order), "instances", len(out))
	return out
}

func sameExe(a, b string) bool {
	trim := func(s string) string {
		s = strings.ToLower(strings.TrimSpace(s))
		return strings.TrimSuffix(s, ".exe")
	}
	return trim(a) == trim(b)
}

// FindTop returns the frontmost instance.
func (l *Locator) FindTop(ctx context.Context) (Instance, bool) {
	found := l.Instances(ctx)
	if len(found) == 0 {
		return Instance{}, false
	}
	return found[0], true
}

// Connect bridges to inst. It reports false when there is no bridge or the
// instance cannot be reached.
func (l *Locator) Connect(ctx context.Context, inst Instance) (host.Application, bool) {
	if l.Bridge == nil {
		l.Logger.Debug("no host bridge", "pid", inst.PID)
		observability.Locator().OnAttach(ctx, l.Process, false)
		return nil, false
	}
	app, err := l.Bridge.Connect(ctx, inst)
	ok := err == nil && app != nil
	if err != nil {
		l.Logger.Debug("bridge failed", "pid", inst.PID, "err", err)
	}
	observability.Locator().OnAttach(ctx, l.Process, ok)
	if !ok {
		return nil, false
	}
	return app, true
}

// Top connects to the frontmost instance.
func (l *Locator) Top(ctx context.Context) (host.Application, bool) {
	inst, ok := l.FindTop(ctx)
	if !ok {
		return nil, false
	}
	return l.Connect(ctx, inst)
}

// HasOpenDocuments reports whether the frontmost instance has an active
// document.
func (l *Locator) HasOpenDocuments(ctx context.Context) bool {
	app, ok := l.Top(ctx)
	if !ok {
		return false
	}
	doc, err := app.Document()
	return err == nil && doc != nil
}

// TopTitle returns the main window caption of the frontmost instance.
func (l *Locator) TopTitle(ctx context.Context) (string, bool) {
	inst, ok := l.FindTop(ctx)
	if !ok {
		return "", false
	}
	return inst.Title, true
}

// StartNewDocument replaces the frontmost instance's document with a new,
// empty one.
func (l *Locator) StartNewDocument(ctx context.Context) error {
	app, ok := l.Top(ctx)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no running %s instance", l.Process)
	}
	starter, ok := app.(host.DocumentStarter)
	if !ok {
		return errors.New(errors.ErrCodeUnsupported, "%s cannot start a new document", l.Process)
	}
	if err := starter.NewDocument(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "start new document")
	}
	return nil
}

// ShutdownTop closes the frontmost instance.
func (l *Locator) ShutdownTop(ctx context.Context) error {
	app, ok := l.Top(ctx)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no running %s instance", l.Process)
	}
	if err := app.Shutdown(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "shut down %s", l.Process)
	}
	return nil
}
