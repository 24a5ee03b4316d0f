package locator

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
)

// simulatedPID is the process id of the first simulated application.
const simulatedPID = 1000

// Simulated is a System and Bridge over in-process applications. Apps are
// listed in stacking order, topmost first; each runs as its own process
// named Process with one main window titled by its caption.
type Simulated struct {
	Process string
	Apps    []host.Application
}

// NewSimulated returns a locator over apps. If logger is nil,
// log.Default() is used.
func NewSimulated(process string, logger *log.Logger, apps ...host.Application) *Locator {
	if process == "" {
		process = DefaultProcess
	}
	sim := &Simulated{Process: process + ".exe", Apps: apps}
	return New(sim, sim, process, logger)
}

func (s *Simulated) Processes() ([]Process, error) {
	out := make([]Process, len(s.Apps))
	for i := range s.Apps {
		out[i] = Process{PID: simulatedPID + i, Name: s.Process}
	}
	return out, nil
}

func (s *Simulated) Windows() ([]Window, error) {
	out := make([]Window, len(s.Apps))
	for i, app := range s.Apps {
		out[i] = Window{
			Handle:  uintptr(0x10000 + i),
			PID:     simulatedPID + i,
			Title:   app.Caption(),
			Visible: app.Visible(),
		}
	}
	return out, nil
}

func (s *Simulated) Connect(_ context.Context, inst Instance) (host.Application, error) {
	i := inst.PID - simulatedPID
	if i < 0 || i >= len(s.Apps) {
		return nil, errors.New(errors.ErrCodeNotFound, "no simulated process %d", inst.PID)
	}
	return s.Apps[i], nil
}
