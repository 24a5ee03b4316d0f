//go:build !windows

package locator

import (
	"github.com/dnrgps/dnrgps/pkg/errors"
)

// NewSystem returns a backend that finds no processes: the host only runs
// on Windows.
func NewSystem() System { return noSystem{} }

type noSystem struct{}

func (noSystem) Processes() ([]Process, error) {
	return nil, errors.New(errors.ErrCodeUnsupported, "process enumeration requires windows")
}

func (noSystem) Windows() ([]Window, error) {
	return nil, errors.New(errors.ErrCodeUnsupported, "window enumeration requires windows")
}
