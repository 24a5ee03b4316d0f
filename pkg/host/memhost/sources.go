package memhost

import (
	"fmt"

	"github.com/dnrgps/dnrgps/pkg/host"
)

// Sources is a registry of openable data sets.
type Sources struct {
	sets map[string]func() host.Layer
}

// NewSources returns an empty registry.
func NewSources() *Sources {
	return &Sources{sets: make(map[string]func() host.Layer)}
}

func sourceKey(kind host.DataSetKind, workspace, dataset string) string {
	return kind.String() + "|" + workspace + "|" + dataset
}

// Register makes a data set openable. open is called on every Open.
func (s *Sources) Register(kind host.DataSetKind, workspace, dataset string, open func() host.Layer) {
	s.sets[sourceKey(kind, workspace, dataset)] = open
}

func (s *Sources) Open(kind host.DataSetKind, workspace, dataset string) (host.Layer, error) {
	open, ok := s.sets[sourceKey(kind, workspace, dataset)]
	if !ok {
		return nil, fmt.Errorf("memhost: no %s data set %q in %q", kind, dataset, workspace)
	}
	return open(), nil
}
