package layertree

import (
	"github.com/dnrgps/dnrgps/pkg/host"
)

// Capability is a tag for a feature a layer may expose.
type Capability int

const (
	// AnyLayer matches every layer.
	AnyLayer Capability = iota
	// FeatureQueries matches layers implementing host.FeatureLayer.
	FeatureQueries
	// Groups matches layers that contain other layers.
	Groups
)

func (c Capability) String() string {
	switch c {
	case AnyLayer:
		return "any"
	case FeatureQueries:
		return "feature"
	case Groups:
		return "group"
	}
	return "unknown"
}

// Has reports whether l exposes c.
func (c Capability) Has(l host.Layer) bool {
	switch c {
	case AnyLayer:
		return true
	case FeatureQueries:
		_, ok := l.(host.FeatureLayer)
		return ok
	case Groups:
		_, ok := l.(host.GroupLayer)
		return ok
	}
	return false
}

// NamedLayer is a layer together with where it was found.
type NamedLayer struct {
	Name    string
	Address Address
	Layer   host.Layer
}

// FindByCapability returns every layer under root exposing c, in depth
// first order. Containers are always descended into, and are yielded only
// when they match c themselves. Maps under a document root are never
// yielded.
func FindByCapability(root host.Container, c Capability) []NamedLayer {
	var out []NamedLayer
	_, docRoot := root.(documentRoot)
	walk(root, nil, func(p path) bool {
		if docRoot && p.parent == nil {
			return true
		}
		if c.Has(p.layer) {
			out = append(out, NamedLayer{
				Name:    joinName(root, &p, MapSeparator, LevelSeparator),
				Address: p.address(),
				Layer:   p.layer,
			})
		}
		return true
	})
	return out
}

// Filter returns the layers in ls exposing c.
func Filter(ls []NamedLayer, c Capability) []NamedLayer {
	var out []NamedLayer
	for _, nl := range ls {
		if c.Has(nl.Layer) {
			out = append(out, nl)
		}
	}
	return out
}
