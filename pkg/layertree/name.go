package layertree

import (
	"slices"
	"strings"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
)

// Default separators of a qualified name.
const (
	MapSeparator   = ":"
	LevelSeparator = "/"
)

// QualifiedNameOf returns the qualified name of the first occurrence of l
// under root, using the default separators.
func QualifiedNameOf(root host.Container, l host.Layer) (string, bool) {
	return QualifiedNameOfSep(root, l, MapSeparator, LevelSeparator)
}

// QualifiedNameOfSep is QualifiedNameOf with explicit separators.
func QualifiedNameOfSep(root host.Container, l host.Layer, mapSep, levelSep string) (string, bool) {
	var (
		name  string
		found bool
	)
	walk(root, nil, func(p path) bool {
		if p.layer == l {
			name, found = joinName(root, &p, mapSep, levelSep), true
			return false
		}
		return true
	})
	return name, found
}

// Name is the structured form of a qualified name. Dataframe is empty when
// the layer lives in a single-map document.
type Name struct {
	Dataframe string
	Groups    []string
	Leaf      string
}

// String renders the qualified name.
func (n Name) String() string {
	var b strings.Builder
	if n.Dataframe != "" {
		b.WriteString(n.Dataframe)
		b.WriteString(MapSeparator)
	}
	for _, g := range n.Groups {
		b.WriteString(g)
		b.WriteString(LevelSeparator)
	}
	b.WriteString(n.Leaf)
	return b.String()
}

// Equal reports whether two names have the same components.
func (n Name) Equal(o Name) bool {
	return n.Dataframe == o.Dataframe && n.Leaf == o.Leaf && slices.Equal(n.Groups, o.Groups)
}

// ParseName parses a qualified name. Everything before the first map
// separator is the dataframe.
func ParseName(s string) (Name, error) {
	var n Name
	if df, rest, ok := strings.Cut(s, MapSeparator); ok {
		n.Dataframe, s = df, rest
	}
	parts := strings.Split(s, LevelSeparator)
	n.Leaf = parts[len(parts)-1]
	if len(parts) > 1 {
		n.Groups = parts[:len(parts)-1]
	}
	if n.Leaf == "" {
		return Name{}, errors.New(errors.ErrCodeInvalidInput, "layer name %q has no leaf", s)
	}
	return n, nil
}

// NameOf returns the structured name of l within doc.
func NameOf(doc host.Document, l host.Layer) (Name, bool) {
	root := Root(doc)
	var (
		n     Name
		found bool
	)
	walk(root, nil, func(p path) bool {
		if p.layer != l {
			return true
		}
		names := p.names()
		if _, ok := root.(documentRoot); ok {
			n.Dataframe, names = names[0], names[1:]
		}
		if len(names) > 0 {
			n.Leaf = names[len(names)-1]
			n.Groups = names[:len(names)-1]
			if len(n.Groups) == 0 {
				n.Groups = nil
			}
		}
		found = true
		return false
	})
	return n, found
}

// ResolveName finds the layer called n in doc. At each level the first
// child with a matching name wins. A name without a dataframe is looked up
// in the focus map.
func ResolveName(doc host.Document, n Name) (host.Layer, error) {
	var c host.Container
	if n.Dataframe == "" {
		if m := doc.FocusMap(); m != nil {
			c = m
		}
	} else {
		for i := 0; i < doc.MapCount(); i++ {
			if m := doc.Map(i); m.Name() == n.Dataframe {
				c = m
				break
			}
		}
	}
	if c == nil {
		return nil, errors.New(errors.ErrCodeLayerNotFound, "no map for layer %q", n.String())
	}
	for _, g := range n.Groups {
		child, ok := childNamed(c, g).(host.Container)
		if !ok {
			return nil, errors.New(errors.ErrCodeLayerNotFound, "no group %q for layer %q", g, n.String())
		}
		c = child
	}
	l := childNamed(c, n.Leaf)
	if l == nil {
		return nil, errors.New(errors.ErrCodeLayerNotFound, "layer %q not found", n.String())
	}
	return l, nil
}

func childNamed(c host.Container, name string) host.Layer {
	for i := 0; i < c.Count(); i++ {
		if l := c.Layer(i); l != nil && l.Name() == name {
			return l
		}
	}
	return nil
}
