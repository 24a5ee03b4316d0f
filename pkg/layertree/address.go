package layertree

import (
	"strconv"
	"strings"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
)

// Separator joins address components.
const Separator = "-"

// Address is a path of child indices from a root container to a layer.
type Address []int

// String renders the address for interchange, e.g. "0-3-1".
func (a Address) String() string {
	parts := make([]string, len(a))
	for i, n := range a {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, Separator)
}

// Equal reports whether a and b have the same components.
func (a Address) Equal(b Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether a lies inside the subtree addressed by p. Every
// address has the empty prefix.
func (a Address) HasPrefix(p Address) bool {
	return len(p) <= len(a) && a[:len(p)].Equal(p)
}

// ParseAddress parses a separator-joined address. Empty components are
// ignored; an address with no components or a non-integer component is
// malformed.
func ParseAddress(s string) (Address, error) {
	var a Address
	for _, tok := range strings.Split(s, Separator) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedAddress, err, "invalid address %q", s)
		}
		a = append(a, n)
	}
	if len(a) == 0 {
		return nil, errors.New(errors.ErrCodeMalformedAddress, "address %q has no components", s)
	}
	return a, nil
}

// Resolve walks a from root. Every component but the last must index a
// container. An invalid component yields an *errors.IndexOutOfRangeError.
func Resolve(root host.Container, a Address) (host.Layer, error) {
	if len(a) == 0 {
		return nil, errors.New(errors.ErrCodeMalformedAddress, "empty address")
	}
	var node host.Layer
	parent := root
	for i, idx := range a {
		if parent == nil {
			return nil, &errors.IndexOutOfRangeError{Component: i, Index: idx, Container: nameOf(node)}
		}
		if n := parent.Count(); idx < 0 || idx >= n {
			return nil, &errors.IndexOutOfRangeError{Component: i, Index: idx, Count: n, Container: containerName(parent)}
		}
		node = parent.Layer(idx)
		parent, _ = node.(host.Container)
	}
	return node, nil
}

// ResolveString parses s and resolves it from root.
func ResolveString(root host.Container, s string) (host.Layer, error) {
	a, err := ParseAddress(s)
	if err != nil {
		return nil, err
	}
	return Resolve(root, a)
}

// AddressOf returns the address of the first occurrence of l under root,
// searching depth first.
func AddressOf(root host.Container, l host.Layer) (Address, bool) {
	var found Address
	walk(root, nil, func(p path) bool {
		if p.layer == l {
			found = p.address()
			return false
		}
		return true
	})
	return found, found != nil
}

func containerName(c host.Container) string {
	if l, ok := c.(host.Layer); ok {
		return l.Name()
	}
	if _, ok := c.(documentRoot); ok {
		return "document"
	}
	return ""
}

func nameOf(l host.Layer) string {
	if l == nil {
		return ""
	}
	return l.Name()
}
