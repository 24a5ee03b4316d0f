package layertree

import (
	"strings"

	"github.com/dnrgps/dnrgps/pkg/host"
)

// Root returns the container that addresses and names across doc are
// relative to. A single-map document is rooted at that map; with two or
// more maps the root's children are the maps themselves, so addresses gain
// a leading map index and names a dataframe prefix.
func Root(doc host.Document) host.Container {
	if doc.MapCount() == 1 {
		return doc.Map(0)
	}
	return documentRoot{doc}
}

type documentRoot struct {
	doc host.Document
}

func (r documentRoot) Count() int             { return r.doc.MapCount() }
func (r documentRoot) Layer(i int) host.Layer { return r.doc.Map(i) }

// path is one step of a depth-first walk.
type path struct {
	parent *path
	index  int
	layer  host.Layer
}

func (p *path) address() Address {
	var a Address
	for q := p; q != nil; q = q.parent {
		a = append(a, q.index)
	}
	reverseInts(a)
	return a
}

func (p *path) names() []string {
	var n []string
	for q := p; q != nil; q = q.parent {
		n = append(n, q.layer.Name())
	}
	for i, j := 0, len(n)-1; i < j; i, j = i+1, j-1 {
		n[i], n[j] = n[j], n[i]
	}
	return n
}

func reverseInts(a []int) {
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
}

// walk visits every layer under c depth first, parents before children.
// It stops as soon as visit returns false and reports whether it ran to
// completion.
func walk(c host.Container, parent *path, visit func(path) bool) bool {
	for i := 0; i < c.Count(); i++ {
		l := c.Layer(i)
		if l == nil {
			continue
		}
		p := path{parent: parent, index: i, layer: l}
		if !visit(p) {
			return false
		}
		if sub, ok := l.(host.Container); ok {
			if !walk(sub, &p, visit) {
				return false
			}
		}
	}
	return true
}

// joinName renders p as a qualified name. When root is a document the first
// component is the map and is joined with mapSep.
func joinName(root host.Container, p *path, mapSep, levelSep string) string {
	names := p.names()
	if _, ok := root.(documentRoot); ok && len(names) > 1 {
		return names[0] + mapSep + strings.Join(names[1:], levelSep)
	}
	return strings.Join(names, levelSep)
}
