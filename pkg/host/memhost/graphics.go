package memhost

import (
	"fmt"
	"slices"

	"github.com/paulmach/orb"

	"github.com/dnrgps/dnrgps/pkg/host"
)

// Element is a single graphic.
type Element struct {
	kind  host.ElementKind
	shape host.Shape
	sym   host.Symbol
}

func (e *Element) Kind() host.ElementKind { return e.kind }
func (e *Element) Shape() host.Shape      { return e.shape }
func (e *Element) Symbol() host.Symbol    { return e.sym }

func (e *Element) SetShape(s host.Shape) error {
	if err := checkShape(e.kind, s); err != nil {
		return err
	}
	e.shape = s
	return nil
}

func (e *Element) SetSymbol(s host.Symbol) error {
	e.sym = s
	return nil
}

// NewText returns a text element at p. Text elements are created by the
// user, never by dnrgps.
func NewText(p orb.Point, sr host.SpatialReference) *Element {
	return &Element{kind: host.ElementText, shape: host.Shape{Geometry: p, SR: sr}}
}

func checkShape(kind host.ElementKind, s host.Shape) error {
	var ok bool
	switch kind {
	case host.ElementMarker, host.ElementText:
		ok = s.Kind() == host.KindPoint
	case host.ElementLine:
		ok = s.Kind() == host.KindPolyline
	case host.ElementFill:
		ok = s.Circle == nil && s.Kind() == host.KindPolygon
	case host.ElementCircle:
		ok = s.Circle != nil
	}
	if !ok {
		return fmt.Errorf("memhost: %s element cannot hold a %s shape", kind, s.Kind())
	}
	return nil
}

// GroupElement is a graphic made of other graphics.
type GroupElement struct {
	children []host.Element
	sym      host.Symbol
}

func (g *GroupElement) Kind() host.ElementKind   { return host.ElementGroup }
func (g *GroupElement) Children() []host.Element { return slices.Clone(g.children) }
func (g *GroupElement) Symbol() host.Symbol      { return g.sym }

func (g *GroupElement) SetSymbol(s host.Symbol) error {
	g.sym = s
	return nil
}

// Shape returns the envelope of the children.
func (g *GroupElement) Shape() host.Shape {
	var (
		b   orb.Bound
		sr  host.SpatialReference
		found bool
	)
	for _, c := range g.children {
		s := c.Shape()
		cb, ok := shapeBound(s)
		if !ok {
			continue
		}
		if !found {
			b, sr, found = cb, s.SR, true
			continue
		}
		b = b.Union(cb)
	}
	if !found {
		return host.Shape{}
	}
	return host.Shape{Geometry: b, SR: sr}
}

func (g *GroupElement) SetShape(host.Shape) error {
	return fmt.Errorf("memhost: group shape is derived from its children")
}

func shapeBound(s host.Shape) (orb.Bound, bool) {
	if s.Circle != nil {
		c := s.Circle
		return orb.Bound{
			Min: orb.Point{c.Center[0] - c.Radius, c.Center[1] - c.Radius},
			Max: orb.Point{c.Center[0] + c.Radius, c.Center[1] + c.Radius},
		}, true
	}
	if s.IsEmpty() {
		return orb.Bound{}, false
	}
	return s.Geometry.Bound(), true
}

// Factory creates memhost elements.
type Factory struct{}

func (Factory) NewElement(kind host.ElementKind, shape host.Shape, sym host.Symbol) (host.Element, error) {
	if kind == host.ElementGroup {
		return nil, fmt.Errorf("memhost: use NewGroup for group elements")
	}
	if err := checkShape(kind, shape); err != nil {
		return nil, err
	}
	return &Element{kind: kind, shape: shape, sym: sym}, nil
}

func (Factory) NewGroup(children []host.Element) (host.GroupElement, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("memhost: empty group")
	}
	return &GroupElement{children: slices.Clone(children)}, nil
}

// GraphicsLayer is a graphics container with a selection.
type GraphicsLayer struct {
	name     string
	elems    []host.Element
	selected map[host.Element]bool

	// AddErr, when set, makes AddElement fail.
	AddErr error
}

// NewGraphicsLayer returns an empty graphics layer.
func NewGraphicsLayer(name string) *GraphicsLayer {
	return &GraphicsLayer{name: name, selected: make(map[host.Element]bool)}
}

func (g *GraphicsLayer) Name() string { return g.name }

func (g *GraphicsLayer) Elements() []host.Element { return slices.Clone(g.elems) }

func (g *GraphicsLayer) AddElement(e host.Element) error {
	if g.AddErr != nil {
		return g.AddErr
	}
	if e == nil {
		return fmt.Errorf("memhost: nil element")
	}
	if slices.Contains(g.elems, e) {
		return fmt.Errorf("memhost: element already on layer %q", g.name)
	}
	g.elems = append(g.elems, e)
	return nil
}

func (g *GraphicsLayer) DeleteElement(e host.Element) error {
	i := slices.Index(g.elems, e)
	if i < 0 {
		return host.ErrNotFound
	}
	g.elems = slices.Delete(g.elems, i, i+1)
	delete(g.selected, e)
	return nil
}

// Select adds elements to the selection.
func (g *GraphicsLayer) Select(es ...host.Element) {
	for _, e := range es {
		if slices.Contains(g.elems, e) {
			g.selected[e] = true
		}
	}
}

func (g *GraphicsLayer) SelectedElements() []host.Element {
	var out []host.Element
	for _, e := range g.elems {
		if g.selected[e] {
			out = append(out, e)
		}
	}
	return out
}

func (g *GraphicsLayer) SelectAll() {
	for _, e := range g.elems {
		g.selected[e] = true
	}
}

func (g *GraphicsLayer) UnselectAll() {
	clear(g.selected)
}

// Composite holds a map's named graphics layers.
type Composite struct {
	layers []*GraphicsLayer

	// AddErr, when set, makes AddLayer fail.
	AddErr error
}

// NewComposite returns an empty composite.
func NewComposite() *Composite { return &Composite{} }

func (c *Composite) FindLayer(name string) (host.GraphicsContainer, error) {
	if l := c.Find(name); l != nil {
		return l, nil
	}
	return nil, host.ErrNotFound
}

// Find returns the concrete graphics layer called name, or nil.
func (c *Composite) Find(name string) *GraphicsLayer {
	for _, l := range c.layers {
		if l.name == name {
			return l
		}
	}
	return nil
}

func (c *Composite) AddLayer(name string) (host.GraphicsContainer, error) {
	if c.AddErr != nil {
		return nil, c.AddErr
	}
	l := NewGraphicsLayer(name)
	c.layers = append(c.layers, l)
	return l, nil
}

func (c *Composite) DeleteLayer(name string) error {
	for i, l := range c.layers {
		if l.name == name {
			c.layers = slices.Delete(c.layers, i, i+1)
			return nil
		}
	}
	return host.ErrNotFound
}

// Len returns the number of graphics layers.
func (c *Composite) Len() int { return len(c.layers) }
