package memhost

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/dnrgps/dnrgps/pkg/host"
)

// Document is a map document.
type Document struct {
	maps     []*Map
	focus    int
	selected host.Layer
	items    []host.Layer
}

// NewDocument returns a document holding maps, with focus on the first.
func NewDocument(maps ...*Map) *Document {
	return &Document{maps: maps}
}

func (d *Document) MapCount() int { return len(d.maps) }

func (d *Document) Map(i int) host.Map {
	if i < 0 || i >= len(d.maps) {
		return nil
	}
	return d.maps[i]
}

func (d *Document) FocusMap() host.Map {
	if len(d.maps) == 0 {
		return nil
	}
	return d.maps[d.focus]
}

// Focus returns the concrete focus map.
func (d *Document) Focus() *Map {
	if len(d.maps) == 0 {
		return nil
	}
	return d.maps[d.focus]
}

// SetFocus moves focus to map i.
func (d *Document) SetFocus(i int) error {
	if i < 0 || i >= len(d.maps) {
		return fmt.Errorf("memhost: focus map %d out of range", i)
	}
	d.focus = i
	return nil
}

// AddMap appends a map.
func (d *Document) AddMap(m *Map) { d.maps = append(d.maps, m) }

func (d *Document) SelectedLayer() host.Layer { return d.selected }

func (d *Document) SelectedItems() []host.Layer { return d.items }

// Select highlights l in the table of contents. nil clears it.
func (d *Document) Select(l host.Layer) { d.selected = l }

// SelectItems sets the table-of-contents multi-selection.
func (d *Document) SelectItems(ls ...host.Layer) { d.items = ls }

// Map is a data frame.
type Map struct {
	name     string
	sr       host.SpatialReference
	layers   []host.Layer
	graphics *Composite
	active   *GraphicsLayer
	view     *View
}

// NewMap returns an empty map in sr. Its map units are sr's unit.
func NewMap(name string, sr host.SpatialReference) *Map {
	return &Map{
		name:     name,
		sr:       sr,
		graphics: NewComposite(),
		active:   NewGraphicsLayer("<Default>"),
		view:     &View{extent: orb.Bound{Min: orb.Point{-1000, -1000}, Max: orb.Point{1000, 1000}}},
	}
}

// With appends layers and returns m.
func (m *Map) With(ls ...host.Layer) *Map {
	m.layers = append(m.layers, ls...)
	return m
}

func (m *Map) Name() string                            { return m.name }
func (m *Map) SetName(name string)                     { m.name = name }
func (m *Map) SpatialReference() host.SpatialReference { return m.sr }
func (m *Map) MapUnits() host.Unit                     { return m.sr.Unit }
func (m *Map) Count() int                              { return len(m.layers) }
func (m *Map) BasicGraphics() host.CompositeGraphics   { return m.graphics }
func (m *Map) ActiveGraphics() host.GraphicsSelection  { return m.active }
func (m *Map) View() host.View                         { return m.view }

func (m *Map) Layer(i int) host.Layer {
	if i < 0 || i >= len(m.layers) {
		return nil
	}
	return m.layers[i]
}

// AddLayer inserts l at the top of the map.
func (m *Map) AddLayer(l host.Layer) error {
	if l == nil {
		return fmt.Errorf("memhost: nil layer")
	}
	m.layers = append([]host.Layer{l}, m.layers...)
	return nil
}

// RemoveLayer removes the top-level layer at i, as a user deleting it would.
func (m *Map) RemoveLayer(i int) {
	m.layers = append(m.layers[:i], m.layers[i+1:]...)
}

// Graphics returns the concrete composite graphics.
func (m *Map) Graphics() *Composite { return m.graphics }

// Active returns the concrete active graphics layer.
func (m *Map) Active() *GraphicsLayer { return m.active }

// MapView returns the concrete view.
func (m *Map) MapView() *View { return m.view }

// Layer is a layer without feature queries, such as a raster.
type Layer struct {
	name string
}

// NewLayer returns a plain layer.
func NewLayer(name string) *Layer { return &Layer{name: name} }

func (l *Layer) Name() string        { return l.name }
func (l *Layer) SetName(name string) { l.name = name }

// Group is a group layer.
type Group struct {
	name   string
	layers []host.Layer
}

// NewGroup returns a group holding children.
func NewGroup(name string, children ...host.Layer) *Group {
	return &Group{name: name, layers: children}
}

func (g *Group) Name() string        { return g.name }
func (g *Group) SetName(name string) { g.name = name }
func (g *Group) Count() int          { return len(g.layers) }

func (g *Group) Layer(i int) host.Layer {
	if i < 0 || i >= len(g.layers) {
		return nil
	}
	return g.layers[i]
}

// Add appends children.
func (g *Group) Add(ls ...host.Layer) { g.layers = append(g.layers, ls...) }

// View is a map display.
type View struct {
	extent           orb.Bound
	refreshes        int
	graphicsRefreshes int
}

func (v *View) Extent() orb.Bound     { return v.extent }
func (v *View) SetExtent(b orb.Bound) { v.extent = b }
func (v *View) Refresh()              { v.refreshes++ }
func (v *View) RefreshGraphics()      { v.graphicsRefreshes++ }

// Refreshes returns how many full and graphics-only refreshes were requested.
func (v *View) Refreshes() (full, graphics int) { return v.refreshes, v.graphicsRefreshes }
