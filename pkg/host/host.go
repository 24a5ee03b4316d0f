package host

import (
	"errors"

	"github.com/paulmach/orb"
)

// ErrNotFound is returned by host lookups (for example a named graphics
// layer) when nothing matches.
var ErrNotFound = errors.New("host: not found")

// Application is one running instance of the host application.
type Application interface {
	// Caption is the title of the application's main window.
	Caption() string
	// Visible reports whether the application window is shown.
	Visible() bool
	// Document returns the currently active document.
	Document() (Document, error)
	// Factory creates host objects (elements, groups) for this instance.
	Factory() Factory
	// Projector reprojects shapes between spatial references.
	Projector() Projector
	// Units converts distances between linear units.
	Units() UnitConverter
	// DataSources opens external data sets as layers.
	DataSources() DataSources
	// Shutdown closes the application.
	Shutdown() error
}

// DocumentStarter is implemented by applications that can replace the
// active document with a new, empty one.
type DocumentStarter interface {
	NewDocument() error
}

// Document is a host map document: one or more maps (data frames), one of
// which has focus.
type Document interface {
	MapCount() int
	Map(i int) Map
	FocusMap() Map
	// SelectedLayer is the layer highlighted in the table of contents, or nil.
	SelectedLayer() Layer
	// SelectedItems is the table-of-contents multi-selection (may be empty).
	SelectedItems() []Layer
}

// Container is anything that holds an ordered list of child layers.
type Container interface {
	Count() int
	Layer(i int) Layer
}

// Map is a data frame: a named, top-level layer container with its own
// coordinate system and graphics.
type Map interface {
	Container
	Name() string
	SpatialReference() SpatialReference
	MapUnits() Unit
	// BasicGraphics is the set of named graphics layers in the map.
	BasicGraphics() CompositeGraphics
	// ActiveGraphics is the graphics layer the user is currently editing.
	ActiveGraphics() GraphicsSelection
	View() View
	AddLayer(l Layer) error
}

// Layer is any node in the layer tree.
type Layer interface {
	Name() string
}

// GroupLayer is a layer that contains other layers.
type GroupLayer interface {
	Layer
	Container
}

// FeatureLayer is a layer that supports feature queries.
type FeatureLayer interface {
	Layer
	Fields() []Field
	ShapeField() string
	SpatialReference() SpatialReference
	// SelectionCount is the number of currently selected features.
	SelectionCount() int
	SearchSelection() (Cursor, error)
	// DisplayCount is the number of features in the displayed feature class.
	DisplayCount() int
	SearchDisplay() (Cursor, error)
}

// Cursor iterates rows of a feature query. Next returns io.EOF after the
// last row. Row values are ordered like [FeatureLayer.Fields]; the geometry
// field holds a [Shape].
type Cursor interface {
	Next() ([]any, error)
	Close() error
}

// View is the drawable surface of a map.
type View interface {
	Extent() orb.Bound
	SetExtent(b orb.Bound)
	// Refresh redraws everything.
	Refresh()
	// RefreshGraphics redraws only the graphics phase.
	RefreshGraphics()
}

// GraphicsContainer holds graphic elements.
type GraphicsContainer interface {
	Elements() []Element
	AddElement(e Element) error
	DeleteElement(e Element) error
}

// GraphicsSelection is a graphics container with a selection.
type GraphicsSelection interface {
	GraphicsContainer
	SelectedElements() []Element
	SelectAll()
	UnselectAll()
}

// CompositeGraphics manages the named graphics layers of a map.
// FindLayer and DeleteLayer return ErrNotFound when the name is unknown.
type CompositeGraphics interface {
	FindLayer(name string) (GraphicsContainer, error)
	AddLayer(name string) (GraphicsContainer, error)
	DeleteLayer(name string) error
}

// Element is one graphic on a graphics layer.
type Element interface {
	Kind() ElementKind
	Shape() Shape
	SetShape(s Shape) error
	// Symbol returns a copy of the element's symbol; changes take effect
	// only through SetSymbol.
	Symbol() Symbol
	SetSymbol(s Symbol) error
}

// GroupElement is an element composed of other elements.
type GroupElement interface {
	Element
	Children() []Element
}

// Factory creates host objects.
type Factory interface {
	NewElement(kind ElementKind, shape Shape, sym Symbol) (Element, error)
	NewGroup(children []Element) (GroupElement, error)
}

// Projector reprojects shapes. Project returns the input unchanged when
// either the shape's or the target's reference is undefined. A result for
// which IsEmpty reports true means the location is undefined in the target
// frame.
type Projector interface {
	Project(s Shape, to SpatialReference) (Shape, error)
}

// UnitConverter converts linear distances.
type UnitConverter interface {
	Convert(v float64, from, to Unit) (float64, error)
}

// DataSetKind describes how to interpret a workspace string.
type DataSetKind int

const (
	// Shapefile workspaces are paths to a folder of shapefiles.
	Shapefile DataSetKind = iota
	// FileGeodatabase workspaces are paths to a .gdb folder.
	FileGeodatabase
	// SdeConnectionString workspaces are semicolon separated name=value pairs.
	SdeConnectionString
)

func (k DataSetKind) String() string {
	switch k {
	case Shapefile:
		return "shapefile"
	case FileGeodatabase:
		return "filegdb"
	case SdeConnectionString:
		return "sde"
	}
	return "unknown"
}

// ParseDataSetKind parses the String form of a DataSetKind.
func ParseDataSetKind(s string) (DataSetKind, bool) {
	for _, k := range []DataSetKind{Shapefile, FileGeodatabase, SdeConnectionString} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// DataSources opens data sets as layers ready to add to a map.
type DataSources interface {
	Open(kind DataSetKind, workspace, dataset string) (Layer, error)
}
