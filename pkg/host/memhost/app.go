package memhost

import (
	"github.com/dnrgps/dnrgps/pkg/host"
)

// App is a simulated host application instance.
type App struct {
	caption  string
	visible  bool
	doc      *Document
	sources  *Sources
	shutdown bool

	// NewDocuments counts calls to NewDocument.
	NewDocuments int
}

// NewApp returns a visible application showing doc. doc may be nil.
func NewApp(caption string, doc *Document) *App {
	return &App{caption: caption, visible: true, doc: doc, sources: NewSources()}
}

func (a *App) Caption() string { return a.caption }
func (a *App) Visible() bool   { return a.visible && !a.shutdown }

// SetVisible shows or hides the main window.
func (a *App) SetVisible(v bool) { a.visible = v }

// Document returns the active document, or host.ErrNotFound when none is open.
func (a *App) Document() (host.Document, error) {
	if a.doc == nil || a.shutdown {
		return nil, host.ErrNotFound
	}
	return a.doc, nil
}

// SetDocument replaces the active document. nil closes it.
func (a *App) SetDocument(d *Document) { a.doc = d }

// ActiveDocument returns the concrete active document, or nil.
func (a *App) ActiveDocument() *Document { return a.doc }

func (a *App) Factory() host.Factory         { return Factory{} }
func (a *App) Projector() host.Projector     { return Projector{} }
func (a *App) Units() host.UnitConverter     { return Units{} }
func (a *App) DataSources() host.DataSources { return a.sources }
func (a *App) Sources() *Sources             { return a.sources }
func (a *App) IsShutdown() bool              { return a.shutdown }
func (a *App) Shutdown() error               { a.shutdown = true; return nil }

// NewDocument replaces the active document with one holding a single empty
// map.
func (a *App) NewDocument() error {
	a.doc = NewDocument(NewMap("Layers", host.SpatialReference{}))
	a.NewDocuments++
	return nil
}
