package graphics

import (
	"context"
	stderrors "errors"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
	"github.com/dnrgps/dnrgps/pkg/observability"
	"github.com/dnrgps/dnrgps/pkg/style"
)

// Engine owns the graphic lifecycle state of one controller: the id
// counter, the id tags and the current GPS marker.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	Session *host.Session
	Logger  *log.Logger

	tags   *Tags
	lastID GraphicID
	marker host.Element
}

// New creates an engine drawing into s. If logger is nil, log.Default() is used.
func New(s *host.Session, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		Session: s,
		Logger:  logger.WithPrefix("graphics"),
		tags:    NewTags(),
	}
}

// Tags returns the id side table.
func (e *Engine) Tags() *Tags { return e.tags }

// NextID returns the id the next tagged graphic will receive.
func (e *Engine) NextID() GraphicID { return e.lastID + 1 }

// Marker returns the id of the current GPS marker.
func (e *Engine) Marker() (GraphicID, bool) {
	if e.marker == nil {
		return 0, false
	}
	return e.tags.IDOf(e.marker)
}

func (e *Engine) focusMap() (host.Map, error) {
	m := e.Session.FocusMap()
	if m == nil {
		return nil, errors.New(errors.ErrCodeNotAttached, "no focus map")
	}
	return m, nil
}

// findScratch returns the scratch layer, or nil when it does not exist.
func (e *Engine) findScratch(m host.Map, d *style.Defaults) (host.GraphicsContainer, error) {
	if err := errors.ValidateLayerName(d.GraphicsLayerName); err != nil {
		return nil, err
	}
	gc, err := m.BasicGraphics().FindLayer(d.GraphicsLayerName)
	if stderrors.Is(err, host.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayerUnavailable, err, "find graphics layer %q", d.GraphicsLayerName)
	}
	return gc, nil
}

// Scratch finds the scratch graphics layer of the focus map, creating it
// when missing.
func (e *Engine) Scratch(ctx context.Context, d *style.Defaults) (host.GraphicsContainer, error) {
	m, err := e.focusMap()
	if err != nil {
		return nil, err
	}
	gc, err := e.findScratch(m, d)
	if err != nil {
		return nil, err
	}
	e.prune(d)
	if gc != nil {
		return gc, nil
	}
	gc, err = m.BasicGraphics().AddLayer(d.GraphicsLayerName)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayerUnavailable, err, "create graphics layer %q", d.GraphicsLayerName)
	}
	if gc == nil {
		return nil, errors.New(errors.ErrCodeLayerUnavailable, "unable to create graphics layer %q", d.GraphicsLayerName)
	}
	e.Logger.Debug("created graphics layer", "name", d.GraphicsLayerName, "map", m.Name())
	observability.Graphics().OnScratchLayerCreated(ctx, d.GraphicsLayerName)
	return gc, nil
}

// add tags el with the next id and puts it on gc.
func (e *Engine) add(ctx context.Context, gc host.GraphicsContainer, el host.Element) (GraphicID, error) {
	e.lastID++
	id := e.lastID
	e.tags.Set(id, el)
	if err := gc.AddElement(el); err != nil {
		e.tags.Forget(el)
		return 0, errors.Wrap(errors.ErrCodeLayerUnavailable, err, "add graphic %d", id)
	}
	e.Logger.Debug("graphic created", "id", id, "kind", el.Kind())
	observability.Graphics().OnGraphicCreated(ctx, int(id), el.Kind().String())
	return id, nil
}

// Clear deletes the graphic tagged id from the scratch layer. Unknown ids,
// graphics the user already deleted and a missing scratch layer are all
// no-ops.
func (e *Engine) Clear(ctx context.Context, d *style.Defaults, id GraphicID) error {
	m, err := e.focusMap()
	if err != nil {
		return err
	}
	gc, err := e.findScratch(m, d)
	if err != nil || gc == nil {
		return err
	}
	return e.clear(ctx, gc, id)
}

// ClearIDs deletes each id in turn.
func (e *Engine) ClearIDs(ctx context.Context, d *style.Defaults, ids []GraphicID) error {
	if len(ids) == 0 {
		return nil
	}
	m, err := e.focusMap()
	if err != nil {
		return err
	}
	gc, err := e.findScratch(m, d)
	if err != nil || gc == nil {
		return err
	}
	for _, id := range ids {
		if err := e.clear(ctx, gc, id); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) clear(ctx context.Context, gc host.GraphicsContainer, id GraphicID) error {
	for _, el := range gc.Elements() {
		if tag, ok := e.tags.IDOf(el); !ok || tag != id {
			continue
		}
		if err := gc.DeleteElement(el); err != nil && !stderrors.Is(err, host.ErrNotFound) {
			return errors.Wrap(errors.ErrCodeLayerUnavailable, err, "delete graphic %d", id)
		}
		e.tags.Forget(el)
		if el == e.marker {
			e.marker = nil
		}
		e.Logger.Debug("graphic deleted", "id", id)
		observability.Graphics().OnGraphicDeleted(ctx, int(id))
		return nil
	}
	return nil
}

// ClearAll drops the whole scratch layer, forgets the current marker and
// restarts ids, then redraws the map.
func (e *Engine) ClearAll(ctx context.Context, d *style.Defaults) error {
	m, err := e.focusMap()
	if err != nil {
		return err
	}
	if err := errors.ValidateLayerName(d.GraphicsLayerName); err != nil {
		return err
	}
	if err := m.BasicGraphics().DeleteLayer(d.GraphicsLayerName); err != nil && !stderrors.Is(err, host.ErrNotFound) {
		return errors.Wrap(errors.ErrCodeLayerUnavailable, err, "delete graphics layer %q", d.GraphicsLayerName)
	}
	e.marker = nil
	e.lastID = 0
	e.tags.Reset()
	m.View().Refresh()
	e.Logger.Debug("graphics cleared", "layer", d.GraphicsLayerName)
	observability.Graphics().OnCleared(ctx)
	return nil
}

// prune forgets the tags of graphics that are on no map's scratch layer,
// such as ones the user deleted by hand. Nothing is pruned when any scratch
// layer cannot be read.
func (e *Engine) prune(d *style.Defaults) {
	if e.tags.Len() == 0 {
		return
	}
	doc := e.Session.Document
	live := make(map[host.Element]bool, e.tags.Len())
	for i, n := 0, doc.MapCount(); i < n; i++ {
		gc, err := e.findScratch(doc.Map(i), d)
		if err != nil {
			return
		}
		if gc == nil {
			continue
		}
		for _, el := range gc.Elements() {
			live[el] = true
		}
	}
	if n := e.tags.Retain(func(el host.Element) bool { return live[el] }); n > 0 {
		e.Logger.Debug("forgot deleted graphics", "count", n)
	}
}

// onLayer reports whether el is still on gc.
func onLayer(gc host.GraphicsContainer, el host.Element) bool {
	return slices.Contains(gc.Elements(), el)
}
