package controller

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/featuretable"
	"github.com/dnrgps/dnrgps/pkg/graphics"
	"github.com/dnrgps/dnrgps/pkg/host"
	"github.com/dnrgps/dnrgps/pkg/locator"
	"github.com/dnrgps/dnrgps/pkg/style"
)

// Controller drives one attached host document.
//
// A Controller is not safe for concurrent use; callers serialize access.
type Controller struct {
	Session *host.Session
	Logger  *log.Logger

	// Breadcrumbs is the trail mode used by DrawPoint.
	Breadcrumbs graphics.Breadcrumbs

	// LoadStyle builds the drawing style on first use. When nil the
	// built-in defaults are used.
	LoadStyle func() (*style.Defaults, error)

	style  *style.Defaults
	engine *graphics.Engine
	codec  *featuretable.Codec
}

// New binds a controller to s. If logger is nil, log.Default() is used.
func New(s *host.Session, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	eng := graphics.New(s, logger)
	return &Controller{
		Session: s,
		Logger:  logger.WithPrefix("controller"),
		engine:  eng,
		codec:   featuretable.New(s, eng, logger),
	}
}

// Attach binds a controller to the active document of the frontmost
// instance found by loc. It reports false when no instance is running,
// the instance cannot be bridged, or it has no open document.
func Attach(ctx context.Context, loc *locator.Locator, logger *log.Logger) (*Controller, bool) {
	app, ok := loc.Top(ctx)
	if !ok {
		return nil, false
	}
	s, err := host.NewSession(app)
	if err != nil {
		loc.Logger.Debug("instance has no document", "caption", app.Caption(), "err", err)
		return nil, false
	}
	return New(s, logger), true
}

// Attached reports whether a document is bound.
func (c *Controller) Attached() bool {
	return c != nil && c.Session != nil && c.Session.Document != nil
}

func (c *Controller) check() error {
	if !c.Attached() {
		return errors.New(errors.ErrCodeNotAttached, "no document is attached")
	}
	return nil
}

func (c *Controller) focusMap() (host.Map, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	m := c.Session.FocusMap()
	if m == nil {
		return nil, errors.New(errors.ErrCodeNotAttached, "document has no focus map")
	}
	return m, nil
}

// Style returns the drawing style, building it on first use.
func (c *Controller) Style() (*style.Defaults, error) {
	if c.style != nil {
		return c.style, nil
	}
	d := style.Default()
	if c.LoadStyle != nil {
		loaded, err := c.LoadStyle()
		if err != nil {
			return nil, err
		}
		d = loaded
	}
	c.style = d
	return d, nil
}

// SetStyle replaces the drawing style. Graphics already drawn keep theirs.
func (c *Controller) SetStyle(d *style.Defaults) error {
	if err := d.Validate(); err != nil {
		return err
	}
	c.style = d
	return nil
}

// Engine returns the graphics engine.
func (c *Controller) Engine() *graphics.Engine { return c.engine }

// SetProgress installs a progress callback for table reads and writes.
func (c *Controller) SetProgress(fn featuretable.ProgressFunc) { c.codec.Progress = fn }
