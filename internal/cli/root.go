package cli

import (
	"context"

	"github.com/dnrgps/dnrgps/pkg/controller"
	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host/memhost"
	"github.com/dnrgps/dnrgps/pkg/locator"
	"github.com/dnrgps/dnrgps/pkg/style"
)

// newLocator returns the instance locator for this run. With --fixture the
// host is the simulated document; otherwise the platform process list is
// scanned.
func (c *CLI) newLocator() (*locator.Locator, error) {
	if c.fixturePath != "" {
		app, err := memhost.LoadFixture(c.fixturePath)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using simulated host", "fixture", c.fixturePath, "caption", app.Caption())
		return locator.NewSimulated(c.process, c.Logger, app), nil
	}
	return locator.New(locator.NewSystem(), nil, c.process, c.Logger), nil
}

// attach binds a controller to the frontmost instance's active document.
func (c *CLI) attach(ctx context.Context) (*controller.Controller, error) {
	loc, err := c.newLocator()
	if err != nil {
		return nil, err
	}
	ctl, ok := controller.Attach(ctx, loc, c.Logger)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotAttached, "no running %s instance with an open document", c.process)
	}
	ctl.LoadStyle = c.loadStyle
	return ctl, nil
}

// loadStyle reads the resolved style file, or returns the built-in style.
func (c *CLI) loadStyle() (*style.Defaults, error) {
	path := c.stylePath()
	if path == "" {
		return style.Default(), nil
	}
	c.Logger.Debug("loading style", "path", path)
	return style.Load(path)
}
