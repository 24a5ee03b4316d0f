package controller

import (
	"context"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
	"github.com/dnrgps/dnrgps/pkg/layertree"
	"github.com/dnrgps/dnrgps/pkg/table"
)

// AllFeatureLayers returns every feature layer of the focus map. Addresses
// are relative to the focus map.
func (c *Controller) AllFeatureLayers() ([]layertree.NamedLayer, error) {
	m, err := c.focusMap()
	if err != nil {
		return nil, err
	}
	return layertree.FindByCapability(m, layertree.FeatureQueries), nil
}

// FeatureLayers returns the feature layers the user is pointing at:
//
//   - a selected feature layer: only that layer
//   - a selected group: the feature layers beneath it
//   - a table of contents multi-selection: the feature layers among it
//
// When the selection holds no feature layers, or nothing is selected, every
// feature layer of the focus map is returned.
func (c *Controller) FeatureLayers() ([]layertree.NamedLayer, error) {
	all, err := c.AllFeatureLayers()
	if err != nil {
		return nil, err
	}
	m, _ := c.focusMap()
	doc := c.Session.Document

	var picked []layertree.NamedLayer
	if sel := doc.SelectedLayer(); sel != nil {
		picked = beneath(m, all, sel)
	} else if items := doc.SelectedItems(); len(items) > 0 {
		for _, nl := range all {
			for _, it := range items {
				if it == nl.Layer {
					picked = append(picked, nl)
					break
				}
			}
		}
	}
	if len(picked) == 0 {
		return all, nil
	}
	return picked, nil
}

// beneath returns the layers of all at or under sel.
func beneath(m host.Map, all []layertree.NamedLayer, sel host.Layer) []layertree.NamedLayer {
	at, ok := layertree.AddressOf(m, sel)
	if !ok {
		return nil
	}
	var out []layertree.NamedLayer
	for _, nl := range all {
		if nl.Address.HasPrefix(at) {
			out = append(out, nl)
		}
	}
	return out
}

// Layer resolves address against the focus map. An empty address means the
// layer selected in the table of contents.
func (c *Controller) Layer(address string) (host.Layer, error) {
	m, err := c.focusMap()
	if err != nil {
		return nil, err
	}
	if address == "" {
		sel := c.Session.Document.SelectedLayer()
		if sel == nil {
			return nil, errors.New(errors.ErrCodeLayerNotFound, "no layer is selected")
		}
		return sel, nil
	}
	l, err := layertree.ResolveString(m, address)
	if errors.Is(err, errors.ErrCodeIndexOutOfRange) {
		return nil, errors.Wrap(errors.ErrCodeLayerNotFound, err, "no layer at %q", address)
	}
	return l, err
}

// LayerData extracts the layer at address (see [Controller.Layer]) keeping
// the fields named in fields.
func (c *Controller) LayerData(ctx context.Context, address string, fields []string) (*table.Table, error) {
	l, err := c.Layer(address)
	if err != nil {
		return nil, err
	}
	return c.codec.Extract(ctx, l, fields)
}

// LoadDataSet opens a data set and adds it to the focus map.
func (c *Controller) LoadDataSet(kind host.DataSetKind, workspace, dataset string) (host.Layer, error) {
	m, err := c.focusMap()
	if err != nil {
		return nil, err
	}
	if c.Session.Sources == nil {
		return nil, errors.New(errors.ErrCodeUnsupported, "host cannot open data sets")
	}
	l, err := c.Session.Sources.Open(kind, workspace, dataset)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s %q in %q", kind, dataset, workspace)
	}
	if err := m.AddLayer(l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayerUnavailable, err, "add %q to map %q", l.Name(), m.Name())
	}
	m.View().Refresh()
	c.Logger.Info("loaded data set", "kind", kind, "dataset", dataset, "layer", l.Name())
	return l, nil
}
