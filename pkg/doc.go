// Package pkg provides the core libraries for dnrgps.
//
// # Overview
//
// dnrgps drives a running desktop GIS session from the outside: it finds the
// frontmost host instance, addresses layers in its table of contents, draws
// real-time GPS graphics on a scratch layer and moves feature data in and out
// of the map as tables of well-known text. The pkg directory is organized
// into three areas:
//
//  1. Host model - [host] interfaces and the in-memory [host/memhost]
//  2. Domain logic - layer addressing, graphic lifecycle, table codec
//  3. Facade - [controller] and the [locator] that attaches it
//
// # Architecture
//
// The typical data flow through dnrgps:
//
//	Running host instances
//	         ↓
//	    [locator] package (frontmost instance, bridge to its document)
//	         ↓
//	    [controller] package (one attached document)
//	         ↓
//	    [layertree] / [graphics] / [featuretable]
//	         ↓
//	    [table] (JSON, YAML, MessagePack) with [wkt] geometry
//
// # Quick Start
//
// Attach to the frontmost instance and draw a GPS fix:
//
//	import (
//	    "github.com/dnrgps/dnrgps/pkg/controller"
//	    "github.com/dnrgps/dnrgps/pkg/locator"
//	)
//
//	loc := locator.New(locator.NewSystem(), bridge, locator.DefaultProcess, nil)
//	ctl, ok := controller.Attach(ctx, loc, nil)
//	if !ok {
//	    return // no running instance with an open document
//	}
//	id, err := ctl.DrawPoint(ctx, 45.0, -93.0, 90)
//
// Read the selected layer into a table:
//
//	t, err := ctl.LayerData(ctx, "", []string{"NAME"})
//	err = table.Encode(os.Stdout, t, table.JSON)
//
// # Main Packages
//
// [host] - The host object model as Go interfaces: documents, maps, layer
// containers, feature layers and cursors, graphics containers and elements,
// spatial references, units and projection. Optional capabilities are checked
// by type assertion.
//
// [layertree] - Addresses such as "1-0" (group 1, child 0), qualified names
// such as "Hydro/Lakes", and capability searches over the layer tree.
//
// [graphics] - The scratch graphics layer: GPS marker with breadcrumb trails,
// circular error probables, id-based deletion and full clears.
//
// [featuretable] - Feature layers and graphics to and from [table] values.
//
// [style] - Drawing configuration loaded from TOML.
//
// [errors] - Code-carrying errors shared by the library, CLI and HTTP bridge.
//
// [observability] - Hooks for codec, graphics and locator events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/graphics/...           # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [host]: https://pkg.go.dev/github.com/dnrgps/dnrgps/pkg/host
// [host/memhost]: https://pkg.go.dev/github.com/dnrgps/dnrgps/pkg/host/memhost
// [locator]: https://pkg.go.dev/github.com/dnrgps/dnrgps/pkg/locator
// [controller]: https://pkg.go.dev/github.com/dnrgps/dnrgps/pkg/controller
// [layertree]: https://pkg.go.dev/github.com/dnrgps/dnrgps/pkg/layertree
// [graphics]: https://pkg.go.dev/github.com/dnrgps/dnrgps/pkg/graphics
// [featuretable]: https://pkg.go.dev/github.com/dnrgps/dnrgps/pkg/featuretable
// [table]: https://pkg.go.dev/github.com/dnrgps/dnrgps/pkg/table
// [wkt]: https://pkg.go.dev/github.com/dnrgps/dnrgps/pkg/wkt
// [style]: https://pkg.go.dev/github.com/dnrgps/dnrgps/pkg/style
// [errors]: https://pkg.go.dev/github.com/dnrgps/dnrgps/pkg/errors
// [observability]: https://pkg.go.dev/github.com/dnrgps/dnrgps/pkg/observability
package pkg
