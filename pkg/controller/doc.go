// Package controller is the facade an external client drives: one
// [Controller] per attached host document.
//
// A controller composes the layer tree, graphics and feature table
// packages over a single [host.Session]. Every operation first checks that
// a document is attached and fails with NOT_ATTACHED otherwise. The only
// state a controller owns is its drawing style, created on first use, and
// the GPS breadcrumb state held by its graphics engine; everything else is
// read from the live host on each call.
//
// [Attach] is the attach step: it locates the frontmost host instance and
// binds a controller to that instance's active document.
package controller
