// Package api exposes a [controller.Controller] over HTTP.
//
// The bridge lets an out-of-process client (a GPS feed, a script) drive the
// attached host document with JSON requests. Every request runs under one
// mutex: the host object model is single-threaded and the controller keeps
// breadcrumb state between calls.
//
// # Routes
//
//	GET    /health                   attachment and build information
//	GET    /layers                   selection-aware feature layer listing
//	GET    /layers/all               every feature layer of the focus map
//	GET    /layers/data              ?address=1-0&fields=NAME,DEPTH
//	GET    /graphics                 active graphics layer as a table
//	POST   /graphics                 draw the geometries of a table
//	POST   /gps/point                {"lat","lon","heading","breadcrumbs"}
//	POST   /gps/cep                  {"lat","lon","radii"}
//	DELETE /gps/graphics             drop the scratch graphics layer
//	DELETE /gps/graphics/{id}        delete one graphic
//	POST   /display/refresh          optional {"lat","lon","percent"}
//
// Failures are written as {"error": message, "code": code} with a status
// derived from the error code.
package api
