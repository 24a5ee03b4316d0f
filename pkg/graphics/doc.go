// Package graphics draws and retires the overlay graphics dnrgps owns.
//
// All graphics live on a scratch graphics layer in the focus map, found by
// name on every call and created when missing. It is never cached: the host
// user can delete it, or switch the focus map, at any time.
//
// # Identifiers
//
// Every tagged graphic gets the next [GraphicID]. Ids are tracked in a
// [Tags] side table, which maps ids to host elements without owning them.
// Deleting by id scans the live scratch layer, so a graphic the user
// already removed is simply not found.
//
// # Breadcrumbs
//
// [Engine.DrawPoint] keeps one current GPS marker. What happens to the
// previous position depends on the [Breadcrumbs] mode:
//
//	None          the marker moves; no new graphic, no new id
//	SmallSymbols  a new marker is created; the old one shrinks and recolors
//	Lines         a track segment joins the old and new positions and the
//	              marker moves; the segment takes the marker's old id and
//	              the marker the new one
//
// # CEP
//
// [Engine.DrawCEP] draws a circular error probable: a center marker and one
// circle per radius, grouped under a single id.
package graphics
