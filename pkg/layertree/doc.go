// Package layertree locates layers inside a host document's layer tree.
//
// A document holds maps, maps hold layers, and group layers hold further
// layers to any depth. The host user can rename, reorder or delete any of
// them between two calls, so nothing here caches a resolved node: every
// function re-walks the live tree.
//
// # Addresses
//
// An [Address] is a path of child indices, written "2-0-1" for interchange.
// Each index is relative to its parent container. [Resolve] walks an
// address down from a root and [AddressOf] finds the address of a layer by
// identity.
//
// # Qualified names
//
// A qualified name is the human-readable path "Dataframe:Group/Sub/Leaf".
// The dataframe prefix only appears when the document has two or more
// maps. Names are not unique; when resolving a name the first match wins.
//
// # Roots
//
// Functions take a [host.Container] root. Pass a map to address layers
// within it, or [Root] of a document to address across all of its maps.
package layertree
