// Package featuretable moves data between host feature layers, graphics and
// the generic [table.Table].
//
// # Extraction
//
// [Codec.Extract] reads a feature layer: its current selection when one
// exists, otherwise every displayed feature. Columns come from the layer's
// field schema through a fixed type map ([ColumnTypeOf]), filtered by name
// or alias. The geometry field is always kept and is written as
// well-known text in WGS84.
//
// [Codec.ExtractGraphics] reads the active graphics layer into a
// single-column table. Text graphics are skipped and circles, which have no
// well-known text, become empty geometries.
//
// # Injection
//
// [Codec.Inject] decodes each row's geometry, projects it onto the focus
// map and draws it on the active graphics layer. Rows that cannot be drawn
// are logged and skipped; the rest of the batch continues.
//
// # Progress
//
// Long reads and writes report progress through [Codec.Progress] every
// [ProgressInterval] rows and once more when done.
package featuretable
