// Package host describes the object model of the desktop mapping
// application that dnrgps drives.
//
// The host owns every object reachable through these interfaces. Layers,
// graphics, selections and documents may be renamed, reordered or deleted
// by the interactive user between any two calls, so callers re-read live
// state through the interfaces on every operation and never cache resolved
// objects.
//
// # Capabilities
//
// Distinctions the host expresses through runtime type (group versus leaf
// layer, feature versus non-feature layer, point versus polygon geometry)
// are capability checks here:
//
//	if fl, ok := layer.(host.FeatureLayer); ok {
//	    // layer supports feature queries
//	}
//
//	switch host.KindOf(shape.Geometry) {
//	case host.KindPoint:
//	case host.KindPolygon:
//	}
//
// # Geometry
//
// Shapes carry an [orb.Geometry] tagged with a [SpatialReference]. True
// circular arcs, which have no linear representation, are carried in
// [Shape.Circle]. Reprojection is delegated to the host's [Projector].
//
// [orb.Geometry]: https://pkg.go.dev/github.com/paulmach/orb#Geometry
package host
