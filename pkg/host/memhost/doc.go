// Package memhost is an in-memory implementation of the host object model.
//
// It backs the test suites, the CLI's --fixture mode and the HTTP bridge
// demo. Documents are assembled with the builder helpers ([NewMap],
// [NewGroup], [NewFeatureLayer], ...) or loaded from a YAML fixture with
// [LoadFixture].
//
// # Projection
//
// The projector treats every projected reference as spherical Web
// Mercator expressed in the reference's linear unit. Latitudes beyond the
// Mercator limit project to an empty shape, which callers read as "this
// location is undefined on the map".
//
// memhost values are not safe for concurrent use.
package memhost
