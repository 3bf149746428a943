// Package dataio saves a graph.Graph into a container group and loads it
// back.
//
// Each node variant has one strategy. Group-like variants are built from
// layers: a layer first runs its base layer and then reopens the node's
// own group to read or write the attributes it owns, so an image geometry
// runs the base group, geometry, grid and image layers in that order
// against the same group. Leaf variants (arrays, scalars, strings and
// neighbor lists) are datasets.
//
// Loading is two-phase. Every node is constructed with its stored id and
// its attributes are read; role slots are only recorded. Once the whole
// hierarchy has been read the recorded slots are resolved against the
// graph. A slot whose target never loaded is left absent and reported as a
// warning rather than an error.
//
//	if err := dataio.Write(ctx, g, grp); err != nil { ... }
//	g, warnings, err := dataio.Read(ctx, grp)
//
// Failures carry a result.Code from the family of the step that failed.
package dataio
