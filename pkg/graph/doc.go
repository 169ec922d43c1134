// Package graph provides the canonical in-memory geometric graph shared by
// all format loaders and writers.
//
// # Model
//
// A [Graph] owns two stores:
//
//   - vertices: 2D or 3D coordinates ([geometry.Vec2], [geometry.Vec3]) in a
//     deduplicating store. Equal coordinates always get the same index, and
//     indices never change while the graph is loaded.
//   - edges: undirected edges keyed by [EdgeKey], the sorted pair of vertex
//     indices, each with optional attributes ([EdgeAttrs]).
//
// Two invariants hold for every graph:
//
//   - No self-loops. An edge whose endpoints resolve to the same index is
//     dropped with a debug diagnostic and counted in [Graph.DroppedLoops].
//   - Unique keys. Inserting an existing key fails with DUPLICATE_EDGE
//     unless the caller passes [AllowDuplicate], in which case the later
//     attributes win.
//
// # Attributes
//
// Edge attributes are optional. An unset weight is not zero; it means the
// format default ([DefaultWeight], [DefaultWeightAdditive]) applies:
//
//	g.AddEdgeByVertex(a, b)                        // weight unset, reads as 1.0
//	g.AddEdgeByVertex(b, c, graph.WithWeight(2.5)) // explicit weight
//
// # Transforms
//
// After loading, a graph may be transformed once before it is written:
// [Graph.TransformCoordinates] scales every vertex and [Graph.RandomizeWeights]
// draws new edge weights from a caller-supplied generator. Pass a generator
// per goroutine; [NewRand] builds a deterministic one from a seed.
package graph
