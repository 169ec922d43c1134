// Package geometry provides the coordinate values used as graph vertices.
//
// [Vec2] and [Vec3] are thin value types over gonum's spatial/r2 and
// spatial/r3 vectors. Being plain structs of float64 they compare
// component-wise with ==, which is the equality the vertex store relies on
// for deduplication: two loaders that read the same coordinates always end up
// with the same vertex index.
//
// [Affine] models the six-element IPE transform matrix and [FormatFloat]
// renders coordinates and weights for the text formats.
package geometry
