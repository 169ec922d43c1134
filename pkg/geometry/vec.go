package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vertex is a coordinate value stored in a graph. Implementations are
// comparable value types, so two vertices are equal exactly when all of
// their components are equal. This is what makes them usable as keys of an
// indexed store.
type Vertex interface {
	// Dim returns the number of components (2 or 3).
	Dim() int
	// Components returns the coordinates in x, y[, z] order.
	Components() []float64
	// Scaled returns the vertex multiplied by f.
	Scaled(f float64) Vertex
	String() string
}

// Vec2 is an immutable 2D point or vector.
type Vec2 r2.Vec

// Vec3 is an immutable 3D point or vector.
type Vec3 r3.Vec

var (
	_ Vertex = Vec2{}
	_ Vertex = Vec3{}
)

// V2 returns the 2D vector (x, y).
func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// V3 returns the 3D vector (x, y, z).
func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec2) r2() r2.Vec { return r2.Vec(v) }

// Dim implements Vertex.
func (Vec2) Dim() int { return 2 }

// Components implements Vertex.
func (v Vec2) Components() []float64 { return []float64{v.X, v.Y} }

// Scaled implements Vertex.
func (v Vec2) Scaled(f float64) Vertex { return v.Mul(f) }

// Add returns v+u.
func (v Vec2) Add(u Vec2) Vec2 { return Vec2(r2.Add(v.r2(), u.r2())) }

// Sub returns v-u.
func (v Vec2) Sub(u Vec2) Vec2 { return Vec2(r2.Sub(v.r2(), u.r2())) }

// Mul returns f*v.
func (v Vec2) Mul(f float64) Vec2 { return Vec2(r2.Scale(f, v.r2())) }

// Dot returns the dot product of v and u.
func (v Vec2) Dot(u Vec2) float64 { return r2.Dot(v.r2(), u.r2()) }

// LenSquared returns the squared euclidean length of v.
func (v Vec2) LenSquared() float64 { return r2.Norm2(v.r2()) }

// Len returns the euclidean length of v.
func (v Vec2) Len() float64 { return r2.Norm(v.r2()) }

// Rotate returns v rotated counterclockwise by alpha radians around center.
func (v Vec2) Rotate(alpha float64, center Vec2) Vec2 {
	return Vec2(r2.Rotate(v.r2(), alpha, center.r2()))
}

func (v Vec2) String() string {
	return fmt.Sprintf("Vec2(%s, %s)", FormatFloat(v.X), FormatFloat(v.Y))
}

func (v Vec3) r3() r3.Vec { return r3.Vec(v) }

// Dim implements Vertex.
func (Vec3) Dim() int { return 3 }

// Components implements Vertex.
func (v Vec3) Components() []float64 { return []float64{v.X, v.Y, v.Z} }

// Scaled implements Vertex.
func (v Vec3) Scaled(f float64) Vertex { return v.Mul(f) }

// Add returns v+u.
func (v Vec3) Add(u Vec3) Vec3 { return Vec3(r3.Add(v.r3(), u.r3())) }

// Sub returns v-u.
func (v Vec3) Sub(u Vec3) Vec3 { return Vec3(r3.Sub(v.r3(), u.r3())) }

// Mul returns f*v.
func (v Vec3) Mul(f float64) Vec3 { return Vec3(r3.Scale(f, v.r3())) }

// Dot returns the dot product of v and u.
func (v Vec3) Dot(u Vec3) float64 { return r3.Dot(v.r3(), u.r3()) }

// LenSquared returns the squared euclidean length of v.
func (v Vec3) LenSquared() float64 { return r3.Norm2(v.r3()) }

// Len returns the euclidean length of v.
func (v Vec3) Len() float64 { return r3.Norm(v.r3()) }

// XY drops the z component.
func (v Vec3) XY() Vec2 { return Vec2{X: v.X, Y: v.Y} }

func (v Vec3) String() string {
	return fmt.Sprintf("Vec3(%s, %s, %s)", FormatFloat(v.X), FormatFloat(v.Y), FormatFloat(v.Z))
}

// Project returns the (x, y) part of any vertex.
func Project(v Vertex) Vec2 {
	switch t := v.(type) {
	case Vec2:
		return t
	case Vec3:
		return t.XY()
	}
	c := v.Components()
	return Vec2{X: c[0], Y: c[1]}
}
