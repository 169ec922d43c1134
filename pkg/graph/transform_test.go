package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/geometry"
)

func square(t *testing.T) *Graph {
	t.Helper()
	g := New("square", "test")
	pts := []geometry.Vec2{geometry.V2(0, 0), geometry.V2(1, 0), geometry.V2(1, 1), geometry.V2(0, 1)}
	for i := range pts {
		require.NoError(t, g.AddEdgeByVertex(pts[i], pts[(i+1)%len(pts)]))
	}
	return g
}

func TestRandomizeWeightsDegenerate(t *testing.T) {
	for _, seed := range []uint64{0, 1, 42, 1 << 40} {
		g := square(t)
		require.NoError(t, g.RandomizeWeights(NewRand(seed), WeightRange{Lower: 1, Upper: 1}))
		for _, e := range g.Edges() {
			require.NotNil(t, e.Attrs.Weight)
			assert.Equal(t, "1.0", geometry.FormatFloat(*e.Attrs.Weight))
		}
	}
}

func TestRandomizeWeightsRange(t *testing.T) {
	g := square(t)
	require.NoError(t, g.RandomizeWeights(NewRand(7), WeightRange{Lower: 0, Upper: 5}))

	for _, e := range g.Edges() {
		w := e.Attrs.EffectiveWeight()
		assert.GreaterOrEqual(t, w, 0.0)
		assert.LessOrEqual(t, w, 5.0)
		assert.NotZero(t, w)
	}
}

func TestRandomizeWeightsDeterministic(t *testing.T) {
	a, b := square(t), square(t)
	r := WeightRange{Lower: 0, Upper: 5}
	require.NoError(t, a.RandomizeWeights(NewRand(42), r))
	require.NoError(t, b.RandomizeWeights(NewRand(42), r))
	assert.Equal(t, a.Edges(), b.Edges())
}

func TestRandomizeWeightsRounding(t *testing.T) {
	g := square(t)
	require.NoError(t, g.RandomizeWeights(NewRand(3), WeightRange{Lower: 0, Upper: 5, Round: true}))

	for _, e := range g.Edges() {
		w := e.Attrs.EffectiveWeight()
		assert.Equal(t, math.Trunc(w), w, "integer valued")
		assert.NotZero(t, w, "zero draws are redrawn")
	}

	g = square(t)
	require.NoError(t, g.RandomizeWeights(NewRand(3), WeightRange{Lower: 0, Upper: 1, Round: true, Digits: 2}))
	for _, e := range g.Edges() {
		w := e.Attrs.EffectiveWeight() * 100
		assert.InDelta(t, math.Round(w), w, 1e-9)
	}
}

func TestRandomizeWeightsErrors(t *testing.T) {
	tests := []struct {
		name string
		r    WeightRange
	}{
		{"inverted range", WeightRange{Lower: 5, Upper: 1}},
		{"negative digits", WeightRange{Lower: 0, Upper: 1, Round: true, Digits: -1}},
		{"always zero", WeightRange{Lower: 0, Upper: 0}},
		{"rounds to zero", WeightRange{Lower: 0, Upper: 0.1, Round: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := square(t)
			before := g.Edges()
			err := g.RandomizeWeights(NewRand(1), tt.r)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)
			assert.Equal(t, before, g.Edges(), "no partial update")
		})
	}

	g := square(t)
	assert.Error(t, g.RandomizeWeights(nil, WeightRange{Lower: 1, Upper: 1}))
}

func TestTransformCoordinates(t *testing.T) {
	g := square(t)
	keys := g.Edges()

	require.NoError(t, g.TransformCoordinates(2))

	assert.Equal(t, []geometry.Vertex{
		geometry.V2(0, 0), geometry.V2(2, 0), geometry.V2(2, 2), geometry.V2(0, 2),
	}, g.Vertices())
	assert.Equal(t, keys, g.Edges(), "indices preserved")
}

func TestTransformCoordinatesMergeToLoop(t *testing.T) {
	g := New("tiny", "test")
	require.NoError(t, g.AddEdgeByVertex(geometry.V2(0, 0), geometry.V2(1e-300, 0)))
	require.NoError(t, g.AddEdgeByVertex(geometry.V2(0, 0), geometry.V2(1, 0)))

	require.NoError(t, g.TransformCoordinates(1e-300))

	assert.Equal(t, 2, g.VertexCount())
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, 1, g.DroppedLoops())
}

func TestTransformCoordinatesMergeToDuplicate(t *testing.T) {
	g := New("tiny", "test")
	a, b, c := geometry.V2(1, 0), geometry.V2(0, 0), geometry.V2(1e-300, 0)
	require.NoError(t, g.AddEdgeByVertex(a, b))
	require.NoError(t, g.AddEdgeByVertex(a, c))

	err := g.TransformCoordinates(1e-300)
	assert.True(t, errors.Is(err, errors.ErrCodeDuplicateEdge), "got %v", err)

	// Unchanged on error.
	assert.Equal(t, []geometry.Vertex{a, b, c}, g.Vertices())
	assert.Equal(t, 2, g.EdgeCount())
}
