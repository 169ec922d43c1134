package graph

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/geometry"
)

func TestKeyCanonical(t *testing.T) {
	assert.Equal(t, EdgeKey{U: 1, V: 4}, Key(4, 1))
	assert.Equal(t, Key(1, 4), Key(4, 1))
	assert.Equal(t, "(1, 4)", Key(4, 1).String())
}

func TestAddEdgeByVertexSymmetric(t *testing.T) {
	pairs := [][2]geometry.Vertex{
		{geometry.V2(0, 0), geometry.V2(1, 0)},
		{geometry.V2(-3.5, 2), geometry.V2(7, 7)},
		{geometry.V3(1, 2, 3), geometry.V3(3, 2, 1)},
	}

	for _, p := range pairs {
		ab := New("ab", "test")
		require.NoError(t, ab.AddEdgeByVertex(p[0], p[1]))
		ba := New("ba", "test")
		require.NoError(t, ba.AddEdgeByVertex(p[1], p[0]))

		ia0, _ := ab.VertexIndex(p[0])
		ia1, _ := ab.VertexIndex(p[1])
		ib0, _ := ba.VertexIndex(p[0])
		ib1, _ := ba.VertexIndex(p[1])

		require.Len(t, ab.Edges(), 1)
		require.Len(t, ba.Edges(), 1)
		assert.Equal(t, Key(ia0, ia1), ab.Edges()[0].EdgeKey)
		assert.Equal(t, Key(ib0, ib1), ba.Edges()[0].EdgeKey)
		assert.True(t, ab.HasEdge(ia1, ia0))

		// Within one graph both orientations hit the same key.
		err := ab.AddEdgeByVertex(p[1], p[0])
		assert.True(t, errors.Is(err, errors.ErrCodeDuplicateEdge), "got %v", err)
	}
}

func TestSelfLoopDropped(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	g := New("loops", "test", WithLogger(logger))

	a := geometry.V2(1, 1)
	require.NoError(t, g.AddEdgeByVertex(a, a))
	require.NoError(t, g.AddEdgeByVertex(a, geometry.V2(1, 1)))

	i := g.AddVertex(geometry.V2(2, 2))
	require.NoError(t, g.AddEdgeByIndex(i, i))

	assert.Zero(t, g.EdgeCount())
	assert.Equal(t, 2, g.VertexCount())
	assert.Equal(t, 3, g.DroppedLoops())
	assert.Contains(t, buf.String(), "dropping self-loop")
}

func TestDuplicateEdge(t *testing.T) {
	g := New("dups", "test")
	a, b := geometry.V2(0, 0), geometry.V2(1, 0)

	require.NoError(t, g.AddEdgeByVertex(a, b, WithWeight(2)))
	err := g.AddEdgeByVertex(b, a)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDuplicateEdge))

	// The failed insert left the first record alone.
	attrs, ok := g.Edge(0, 1)
	require.True(t, ok)
	assert.Equal(t, 2.0, attrs.EffectiveWeight())
}

func TestAllowDuplicateOverwrites(t *testing.T) {
	g := New("dups", "test")
	a, b, c := geometry.V2(0, 0), geometry.V2(1, 0), geometry.V2(1, 1)

	require.NoError(t, g.AddEdgeByVertex(a, b, WithWeight(2)))
	require.NoError(t, g.AddEdgeByVertex(b, c))
	require.NoError(t, g.AddEdgeByVertex(b, a, AllowDuplicate(), WithWeightAdditive(0.5)))

	edges := g.Edges()
	require.Len(t, edges, 2)
	assert.Equal(t, Key(0, 1), edges[0].EdgeKey, "overwritten edge keeps its position")
	assert.Nil(t, edges[0].Attrs.Weight, "later record replaces the earlier one")
	assert.Equal(t, 0.5, edges[0].Attrs.EffectiveWeightAdditive())
}

func TestAddEdgeByIndexOutOfRange(t *testing.T) {
	g := New("range", "test")
	g.AddVertex(geometry.V2(0, 0))

	for _, tc := range [][2]int{{0, 1}, {-1, 0}, {3, 3}} {
		err := g.AddEdgeByIndex(tc[0], tc[1])
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "%v: %v", tc, err)
	}
	assert.Zero(t, g.DroppedLoops())
}

func TestEffectiveAttributes(t *testing.T) {
	var a EdgeAttrs
	assert.Equal(t, DefaultWeight, a.EffectiveWeight())
	assert.Equal(t, DefaultWeightAdditive, a.EffectiveWeightAdditive())

	w, wa := 3.0, -1.0
	a = EdgeAttrs{Weight: &w, WeightAdditive: &wa}
	assert.Equal(t, 3.0, a.EffectiveWeight())
	assert.Equal(t, -1.0, a.EffectiveWeightAdditive())
}

func TestVerticesAndDim(t *testing.T) {
	g := New("dim", "test")
	assert.Zero(t, g.Dim())

	g.AddVertex(geometry.V3(0, 0, 1))
	g.AddVertex(geometry.V3(0, 0, 2))
	g.AddVertex(geometry.V3(0, 0, 1))

	assert.Equal(t, 3, g.Dim())
	assert.Equal(t, []geometry.Vertex{geometry.V3(0, 0, 1), geometry.V3(0, 0, 2)}, g.Vertices())
	assert.Equal(t, geometry.Vertex(geometry.V3(0, 0, 2)), g.Vertex(1))
	assert.Equal(t, []int{0, 1}, g.Isolated())
}

func TestEdgeMapIsCopy(t *testing.T) {
	g := New("copy", "test")
	require.NoError(t, g.AddEdgeByVertex(geometry.V2(0, 0), geometry.V2(0, 1)))

	m := g.EdgeMap()
	delete(m, Key(0, 1))
	assert.True(t, g.HasEdge(0, 1))
}
