package graph

import (
	"math"
	"math/rand/v2"

	"github.com/cgalab/format-converter/pkg/errors"
	"github.com/cgalab/format-converter/pkg/geometry"
	"github.com/cgalab/format-converter/pkg/indexed"
)

// maxDraws bounds the redraws of a single weight that keeps rounding to 0.
const maxDraws = 1000

// WeightRange describes how RandomizeWeights draws weights.
type WeightRange struct {
	Lower, Upper float64
	// Round enables rounding to Digits decimal digits, half to even.
	Round  bool
	Digits int
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// RandomizeWeights replaces the weight of every edge with a value drawn
// uniformly from [r.Lower, r.Upper]. A draw that is exactly zero (after
// rounding, if enabled) is rejected and redrawn. Either every edge gets a
// new weight or, on error, none does.
//
// A degenerate range such as [1, 1] sets every weight to exactly that value
// regardless of the generator.
func (g *Graph) RandomizeWeights(rng *rand.Rand, r WeightRange) error {
	if rng == nil {
		return errors.New(errors.ErrCodeInvalidInput, "randomize weights: nil generator")
	}
	if err := errors.ValidateRange(r.Lower, r.Upper); err != nil {
		return err
	}
	if r.Round {
		if err := errors.ValidateDigits(r.Digits); err != nil {
			return err
		}
	}

	weights := make([]float64, len(g.order))
	for i := range weights {
		w, err := drawWeight(rng, r)
		if err != nil {
			return err
		}
		weights[i] = w
	}

	for i, k := range g.order {
		a := g.edges[k]
		a.Weight = ptr(weights[i])
		g.edges[k] = a
	}
	return nil
}

func drawWeight(rng *rand.Rand, r WeightRange) (float64, error) {
	for range maxDraws {
		w := r.Lower + rng.Float64()*(r.Upper-r.Lower)
		if r.Round {
			w = roundTo(w, r.Digits)
		}
		if w != 0 {
			return w, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "no non-zero weight in [%g, %g] after %d draws", r.Lower, r.Upper, maxDraws)
}

func roundTo(f float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.RoundToEven(f*p) / p
}

// TransformCoordinates multiplies every vertex by scale and rebuilds the
// vertex store. Edges are re-inserted in their original order.
//
// Scaling can make distinct vertices coincide, for example when an
// underflow maps tiny coordinates to zero. Such vertices merge; an edge
// between two merged vertices becomes a self-loop and is dropped, and two
// edges that become the same key fail with DUPLICATE_EDGE. On error the
// graph is left unchanged.
func (g *Graph) TransformCoordinates(scale float64) error {
	var vertices indexed.Store[geometry.Vertex]
	remap := make([]int, g.vertices.Len())
	for i, v := range g.vertices.All() {
		remap[i] = vertices.Add(v.Scaled(scale))
	}

	edges := make(map[EdgeKey]EdgeAttrs, len(g.edges))
	order := make([]EdgeKey, 0, len(g.order))
	dropped := 0
	for _, k := range g.order {
		u, v := remap[k.U], remap[k.V]
		if u == v {
			dropped++
			g.logger.Debug("scaling merged edge endpoints, dropping self-loop", "source", g.Source, "edge", k, "scale", scale)
			continue
		}
		nk := Key(u, v)
		if _, exists := edges[nk]; exists {
			return errors.New(errors.ErrCodeDuplicateEdge, "scaling by %g merges edge %s into existing edge %s", scale, k, nk)
		}
		edges[nk] = g.edges[k]
		order = append(order, nk)
	}

	if merged := g.vertices.Len() - vertices.Len(); merged > 0 {
		g.logger.Warn("scaling merged vertices", "source", g.Source, "merged", merged, "scale", scale)
	}
	g.vertices = vertices
	g.edges = edges
	g.order = order
	g.droppedLoops += dropped
	return nil
}
