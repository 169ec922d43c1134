package graph

import "fmt"

// Default attribute values. Writers omit attributes equal to these and
// readers substitute them for absent ones.
const (
	DefaultWeight         = 1.0
	DefaultWeightAdditive = 0.0
)

// EdgeKey identifies an undirected edge by its two vertex indices, smaller
// index first. Use [Key] to build one.
type EdgeKey struct {
	U, V int
}

// Key returns the canonical key of the edge between i0 and i1.
func Key(i0, i1 int) EdgeKey {
	if i1 < i0 {
		i0, i1 = i1, i0
	}
	return EdgeKey{U: i0, V: i1}
}

func (k EdgeKey) String() string { return fmt.Sprintf("(%d, %d)", k.U, k.V) }

// EdgeAttrs holds the optional attributes of an edge. A nil field means the
// attribute was never set and the format default applies.
type EdgeAttrs struct {
	Weight         *float64
	WeightAdditive *float64
}

// EffectiveWeight returns the weight, or DefaultWeight when unset.
func (a EdgeAttrs) EffectiveWeight() float64 {
	if a.Weight == nil {
		return DefaultWeight
	}
	return *a.Weight
}

// EffectiveWeightAdditive returns the additive weight, or
// DefaultWeightAdditive when unset.
func (a EdgeAttrs) EffectiveWeightAdditive() float64 {
	if a.WeightAdditive == nil {
		return DefaultWeightAdditive
	}
	return *a.WeightAdditive
}

// Edge is a stored edge together with its attributes.
type Edge struct {
	EdgeKey
	Attrs EdgeAttrs
}

// EdgeOption configures a single edge insertion.
type EdgeOption func(*edgeConfig)

type edgeConfig struct {
	attrs          EdgeAttrs
	allowDuplicate bool
}

// WithWeight sets the edge weight.
func WithWeight(w float64) EdgeOption {
	return func(c *edgeConfig) { c.attrs.Weight = &w }
}

// WithWeightAdditive sets the additive edge weight.
func WithWeightAdditive(w float64) EdgeOption {
	return func(c *edgeConfig) { c.attrs.WeightAdditive = &w }
}

// WithAttrs sets both attributes at once.
func WithAttrs(a EdgeAttrs) EdgeOption {
	return func(c *edgeConfig) { c.attrs = a }
}

// AllowDuplicate makes the insertion duplicate-tolerant: inserting an
// existing key overwrites its attributes instead of failing. Face and
// polygon loaders use it because neighbouring faces share edges.
func AllowDuplicate() EdgeOption {
	return func(c *edgeConfig) { c.allowDuplicate = true }
}

func ptr(f float64) *float64 { return &f }
