package geometry

import (
	"strconv"
	"strings"

	"github.com/cgalab/format-converter/pkg/errors"
)

// Affine is a 2D affine transform [a b c d e f] mapping
// (x, y) to (a*x + c*y + e, b*x + d*y + f). This is the layout of the IPE
// matrix attribute.
type Affine [6]float64

// Identity is the transform that leaves every point unchanged.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// ParseAffine parses six whitespace-separated numbers.
func ParseAffine(s string) (Affine, error) {
	var m Affine
	fields := strings.Fields(s)
	if len(fields) != len(m) {
		return m, errors.New(errors.ErrCodeFormat, "invalid matrix %q: want 6 numbers, got %d", s, len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return m, errors.Wrap(errors.ErrCodeFormat, err, "invalid matrix %q", s)
		}
		m[i] = v
	}
	return m, nil
}

// Apply transforms p.
func (m Affine) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Mul returns the composition m∘n: applying the result equals applying n
// first and then m.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		m[0]*n[0] + m[2]*n[1],
		m[1]*n[0] + m[3]*n[1],
		m[0]*n[2] + m[2]*n[3],
		m[1]*n[2] + m[3]*n[3],
		m[0]*n[4] + m[2]*n[5] + m[4],
		m[1]*n[4] + m[3]*n[5] + m[5],
	}
}

// IsIdentity reports whether m is exactly the identity transform.
func (m Affine) IsIdentity() bool { return m == Identity }

func (m Affine) String() string {
	parts := make([]string, len(m))
	for i, v := range m {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}
