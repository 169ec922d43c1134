package geometry

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat renders f the way the GraphML and OBJ files of this tool
// family have always been written: the shortest representation that
// round-trips, always with a decimal point in positional notation
// ("1.0", "0.25", "-3.0") and scientific notation only for very small or
// very large magnitudes ("1e-05", "1e+16").
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	exp := exponent(f)
	if exp < -4 || exp >= 16 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// exponent returns the decimal exponent of the shortest repr of f.
func exponent(f float64) int {
	s := strconv.FormatFloat(f, 'e', -1, 64)
	i := strings.LastIndexByte(s, 'e')
	exp, _ := strconv.Atoi(s[i+1:])
	return exp
}
