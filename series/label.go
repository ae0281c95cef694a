package series

import (
	"math"
	"strconv"
	"strings"
)

// commonPrefix returns the longest common leading substring of a and b,
// cut on a rune boundary.
func commonPrefix(a, b string) string {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	for n > 0 && n < len(a) && !isRuneStart(a[n]) {
		n--
	}

	return a[:n]
}

func isRuneStart(c byte) bool {
	return c&0xC0 != 0x80
}

// OperatorLabel builds the label of a binary operation between two series:
// the common prefix of both labels followed by "(suffix1 op suffix2)".
func OperatorLabel(op, label, other string) string {
	prefix := commonPrefix(label, other)
	n := len(prefix)

	return prefix + "(" + label[n:] + " " + op + " " + other[n:] + ")"
}

// ScalarLabel builds the label of an operation between a series and a scalar.
func ScalarLabel(op, label string, scalar float64) string {
	return "(" + label + " " + op + " " + FormatFloat(scalar) + ")"
}

// FormatFloat renders v the way labels print numbers: integral values keep a
// trailing ".0", very small or very large magnitudes switch to exponent form.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}

	return s
}
