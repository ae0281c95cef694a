// Package series provides the immutable numeric time series produced by
// freezing a foxplot tree, and the algebra that combines them.
//
// A Series is a label, a dense []float64 of values and, once a time index has
// been designated, a []float64 of times with the same length. Missing samples
// are NaN. Series are never mutated after construction: every operator
// allocates a new Series, so a Series can be shared between goroutines without
// locking.
//
// # Labels
//
// Derived series get labels that are a pure function of their operands' labels
// and the operator:
//
//	a := series.New("/servo/left/torque", ...)
//	b := series.New("/servo/right/torque", ...)
//	sum, _ := a.Add(b)      // "/servo/(left/torque + right/torque)"
//	half := a.DivScalar(2)  // "(/servo/left/torque / 2.0)"
//	neg := a.Neg()          // "-/servo/left/torque"
//
// The common prefix of binary labels is a plain string prefix, not a tree-aware
// common ancestor.
//
// # Ownership
//
// Constructors take ownership of the slices they receive; callers must not
// modify them afterwards. Accessors that return slices return copies.
package series
