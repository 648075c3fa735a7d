// Package shrink provides the strategy library: pure functions that map
// a value to a lazy sequence of candidate simplifications. Strategies
// know nothing about trees; gen wraps their candidate sequences into
// shrink trees.
package shrink

import (
	"golang.org/x/exp/constraints"

	"github.com/propq/propq/stream"
)

// Nothing returns no candidates. It is the strategy for values that
// have no meaningful simplification, such as false or 0.
func Nothing[T any]() *stream.Seq[T] {
	return stream.Empty[T]()
}

// Constant yields exactly the given candidates, in order, once each.
func Constant[T any](vals ...T) *stream.Seq[T] {
	return stream.FromSlice(vals)
}

// Sequentially concatenates candidate sequences. A later sequence is
// never forced before the earlier ones are exhausted.
func Sequentially[T any](seqs ...*stream.Seq[T]) *stream.Seq[T] {
	return stream.Concat(seqs...)
}

// Towards yields candidates moving from target to value by repeated
// bisection: the first candidate is target itself, each following one
// halves the remaining distance to value. The sequence is finite, never
// contains value, and is exact for integers.
//
// Towards(10, 0) yields 0, 5, 8, 9.
func Towards[T constraints.Integer](value, target T) *stream.Seq[T] {
	diff := distance(value, target)
	return stream.Unfold(diff,
		func(d uint64) bool { return d > 0 },
		func(d uint64) (T, uint64) {
			return offset(value, target, d), d / 2
		})
}

// distance returns |value - target| in the unsigned image of T, so the
// extremes of signed types do not overflow.
func distance[T constraints.Integer](value, target T) uint64 {
	if value >= target {
		return uint64(value) - uint64(target)
	}
	return uint64(target) - uint64(value)
}

// offset returns the point d away from value in the direction of target.
func offset[T constraints.Integer](value, target T, d uint64) T {
	if value >= target {
		return T(uint64(value) - d)
	}
	return T(uint64(value) + d)
}
