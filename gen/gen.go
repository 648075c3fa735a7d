// Package gen provides the generator abstraction and the built-in
// generators: the capability to produce a pseudo-random value of a type
// from an explicit size and random state, and to shrink a failing value
// into a lazy tree of simpler candidates.
//
// Generators are selected statically by type: each constructor is
// parameterized and constrained at compile time, so requesting a
// generator for an unsupported type fails to compile rather than
// producing a garbage value at runtime. Generation is a pure function
// of (size, random state); shrinking is a pure function of the value
// and never consults the random source.
//
// Basic usage:
//
//	r := random.New(seed)
//	g := gen.Int[int32]()
//	v := gen.Generate(g, 50, r)
//	tree := gen.Shrink(g, v) // walk tree.Children() for simpler values
package gen

import (
	"github.com/propq/propq/random"
	"github.com/propq/propq/shrinkable"
)

// ReferenceSize is the fixed upper bound the size parameter is
// normalized against. A generator asked for size ReferenceSize may
// produce any value of its type; at size 0 it produces the minimal one.
const ReferenceSize = 100

// Generator produces values of T and shrinks them. Implementations are
// stateless: composite generators hold their component generators, but
// no generator owns mutable engine state.
type Generator[T any] interface {
	// Generate produces a value using only size and the random state.
	Generate(size int, r *random.Engine) T

	// Shrink enumerates simpler candidates for value as a lazy tree,
	// ordered from most preferred simplification to least. It must not
	// draw randomness.
	Shrink(value T) shrinkable.Tree[T]
}

// Generate produces a value of type T at the given size, clamped to
// [0, ReferenceSize].
func Generate[T any](g Generator[T], size int, r *random.Engine) T {
	return g.Generate(clampSize(size), r)
}

// Shrink returns the lazy candidate tree for value.
func Shrink[T any](g Generator[T], value T) shrinkable.Tree[T] {
	return g.Shrink(value)
}

func clampSize(size int) int {
	if size < 0 {
		return 0
	}
	if size > ReferenceSize {
		return ReferenceSize
	}
	return size
}
