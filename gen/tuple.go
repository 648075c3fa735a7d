package gen

import (
	"github.com/propq/propq/random"
	"github.com/propq/propq/shrinkable"
	"github.com/propq/propq/stream"
)

// Pair is a product of two values.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Tuple3 is a product of three values.
type Tuple3[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

type pairGen[A, B any] struct {
	first  Generator[A]
	second Generator[B]
}

// PairOf returns a generator of pairs. Components are drawn
// left-to-right from the same random state.
func PairOf[A, B any](first Generator[A], second Generator[B]) Generator[Pair[A, B]] {
	return pairGen[A, B]{first: first, second: second}
}

func (g pairGen[A, B]) Generate(size int, r *random.Engine) Pair[A, B] {
	a := g.first.Generate(size, r)
	b := g.second.Generate(size, r)
	return Pair[A, B]{First: a, Second: b}
}

// Shrink offers every simplification of the first component with the
// second held fixed, then the reverse. No candidate ever changes more
// than one component, so a reproduced failure is attributable to a
// single component. Candidates are re-derived at every node, so a
// walk that first minimizes one component can still shrink the other.
func (g pairGen[A, B]) Shrink(value Pair[A, B]) shrinkable.Tree[Pair[A, B]] {
	return shrinkable.Unfold(value, g.candidates)
}

func (g pairGen[A, B]) candidates(v Pair[A, B]) *stream.Seq[Pair[A, B]] {
	firsts := stream.Map(func(c shrinkable.Tree[A]) Pair[A, B] {
		return Pair[A, B]{First: c.Root(), Second: v.Second}
	}, g.first.Shrink(v.First).Children())
	seconds := stream.Map(func(c shrinkable.Tree[B]) Pair[A, B] {
		return Pair[A, B]{First: v.First, Second: c.Root()}
	}, g.second.Shrink(v.Second).Children())
	return stream.Concat(firsts, seconds)
}

type tuple3Gen[A, B, C any] struct {
	first  Generator[A]
	second Generator[B]
	third  Generator[C]
}

// Tuple3Of returns a generator of three-element tuples, composed the
// same way as PairOf.
func Tuple3Of[A, B, C any](first Generator[A], second Generator[B], third Generator[C]) Generator[Tuple3[A, B, C]] {
	return tuple3Gen[A, B, C]{first: first, second: second, third: third}
}

func (g tuple3Gen[A, B, C]) Generate(size int, r *random.Engine) Tuple3[A, B, C] {
	a := g.first.Generate(size, r)
	b := g.second.Generate(size, r)
	c := g.third.Generate(size, r)
	return Tuple3[A, B, C]{First: a, Second: b, Third: c}
}

func (g tuple3Gen[A, B, C]) Shrink(value Tuple3[A, B, C]) shrinkable.Tree[Tuple3[A, B, C]] {
	return shrinkable.Unfold(value, g.candidates)
}

func (g tuple3Gen[A, B, C]) candidates(v Tuple3[A, B, C]) *stream.Seq[Tuple3[A, B, C]] {
	firsts := stream.Map(func(c shrinkable.Tree[A]) Tuple3[A, B, C] {
		return Tuple3[A, B, C]{First: c.Root(), Second: v.Second, Third: v.Third}
	}, g.first.Shrink(v.First).Children())
	seconds := stream.Map(func(c shrinkable.Tree[B]) Tuple3[A, B, C] {
		return Tuple3[A, B, C]{First: v.First, Second: c.Root(), Third: v.Third}
	}, g.second.Shrink(v.Second).Children())
	thirds := stream.Map(func(c shrinkable.Tree[C]) Tuple3[A, B, C] {
		return Tuple3[A, B, C]{First: v.First, Second: v.Second, Third: c.Root()}
	}, g.third.Shrink(v.Third).Children())
	return stream.Concat(firsts, seconds, thirds)
}
