// Package stream provides a lazy, memoizing, possibly-infinite sequence.
// It is the backbone of shrink candidate enumeration: a shrink tree's
// children are a Seq that is only materialized as far as a search
// actually walks, and forcing the same cell twice (even concurrently)
// yields the same result without recomputation.
package stream

import "sync"

// Seq is a lazy sequence of T. A nil Seq is empty. Each cell is forced
// at most once; the result is memoized.
type Seq[T any] struct {
	once sync.Once
	gen  func() (T, *Seq[T], bool)

	head T
	tail *Seq[T]
	ok   bool
}

// Empty returns the empty sequence.
func Empty[T any]() *Seq[T] {
	return nil
}

// Single returns a one-element sequence.
func Single[T any](v T) *Seq[T] {
	return Cons(v, nil)
}

// Cons returns a sequence with head v and tail rest.
func Cons[T any](v T, rest *Seq[T]) *Seq[T] {
	return &Seq[T]{gen: func() (T, *Seq[T], bool) {
		return v, rest, true
	}}
}

// FromSlice returns a sequence over the elements of vals, in order.
// The slice must not be mutated afterwards.
func FromSlice[T any](vals []T) *Seq[T] {
	if len(vals) == 0 {
		return nil
	}
	return &Seq[T]{gen: func() (T, *Seq[T], bool) {
		return vals[0], FromSlice(vals[1:]), true
	}}
}

// Delay defers construction of a sequence until it is first forced.
func Delay[T any](f func() *Seq[T]) *Seq[T] {
	return &Seq[T]{gen: func() (T, *Seq[T], bool) {
		var zero T
		s := f()
		if s == nil {
			return zero, nil, false
		}
		return s.Next()
	}}
}

// Unfold produces a sequence from a seed: while cond(seed) holds, step
// yields the next element and the next seed.
func Unfold[S, T any](seed S, cond func(S) bool, step func(S) (T, S)) *Seq[T] {
	if !cond(seed) {
		return nil
	}
	return &Seq[T]{gen: func() (T, *Seq[T], bool) {
		v, next := step(seed)
		return v, Unfold(next, cond, step), true
	}}
}

// Next forces the first cell. It returns the head, the tail, and false
// if the sequence is empty. Forcing is idempotent: the cell's generator
// runs once and the result is reused on every later call.
func (s *Seq[T]) Next() (T, *Seq[T], bool) {
	if s == nil {
		var zero T
		return zero, nil, false
	}
	s.once.Do(func() {
		s.head, s.tail, s.ok = s.gen()
		s.gen = nil
	})
	return s.head, s.tail, s.ok
}

// Concat lazily concatenates sequences. A later sequence is not forced,
// or even inspected, until every earlier one is exhausted.
func Concat[T any](seqs ...*Seq[T]) *Seq[T] {
	return concatTwo(nil, seqs)
}

func concatTwo[T any](cur *Seq[T], rest []*Seq[T]) *Seq[T] {
	return &Seq[T]{gen: func() (T, *Seq[T], bool) {
		for {
			if v, tail, ok := cur.Next(); ok {
				return v, concatTwo(tail, rest), true
			}
			if len(rest) == 0 {
				var zero T
				return zero, nil, false
			}
			cur, rest = rest[0], rest[1:]
		}
	}}
}

// Map returns the sequence of f applied to each element, lazily.
func Map[T, U any](f func(T) U, s *Seq[T]) *Seq[U] {
	if s == nil {
		return nil
	}
	return &Seq[U]{gen: func() (U, *Seq[U], bool) {
		v, tail, ok := s.Next()
		if !ok {
			var zero U
			return zero, nil, false
		}
		return f(v), Map(f, tail), true
	}}
}

// Filter returns the elements for which pred holds, lazily. Skipped
// elements are forced only when the result is.
func Filter[T any](pred func(T) bool, s *Seq[T]) *Seq[T] {
	if s == nil {
		return nil
	}
	return &Seq[T]{gen: func() (T, *Seq[T], bool) {
		cur := s
		for {
			v, tail, ok := cur.Next()
			if !ok {
				var zero T
				return zero, nil, false
			}
			if pred(v) {
				return v, Filter(pred, tail), true
			}
			cur = tail
		}
	}}
}

// ToSlice forces the whole sequence into a slice. It must not be called
// on an infinite sequence. An empty sequence yields an empty, non-nil
// slice so callers can compare with reflect.DeepEqual.
func ToSlice[T any](s *Seq[T]) []T {
	out := []T{}
	for {
		v, tail, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, v)
		s = tail
	}
}

// Take forces and returns at most n elements.
func Take[T any](n int, s *Seq[T]) []T {
	out := []T{}
	for n > 0 {
		v, tail, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, v)
		s = tail
		n--
	}
	return out
}
