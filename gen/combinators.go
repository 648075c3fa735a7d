package gen

import (
	"github.com/google/uuid"

	"github.com/propq/propq/random"
	"github.com/propq/propq/shrink"
	"github.com/propq/propq/shrinkable"
	"github.com/propq/propq/stream"
)

// suchThatRetries bounds how many draws SuchThat attempts before giving
// up on a predicate that rejects everything.
const suchThatRetries = 100

// =============================================================================
// Combinators
// =============================================================================

type constGen[T any] struct {
	value T
}

// Constant returns a generator that always produces value and never
// shrinks it.
func Constant[T any](value T) Generator[T] {
	return constGen[T]{value: value}
}

func (g constGen[T]) Generate(size int, r *random.Engine) T {
	return g.value
}

func (g constGen[T]) Shrink(value T) shrinkable.Tree[T] {
	return shrinkable.Leaf(value)
}

type oneOfGen[T any] struct {
	gens []Generator[T]
}

// OneOf returns a generator that draws one atom to pick one of the
// given generators, then delegates to it at the ambient size. A value
// alone does not identify which sub-generator produced it, so OneOf
// values do not shrink.
// Panics if gens is empty.
func OneOf[T any](gens ...Generator[T]) Generator[T] {
	if len(gens) == 0 {
		panic("gen: OneOf called with no generators")
	}
	return oneOfGen[T]{gens: gens}
}

func (g oneOfGen[T]) Generate(size int, r *random.Engine) T {
	pick := g.gens[r.Bounded(uint64(len(g.gens)))]
	return pick.Generate(size, r)
}

func (g oneOfGen[T]) Shrink(value T) shrinkable.Tree[T] {
	return shrinkable.Leaf(value)
}

type mapGenerator[T, U any] struct {
	inner Generator[T]
	fn    func(T) U
}

// MapGen transforms the output of a generator through fn. fn has no
// inverse, so mapped values do not shrink.
func MapGen[T, U any](g Generator[T], fn func(T) U) Generator[U] {
	return mapGenerator[T, U]{inner: g, fn: fn}
}

func (g mapGenerator[T, U]) Generate(size int, r *random.Engine) U {
	return g.fn(g.inner.Generate(size, r))
}

func (g mapGenerator[T, U]) Shrink(value U) shrinkable.Tree[U] {
	return shrinkable.Leaf(value)
}

type suchThatGen[T any] struct {
	inner Generator[T]
	pred  func(T) bool
}

// SuchThat returns a generator producing only values for which pred
// holds, by redrawing. Generation panics after a bounded number of
// failed draws rather than looping forever on an unsatisfiable
// predicate. Shrinking filters the inner candidate tree by pred; a
// value that itself fails pred is treated as minimal.
func SuchThat[T any](g Generator[T], pred func(T) bool) Generator[T] {
	return suchThatGen[T]{inner: g, pred: pred}
}

func (g suchThatGen[T]) Generate(size int, r *random.Engine) T {
	for i := 0; i < suchThatRetries; i++ {
		v := g.inner.Generate(size, r)
		if g.pred(v) {
			return v
		}
	}
	panic("gen: SuchThat failed to find a matching value")
}

func (g suchThatGen[T]) Shrink(value T) shrinkable.Tree[T] {
	if t, ok := shrinkable.Filter(g.pred, g.inner.Shrink(value)); ok {
		return t
	}
	return shrinkable.Leaf(value)
}

type resizeGen[T any] struct {
	size  int
	inner Generator[T]
}

// Resize rebinds the size seen by a generator, overriding the ambient
// size for its sub-generation. The bound size is clamped to
// [0, ReferenceSize].
func Resize[T any](size int, g Generator[T]) Generator[T] {
	return resizeGen[T]{size: clampSize(size), inner: g}
}

func (g resizeGen[T]) Generate(size int, r *random.Engine) T {
	return g.inner.Generate(g.size, r)
}

func (g resizeGen[T]) Shrink(value T) shrinkable.Tree[T] {
	return g.inner.Shrink(value)
}

// =============================================================================
// UUIDs
// =============================================================================

type uuidGen struct {
	bytes Generator[uint8]
}

// UUID returns a generator of random UUIDs built from sixteen bytes
// drawn at ReferenceSize, independent of the ambient size. A non-nil
// UUID shrinks to the single candidate uuid.Nil.
func UUID() Generator[uuid.UUID] {
	return uuidGen{bytes: Byte()}
}

func (g uuidGen) Generate(size int, r *random.Engine) uuid.UUID {
	var buf [16]byte
	for i := range buf {
		buf[i] = g.bytes.Generate(ReferenceSize, r)
	}
	id, err := uuid.FromBytes(buf[:])
	if err != nil {
		// FromBytes only fails on length mismatch, which cannot happen
		// with a fixed 16-byte buffer.
		panic("gen: " + err.Error())
	}
	return id
}

func (g uuidGen) Shrink(value uuid.UUID) shrinkable.Tree[uuid.UUID] {
	return shrinkable.Unfold(value, func(v uuid.UUID) *stream.Seq[uuid.UUID] {
		if v == uuid.Nil {
			return shrink.Nothing[uuid.UUID]()
		}
		return shrink.Constant(uuid.Nil)
	})
}
