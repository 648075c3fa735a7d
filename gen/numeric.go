package gen

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/propq/propq/random"
	"github.com/propq/propq/shrink"
	"github.com/propq/propq/shrinkable"
	"github.com/propq/propq/stream"
)

// =============================================================================
// Integers
// =============================================================================

// The size parameter varies the number of significant bits rather than
// an arithmetic range, so the type's maximum value is reachable exactly
// when size == ReferenceSize: nBits = size * digits / ReferenceSize,
// where digits counts magnitude bits (the full width for unsigned
// types, width-1 for signed). nBits of zero produces 0 unconditionally.
// One atom is drawn per integer; for signed types the atom's top bit
// selects the sign, disjoint from the masked magnitude bits.

type intGen[T constraints.Signed] struct {
	digits int
}

// Int returns the generator for a signed integer type.
func Int[T constraints.Signed]() Generator[T] {
	return intGen[T]{digits: signedDigits[T]()}
}

func (g intGen[T]) Generate(size int, r *random.Engine) T {
	size = clampSize(size)
	nBits := size * g.digits / ReferenceSize
	if nBits == 0 {
		return 0
	}
	atom := r.NextAtom()
	x := T(atom & magnitudeMask(nBits))
	// The atom's topmost bit is the sign bit; it never overlaps the
	// magnitude mask since digits <= 63 for signed types.
	if atom>>(random.AtomBits-1) != 0 {
		x = -x
	}
	return x
}

func (g intGen[T]) Shrink(value T) shrinkable.Tree[T] {
	return shrinkable.Unfold(value, signedCandidates[T])
}

// signedCandidates tries the absolute value first, then shrinks the
// magnitude toward zero by bisection. The minimum value of T has no
// absolute value; offering -v there would repeat the value itself and
// break shrink termination.
func signedCandidates[T constraints.Signed](v T) *stream.Seq[T] {
	var consts []T
	if v < 0 && -v != v {
		consts = append(consts, -v)
	}
	return shrink.Sequentially(
		shrink.Constant(consts...),
		shrink.Towards(v, 0),
	)
}

type uintGen[T constraints.Unsigned] struct {
	digits int
}

// Uint returns the generator for an unsigned integer type.
func Uint[T constraints.Unsigned]() Generator[T] {
	return uintGen[T]{digits: unsignedDigits[T]()}
}

// Byte is shorthand for Uint[uint8], the element generator behind Bool
// and UUID.
func Byte() Generator[uint8] {
	return Uint[uint8]()
}

func (g uintGen[T]) Generate(size int, r *random.Engine) T {
	size = clampSize(size)
	nBits := size * g.digits / ReferenceSize
	if nBits == 0 {
		return 0
	}
	return T(r.NextAtom() & magnitudeMask(nBits))
}

func (g uintGen[T]) Shrink(value T) shrinkable.Tree[T] {
	return shrinkable.Unfold(value, func(v T) *stream.Seq[T] {
		return shrink.Towards(v, 0)
	})
}

// magnitudeMask returns a mask with the low nBits bits set, built the
// same way for every width so that nBits == 64 covers the full atom.
func magnitudeMask(nBits int) uint64 {
	const atomMax = ^uint64(0)
	return ^((atomMax - 1) << (nBits - 1))
}

// signedDigits counts the magnitude bits of a signed type: one less
// than its width.
func signedDigits[T constraints.Signed]() int {
	d := 0
	for v := T(1); v > 0; v <<= 1 {
		d++
	}
	return d
}

// unsignedDigits counts the bits of an unsigned type.
func unsignedDigits[T constraints.Unsigned]() int {
	d := 0
	for v := ^T(0); v != 0; v >>= 1 {
		d++
	}
	return d
}

// =============================================================================
// Floating point
// =============================================================================

// Floats are produced by normalizing a generated int64 to [-1, 1] and
// scaling by 1.2^size, so magnitude grows with size without bound. The
// distribution is deliberately size-biased, not uniform over the type.

type floatGen[T constraints.Float] struct {
	int64s Generator[int64]
}

// Float returns the generator for a floating-point type.
func Float[T constraints.Float]() Generator[T] {
	return floatGen[T]{int64s: Int[int64]()}
}

func (g floatGen[T]) Generate(size int, r *random.Engine) T {
	size = clampSize(size)
	i := g.int64s.Generate(size, r)
	x := T(i) / T(math.MaxInt64)
	return T(math.Pow(1.2, float64(size))) * x
}

func (g floatGen[T]) Shrink(value T) shrinkable.Tree[T] {
	return shrinkable.Unfold(value, floatCandidates[T])
}

// floatCandidates offers the sign flip for negative values and the
// integer truncation when it actually reduces magnitude. A value that
// is already integral gets no truncation candidate; there is no
// bisection for floats.
func floatCandidates[T constraints.Float](v T) *stream.Seq[T] {
	var consts []T
	if v < 0 {
		consts = append(consts, -v)
	}
	truncated := T(math.Trunc(float64(v)))
	if math.Abs(float64(truncated)) < math.Abs(float64(v)) {
		consts = append(consts, truncated)
	}
	return shrink.Constant(consts...)
}

// =============================================================================
// Booleans
// =============================================================================

type boolGen struct {
	bytes Generator[uint8]
}

// Bool returns the boolean generator. Booleans are drawn from a byte
// generated at ReferenceSize regardless of the ambient size, so true
// and false stay equally likely at every size.
func Bool() Generator[bool] {
	return boolGen{bytes: Byte()}
}

func (g boolGen) Generate(size int, r *random.Engine) bool {
	return g.bytes.Generate(ReferenceSize, r)&0x1 == 0
}

func (g boolGen) Shrink(value bool) shrinkable.Tree[bool] {
	return shrinkable.Unfold(value, func(v bool) *stream.Seq[bool] {
		if v {
			return shrink.Constant(false)
		}
		return shrink.Nothing[bool]()
	})
}
