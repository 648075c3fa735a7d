package gen

import (
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/propq/propq/random"
	"github.com/propq/propq/shrink"
	"github.com/propq/propq/shrinkable"
	"github.com/propq/propq/stream"
)

// Collection generators pick a length uniformly in [0, size] with one
// atom, then draw that many elements at the ambient size. Shrinking is
// shared across slices, maps, and strings: try the empty collection,
// then the collection with one element removed (per position), then
// with one element replaced by one of its own candidates (per
// position), recursively.

// =============================================================================
// Slices
// =============================================================================

type sliceGen[T any] struct {
	elem Generator[T]
}

// SliceOf returns a generator of slices over the element generator.
func SliceOf[T any](elem Generator[T]) Generator[[]T] {
	return sliceGen[T]{elem: elem}
}

func (g sliceGen[T]) Generate(size int, r *random.Engine) []T {
	size = clampSize(size)
	n := int(r.Bounded(uint64(size) + 1))
	out := make([]T, n)
	for i := range out {
		out[i] = g.elem.Generate(size, r)
	}
	return out
}

func (g sliceGen[T]) Shrink(value []T) shrinkable.Tree[[]T] {
	return shrinkable.Unfold(value, func(xs []T) *stream.Seq[[]T] {
		return collectionCandidates(g.elem, xs)
	})
}

// collectionCandidates is the shared shrink strategy for collections
// represented as an element slice.
func collectionCandidates[T any](elem Generator[T], xs []T) *stream.Seq[[]T] {
	n := len(xs)
	if n == 0 {
		return stream.Empty[[]T]()
	}

	empty := shrink.Constant([]T{})

	removals := stream.Unfold(0,
		func(i int) bool { return i < n },
		func(i int) ([]T, int) { return removeAt(xs, i), i + 1 })

	perElement := make([]*stream.Seq[[]T], n)
	for i := 0; i < n; i++ {
		i := i
		perElement[i] = stream.Delay(func() *stream.Seq[[]T] {
			candidates := stream.Map(func(c shrinkable.Tree[T]) T {
				return c.Root()
			}, elem.Shrink(xs[i]).Children())
			return stream.Map(func(c T) []T {
				return replaceAt(xs, i, c)
			}, candidates)
		})
	}

	return shrink.Sequentially(empty, removals, stream.Concat(perElement...))
}

func removeAt[T any](xs []T, i int) []T {
	out := make([]T, 0, len(xs)-1)
	out = append(out, xs[:i]...)
	return append(out, xs[i+1:]...)
}

func replaceAt[T any](xs []T, i int, v T) []T {
	out := make([]T, len(xs))
	copy(out, xs)
	out[i] = v
	return out
}

// =============================================================================
// Maps
// =============================================================================

type mapGen[K constraints.Ordered, V any] struct {
	entries Generator[Pair[K, V]]
}

// MapOf returns a generator of maps. Keys are constrained to ordered
// types so the shrink candidate order is deterministic: entries are
// sorted by key before shrinking. A duplicate generated key overwrites
// the earlier entry, so the map may come out smaller than the drawn
// length.
func MapOf[K constraints.Ordered, V any](key Generator[K], val Generator[V]) Generator[map[K]V] {
	return mapGen[K, V]{entries: PairOf(key, val)}
}

func (g mapGen[K, V]) Generate(size int, r *random.Engine) map[K]V {
	size = clampSize(size)
	n := int(r.Bounded(uint64(size) + 1))
	out := make(map[K]V, n)
	for i := 0; i < n; i++ {
		entry := g.entries.Generate(size, r)
		out[entry.First] = entry.Second
	}
	return out
}

func (g mapGen[K, V]) Shrink(value map[K]V) shrinkable.Tree[map[K]V] {
	return shrinkable.Unfold(value, func(m map[K]V) *stream.Seq[map[K]V] {
		entries := sortedEntries(m)
		return stream.Map(entriesToMap[K, V], collectionCandidates(g.entries, entries))
	})
}

func sortedEntries[K constraints.Ordered, V any](m map[K]V) []Pair[K, V] {
	entries := make([]Pair[K, V], 0, len(m))
	for k, v := range m {
		entries = append(entries, Pair[K, V]{First: k, Second: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].First < entries[j].First
	})
	return entries
}

func entriesToMap[K constraints.Ordered, V any](entries []Pair[K, V]) map[K]V {
	out := make(map[K]V, len(entries))
	for _, e := range entries {
		out[e.First] = e.Second
	}
	return out
}

// =============================================================================
// Strings
// =============================================================================

// Charsets for text generation.
const (
	CharsetAlpha      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	CharsetAlphaLower = "abcdefghijklmnopqrstuvwxyz"
	CharsetDigits     = "0123456789"
	CharsetAlphaNum   = CharsetAlpha + CharsetDigits
	CharsetPrintable  = CharsetAlphaNum + " !\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

type charGen struct {
	chars []rune
}

// CharFrom returns a generator of single characters drawn uniformly
// from charset. A character shrinks toward the head of the charset, so
// put the simplest characters first.
func CharFrom(charset string) Generator[rune] {
	if charset == "" {
		panic("gen: CharFrom called with empty charset")
	}
	return charGen{chars: []rune(charset)}
}

func (g charGen) Generate(size int, r *random.Engine) rune {
	return g.chars[r.Bounded(uint64(len(g.chars)))]
}

func (g charGen) Shrink(value rune) shrinkable.Tree[rune] {
	return shrinkable.Unfold(value, g.candidates)
}

func (g charGen) candidates(v rune) *stream.Seq[rune] {
	at := -1
	for i, c := range g.chars {
		if c == v {
			at = i
			break
		}
	}
	// Characters outside the charset, and the charset head itself, are
	// already minimal.
	if at <= 0 {
		return stream.Empty[rune]()
	}
	return stream.Map(func(i int) rune {
		return g.chars[i]
	}, shrink.Towards(at, 0))
}

type stringGen struct {
	char Generator[rune]
}

// String returns a generator of printable ASCII strings.
func String() Generator[string] {
	return StringFrom(CharsetPrintable)
}

// StringFrom returns a generator of strings over the given charset,
// built as a collection of CharFrom characters.
func StringFrom(charset string) Generator[string] {
	return stringGen{char: CharFrom(charset)}
}

func (g stringGen) Generate(size int, r *random.Engine) string {
	size = clampSize(size)
	n := int(r.Bounded(uint64(size) + 1))
	out := make([]rune, n)
	for i := range out {
		out[i] = g.char.Generate(size, r)
	}
	return string(out)
}

func (g stringGen) Shrink(value string) shrinkable.Tree[string] {
	return shrinkable.Unfold(value, func(s string) *stream.Seq[string] {
		return stream.Map(func(rs []rune) string {
			return string(rs)
		}, collectionCandidates(g.char, []rune(s)))
	})
}
