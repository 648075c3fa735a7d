// Package shrinkable provides the lazy shrink tree: a root value plus a
// lazy sequence of child trees, each a candidate simplification of the
// root. Trees may be infinite in principle; only the nodes a search
// visits are ever materialized, and forcing is idempotent so trees can
// be traversed repeatedly or shared read-only between goroutines.
package shrinkable

import "github.com/propq/propq/stream"

// Tree is a value together with its lazily-enumerated simplifications.
// Children are ordered from most preferred simplification to least, and
// the order is deterministic for a given value and generator.
type Tree[T any] struct {
	root     T
	children *stream.Seq[Tree[T]]
}

// New returns a tree with the given root and children.
func New[T any](root T, children *stream.Seq[Tree[T]]) Tree[T] {
	return Tree[T]{root: root, children: children}
}

// Leaf returns a tree with no children: a locally minimal value.
func Leaf[T any](root T) Tree[T] {
	return Tree[T]{root: root}
}

// Root returns the tree's value.
func (t Tree[T]) Root() T {
	return t.root
}

// Children returns the lazy sequence of candidate subtrees.
func (t Tree[T]) Children() *stream.Seq[Tree[T]] {
	return t.children
}

// Unfold wraps a candidate strategy into a recursive tree: the root is
// value, and each candidate from shrinkOf becomes a child tree unfolded
// with the same strategy.
func Unfold[T any](value T, shrinkOf func(T) *stream.Seq[T]) Tree[T] {
	return Tree[T]{
		root: value,
		children: stream.Delay(func() *stream.Seq[Tree[T]] {
			return stream.Map(func(c T) Tree[T] {
				return Unfold(c, shrinkOf)
			}, shrinkOf(value))
		}),
	}
}

// Map returns a tree whose root is f(t.Root()) and whose descendants
// are mapped the same way. f runs once per visited node, never eagerly
// over the whole tree.
func Map[T, U any](f func(T) U, t Tree[T]) Tree[U] {
	return Tree[U]{
		root: f(t.root),
		children: stream.Delay(func() *stream.Seq[Tree[U]] {
			return stream.Map(func(c Tree[T]) Tree[U] {
				return Map(f, c)
			}, t.children)
		}),
	}
}

// MapShrinks leaves the root untouched and transforms the sequence of
// child trees with f, which may reorder, drop, insert, or rewrite
// candidates.
func MapShrinks[T any](f func(*stream.Seq[Tree[T]]) *stream.Seq[Tree[T]], t Tree[T]) Tree[T] {
	return Tree[T]{
		root: t.root,
		children: stream.Delay(func() *stream.Seq[Tree[T]] {
			return f(t.children)
		}),
	}
}

// Filter recursively filters the tree by pred. If the root fails, the
// whole tree is discarded and ok is false: there is no fallback root.
// Otherwise every child subtree whose root fails is pruned entirely,
// surviving children are filtered the same way, and pruning never
// forces nodes below a discarded root.
func Filter[T any](pred func(T) bool, t Tree[T]) (Tree[T], bool) {
	if !pred(t.root) {
		var zero Tree[T]
		return zero, false
	}
	return filterChildren(pred, t), true
}

func filterChildren[T any](pred func(T) bool, t Tree[T]) Tree[T] {
	return Tree[T]{
		root: t.root,
		children: stream.Delay(func() *stream.Seq[Tree[T]] {
			kept := stream.Filter(func(c Tree[T]) bool {
				return pred(c.root)
			}, t.children)
			return stream.Map(func(c Tree[T]) Tree[T] {
				return filterChildren(pred, c)
			}, kept)
		}),
	}
}
