package vector

import "github.com/dpthayer/pdata/bitutil"

// nodeI is the interface of the two Trie node variants: bodyNode on the
// interior levels and leafNode at level zero. Which variant sits at a given
// position is fixed by the level alone, so the structural walks assert the
// concrete type as they descend.
type nodeI[T any] interface {
	appendTo(out []T) []T
}

// A bodyNode holds up to 32 child nodes, filled from slot 0 upward with no
// gaps.
type bodyNode[T any] struct {
	nodes [bitutil.FanOut]nodeI[T]
}

func (n *bodyNode[T]) clone() *bodyNode[T] {
	var m = *n
	return &m
}

func (n *bodyNode[T]) appendTo(out []T) []T {
	for _, c := range n.nodes {
		if c == nil {
			break
		}
		out = c.appendTo(out)
	}
	return out
}

// A leafNode holds exactly 32 elements. Partially filled leaves never occur
// in the Trie; elements past the last full leaf live in the vector's tail.
type leafNode[T any] struct {
	elems [bitutil.FanOut]T
}

func (n *leafNode[T]) clone() *leafNode[T] {
	var m = *n
	return &m
}

func (n *leafNode[T]) appendTo(out []T) []T {
	return append(out, n.elems[:]...)
}

// newPath builds a left branching chain of bodyNodes reaching down the given
// number of levels, with leaf at the bottom.
func newPath[T any](level uint, leaf *leafNode[T]) nodeI[T] {
	if level == 0 {
		return leaf
	}
	var n = new(bodyNode[T])
	n.nodes[0] = newPath(level-bitutil.ChunkBits, leaf)
	return n
}

// assoc returns a copy of the subtree rooted at n with element i replaced by
// val, copying only the nodes along the path to i.
func assoc[T any](level uint, n nodeI[T], i int, val T) nodeI[T] {
	if level == 0 {
		var m = n.(*leafNode[T]).clone()
		m.elems[bitutil.Fragment(uint32(i), 0)] = val
		return m
	}
	var m = n.(*bodyNode[T]).clone()
	var idx = bitutil.Fragment(uint32(i), level)
	m.nodes[idx] = assoc(level-bitutil.ChunkBits, m.nodes[idx], i, val)
	return m
}
