/*
Package vector implements a persistent vector: an immutable sequence with
effectively constant time index, set and append. The term persistent is used
to imply immutable and structurally shared; every operation returns a new
Vector value and leaves the receiver untouched.

Elements live in a Trie of 32 entry nodes indexed by 5 bit fragments of the
element index, most significant fragment at the root. The newest elements
are buffered in a flat tail slice of up to 32 elements, so 31 out of every
32 appends touch no Trie node at all; a full tail is pushed into the Trie as
a finished leaf. The Trie therefore only ever contains full leaves, which is
what keeps the index arithmetic to shifts and masks.

Out of range indexes are caller errors, not corruption, so Index, Set and
Pop report them as wrapped ErrOutOfRange values instead of panicking.
*/
package vector

import (
	"fmt"
	"log"

	"github.com/pkg/errors"

	"github.com/dpthayer/pdata/bitutil"
)

// ErrOutOfRange is the sentinel error reported when an index falls outside
// the bounds of the Vector it was applied to. Callers can test for it with
// errors.Is or errors.Cause.
var ErrOutOfRange = errors.New("index out of range")

// Vector is a persistent sequence. Operations never modify the receiver;
// they return a new Vector sharing structure with the old one. The zero
// Vector is a valid empty vector.
type Vector[T any] struct {
	count int
	// shift is the bit offset of the root's fragment of an element index:
	// 5 times the height of the Trie. Zero when the root is a leaf or nil.
	shift uint
	root  nodeI[T]
	tail  []T
}

// Empty returns the empty Vector.
func Empty[T any]() Vector[T] {
	return Vector[T]{}
}

// From builds a Vector holding the given elements in order.
func From[T any](elems []T) Vector[T] {
	var v = Empty[T]()
	for _, el := range elems {
		v = v.Append(el)
	}
	return v
}

// Len returns the number of elements in the Vector.
func (v Vector[T]) Len() int {
	return v.count
}

// tailOffset returns the number of elements stored in the Trie, which is
// also the index of the first tail element.
func (v Vector[T]) tailOffset() int {
	if v.count < int(bitutil.FanOut) {
		return 0
	}
	return ((v.count - 1) >> bitutil.ChunkBits) << bitutil.ChunkBits
}

// sliceFor returns the 32 element slice holding element i, which is either
// the tail or the elements of a Trie leaf. The index must be in range.
func (v Vector[T]) sliceFor(i int) []T {
	if i >= v.tailOffset() {
		return v.tail
	}
	var n = v.root
	for level := v.shift; level > 0; level -= bitutil.ChunkBits {
		n = n.(*bodyNode[T]).nodes[bitutil.Fragment(uint32(i), level)]
	}
	return n.(*leafNode[T]).elems[:]
}

// Index returns element i of the Vector.
func (v Vector[T]) Index(i int) (T, error) {
	if i < 0 || i >= v.count {
		var zero T
		return zero, errors.Wrapf(ErrOutOfRange, "index %d of %d element vector", i, v.count)
	}
	return v.sliceFor(i)[bitutil.Fragment(uint32(i), 0)], nil
}

// Set returns a new Vector with element i replaced by val.
func (v Vector[T]) Set(i int, val T) (Vector[T], error) {
	if i < 0 || i >= v.count {
		return Vector[T]{}, errors.Wrapf(ErrOutOfRange, "set index %d of %d element vector", i, v.count)
	}

	if i >= v.tailOffset() {
		var newTail = make([]T, len(v.tail))
		copy(newTail, v.tail)
		newTail[bitutil.Fragment(uint32(i), 0)] = val
		return Vector[T]{v.count, v.shift, v.root, newTail}, nil
	}

	return Vector[T]{v.count, v.shift, assoc(v.shift, v.root, i, val), v.tail}, nil
}

// Append returns a new Vector with val added to the end.
func (v Vector[T]) Append(val T) Vector[T] {
	// Room in the tail?
	if v.count-v.tailOffset() < int(bitutil.FanOut) {
		var newTail = make([]T, len(v.tail)+1)
		copy(newTail, v.tail)
		newTail[len(v.tail)] = val
		return Vector[T]{v.count + 1, v.shift, v.root, newTail}
	}

	// Full tail; push it into the Trie as a finished leaf.
	var tailLeaf = new(leafNode[T])
	copy(tailLeaf.elems[:], v.tail)

	var newShift = v.shift
	var newRoot nodeI[T]
	if v.count>>bitutil.ChunkBits > 1<<v.shift {
		// the Trie below the root is full; grow a level
		var nr = new(bodyNode[T])
		nr.nodes[0] = v.root
		nr.nodes[1] = newPath(v.shift, tailLeaf)
		newRoot = nr
		newShift += bitutil.ChunkBits
	} else {
		newRoot = v.pushTail(v.shift, v.root, tailLeaf)
	}

	return Vector[T]{v.count + 1, newShift, newRoot, []T{val}}
}

// pushTail returns the subtree rooted at n with the full tail hung off its
// rightmost path as a leaf. A nil n at level zero is the empty root being
// replaced by its first leaf.
func (v Vector[T]) pushTail(level uint, n nodeI[T], leaf *leafNode[T]) nodeI[T] {
	if level == 0 {
		return leaf
	}

	var idx = bitutil.Fragment(uint32(v.count-1), level)
	var m = n.(*bodyNode[T]).clone()
	if child := m.nodes[idx]; child == nil {
		m.nodes[idx] = newPath(level-bitutil.ChunkBits, leaf)
	} else {
		m.nodes[idx] = v.pushTail(level-bitutil.ChunkBits, child, leaf)
	}
	return m
}

// Pop returns a new Vector with the last element removed. Popping an empty
// Vector is out of range.
func (v Vector[T]) Pop() (Vector[T], error) {
	switch v.count {
	case 0:
		return Vector[T]{}, errors.Wrap(ErrOutOfRange, "pop of empty vector")
	case 1:
		return Empty[T](), nil
	}

	if v.count-v.tailOffset() > 1 {
		var newTail = make([]T, len(v.tail)-1)
		copy(newTail, v.tail)
		return Vector[T]{v.count - 1, v.shift, v.root, newTail}, nil
	}

	// The tail had a single element; the Trie's last leaf becomes the new
	// tail. Tails are never written in place, so sharing the leaf's array
	// is safe.
	var newTail = v.sliceFor(v.count - 2)
	var newRoot = v.popTail(v.shift, v.root)
	var newShift = v.shift
	if newShift > 0 && newRoot != nil {
		if nr := newRoot.(*bodyNode[T]); nr.nodes[1] == nil {
			// the root has a single child left; shrink a level
			newRoot = nr.nodes[0]
			newShift -= bitutil.ChunkBits
		}
	}
	return Vector[T]{v.count - 1, newShift, newRoot, newTail}, nil
}

// popTail returns the subtree rooted at n with its last leaf removed, or
// nil when removing the leaf empties the subtree.
func (v Vector[T]) popTail(level uint, n nodeI[T]) nodeI[T] {
	if level == 0 {
		// the root was the leaf now moving into the tail
		return nil
	}

	var idx = bitutil.Fragment(uint32(v.count-2), level)
	if level > bitutil.ChunkBits {
		var newChild = v.popTail(level-bitutil.ChunkBits, n.(*bodyNode[T]).nodes[idx])
		if newChild == nil && idx == 0 {
			return nil
		}
		var m = n.(*bodyNode[T]).clone()
		m.nodes[idx] = newChild
		return m
	}

	// level == ChunkBits: the children are leaves
	if idx == 0 {
		return nil
	}
	var m = n.(*bodyNode[T]).clone()
	m.nodes[idx] = nil
	return m
}

// Elems returns the elements of the Vector in order.
func (v Vector[T]) Elems() []T {
	var out = make([]T, 0, v.count)
	if v.root != nil {
		out = v.root.appendTo(out)
	}
	out = append(out, v.tail...)
	if len(out) != v.count {
		log.Panicf("SHOULD NOT BE REACHED: walked %d elements of a %d element vector", len(out), v.count)
	}
	return out
}

func (v Vector[T]) String() string {
	return fmt.Sprintf("Vector{count:%d, shift:%d, tailLen:%d}", v.count, v.shift, len(v.tail))
}
