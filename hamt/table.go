package hamt

import (
	"log"

	"github.com/dpthayer/pdata/bitutil"
)

// nodeI is the interface for every entry in a table; so table entries are
// either a leaf or a table or nil. The nil case stands for an empty slot and
// is handled by alterNode, never by a method.
//
// alter applies an edit to the subtree rooted at the node and returns the
// replacement subtree along with the change in entry count (-1, 0 or +1).
// Returning the receiver itself means the edit changed nothing and callers
// must preserve their own identity in turn; that is what makes no-op
// operations free.
type nodeI[K, V any] interface {
	get(hash uint32, key K, hr Hasher[K], level uint) (V, bool)
	alter(e *edit[K, V], level uint) (nodeI[K, V], int)
	each(fn func(key K, val V) bool) bool
	String() string
}

// leafI is the interface of the two leaf variants, flatLeaf and
// collisionLeaf. Only leaves know their full hashcode; tables are located by
// position alone.
type leafI[K, V any] interface {
	nodeI[K, V]
	hashcode() uint32
	keyVals() []Entry[K, V]
}

// tableEntry pairs a slot number with its node for table conversions.
// Slices of tableEntry MUST be ordered from lowest idx to highest;
// entries() methods adhere to this contract.
type tableEntry[K, V any] struct {
	idx  uint
	node nodeI[K, V]
}

// edit carries one alter call down the Trie: the key being altered, its
// precomputed hash, the Map's hasher, and the caller's decision function.
// fn receives the current value and whether the key is present, and returns
// the value to store and whether to store it at all.
type edit[K, V any] struct {
	hash   uint32
	key    K
	hasher Hasher[K]
	fn     func(val V, found bool) (V, bool)
}

// alterNode applies an edit to a possibly nil node. A nil node is an empty
// slot; the only edit that changes it is one that produces a value, which
// materializes as a new flatLeaf.
func alterNode[K, V any](n nodeI[K, V], e *edit[K, V], level uint) (nodeI[K, V], int) {
	if n == nil {
		var zero V
		var v, keep = e.fn(zero, false)
		if !keep {
			return nil, 0
		}
		return newFlatLeaf(e.hash, e.key, v), 1
	}
	return n.alter(e, level)
}

// combine builds the smallest subtree separating two leaves whose hashes
// collide on every fragment above level. While their fragments at the
// current level agree it wraps a single entry table around a recursive
// combine; the first level where they differ yields a two entry table.
//
// Once level passes the width of the hash there are no fragments left to
// split on, which can only mean the two hashes are fully equal; the entries
// are merged into one collisionLeaf rather than recursing forever.
func combine[K, V any](level uint, a, b leafI[K, V]) nodeI[K, V] {
	if level >= hashBits {
		if a.hashcode() != b.hashcode() {
			log.Panicf("combine: exhausted %d hash bits with unequal hashes %#08x != %#08x", hashBits, a.hashcode(), b.hashcode())
		}
		var akvs = a.keyVals()
		var bkvs = b.keyVals()
		var kvs = make([]Entry[K, V], 0, len(akvs)+len(bkvs))
		kvs = append(kvs, akvs...)
		kvs = append(kvs, bkvs...)
		return &collisionLeaf[K, V]{hash: a.hashcode(), kvs: kvs}
	}

	var aIdx = bitutil.Fragment(a.hashcode(), level)
	var bIdx = bitutil.Fragment(b.hashcode(), level)

	if aIdx == bIdx {
		var nt = new(compressedTable[K, V])
		nt.nodeMap = bitutil.Bit(aIdx)
		nt.nodes = []nodeI[K, V]{combine(level+bitutil.ChunkBits, a, b)}
		return nt
	}

	var nt = new(compressedTable[K, V])
	nt.nodeMap = bitutil.Bit(aIdx) | bitutil.Bit(bIdx)
	if aIdx < bIdx {
		nt.nodes = []nodeI[K, V]{a, b}
	} else {
		nt.nodes = []nodeI[K, V]{b, a}
	}
	return nt
}
