package hamt

import (
	"fmt"

	"github.com/dpthayer/pdata/bitutil"
)

// The compressedTable is the low memory representation of an interior Trie
// node. It records which of its 32 slots are populated in a bit map called
// nodeMap and stores only the populated slots, in slot order, in the nodes
// slice; so len(nodes) always equals bitutil.PopCount(nodeMap).
//
// The position of a slot's node within the nodes slice is the number of set
// bits in nodeMap below that slot, bitutil.Rank(nodeMap, slot). Rank costs a
// single popcount instruction, which is what makes this representation cheap
// enough to use for most of the Trie.
//
// When an insert pushes a compressedTable past upgradeThreshold entries it
// is promoted to a fullTable, which trades the rank calculation for a flat
// 32 entry array.
type compressedTable[K, V any] struct {
	nodeMap uint32
	nodes   []nodeI[K, V]
}

func (t *compressedTable[K, V]) copy() *compressedTable[K, V] {
	var nt = new(compressedTable[K, V])
	nt.nodeMap = t.nodeMap
	nt.nodes = make([]nodeI[K, V], len(t.nodes))
	copy(nt.nodes, t.nodes)
	return nt
}

func (t *compressedTable[K, V]) nentries() uint {
	return uint(len(t.nodes))
}

// entries() returns the slice of tableEntry structs from lowest idx to
// highest, as the tableEntry contract requires.
func (t *compressedTable[K, V]) entries() []tableEntry[K, V] {
	var slots = bitutil.SetSlots(t.nodeMap)
	var ents = make([]tableEntry[K, V], len(slots))
	for i, slot := range slots {
		ents[i] = tableEntry[K, V]{slot, t.nodes[i]}
	}
	return ents
}

func (t *compressedTable[K, V]) get(hash uint32, key K, hr Hasher[K], level uint) (V, bool) {
	var idx = bitutil.Fragment(hash, level)
	var nodeBit = bitutil.Bit(idx)

	if t.nodeMap&nodeBit == 0 {
		var zero V
		return zero, false
	}

	var n = t.nodes[bitutil.Rank(t.nodeMap, idx)]
	return n.get(hash, key, hr, level+bitutil.ChunkBits)
}

func (t *compressedTable[K, V]) alter(e *edit[K, V], level uint) (nodeI[K, V], int) {
	var idx = bitutil.Fragment(e.hash, level)
	var nodeBit = bitutil.Bit(idx)

	if t.nodeMap&nodeBit == 0 {
		// empty slot; only an edit that produces a value changes anything
		var nw, delta = alterNode[K, V](nil, e, level+bitutil.ChunkBits)
		if nw == nil {
			return t, 0
		}
		return t.insert(idx, nw), delta
	}

	var i = bitutil.Rank(t.nodeMap, idx)
	var old = t.nodes[i]
	var nw, delta = old.alter(e, level+bitutil.ChunkBits)

	if nw == old {
		return t, delta
	}

	if nw == nil {
		var nt = t.remove(idx)
		if nt == nil {
			return nil, delta
		}
		if lf, ok := nt.singleFlatLeaf(); ok {
			return lf, delta
		}
		return nt, delta
	}

	var nt = t.replace(idx, nw)
	if lf, ok := nt.singleFlatLeaf(); ok {
		return lf, delta
	}
	return nt, delta
}

// singleFlatLeaf reports whether the table holds exactly one node and that
// node is a flatLeaf. Such a table is an indirection with no purpose; the
// leaf takes its place so that single leaves never sit below a chain of one
// entry tables. One entry tables above a collisionLeaf are legitimate, they
// are the fragments the colliding hashes agree on.
func (t *compressedTable[K, V]) singleFlatLeaf() (*flatLeaf[K, V], bool) {
	if len(t.nodes) != 1 {
		return nil, false
	}
	var lf, ok = t.nodes[0].(*flatLeaf[K, V])
	return lf, ok
}

func (t *compressedTable[K, V]) insert(idx uint, entry nodeI[K, V]) nodeI[K, V] {
	var nodeBit = bitutil.Bit(idx)
	var i = bitutil.Rank(t.nodeMap, idx)

	var nt = new(compressedTable[K, V])
	nt.nodeMap = t.nodeMap | nodeBit

	// insert entry into the i'th spot of nt.nodes[]
	nt.nodes = make([]nodeI[K, V], len(t.nodes)+1)
	copy(nt.nodes, t.nodes[:i])
	nt.nodes[i] = entry
	copy(nt.nodes[i+1:], t.nodes[i:])

	if nt.nentries() > upgradeThreshold {
		// promote compressedTable to fullTable
		return upgradeToFullTable(nt.entries())
	}

	return nt
}

func (t *compressedTable[K, V]) replace(idx uint, entry nodeI[K, V]) *compressedTable[K, V] {
	// t.nodeMap & bitutil.Bit(idx) > 0
	var nt = t.copy()
	nt.nodes[bitutil.Rank(t.nodeMap, idx)] = entry
	return nt
}

func (t *compressedTable[K, V]) remove(idx uint) *compressedTable[K, V] {
	var nodeBit = bitutil.Bit(idx)
	var i = bitutil.Rank(t.nodeMap, idx)

	var nt = new(compressedTable[K, V])
	nt.nodeMap = t.nodeMap &^ nodeBit

	if nt.nodeMap == 0 {
		return nil
	}

	nt.nodes = make([]nodeI[K, V], len(t.nodes)-1)
	copy(nt.nodes, t.nodes[:i])
	copy(nt.nodes[i:], t.nodes[i+1:])

	return nt
}

func (t *compressedTable[K, V]) each(fn func(key K, val V) bool) bool {
	for _, n := range t.nodes {
		if !n.each(fn) {
			return false
		}
	}
	return true
}

func (t *compressedTable[K, V]) String() string {
	return fmt.Sprintf("compressedTable{nodeMap:%#08x, nentries:%d}", t.nodeMap, t.nentries())
}
