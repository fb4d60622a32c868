package hamt

import (
	"fmt"

	"github.com/dpthayer/pdata/bitutil"
)

// The fullTable is the dense representation of an interior Trie node: a flat
// 32 entry array indexed directly by hash fragment, nil for empty slots.
// It spends memory on the empty slots to skip the rank calculation, which
// pays off once a table is more than half full.
type fullTable[K, V any] struct {
	nodes   [bitutil.FanOut]nodeI[K, V]
	numEnts uint
}

func upgradeToFullTable[K, V any](ents []tableEntry[K, V]) *fullTable[K, V] {
	var ft = new(fullTable[K, V])
	ft.numEnts = uint(len(ents))
	for _, ent := range ents {
		ft.nodes[ent.idx] = ent.node
	}
	return ft
}

// downgradeToCompressedTable repacks a fullTable that removals have left
// nearly empty. None of the entries can collide with another, they came from
// distinct slots.
func downgradeToCompressedTable[K, V any](ents []tableEntry[K, V]) *compressedTable[K, V] {
	var nt = new(compressedTable[K, V])
	nt.nodes = make([]nodeI[K, V], len(ents))
	for i, ent := range ents {
		nt.nodeMap |= bitutil.Bit(ent.idx)
		nt.nodes[i] = ent.node
	}
	return nt
}

func (t *fullTable[K, V]) copy() *fullTable[K, V] {
	var nt = new(fullTable[K, V])
	nt.nodes = t.nodes
	nt.numEnts = t.numEnts
	return nt
}

func (t *fullTable[K, V]) nentries() uint {
	return t.numEnts
}

// entries() returns the slice of tableEntry structs from lowest idx to
// highest, as the tableEntry contract requires.
func (t *fullTable[K, V]) entries() []tableEntry[K, V] {
	var ents = make([]tableEntry[K, V], 0, t.numEnts)
	for i := uint(0); i < bitutil.FanOut; i++ {
		if t.nodes[i] != nil {
			ents = append(ents, tableEntry[K, V]{i, t.nodes[i]})
		}
	}
	return ents
}

func (t *fullTable[K, V]) get(hash uint32, key K, hr Hasher[K], level uint) (V, bool) {
	var n = t.nodes[bitutil.Fragment(hash, level)]
	if n == nil {
		var zero V
		return zero, false
	}
	return n.get(hash, key, hr, level+bitutil.ChunkBits)
}

func (t *fullTable[K, V]) alter(e *edit[K, V], level uint) (nodeI[K, V], int) {
	var idx = bitutil.Fragment(e.hash, level)
	var old = t.nodes[idx]

	var nw, delta = alterNode(old, e, level+bitutil.ChunkBits)
	if nw == old {
		return t, delta
	}

	var nt = t.copy()
	nt.nodes[idx] = nw

	if old == nil {
		nt.numEnts++
	} else if nw == nil {
		nt.numEnts--
		if nt.numEnts < downgradeThreshold {
			// repack fullTable as compressedTable
			return downgradeToCompressedTable(nt.entries()), delta
		}
	}

	return nt, delta
}

func (t *fullTable[K, V]) each(fn func(key K, val V) bool) bool {
	for _, n := range t.nodes {
		if n == nil {
			continue
		}
		if !n.each(fn) {
			return false
		}
	}
	return true
}

func (t *fullTable[K, V]) String() string {
	return fmt.Sprintf("fullTable{nentries:%d}", t.nentries())
}
