/*
Package hamt implements a persistent Hash Array Mapped Trie (HAMT) keyed
through a caller supplied Hasher. The term persistent is used to imply
immutable and structurally shared: every operation returns a new Map value
and leaves the receiver untouched, with the two versions sharing every
subtree the operation did not copy.

Each key is hashed to 32 bits and the hash is split into 5 bit fragments
that index the interior tables of the Trie. As many fragments as necessary
are used to find a unique location for each leaf. If two distinct keys share
all 32 hash bits, a collision leaf stores their entries side by side past
the bottom of the Trie.

Interior tables come in two representations. A sparse table stores a bitmap
plus a dense slice of its populated slots and locates children with a
popcount; a full table stores a flat 32 entry array. Inserts promote a
sparse table to full once it exceeds upgradeThreshold entries and deletes
repack a full table below downgradeThreshold, the gap between the two stops
a table from flapping between representations under mixed workloads.

Because Map values are immutable they are safe for concurrent use without
locking; any number of goroutines may read overlapping versions while others
derive new ones.
*/
package hamt

import (
	"fmt"

	"github.com/dpthayer/pdata/bitutil"
)

// hashBits is the width of the hash values produced by a Hasher. Once a
// combine walk has consumed all hashBits of both hashes the keys are stored
// in a collision leaf.
const hashBits uint = 32

// upgradeThreshold is the number of entries above which an insert promotes
// a compressedTable to a fullTable; its value is half the table capacity
// (ie 16).
const upgradeThreshold uint = bitutil.FanOut / 2

// downgradeThreshold is the number of entries below which a delete repacks
// a fullTable into a compressedTable; its value is a quarter of the table
// capacity (ie 8).
const downgradeThreshold uint = bitutil.FanOut / 4

// Entry is one key/value pair of a Map.
type Entry[K, V any] struct {
	Key K
	Val V
}

// Map is a persistent hash map. Operations never modify the receiver; they
// return a new Map sharing structure with the old one. The zero Map has no
// Hasher and is unusable, construct with New or FromList.
type Map[K, V any] struct {
	hasher Hasher[K]
	root   nodeI[K, V]
	size   int
}

// New returns an empty Map that hashes and compares keys with hr.
func New[K, V any](hr Hasher[K]) Map[K, V] {
	return Map[K, V]{hasher: hr}
}

// FromList builds a Map from a slice of entries. When a key occurs more
// than once the later entry wins.
func FromList[K, V any](hr Hasher[K], entries []Entry[K, V]) Map[K, V] {
	var m = New[K, V](hr)
	for _, kv := range entries {
		m = m.Insert(kv.Key, kv.Val)
	}
	return m
}

// Len returns the number of entries in the Map.
func (m Map[K, V]) Len() int {
	return m.size
}

func (m Map[K, V]) IsEmpty() bool {
	return m.root == nil
}

// Lookup retrieves the value stored for key. The bool reports whether the
// key was found.
func (m Map[K, V]) Lookup(key K) (val V, found bool) {
	if m.root == nil {
		return
	}
	return m.root.get(m.hasher.Hash(key), key, m.hasher, 0)
}

// Member reports whether key is present in the Map.
func (m Map[K, V]) Member(key K) bool {
	var _, found = m.Lookup(key)
	return found
}

// Alter applies fn to the entry stored for key, whether or not one exists,
// and returns the resulting Map. fn receives the current value and whether
// the key is present; it returns the value to store and whether to store
// it. So fn can insert (absent, store), update (present, store), delete
// (present, drop) or leave the Map alone (absent, drop), and every other
// write operation is a special case of it.
func (m Map[K, V]) Alter(fn func(val V, found bool) (V, bool), key K) Map[K, V] {
	var e = edit[K, V]{
		hash:   m.hasher.Hash(key),
		key:    key,
		hasher: m.hasher,
		fn:     fn,
	}

	var root, delta = alterNode(m.root, &e, 0)
	if root == m.root {
		return m
	}

	return Map[K, V]{hasher: m.hasher, root: root, size: m.size + delta}
}

// Insert stores val for key, replacing any existing value.
func (m Map[K, V]) Insert(key K, val V) Map[K, V] {
	return m.Alter(func(V, bool) (V, bool) {
		return val, true
	}, key)
}

// InsertWith stores val for an absent key; for a present key it stores
// combine(val, oldVal) instead.
func (m Map[K, V]) InsertWith(combine func(newVal, oldVal V) V, key K, val V) Map[K, V] {
	return m.Alter(func(old V, found bool) (V, bool) {
		if !found {
			return val, true
		}
		return combine(val, old), true
	}, key)
}

// Update applies fn to the value stored for key. fn reports whether to keep
// the entry, so it can rewrite or delete it. An absent key leaves the Map
// unchanged.
func (m Map[K, V]) Update(fn func(val V) (V, bool), key K) Map[K, V] {
	return m.Alter(func(val V, found bool) (V, bool) {
		if !found {
			return val, false
		}
		return fn(val)
	}, key)
}

// Adjust rewrites the value stored for key with fn. An absent key leaves
// the Map unchanged.
func (m Map[K, V]) Adjust(fn func(val V) V, key K) Map[K, V] {
	return m.Alter(func(val V, found bool) (V, bool) {
		if !found {
			return val, false
		}
		return fn(val), true
	}, key)
}

// Delete removes the entry stored for key. An absent key leaves the Map
// unchanged.
func (m Map[K, V]) Delete(key K) Map[K, V] {
	return m.Alter(func(val V, found bool) (V, bool) {
		return val, false
	}, key)
}

// Range calls fn for every entry of the Map until fn returns false. The
// order of enumeration follows hash fragments, so it is fixed for a given
// Map but arbitrary from the caller's point of view.
func (m Map[K, V]) Range(fn func(key K, val V) bool) {
	if m.root == nil {
		return
	}
	m.root.each(fn)
}

// Keys returns the keys of the Map in enumeration order.
func (m Map[K, V]) Keys() []K {
	var keys = make([]K, 0, m.size)
	m.Range(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Elems returns the values of the Map in enumeration order.
func (m Map[K, V]) Elems() []V {
	var vals = make([]V, 0, m.size)
	m.Range(func(_ K, val V) bool {
		vals = append(vals, val)
		return true
	})
	return vals
}

// ToList returns the entries of the Map in enumeration order.
func (m Map[K, V]) ToList() []Entry[K, V] {
	var kvs = make([]Entry[K, V], 0, m.size)
	m.Range(func(key K, val V) bool {
		kvs = append(kvs, Entry[K, V]{key, val})
		return true
	})
	return kvs
}

func (m Map[K, V]) String() string {
	if m.root == nil {
		return fmt.Sprintf("Map{size:%d, root:nil}", m.size)
	}
	return fmt.Sprintf("Map{size:%d, root:%s}", m.size, m.root)
}
