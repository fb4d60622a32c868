package hamt

import "fmt"

// A collisionLeaf stores two or more entries whose keys share the same full
// 32bit hash. It lives past the bottom of the Trie, so lookups and edits
// fall back to a linear scan over its entries; with a decent hash function
// these lists stay very short.
type collisionLeaf[K, V any] struct {
	hash uint32
	kvs  []Entry[K, V] //len(kvs) >= 2; keys pairwise distinct
}

func newCollisionLeaf[K, V any](hash uint32, kvs []Entry[K, V]) *collisionLeaf[K, V] {
	var cl = new(collisionLeaf[K, V])
	cl.hash = hash
	cl.kvs = append(cl.kvs, kvs...)
	return cl
}

// hashcode() is required for leafI
func (l *collisionLeaf[K, V]) hashcode() uint32 {
	return l.hash
}

func (l *collisionLeaf[K, V]) copy() *collisionLeaf[K, V] {
	return newCollisionLeaf(l.hash, l.kvs)
}

func (l *collisionLeaf[K, V]) get(hash uint32, key K, hr Hasher[K], level uint) (V, bool) {
	if hash == l.hash {
		for i := 0; i < len(l.kvs); i++ {
			if hr.Equal(l.kvs[i].Key, key) {
				return l.kvs[i].Val, true
			}
		}
	}
	var zero V
	return zero, false
}

func (l *collisionLeaf[K, V]) alter(e *edit[K, V], level uint) (nodeI[K, V], int) {
	if e.hash != l.hash {
		// Not a colliding key. If the edit produces a value the new leaf and
		// this one get split apart by their differing hashes.
		var zero V
		var v, keep = e.fn(zero, false)
		if !keep {
			return l, 0
		}
		return combine[K, V](level, l, newFlatLeaf(e.hash, e.key, v)), 1
	}

	for i := 0; i < len(l.kvs); i++ {
		if !e.hasher.Equal(l.kvs[i].Key, e.key) {
			continue
		}

		var v, keep = e.fn(l.kvs[i].Val, true)
		if !keep {
			if len(l.kvs) == 2 {
				// dropping to one entry; the leaf stops being a collision
				var kv = l.kvs[1-i]
				return newFlatLeaf(l.hash, kv.Key, kv.Val), -1
			}
			var nl = new(collisionLeaf[K, V])
			nl.hash = l.hash
			nl.kvs = make([]Entry[K, V], 0, len(l.kvs)-1)
			nl.kvs = append(nl.kvs, l.kvs[:i]...)
			nl.kvs = append(nl.kvs, l.kvs[i+1:]...)
			return nl, -1
		}

		var nl = l.copy()
		// keep the old key object, only the value changes
		nl.kvs[i] = Entry[K, V]{l.kvs[i].Key, v}
		return nl, 0
	}

	// Same hash but a key we do not hold yet.
	var zero V
	var v, keep = e.fn(zero, false)
	if !keep {
		return l, 0
	}
	var nl = l.copy()
	nl.kvs = append(nl.kvs, Entry[K, V]{e.key, v})
	return nl, 1
}

func (l *collisionLeaf[K, V]) each(fn func(key K, val V) bool) bool {
	for i := 0; i < len(l.kvs); i++ {
		if !fn(l.kvs[i].Key, l.kvs[i].Val) {
			return false
		}
	}
	return true
}

func (l *collisionLeaf[K, V]) keyVals() []Entry[K, V] {
	var kvs = make([]Entry[K, V], len(l.kvs))
	copy(kvs, l.kvs)
	return kvs
}

func (l *collisionLeaf[K, V]) String() string {
	return fmt.Sprintf("collisionLeaf{hash:%#08x, nentries:%d}", l.hash, len(l.kvs))
}
