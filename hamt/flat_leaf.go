package hamt

import "fmt"

type flatLeaf[K, V any] struct {
	hash uint32 //hash of key
	key  K
	val  V
}

func newFlatLeaf[K, V any](hash uint32, key K, val V) *flatLeaf[K, V] {
	var fl = new(flatLeaf[K, V])
	fl.hash = hash
	fl.key = key
	fl.val = val
	return fl
}

// hashcode() is required for leafI
func (l *flatLeaf[K, V]) hashcode() uint32 {
	return l.hash
}

func (l *flatLeaf[K, V]) get(hash uint32, key K, hr Hasher[K], level uint) (V, bool) {
	if l.hash == hash && hr.Equal(l.key, key) {
		return l.val, true
	}
	var zero V
	return zero, false
}

func (l *flatLeaf[K, V]) alter(e *edit[K, V], level uint) (nodeI[K, V], int) {
	if l.hash == e.hash && e.hasher.Equal(l.key, e.key) {
		var v, keep = e.fn(l.val, true)
		if !keep {
			return nil, -1 //deleted entry
		}
		return newFlatLeaf(l.hash, l.key, v), 0
	}

	// A different key landed on this leaf. If the edit produces a value the
	// two leaves need a subtree of their own; otherwise nothing changes.
	var zero V
	var v, keep = e.fn(zero, false)
	if !keep {
		return l, 0
	}
	return combine[K, V](level, l, newFlatLeaf(e.hash, e.key, v)), 1
}

func (l *flatLeaf[K, V]) each(fn func(key K, val V) bool) bool {
	return fn(l.key, l.val)
}

func (l *flatLeaf[K, V]) keyVals() []Entry[K, V] {
	return []Entry[K, V]{{l.key, l.val}}
}

func (l *flatLeaf[K, V]) String() string {
	return fmt.Sprintf("flatLeaf{hash:%#08x, key:%v, val:%v}", l.hash, l.key, l.val)
}
