package hamt

import (
	"bytes"

	"github.com/cespare/xxhash"
)

// Hasher supplies the two things a Map needs to know about its key type:
// how to hash a key down to 32 bits and how to compare two keys for
// equality. Hash must be deterministic and Equal keys must hash equally;
// beyond that any distribution works, it only costs Trie depth.
type Hasher[K any] interface {
	Hash(key K) uint32
	Equal(a, b K) bool
}

// HashFn adapts a bare hash function to the Hasher interface for comparable
// key types, comparing keys with ==.
type HashFn[K comparable] func(key K) uint32

func (f HashFn[K]) Hash(key K) uint32 { return f(key) }
func (f HashFn[K]) Equal(a, b K) bool { return a == b }

// fold64 reduces a 64bit digest to the 32bit width the Trie consumes.
// Xor-folding the halves keeps entropy from every input bit.
func fold64(h uint64) uint32 {
	return uint32(h>>32) ^ uint32(h)
}

// StringHasher is the stock Hasher for string keys, built on xxhash.
type StringHasher struct{}

func (StringHasher) Hash(key string) uint32 { return fold64(xxhash.Sum64String(key)) }
func (StringHasher) Equal(a, b string) bool { return a == b }

// BytesHasher is the stock Hasher for []byte keys, built on xxhash.
type BytesHasher struct{}

func (BytesHasher) Hash(key []byte) uint32 { return fold64(xxhash.Sum64(key)) }
func (BytesHasher) Equal(a, b []byte) bool { return bytes.Equal(a, b) }

// IntHasher is the stock Hasher for int keys. Small sequential ints make
// terrible hash paths on their own, so the key is scrambled with a
// multiplicative mix constant first.
type IntHasher struct{}

func (IntHasher) Hash(key int) uint32 { return fold64(uint64(key) * 0xc4ceb9fe1a85ec53) }
func (IntHasher) Equal(a, b int) bool { return a == b }
