/*
Package bitutil implements the slot arithmetic shared by the persistent
collections in this module. Both the hash trie map and the persistent vector
split a 32bit word into 5bit fragments, and both kinds of interior node use a
32 entry branching factor; the constants and the popcount based rank
calculation live here so the two engines agree on them.

All the counting functions compile down to single hardware instructions on
amd64 and arm64 via math/bits.
*/
package bitutil

import "math/bits"

// ChunkBits is the number of bits(5) a 32bit hash or index value is split
// into, to provide the slot numbers of an interior trie node.
const ChunkBits uint = 5

// FanOut is the number of child slots in each interior node of a trie; its
// value is 1<<ChunkBits (ie 2^5 == 32).
const FanOut uint = 1 << ChunkBits

// SlotMask masks a uint down to a valid slot number [0,FanOut).
const SlotMask uint = FanOut - 1

// Bit returns a mask with only the slot'th bit set.
func Bit(slot uint) uint32 {
	return uint32(1) << slot
}

// PopCount returns the number of set bits in mask.
func PopCount(mask uint32) uint {
	return uint(bits.OnesCount32(mask))
}

// Rank returns the number of set bits in mask strictly below the slot'th bit.
// In a bitmap compressed trie node this is the position of slot's child
// within the dense child array.
func Rank(mask uint32, slot uint) uint {
	return uint(bits.OnesCount32(mask & (Bit(slot) - 1)))
}

// Fragment extracts the ChunkBits wide fragment of x that starts at the
// level'th bit. The level argument is a bit shift (0, 5, 10, ...), not a
// depth count.
func Fragment(x uint32, level uint) uint {
	return uint(x>>level) & SlotMask
}

// SetSlots returns the slot numbers of the set bits in mask in ascending
// order. The length of the returned slice is PopCount(mask).
func SetSlots(mask uint32) []uint {
	var slots = make([]uint, 0, bits.OnesCount32(mask))
	for mask != 0 {
		slots = append(slots, uint(bits.TrailingZeros32(mask)))
		mask &= mask - 1 // clear lowest set bit
	}
	return slots
}
