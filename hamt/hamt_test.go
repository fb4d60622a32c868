package hamt_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpthayer/pdata/hamt"
	"github.com/dpthayer/pdata/internal/th"
)

// entriesEqual compares two entry slices as multisets; Map enumeration
// order follows hash fragments, not insertion.
func entriesEqual(t *testing.T, want, got []hamt.Entry[string, int]) {
	t.Helper()
	var byKey = cmpopts.SortSlices(func(a, b hamt.Entry[string, int]) bool {
		return a.Key < b.Key
	})
	if diff := cmp.Diff(want, got, byKey); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertOne(t *testing.T) {
	var m = hamt.New[string, int](hamt.StringHasher{})
	require.True(t, m.IsEmpty())

	m = m.Insert("aaa", 1)

	require.False(t, m.IsEmpty())
	require.Equal(t, 1, m.Len())

	var v, found = m.Lookup("aaa")
	require.True(t, found)
	require.Equal(t, 1, v)

	assert.Contains(t, m.String(), "size:1")
}

func TestLookupAll(t *testing.T) {
	for _, kv := range KVS {
		var val, found = TestMap.Lookup(kv.Key)
		if !found {
			t.Fatalf("failed to TestMap.Lookup(%q)", kv.Key)
		}
		if val != kv.Val {
			t.Fatalf("TestMap.Lookup(%q) = %d, want %d", kv.Key, val, kv.Val)
		}
	}
}

func TestLookupAbsent(t *testing.T) {
	var val, found = TestMap.Lookup("not-a-key-of-the-corpus")
	require.False(t, found)
	require.Zero(t, val)
	require.False(t, TestMap.Member("also-absent"))
}

func TestToListRoundTrip(t *testing.T) {
	require.Equal(t, len(KVS), TestMap.Len())
	entriesEqual(t, KVS, TestMap.ToList())
}

func TestKeysAndElems(t *testing.T) {
	var keys = TestMap.Keys()
	var vals = TestMap.Elems()
	require.Len(t, keys, len(KVS))
	require.Len(t, vals, len(KVS))

	// Keys, Elems and ToList must agree on one enumeration order.
	var kvs = TestMap.ToList()
	for i := range kvs {
		if keys[i] != kvs[i].Key || vals[i] != kvs[i].Val {
			t.Fatalf("enumeration disagrees at %d: (%q,%d) vs (%q,%d)",
				i, keys[i], vals[i], kvs[i].Key, kvs[i].Val)
		}
	}
}

func TestInsertReplace(t *testing.T) {
	var m = hamt.FromList(hamt.StringHasher{}, KVS[:100])

	m = m.Insert(KVS[7].Key, -7)

	require.Equal(t, 100, m.Len())
	var v, found = m.Lookup(KVS[7].Key)
	require.True(t, found)
	require.Equal(t, -7, v)
}

func TestPersistence(t *testing.T) {
	var base = hamt.FromList(hamt.StringHasher{}, KVS[:1000])
	var before = base.ToList()

	var derived = base
	for _, kv := range KVS[1000:2000] {
		derived = derived.Insert(kv.Key, kv.Val)
	}
	for _, kv := range KVS[:500] {
		derived = derived.Delete(kv.Key)
	}

	// base must be untouched by everything derived from it
	require.Equal(t, 1000, base.Len())
	entriesEqual(t, before, base.ToList())
	require.True(t, base.Member(KVS[0].Key))
	require.False(t, base.Member(KVS[1500].Key))

	require.Equal(t, 1500, derived.Len())
	require.False(t, derived.Member(KVS[0].Key))
	require.True(t, derived.Member(KVS[1500].Key))
}

func TestDeleteAll(t *testing.T) {
	var h = TestMap

	var order = th.Shuffle(rand.New(rand.NewSource(2)), KVS)
	for i, kv := range order {
		h = h.Delete(kv.Key)
		if h.Member(kv.Key) {
			t.Fatalf("key %q still present after delete", kv.Key)
		}
		if h.Len() != len(order)-i-1 {
			t.Fatalf("after %d deletes Len() = %d, want %d", i+1, h.Len(), len(order)-i-1)
		}
	}

	require.True(t, h.IsEmpty())

	// and TestMap itself saw none of it
	require.Equal(t, len(KVS), TestMap.Len())
}

func TestDeleteAbsent(t *testing.T) {
	var m = hamt.FromList(hamt.StringHasher{}, KVS[:64])

	// deleting a key that was never there changes nothing, and the no-op is
	// free: the same Map value comes back
	require.Equal(t, m, m.Delete("zzzzzz"))
}

func TestAlter(t *testing.T) {
	var m = hamt.New[string, int](hamt.StringHasher{})

	// absent, store: an insert
	m = m.Alter(func(v int, found bool) (int, bool) {
		require.False(t, found)
		return 10, true
	}, "k")
	require.Equal(t, 1, m.Len())

	// present, store: an update
	m = m.Alter(func(v int, found bool) (int, bool) {
		require.True(t, found)
		return v + 1, true
	}, "k")
	var v, _ = m.Lookup("k")
	require.Equal(t, 11, v)

	// absent, drop: a no-op
	require.Equal(t, m, m.Alter(func(v int, found bool) (int, bool) {
		return 0, false
	}, "other"))

	// present, drop: a delete
	m = m.Alter(func(v int, found bool) (int, bool) {
		require.True(t, found)
		return 0, false
	}, "k")
	require.True(t, m.IsEmpty())
}

func TestUpdate(t *testing.T) {
	var m = hamt.FromList(hamt.StringHasher{}, KVS[:10])

	m = m.Update(func(v int) (int, bool) { return v * 100, true }, KVS[3].Key)
	var v, _ = m.Lookup(KVS[3].Key)
	require.Equal(t, KVS[3].Val*100, v)

	// an update can decide to drop the entry
	m = m.Update(func(int) (int, bool) { return 0, false }, KVS[4].Key)
	require.False(t, m.Member(KVS[4].Key))
	require.Equal(t, 9, m.Len())

	// absent key: no-op
	require.Equal(t, m, m.Update(func(v int) (int, bool) { return v, true }, "absent"))
}

func TestAdjust(t *testing.T) {
	var m = hamt.FromList(hamt.StringHasher{}, KVS[:10])

	m = m.Adjust(func(v int) int { return -v }, KVS[5].Key)
	var v, _ = m.Lookup(KVS[5].Key)
	require.Equal(t, -KVS[5].Val, v)

	require.Equal(t, m, m.Adjust(func(v int) int { return v + 1 }, "absent"))
	require.Equal(t, 10, m.Len())
}

func TestInsertWith(t *testing.T) {
	var add = func(newVal, oldVal int) int { return newVal + oldVal }

	var m = hamt.New[string, int](hamt.StringHasher{})
	for i := 0; i < 5; i++ {
		m = m.InsertWith(add, "counter", 2)
	}

	require.Equal(t, 1, m.Len())
	var v, found = m.Lookup("counter")
	require.True(t, found)
	require.Equal(t, 10, v)
}

func TestFromListLaterWins(t *testing.T) {
	var m = hamt.FromList(hamt.StringHasher{}, []hamt.Entry[string, int]{
		{Key: "dup", Val: 1},
		{Key: "solo", Val: 2},
		{Key: "dup", Val: 3},
	})

	require.Equal(t, 2, m.Len())
	var v, _ = m.Lookup("dup")
	require.Equal(t, 3, v)
}

func TestRangeEarlyStop(t *testing.T) {
	var m = hamt.FromList(hamt.StringHasher{}, KVS[:100])

	var seen int
	m.Range(func(string, int) bool {
		seen++
		return seen < 3
	})
	require.Equal(t, 3, seen)
}

func TestInsertIdempotent(t *testing.T) {
	var m1 = hamt.FromList(hamt.StringHasher{}, KVS[:256])
	var m2 = m1.Insert(KVS[13].Key, KVS[13].Val)

	// same pair again: observably the same map
	require.Equal(t, m1.Len(), m2.Len())
	entriesEqual(t, m1.ToList(), m2.ToList())
}

// A constant hash funnels every key into one collision leaf; the Map must
// stay a correct map regardless.
func TestCollidingKeys(t *testing.T) {
	var collide = hamt.HashFn[string](func(string) uint32 { return 0xdeadbeef })

	var m = hamt.New[string, int](collide)
	m = m.Insert("a", 1)
	m = m.Insert("b", 2)
	m = m.Insert("c", 3)

	require.Equal(t, 3, m.Len())
	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		var v, found = m.Lookup(key)
		require.True(t, found, "Lookup(%q)", key)
		require.Equal(t, want, v)
	}
	require.False(t, m.Member("d"))

	m = m.Adjust(func(v int) int { return v * 10 }, "b")
	var v, _ = m.Lookup("b")
	require.Equal(t, 20, v)

	m = m.Delete("b")
	require.Equal(t, 2, m.Len())
	require.False(t, m.Member("b"))
	require.True(t, m.Member("a"))
	require.True(t, m.Member("c"))

	m = m.Delete("a")
	m = m.Delete("c")
	require.True(t, m.IsEmpty())
}

// Two hash buckets: keys starting with the same byte collide, others split.
func TestCollisionSplit(t *testing.T) {
	var firstByte = hamt.HashFn[string](func(s string) uint32 {
		return uint32(s[0])
	})

	var m = hamt.New[string, int](firstByte)
	m = m.Insert("a1", 1)
	m = m.Insert("a2", 2)
	m = m.Insert("b1", 3)

	require.Equal(t, 3, m.Len())
	for key, want := range map[string]int{"a1": 1, "a2": 2, "b1": 3} {
		var v, found = m.Lookup(key)
		require.True(t, found, "Lookup(%q)", key)
		require.Equal(t, want, v)
	}

	m = m.Delete("a1")
	require.True(t, m.Member("a2"))
	require.True(t, m.Member("b1"))
	require.Equal(t, 2, m.Len())
}

// []byte keys are not comparable, which is exactly what the Hasher exists
// for.
func TestBytesKeys(t *testing.T) {
	var m = hamt.New[[]byte, string](hamt.BytesHasher{})
	m = m.Insert([]byte("k1"), "v1")
	m = m.Insert([]byte("k2"), "v2")

	var v, found = m.Lookup([]byte("k1"))
	require.True(t, found)
	require.Equal(t, "v1", v)

	m = m.Delete([]byte("k2"))
	require.Equal(t, 1, m.Len())
	require.False(t, m.Member([]byte("k2")))
}

func TestIntKeys(t *testing.T) {
	var m = hamt.New[int, string](hamt.IntHasher{})
	for i := 0; i < 1000; i++ {
		m = m.Insert(i, "")
	}
	require.Equal(t, 1000, m.Len())
	for i := 0; i < 1000; i++ {
		if !m.Member(i) {
			t.Fatalf("key %d missing", i)
		}
	}
	require.False(t, m.Member(1000))
}
