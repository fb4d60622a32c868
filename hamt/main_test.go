package hamt_test

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/dpthayer/pdata/hamt"
	"github.com/dpthayer/pdata/internal/th"
)

var numKvs int

// KVS is the shared key/val corpus, keys in increment order.
var KVS []hamt.Entry[string, int]

// TestMap holds all of KVS, built once in insertion randomized order.
var TestMap hamt.Map[string, int]

func TestMain(m *testing.M) {
	flag.IntVar(&numKvs, "kvs", 16*1024, "number of key/val pairs in the shared test corpus")
	flag.Parse()

	log.SetFlags(log.Lshortfile)

	KVS = buildEntries(numKvs)

	var start = time.Now()
	TestMap = hamt.FromList(hamt.StringHasher{}, th.Shuffle(rand.New(rand.NewSource(1)), KVS))
	log.Printf("TestMain: built the %d entry TestMap in %s", TestMap.Len(), time.Since(start))

	os.Exit(m.Run())
}

func buildEntries(num int) []hamt.Entry[string, int] {
	var kvs = make([]hamt.Entry[string, int], num)

	var s = "aaa"
	for i := 0; i < num; i++ {
		kvs[i] = hamt.Entry[string, int]{Key: s, Val: i}
		s = th.Inc(s)
	}

	return kvs
}
