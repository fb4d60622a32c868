package vector_test

import (
	"log"
	"math/rand"
	"testing"

	"github.com/benbjohnson/immutable"

	"github.com/dpthayer/pdata/vector"
)

const benchSize = 1 << 16

func BenchmarkVectorAppend(b *testing.B) {
	log.Printf("BenchmarkVectorAppend: b.N=%d", b.N)

	var v = vector.Empty[int]()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		v = v.Append(i)
	}
}

func BenchmarkVectorIndex(b *testing.B) {
	log.Printf("BenchmarkVectorIndex: b.N=%d", b.N)

	var v = buildVector(benchSize)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var j = rand.Int() % benchSize
		var got, err = v.Index(j)
		if err != nil {
			b.Fatalf("Index(%d) failed: %v", j, err)
		}
		if got != j {
			b.Fatalf("Index(%d) = %d", j, got)
		}
	}
}

func BenchmarkVectorSet(b *testing.B) {
	log.Printf("BenchmarkVectorSet: b.N=%d", b.N)

	var v = buildVector(benchSize)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var j = rand.Int() % benchSize
		var _, err = v.Set(j, i)
		if err != nil {
			b.Fatalf("Set(%d) failed: %v", j, err)
		}
	}
}

// The immutable.List benchmarks below run the same workloads on another
// persistent sequence for comparison.

func BenchmarkImmutableListAppend(b *testing.B) {
	log.Printf("BenchmarkImmutableListAppend: b.N=%d", b.N)

	var l = immutable.NewList[int]()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		l = l.Append(i)
	}
}

func BenchmarkImmutableListGet(b *testing.B) {
	log.Printf("BenchmarkImmutableListGet: b.N=%d", b.N)

	var l = immutable.NewList[int]()
	for i := 0; i < benchSize; i++ {
		l = l.Append(i)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var j = rand.Int() % benchSize
		if got := l.Get(j); got != j {
			b.Fatalf("Get(%d) = %d", j, got)
		}
	}
}

func BenchmarkImmutableListSet(b *testing.B) {
	log.Printf("BenchmarkImmutableListSet: b.N=%d", b.N)

	var l = immutable.NewList[int]()
	for i := 0; i < benchSize; i++ {
		l = l.Append(i)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var j = rand.Int() % benchSize
		l.Set(j, i)
	}
}
