package lattice_test

import (
	"testing"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/lattice"
)

// benchmarkSearch pops the first k combinations of an n×n lattice.
func benchmarkSearch(b *testing.B, n, k int) {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = float64(100 + i*3)
	}
	cols := []core.Column{owColumn(core.Outbound, prices...), owColumn(core.Inbound, prices...)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := lattice.New(cols, lattice.WithMinConnection(0))
		if err != nil {
			b.Fatal(err)
		}
		s.Drain(k)
	}
}

// BenchmarkSearch_Small benchmarks 50 pops over 100×100.
func BenchmarkSearch_Small(b *testing.B) { benchmarkSearch(b, 100, 50) }

// BenchmarkSearch_Large benchmarks 500 pops over 1000×1000.
func BenchmarkSearch_Large(b *testing.B) { benchmarkSearch(b, 1000, 500) }
