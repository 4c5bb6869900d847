package bvh

import (
	"math/rand"
	"testing"
)

// randomPoints returns n points with coordinates uniform in
// [offset, offset+scale).
func randomPoints(rng *rand.Rand, n, dims int, scale, offset float64) [][]float64 {
	pts := make([][]float64, n)
	for i := range pts {
		pts[i] = make([]float64, dims)
		for j := range pts[i] {
			pts[i][j] = rng.Float64()*scale + offset
		}
	}
	return pts
}

// normalPoints returns n points drawn from a unit normal around center.
func normalPoints(rng *rand.Rand, n int, center []float64) [][]float64 {
	pts := make([][]float64, n)
	for i := range pts {
		pts[i] = make([]float64, len(center))
		for j := range pts[i] {
			pts[i][j] = rng.NormFloat64() + center[j]
		}
	}
	return pts
}

// gridPoints returns points on an integer grid, which produces many exact
// distance ties.
func gridPoints(rng *rand.Rand, n, dims, side int) [][]float64 {
	pts := make([][]float64, n)
	for i := range pts {
		pts[i] = make([]float64, dims)
		for j := range pts[i] {
			pts[i][j] = float64(rng.Intn(side))
		}
	}
	return pts
}

func mustBuild(t testing.TB, points [][]float64, cfg Config) *Index {
	t.Helper()
	idx, err := Build(points, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return idx
}

func leafConfig(leafSize int) Config {
	cfg := DefaultConfig()
	cfg.LeafSize = leafSize
	return cfg
}

// subtreePoints returns the original indices of all points under node id.
func subtreePoints(idx *Index, id int) []int {
	nd := idx.nodes[id]
	return idx.idxArray[nd.IdxStart:nd.IdxEnd]
}
