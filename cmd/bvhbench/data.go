package main

import "math/rand/v2"

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randomPoints returns n uniform points in [offset, offset+1)^dims.
func randomPoints(rng *rand.Rand, n, dims int, offset float64) [][]float64 {
	pts := make([][]float64, n)
	for i := range pts {
		pts[i] = make([]float64, dims)
		for j := range pts[i] {
			pts[i][j] = rng.Float64() + offset
		}
	}
	return pts
}
