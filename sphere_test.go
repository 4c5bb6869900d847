package bvh

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSphere_DistanceToPoint(t *testing.T) {
	s := Sphere{Center: []float64{0, 0}, Radius: 1}
	m := EuclideanMetric{}

	assert.InDelta(t, 2.0, s.DistanceToPoint([]float64{3, 0}, m), floatTol)
	assert.Equal(t, 0.0, s.DistanceToPoint([]float64{0.5, 0}, m), "inside clamps to zero")
	assert.Equal(t, 0.0, s.DistanceToPoint([]float64{0, 0}, m))
}

func TestSphere_GapTo(t *testing.T) {
	a := Sphere{Center: []float64{0, 0, 0}, Radius: 1}
	b := Sphere{Center: []float64{5, 0, 0}, Radius: 2}
	m := EuclideanMetric{}

	assert.InDelta(t, 2.0, a.GapTo(b, m), floatTol)
	assert.Equal(t, a.GapTo(b, m), b.GapTo(a, m))

	overlapping := Sphere{Center: []float64{2, 0, 0}, Radius: 1.5}
	assert.Equal(t, 0.0, a.GapTo(overlapping, m))
}

func TestSphere_PointIsZeroRadiusSphere(t *testing.T) {
	s := Sphere{Center: []float64{1, 2}, Radius: 0.5}
	p := []float64{4, 6}
	m := ManhattanMetric{}
	assert.Equal(t, s.GapTo(Sphere{Center: p}, m), s.DistanceToPoint(p, m))
}

func TestSphere_NeverExceedsTrueMinimum(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	m := EuclideanMetric{}
	idx := mustBuild(t, randomPoints(rng, 64, 3, 4, 0), leafConfig(4))
	other := mustBuild(t, randomPoints(rng, 64, 3, 4, 3), leafConfig(4))
	probes := randomPoints(rng, 20, 3, 10, -3)

	for id := range idx.nodes {
		s := idx.NodeSphere(id)
		for _, q := range probes {
			minActual := math.Inf(1)
			for _, p := range subtreePoints(idx, id) {
				minActual = min(minActual, m.Distance(q, idx.store.row(p)))
			}
			if lb := s.DistanceToPoint(q, m); lb > minActual {
				t.Errorf("node %d: DistanceToPoint %v > actual %v", id, lb, minActual)
			}
		}
		for jd := range other.nodes {
			minActual := math.Inf(1)
			for _, p := range subtreePoints(idx, id) {
				for _, r := range subtreePoints(other, jd) {
					minActual = min(minActual, m.Distance(idx.store.row(p), other.store.row(r)))
				}
			}
			if lb := s.GapTo(other.NodeSphere(jd), m); lb > minActual {
				t.Errorf("nodes %d,%d: GapTo %v > actual %v", id, jd, lb, minActual)
			}
		}
	}
}

func TestSphere_SinglePointLeafBoundIsExact(t *testing.T) {
	// A lone point's sphere has radius 0; its bound may only shrink by the
	// rounding slack.
	idx := mustBuild(t, [][]float64{{3, 4}}, DefaultConfig())
	lb := idx.pointBound(0, []float64{0, 0})
	assert.LessOrEqual(t, lb, 5.0)
	assert.InDelta(t, 5.0, lb, 1e-9)
}
