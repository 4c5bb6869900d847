package bvh

import "math"

// noIndex is the initial best index of a search. It is larger than any
// original index, so the first finite candidate always replaces it.
const noIndex = math.MaxInt

// Nearest finds, for each query point, the closest indexed point. It returns
// the distances and the original indices of those points.
//
// Among equidistant points the lowest original index wins, matching
// NaiveNearest exactly. An index of -1 is only reported when every distance
// to the query is NaN.
func (x *Index) Nearest(query [][]float64) ([]float64, []int, error) {
	if err := x.checkQuery(query); err != nil {
		return nil, nil, err
	}
	distances := make([]float64, len(query))
	indices := make([]int, len(query))
	x.nearestRange(query, distances, indices, 0, len(query))
	return distances, indices, nil
}

// NearestPoint is Nearest for a single query point.
func (x *Index) NearestPoint(q []float64) (float64, int, error) {
	if err := x.checkQuery([][]float64{q}); err != nil {
		return 0, 0, err
	}
	d, i := x.nearestOne(q)
	return d, i, nil
}

// nearestRange answers query rows [lo, hi) into distances and indices.
func (x *Index) nearestRange(query [][]float64, distances []float64, indices []int, lo, hi int) {
	for i := lo; i < hi; i++ {
		distances[i], indices[i] = x.nearestOne(query[i])
	}
}

func (x *Index) nearestOne(q []float64) (float64, int) {
	s := nearestSearch{x: x, q: q, best: math.Inf(1), bestID: noIndex}
	if s.worth(0, x.pointBound(0, q)) {
		s.visit(0)
	}
	if s.bestID == noIndex {
		return s.best, -1
	}
	return s.best, s.bestID
}

// nearestSearch is the branch-and-bound state for one query point.
type nearestSearch struct {
	x      *Index
	q      []float64
	best   float64
	bestID int
}

// closer reports whether (d, id) beats (best, bestID): a strictly smaller
// distance, or an equal distance with a lower original index.
func closer(d float64, id int, best float64, bestID int) bool {
	return d < best || (d == best && id < bestID)
}

// worth reports whether node id, whose lower bound is bound, may still hold
// a point that beats the current best.
func (s *nearestSearch) worth(id int, bound float64) bool {
	return closer(bound, s.x.nodes[id].MinID, s.best, s.bestID)
}

func (s *nearestSearch) visit(id int) {
	x := s.x
	node := &x.nodes[id]

	if node.IsLeaf() {
		for i := node.IdxStart; i < node.IdxEnd; i++ {
			ptIdx := x.idxArray[i]
			d := x.metric.Distance(s.q, x.store.row(ptIdx))
			if closer(d, ptIdx, s.best, s.bestID) {
				s.best, s.bestID = d, ptIdx
			}
		}
		return
	}

	// Visit the child with the smaller lower bound first.
	nearChild, farChild := node.Left, node.Right
	nearDist := x.pointBound(nearChild, s.q)
	farDist := x.pointBound(farChild, s.q)
	if farDist < nearDist {
		nearChild, farChild = farChild, nearChild
		nearDist, farDist = farDist, nearDist
	}

	if s.worth(nearChild, nearDist) {
		s.visit(nearChild)
	}
	// Re-check against the best found in the near subtree.
	if s.worth(farChild, farDist) {
		s.visit(farChild)
	}
}
