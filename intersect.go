package bvh

import "sync/atomic"

// IntersectsPoints reports, for each query point, whether some indexed point
// lies within minDist of it. minDist must be finite and >= 0; a distance
// equal to minDist counts as a hit.
func (x *Index) IntersectsPoints(query [][]float64, minDist float64) ([]bool, error) {
	if err := x.checkQuery(query); err != nil {
		return nil, err
	}
	if err := validateMinDist(minDist); err != nil {
		return nil, err
	}
	hits := make([]bool, len(query))
	x.intersectsRange(query, minDist, hits, 0, len(query))
	return hits, nil
}

// FirstHits is IntersectsPoints reporting which point was hit: the original
// index of the first indexed point found within minDist of each query, or
// -1. The search stops at the first hit, so the reported point is not
// necessarily the nearest one nor the one with the lowest index.
func (x *Index) FirstHits(query [][]float64, minDist float64) ([]int, error) {
	if err := x.checkQuery(query); err != nil {
		return nil, err
	}
	if err := validateMinDist(minDist); err != nil {
		return nil, err
	}
	hits := make([]int, len(query))
	for i, q := range query {
		hits[i] = x.firstHit(q, minDist)
	}
	return hits, nil
}

func (x *Index) intersectsRange(query [][]float64, minDist float64, hits []bool, lo, hi int) {
	for i := lo; i < hi; i++ {
		hits[i] = x.firstHit(query[i], minDist) >= 0
	}
}

func (x *Index) firstHit(q []float64, minDist float64) int {
	if x.pointBound(0, q) > minDist {
		return -1
	}
	return x.hitNode(0, q, minDist)
}

// hitNode searches node id, whose bound is already known not to exceed
// minDist, for a point within minDist of q.
func (x *Index) hitNode(id int, q []float64, minDist float64) int {
	node := &x.nodes[id]

	if node.IsLeaf() {
		for i := node.IdxStart; i < node.IdxEnd; i++ {
			ptIdx := x.idxArray[i]
			if x.metric.Distance(q, x.store.row(ptIdx)) <= minDist {
				return ptIdx
			}
		}
		return -1
	}

	nearChild, farChild := node.Left, node.Right
	nearDist := x.pointBound(nearChild, q)
	farDist := x.pointBound(farChild, q)
	if farDist < nearDist {
		nearChild, farChild = farChild, nearChild
		nearDist, farDist = farDist, nearDist
	}

	if nearDist <= minDist {
		if hit := x.hitNode(nearChild, q, minDist); hit >= 0 {
			return hit
		}
	}
	if farDist <= minDist {
		return x.hitNode(farChild, q, minDist)
	}
	return -1
}

// IntersectsTree reports whether any point of a lies within minDist of any
// point of b. Both indexes must have the same dimensionality and metric.
func IntersectsTree(a, b *Index, minDist float64) (bool, error) {
	if err := checkTreePair(a, b, minDist); err != nil {
		return false, err
	}
	s := dualSearch{a: a, b: b, minDist: minDist}
	return s.run(0, 0), nil
}

func checkTreePair(a, b *Index, minDist float64) error {
	if a == nil || b == nil {
		return invalidf("nil index")
	}
	if a.store.dims != b.store.dims {
		return &DimensionMismatchError{Expected: a.store.dims, Actual: b.store.dims, Row: -1}
	}
	if !sameMetric(a.metric, b.metric) {
		return invalidf("metric mismatch: %T vs %T", a.metric, b.metric)
	}
	return validateMinDist(minDist)
}

// dualSearch is a simultaneous descent over two trees looking for one pair
// of points within minDist. When stop is non-nil, the search gives up as
// soon as it is set.
type dualSearch struct {
	a, b    *Index
	minDist float64
	stop    *atomic.Bool
}

// pairGap is the lower bound on distances between points under node ia of a
// and node ib of b.
func (s *dualSearch) pairGap(ia, ib int) float64 {
	d := s.a.metric.Distance(s.a.center(ia), s.b.center(ib))
	return gap(d, s.a.nodes[ia].Radius, s.b.nodes[ib].Radius)
}

// run checks the pair (ia, ib) against the threshold before searching it.
func (s *dualSearch) run(ia, ib int) bool {
	if s.pairGap(ia, ib) > s.minDist {
		return false
	}
	return s.search(ia, ib)
}

func (s *dualSearch) stopped() bool {
	return s.stop != nil && s.stop.Load()
}

// search descends into a node pair that survived pruning.
func (s *dualSearch) search(ia, ib int) bool {
	if s.stopped() {
		return false
	}
	na, nb := &s.a.nodes[ia], &s.b.nodes[ib]

	if na.IsLeaf() && nb.IsLeaf() {
		return s.leafPairs(na, nb)
	}
	if s.splitA(na, nb) {
		return s.descend(na.Left, ib, na.Right, ib)
	}
	return s.descend(ia, nb.Left, ia, nb.Right)
}

// splitA reports whether to descend into a's side of the pair: the side with
// the larger bound, unless it is a leaf.
func (s *dualSearch) splitA(na, nb *NodeData) bool {
	if nb.IsLeaf() {
		return true
	}
	if na.IsLeaf() {
		return false
	}
	return na.Radius >= nb.Radius
}

// descend searches the two child pairs, the one with the smaller gap first.
func (s *dualSearch) descend(a1, b1, a2, b2 int) bool {
	g1, g2 := s.pairGap(a1, b1), s.pairGap(a2, b2)
	if g2 < g1 {
		a1, b1, a2, b2 = a2, b2, a1, b1
		g1, g2 = g2, g1
	}
	if g1 <= s.minDist && s.search(a1, b1) {
		return true
	}
	return g2 <= s.minDist && s.search(a2, b2)
}

func (s *dualSearch) leafPairs(na, nb *NodeData) bool {
	for i := na.IdxStart; i < na.IdxEnd; i++ {
		pa := s.a.store.row(s.a.idxArray[i])
		for j := nb.IdxStart; j < nb.IdxEnd; j++ {
			if s.a.metric.Distance(pa, s.b.store.row(s.b.idxArray[j])) <= s.minDist {
				return true
			}
		}
	}
	return false
}

// children returns the node pairs search would descend into from (ia, ib).
func (s *dualSearch) children(ia, ib int) [2]nodePair {
	na, nb := &s.a.nodes[ia], &s.b.nodes[ib]
	if s.splitA(na, nb) {
		return [2]nodePair{{na.Left, ib}, {na.Right, ib}}
	}
	return [2]nodePair{{ia, nb.Left}, {ia, nb.Right}}
}

type nodePair struct {
	a, b int
}
