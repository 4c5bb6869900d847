package bvh

import (
	"slices"

	"github.com/rs/zerolog"
)

// Index is an immutable bounding-sphere hierarchy over a point set. It is
// built once and is safe for concurrent use by any number of readers.
//
// The tree is an arena: nodes live in one slice and refer to their children
// by position. Node 0 is the root; its center is the centroid of all points.
type Index struct {
	store    pointStore
	metric   Metric
	leafSize int
	idxArray []int      // permutation: tree-order position → original index
	nodes    []NodeData // depth-first arena, root at 0
	centers  []float64  // centers[node*dims .. (node+1)*dims)
	depth    int
	workers  int
	logger   zerolog.Logger
}

// Len returns the number of indexed points.
func (x *Index) Len() int { return x.store.n }

// Dims returns the dimensionality of the indexed points.
func (x *Index) Dims() int { return x.store.dims }

// LeafSize returns the maximum number of points per leaf.
func (x *Index) LeafSize() int { return x.leafSize }

// Metric returns the distance metric the index was built with.
func (x *Index) Metric() Metric { return x.metric }

// NumNodes returns the total number of nodes (internal + leaf).
func (x *Index) NumNodes() int { return len(x.nodes) }

// Depth returns the number of levels in the tree; a lone leaf has depth 1.
func (x *Index) Depth() int { return x.depth }

// Centroid returns the arithmetic mean of the indexed points, which is also
// the center of the root bounding sphere.
func (x *Index) Centroid() []float64 {
	return slices.Clone(x.center(0))
}

// Root returns a copy of the bounding sphere of the whole point set.
func (x *Index) Root() Sphere {
	return Sphere{Center: x.Centroid(), Radius: x.nodes[0].Radius}
}

// Point returns a copy of the point that was at position i of the input.
func (x *Index) Point(i int) []float64 {
	return slices.Clone(x.store.row(i))
}

// Nodes returns a copy of the node arena, in depth-first order.
func (x *Index) Nodes() []NodeData {
	return slices.Clone(x.nodes)
}

// IdxArray returns a copy of the permutation mapping tree-order positions
// back to original point indices.
func (x *Index) IdxArray() []int {
	return slices.Clone(x.idxArray)
}

// NodeSphere returns a copy of the bounding sphere of node id.
func (x *Index) NodeSphere(id int) Sphere {
	return Sphere{Center: slices.Clone(x.center(id)), Radius: x.nodes[id].Radius}
}

func (x *Index) center(id int) []float64 {
	dims := x.store.dims
	lo, hi := id*dims, (id+1)*dims
	return x.centers[lo:hi:hi]
}

// pointBound is the lower bound on the distance from q to any point under
// node id.
func (x *Index) pointBound(id int, q []float64) float64 {
	return gap(x.metric.Distance(q, x.center(id)), x.nodes[id].Radius, 0)
}

// checkQuery validates a batch of query points against the index.
func (x *Index) checkQuery(query [][]float64) error {
	if x == nil {
		return invalidf("nil index")
	}
	return checkRows(query, x.store.dims)
}
