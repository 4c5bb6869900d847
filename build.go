package bvh

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Build constructs an Index over points. All rows must have the same,
// non-zero length. The input is copied; later changes to points do not
// affect the index.
//
// Coordinates are not scanned for NaN or Inf. Such values are accepted but
// make every query result that touches them undefined.
func Build(points [][]float64, cfg Config) (*Index, error) {
	data, n, dims, err := flatten(points)
	if err != nil {
		return nil, err
	}
	return build(data, n, dims, cfg)
}

// BuildFlat constructs an Index from flat row-major data with n points of
// dimensionality dims.
func BuildFlat(data []float64, n, dims int, cfg Config) (*Index, error) {
	if n <= 0 {
		return nil, invalidf("empty point set")
	}
	if dims <= 0 {
		return nil, invalidf("points have zero dimensions")
	}
	if len(data) != n*dims {
		return nil, invalidf("data length %d does not match n*dims = %d (n=%d, dims=%d)", len(data), n*dims, n, dims)
	}
	return build(data, n, dims, cfg)
}

func build(data []float64, n, dims int, cfg Config) (*Index, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	started := time.Now()
	idxArray := make([]int, n)
	for i := range idxArray {
		idxArray[i] = i
	}
	hint := maxNodesHint(n, cfg.LeafSize)
	b := &builder{
		store:    newPointStore(data, n, dims),
		metric:   cfg.Metric,
		leafSize: cfg.LeafSize,
		idxArray: idxArray,
		nodes:    make([]NodeData, 0, hint),
		centers:  make([]float64, 0, hint*dims),
	}
	b.buildNode(0, n, 1)

	x := &Index{
		store:    b.store,
		metric:   b.metric,
		leafSize: b.leafSize,
		idxArray: b.idxArray,
		nodes:    b.nodes,
		centers:  b.centers,
		depth:    b.depth,
		workers:  cfg.Workers,
		logger:   loggerOrNop(cfg.Logger),
	}
	x.logBuild(time.Since(started))
	return x, nil
}

// builder holds the state of a single construction pass.
type builder struct {
	store    pointStore
	metric   Metric
	leafSize int
	idxArray []int // permutation: tree-order position → original index
	nodes    []NodeData
	centers  []float64 // centers[node*dims .. (node+1)*dims) = centroid of node
	depth    int
}

// buildNode appends the node for points idxArray[start:end], then its
// subtrees, and returns the node's index.
func (b *builder) buildNode(start, end, depth int) int {
	dims := b.store.dims
	id := len(b.nodes)
	b.nodes = append(b.nodes, NodeData{IdxStart: start, IdxEnd: end, Left: -1, Right: -1})
	b.centers = append(b.centers, make([]float64, dims)...)
	if depth > b.depth {
		b.depth = depth
	}

	b.computeCentroid(id, start, end)

	// Radius: max distance from centroid to any point in this node.
	centroid := b.centers[id*dims : (id+1)*dims]
	var radius float64
	minID := math.MaxInt
	for i := start; i < end; i++ {
		ptIdx := b.idxArray[i]
		if d := b.metric.Distance(centroid, b.store.row(ptIdx)); d > radius {
			radius = d
		}
		if ptIdx < minID {
			minID = ptIdx
		}
	}
	b.nodes[id].Radius = padRadius(radius)
	b.nodes[id].MinID = minID

	count := end - start
	if count <= b.leafSize {
		return id
	}

	// Median split along the axis of greatest spread. The left half takes
	// the extra point of an odd count.
	splitDim := b.findSpreadDim(start, end)
	b.sortByDim(start, end, splitDim)
	mid := start + (count+1)/2

	left := b.buildNode(start, mid, depth+1)
	right := b.buildNode(mid, end, depth+1)
	b.nodes[id].Left = left
	b.nodes[id].Right = right
	return id
}

// computeCentroid computes the mean of points idxArray[start:end] and stores
// it in the centers array.
func (b *builder) computeCentroid(id, start, end int) {
	dims := b.store.dims
	c := b.centers[id*dims : (id+1)*dims]
	for i := start; i < end; i++ {
		floats.Add(c, b.store.row(b.idxArray[i]))
	}
	floats.Scale(1/float64(end-start), c)
}

// findSpreadDim returns the dimension with the greatest spread (max - min)
// among points idxArray[start:end]. Ties go to the lowest dimension.
func (b *builder) findSpreadDim(start, end int) int {
	dims := b.store.dims
	data := b.store.data
	bestDim := 0
	bestSpread := -1.0
	for d := 0; d < dims; d++ {
		minVal := math.Inf(1)
		maxVal := math.Inf(-1)
		for i := start; i < end; i++ {
			v := data[b.idxArray[i]*dims+d]
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
		if spread := maxVal - minVal; spread > bestSpread {
			bestSpread = spread
			bestDim = d
		}
	}
	return bestDim
}

// sortByDim stably sorts idxArray[start:end] by the given dimension, so
// equal coordinates keep their input order.
func (b *builder) sortByDim(start, end, dim int) {
	sub := b.idxArray[start:end]
	dims := b.store.dims
	data := b.store.data
	sort.SliceStable(sub, func(i, j int) bool {
		return data[sub[i]*dims+dim] < data[sub[j]*dims+dim]
	})
}
