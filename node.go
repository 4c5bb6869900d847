package bvh

// NodeData describes a single node in the tree arena. Nodes are stored in
// depth-first order, so a child always has a larger index than its parent.
type NodeData struct {
	// IdxStart and IdxEnd delimit the node's points in the index
	// permutation (tree order).
	IdxStart int `msgpack:"s"`
	IdxEnd   int `msgpack:"e"`

	// Left and Right are child node indices; both are -1 for a leaf.
	Left  int `msgpack:"l"`
	Right int `msgpack:"r"`

	// MinID is the smallest original point index under this node.
	MinID int `msgpack:"m"`

	// Radius bounds the distance from the node's center to each of its points.
	Radius float64 `msgpack:"rad"`
}

// IsLeaf reports whether the node holds points directly.
func (n NodeData) IsLeaf() bool { return n.Left < 0 }

// Count returns the number of points under the node.
func (n NodeData) Count() int { return n.IdxEnd - n.IdxStart }

// maxNodesHint returns a capacity hint for the arena of a tree with n points
// and the given leaf size. The builder appends past it if needed.
func maxNodesHint(n, leafSize int) int {
	if n == 0 {
		return 1
	}
	leaves := (n + leafSize - 1) / leafSize
	return 2*leaves + 1
}
