// Package bvh implements a bounding-sphere hierarchy over a fixed-dimension
// point set for fast proximity queries.
//
// An Index is built once from N points of dimensionality D and then queried
// any number of times, concurrently if desired. Two query families are
// supported:
//
//   - nearest point: for each query point, the closest indexed point and
//     its distance;
//   - threshold: whether any indexed point lies within a minimum distance
//     of each query point, or whether any pair drawn from two indexes does.
//     Threshold searches stop at the first hit.
//
// Basic usage:
//
//	idx, err := bvh.Build(points, bvh.DefaultConfig())
//	dists, ids, err := idx.Nearest(queries)
//	// dists[i] is the distance from queries[i] to points[ids[i]]
//	hits, err := idx.IntersectsPoints(queries, 0.2)
//	hit, err := bvh.IntersectsTree(idx, other, 0.2)
//
// # Tree layout
//
// Each node stores a sphere centered at the mean of its points, with radius
// equal to the largest distance from that mean to one of them. Nodes split
// at the median of the axis with the greatest spread until at most
// Config.LeafSize points remain. Construction is deterministic: identical
// input yields an identical tree. The root center is the centroid of the
// whole set and is available through Index.Centroid.
//
// # Determinism
//
// Nearest breaks distance ties toward the lowest original point index, so
// its results match NaiveNearest exactly. Threshold verdicts always match
// the Naive* functions. Distances that compare equal to the threshold count
// as hits.
//
// # Non-finite input
//
// Coordinates are not checked for NaN or Inf. Queries that involve such
// values return undefined (but never panicking) results.
package bvh
