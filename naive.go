package bvh

import "math"

// The Naive* functions answer the same queries as Index by brute force in
// O(N·M). They are a correctness oracle and a reasonable choice for very
// small inputs, where building a tree does not pay off. Their validation,
// tie-breaking and threshold rules are identical to the indexed versions.
// A nil metric means EuclideanMetric.

// NaiveNearest returns, for each query point, the distance to and original
// index of the closest point in points, lowest index first among ties.
func NaiveNearest(points, query [][]float64, metric Metric) ([]float64, []int, error) {
	dims, err := rowDims(points)
	if err != nil {
		return nil, nil, err
	}
	if err := checkRows(query, dims); err != nil {
		return nil, nil, err
	}
	metric = metricOrDefault(metric)

	distances := make([]float64, len(query))
	indices := make([]int, len(query))
	for qi, q := range query {
		best, bestID := math.Inf(1), noIndex
		for i, p := range points {
			if d := metric.Distance(q, p); closer(d, i, best, bestID) {
				best, bestID = d, i
			}
		}
		if bestID == noIndex {
			bestID = -1
		}
		distances[qi], indices[qi] = best, bestID
	}
	return distances, indices, nil
}

// NaiveIntersectsPoints reports, for each query point, whether some point
// lies within minDist of it.
func NaiveIntersectsPoints(points, query [][]float64, minDist float64, metric Metric) ([]bool, error) {
	firstHits, err := NaiveFirstHits(points, query, minDist, metric)
	if err != nil {
		return nil, err
	}
	hits := make([]bool, len(firstHits))
	for i, h := range firstHits {
		hits[i] = h >= 0
	}
	return hits, nil
}

// NaiveFirstHits returns, for each query point, the lowest original index
// of a point within minDist of it, or -1.
func NaiveFirstHits(points, query [][]float64, minDist float64, metric Metric) ([]int, error) {
	dims, err := rowDims(points)
	if err != nil {
		return nil, err
	}
	if err := checkRows(query, dims); err != nil {
		return nil, err
	}
	if err := validateMinDist(minDist); err != nil {
		return nil, err
	}
	metric = metricOrDefault(metric)

	hits := make([]int, len(query))
	for qi, q := range query {
		hits[qi] = -1
		for i, p := range points {
			if metric.Distance(q, p) <= minDist {
				hits[qi] = i
				break
			}
		}
	}
	return hits, nil
}

// NaiveIntersects reports whether any point of a lies within minDist of any
// point of b, stopping at the first such pair.
func NaiveIntersects(a, b [][]float64, minDist float64, metric Metric) (bool, error) {
	dimsA, err := rowDims(a)
	if err != nil {
		return false, err
	}
	dimsB, err := rowDims(b)
	if err != nil {
		return false, err
	}
	if dimsA != dimsB {
		return false, &DimensionMismatchError{Expected: dimsA, Actual: dimsB, Row: -1}
	}
	if err := validateMinDist(minDist); err != nil {
		return false, err
	}
	metric = metricOrDefault(metric)

	for _, pa := range a {
		for _, pb := range b {
			if metric.Distance(pa, pb) <= minDist {
				return true, nil
			}
		}
	}
	return false, nil
}

func metricOrDefault(m Metric) Metric {
	if m == nil {
		return EuclideanMetric{}
	}
	return m
}
