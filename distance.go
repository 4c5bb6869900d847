package bvh

import (
	"fmt"
	"math"
	"reflect"
)

// Metric computes the distance between two points of equal length.
//
// Sphere pruning relies on the triangle inequality, so a Metric must be a
// true metric. Similarity measures such as cosine distance are not.
type Metric interface {
	Distance(a, b []float64) float64
}

// EuclideanMetric computes the Euclidean (L2) distance. It is the default.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

// ChebyshevMetric computes the Chebyshev (L-infinity) distance.
type ChebyshevMetric struct{}

func (ChebyshevMetric) Distance(a, b []float64) float64 {
	var maxVal float64
	for i := range a {
		if v := math.Abs(a[i] - b[i]); v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// MinkowskiMetric computes the Minkowski distance parameterized by P.
// P must be >= 1; Config validation rejects smaller values.
type MinkowskiMetric struct {
	P float64
}

func (m MinkowskiMetric) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Pow(math.Abs(a[i]-b[i]), m.P)
	}
	return math.Pow(sum, 1.0/m.P)
}

// metricName returns the snapshot identifier for the built-in metrics.
func metricName(m Metric) (string, float64, error) {
	switch v := m.(type) {
	case EuclideanMetric:
		return "euclidean", 0, nil
	case ManhattanMetric:
		return "manhattan", 0, nil
	case ChebyshevMetric:
		return "chebyshev", 0, nil
	case MinkowskiMetric:
		return "minkowski", v.P, nil
	default:
		return "", 0, fmt.Errorf("bvh: metric %T cannot be stored in a snapshot", m)
	}
}

func metricByName(name string, p float64) (Metric, error) {
	switch name {
	case "euclidean":
		return EuclideanMetric{}, nil
	case "manhattan":
		return ManhattanMetric{}, nil
	case "chebyshev":
		return ChebyshevMetric{}, nil
	case "minkowski":
		if !(p >= 1) {
			return nil, corruptf("minkowski exponent %v", p)
		}
		return MinkowskiMetric{P: p}, nil
	default:
		return nil, corruptf("unknown metric %q", name)
	}
}

// sameMetric reports whether two indexes measure distance the same way.
// Non-comparable custom metrics match on type alone.
func sameMetric(a, b Metric) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if !ta.Comparable() {
		return true
	}
	return a == b
}
