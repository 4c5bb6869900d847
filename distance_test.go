package bvh

import (
	"errors"
	"math"
	"testing"
)

const floatTol = 1e-10

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// --- EuclideanMetric tests ---

func TestEuclideanDistance_IdenticalVectors(t *testing.T) {
	m := EuclideanMetric{}
	a := []float64{1, 2, 3}
	if d := m.Distance(a, a); d != 0 {
		t.Errorf("expected 0, got %v", d)
	}
}

func TestEuclideanDistance_HandComputed(t *testing.T) {
	m := EuclideanMetric{}
	a := []float64{1, 2, 3}
	b := []float64{4, 6, 3}
	// sqrt(9+16+0) = 5
	if d := m.Distance(a, b); !almostEqual(d, 5.0, floatTol) {
		t.Errorf("expected 5.0, got %v", d)
	}
}

func TestEuclideanDistance_SymmetricBitwise(t *testing.T) {
	m := EuclideanMetric{}
	a := []float64{0.1, -7.3, 2.2, 1e-3}
	b := []float64{3.7, 0.25, -1.9, 4.4}
	if m.Distance(a, b) != m.Distance(b, a) {
		t.Errorf("Distance(a, b) = %v, Distance(b, a) = %v", m.Distance(a, b), m.Distance(b, a))
	}
}

// --- ManhattanMetric tests ---

func TestManhattanDistance_HandComputed(t *testing.T) {
	m := ManhattanMetric{}
	a := []float64{1, 2, 3}
	b := []float64{4, 0, 3}
	// |3| + |-2| + |0| = 5
	if d := m.Distance(a, b); !almostEqual(d, 5.0, floatTol) {
		t.Errorf("expected 5.0, got %v", d)
	}
}

// --- ChebyshevMetric tests ---

func TestChebyshevDistance_HandComputed(t *testing.T) {
	m := ChebyshevMetric{}
	a := []float64{1, 2, 3}
	b := []float64{4, 0, 3}
	if d := m.Distance(a, b); d != 3 {
		t.Errorf("expected 3, got %v", d)
	}
}

// --- MinkowskiMetric tests ---

func TestMinkowskiDistance_P2MatchesEuclidean(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 6, 3}
	d := MinkowskiMetric{P: 2}.Distance(a, b)
	if !almostEqual(d, EuclideanMetric{}.Distance(a, b), floatTol) {
		t.Errorf("Minkowski P=2 = %v, want 5", d)
	}
}

func TestMinkowskiDistance_P1MatchesManhattan(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 0, 3}
	d := MinkowskiMetric{P: 1}.Distance(a, b)
	if !almostEqual(d, ManhattanMetric{}.Distance(a, b), floatTol) {
		t.Errorf("Minkowski P=1 = %v, want 5", d)
	}
}

// --- metric names ---

func TestMetricName_RoundTrip(t *testing.T) {
	for _, m := range []Metric{
		EuclideanMetric{},
		ManhattanMetric{},
		ChebyshevMetric{},
		MinkowskiMetric{P: 3},
	} {
		name, p, err := metricName(m)
		if err != nil {
			t.Fatalf("metricName(%T): %v", m, err)
		}
		back, err := metricByName(name, p)
		if err != nil {
			t.Fatalf("metricByName(%q): %v", name, err)
		}
		if back != m {
			t.Errorf("round trip of %#v gave %#v", m, back)
		}
	}
}

type offsetMetric struct{ scale []float64 }

func (offsetMetric) Distance(a, b []float64) float64 { return EuclideanMetric{}.Distance(a, b) }

func TestMetricName_CustomMetric(t *testing.T) {
	if _, _, err := metricName(offsetMetric{}); err == nil {
		t.Error("expected error for custom metric")
	}
}

func TestMetricByName_Unknown(t *testing.T) {
	_, err := metricByName("cosine", 0)
	if !errors.Is(err, ErrCorruptSnapshot) {
		t.Errorf("expected ErrCorruptSnapshot, got %v", err)
	}
	_, err = metricByName("minkowski", 0.5)
	if !errors.Is(err, ErrCorruptSnapshot) {
		t.Errorf("expected ErrCorruptSnapshot for P < 1, got %v", err)
	}
}

func TestSameMetric(t *testing.T) {
	cases := []struct {
		a, b Metric
		want bool
	}{
		{EuclideanMetric{}, EuclideanMetric{}, true},
		{EuclideanMetric{}, ManhattanMetric{}, false},
		{MinkowskiMetric{P: 3}, MinkowskiMetric{P: 3}, true},
		{MinkowskiMetric{P: 3}, MinkowskiMetric{P: 4}, false},
		// Non-comparable: matched on type only, no panic.
		{offsetMetric{scale: []float64{1}}, offsetMetric{scale: []float64{2}}, true},
	}
	for _, c := range cases {
		if got := sameMetric(c.a, c.b); got != c.want {
			t.Errorf("sameMetric(%#v, %#v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
