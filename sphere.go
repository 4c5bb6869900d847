package bvh

// boundSlack is the relative amount by which radii are inflated and center
// distances deflated so that rounding in the triangle inequality cannot
// push a lower bound above a computed point distance. It must stay well
// above the relative error of a D-term distance sum.
const boundSlack = 1e-12

// Sphere is a center and radius that contain a set of points. It is a
// conservative bound, not the minimal enclosing sphere.
type Sphere struct {
	Center []float64
	Radius float64
}

// DistanceToPoint returns a lower bound on the distance from p to any point
// inside s: max(0, d(p, center) - radius). A point is treated as a sphere of
// radius zero.
func (s Sphere) DistanceToPoint(p []float64, m Metric) float64 {
	return s.GapTo(Sphere{Center: p}, m)
}

// GapTo returns a lower bound on the distance between any point in s and any
// point in o: max(0, d(center_s, center_o) - r_s - r_o). Overlapping spheres
// give zero.
func (s Sphere) GapTo(o Sphere, m Metric) float64 {
	return gap(m.Distance(s.Center, o.Center), s.Radius, o.Radius)
}

func gap(centerDist, ra, rb float64) float64 {
	d := centerDist*(1-boundSlack) - ra - rb
	if d < 0 {
		return 0
	}
	return d
}

// padRadius inflates a measured radius by boundSlack.
func padRadius(r float64) float64 {
	return r * (1 + boundSlack)
}
