package bvh

// pointStore is the immutable row-major copy of the indexed points. Row i is
// the point that was at position i in the caller's input.
type pointStore struct {
	data []float64 // n * dims
	n    int
	dims int
}

func newPointStore(data []float64, n, dims int) pointStore {
	dataCopy := make([]float64, n*dims)
	copy(dataCopy, data)
	return pointStore{data: dataCopy, n: n, dims: dims}
}

// row returns point i without copying. The capacity is clipped so an append
// by a careless caller cannot overwrite the next row.
func (s pointStore) row(i int) []float64 {
	lo, hi := i*s.dims, (i+1)*s.dims
	return s.data[lo:hi:hi]
}

// flatten copies rows into a row-major slice after checking that the set is
// non-empty and rectangular.
func flatten(rows [][]float64) ([]float64, int, int, error) {
	dims, err := rowDims(rows)
	if err != nil {
		return nil, 0, 0, err
	}
	data := make([]float64, 0, len(rows)*dims)
	for _, r := range rows {
		data = append(data, r...)
	}
	return data, len(rows), dims, nil
}

// rowDims returns the common dimensionality of a non-empty point set.
func rowDims(rows [][]float64) (int, error) {
	if len(rows) == 0 {
		return 0, invalidf("empty point set")
	}
	dims := len(rows[0])
	if dims == 0 {
		return 0, invalidf("points have zero dimensions")
	}
	if err := checkRows(rows, dims); err != nil {
		return 0, err
	}
	return dims, nil
}

// checkRows verifies that every row has exactly dims coordinates. An empty
// set passes.
func checkRows(rows [][]float64, dims int) error {
	for i, r := range rows {
		if len(r) != dims {
			return &DimensionMismatchError{Expected: dims, Actual: len(r), Row: i}
		}
	}
	return nil
}
