// Package matrix keeps named symmetric distance matrices and reads and
// writes them in PHYLIP and pairwise formats.
package matrix

import (
	"gonum.org/v1/gonum/mat"
)

// Matrix is a symmetric matrix with named rows. Order of names defines
// indices of rows and columns.
type Matrix struct {
	names []string
	index map[string]int
	d     *mat.SymDense
}

// New creates a zero matrix. Names must be unique and not empty.
func New(names []string) (*Matrix, error) {
	if len(names) == 0 {
		return nil, DimensionError("Distance matrix cannot be empty")
	}
	res := &Matrix{
		names: append([]string(nil), names...),
		index: make(map[string]int, len(names)),
		d:     mat.NewSymDense(len(names), nil),
	}
	for i, v := range names {
		if _, ok := res.index[v]; ok {
			return nil, DuplicateNameError(v)
		}
		res.index[v] = i
	}
	return res, nil
}

// Len returns the dimension.
func (m *Matrix) Len() int { return len(m.names) }

// Names returns row names in order.
func (m *Matrix) Names() []string { return m.names }

// Name returns the name of a row.
func (m *Matrix) Name(i int) string { return m.names[i] }

// Index returns the row of a name.
func (m *Matrix) Index(name string) (int, bool) {
	i, ok := m.index[name]
	return i, ok
}

// Get returns d[i][j].
func (m *Matrix) Get(i, j int) float64 { return m.d.At(i, j) }

// Set assigns d[i][j] and d[j][i].
func (m *Matrix) Set(i, j int, v float64) { m.d.SetSym(i, j, v) }

// Rows returns a dense copy of values.
func (m *Matrix) Rows() [][]float64 {
	n := m.Len()
	res := make([][]float64, n)
	for i := range res {
		res[i] = make([]float64, n)
		for j := range res[i] {
			res[i][j] = m.d.At(i, j)
		}
	}
	return res
}

// Subset returns a matrix restricted to the wanted names in their order.
// Names absent from the matrix are returned separately.
func (m *Matrix) Subset(names []string) (*Matrix, []string, error) {
	var found, missing []string
	seen := make(map[string]struct{})
	for _, v := range names {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := m.index[v]; ok {
			found = append(found, v)
		} else {
			missing = append(missing, v)
		}
	}
	if len(found) == 0 {
		return nil, missing, DimensionError("None of the names are in the matrix")
	}

	res, err := New(found)
	if err != nil {
		return nil, missing, err
	}
	for i, a := range found {
		for j := i; j < len(found); j++ {
			res.Set(i, j, m.Get(m.index[a], m.index[found[j]]))
		}
	}
	return res, missing, nil
}

// LowerTriangle returns values below the diagonal row by row.
func (m *Matrix) LowerTriangle() []float64 {
	var res []float64
	for i := 1; i < m.Len(); i++ {
		for j := 0; j < i; j++ {
			res = append(res, m.Get(i, j))
		}
	}
	return res
}
