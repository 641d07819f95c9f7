package builder

import (
	"github.com/gnames/nwr/pkg/matrix"
	"github.com/gnames/nwr/pkg/newick"
)

// Upgma builds an ultrametric rooted tree. A matrix with one name gives
// a tree with a single leaf.
func Upgma(m *matrix.Matrix) (*newick.Tree, error) {
	s, err := newState(m)
	if err != nil {
		return nil, err
	}

	size := make([]float64, len(s.d))
	height := make([]float64, len(s.d))
	for i := range size {
		size[i] = 1
	}

	for s.n > 1 {
		i, j := s.closest(func(i, j int) float64 { return s.d[i][j] })
		h := s.d[i][j] / 2
		s.join(i, j, h-height[i], h-height[j])

		for k := range s.d {
			if !s.active[k] || k == i {
				continue
			}
			v := (size[i]*s.d[i][k] + size[j]*s.d[j][k]) / (size[i] + size[j])
			s.d[i][k], s.d[k][i] = v, v
		}
		size[i] += size[j]
		height[i] = h
	}

	// the container keeps the last cluster only
	s.t.Compress()
	return s.t, nil
}
