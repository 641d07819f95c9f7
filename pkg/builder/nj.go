package builder

import (
	"github.com/gnames/nwr/pkg/matrix"
	"github.com/gnames/nwr/pkg/newick"
)

// NeighborJoining builds an unrooted tree, it is rooted where the last
// two clusters meet. Negative edge lengths are kept.
func NeighborJoining(m *matrix.Matrix) (*newick.Tree, error) {
	s, err := newState(m)
	if err != nil {
		return nil, err
	}
	if s.n == 1 {
		s.t.Compress()
		return s.t, nil
	}

	r := make([]float64, len(s.d))
	for s.n > 2 {
		for i := range s.d {
			if !s.active[i] {
				continue
			}
			r[i] = 0
			for k := range s.d {
				if s.active[k] {
					r[i] += s.d[i][k]
				}
			}
		}

		n := float64(s.n)
		i, j := s.closest(func(i, j int) float64 {
			return (n-2)*s.d[i][j] - r[i] - r[j]
		})

		dij := s.d[i][j]
		li := dij/2 + (r[i]-r[j])/(2*(n-2))
		s.join(i, j, li, dij-li)

		for k := range s.d {
			if !s.active[k] || k == i {
				continue
			}
			v := (s.d[i][k] + s.d[j][k] - dij) / 2
			s.d[i][k], s.d[k][i] = v, v
		}
	}

	i, j := s.closest(func(i, j int) float64 { return s.d[i][j] })
	half := s.d[i][j] / 2
	root := s.t.Root()
	s.t.SetChildren(root, []newick.NodeID{s.nodes[i], s.nodes[j]})
	s.t.Node(s.nodes[i]).SetLength(half)
	s.t.Node(s.nodes[j]).SetLength(half)
	return s.t, nil
}
