// Package builder creates trees from distance matrices with UPGMA and
// Neighbor-Joining.
package builder

import (
	"fmt"
	"math"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/nwr/pkg/errcode"
	"github.com/gnames/nwr/pkg/matrix"
	"github.com/gnames/nwr/pkg/newick"
)

// Method is a tree building algorithm.
type Method int

const (
	UPGMA Method = iota
	NJ
)

// Build runs the given method.
func Build(m *matrix.Matrix, method Method) (*newick.Tree, error) {
	if method == NJ {
		return NeighborJoining(m)
	}
	return Upgma(m)
}

// InputError reports a matrix that cannot be clustered.
func InputError(msg string, vars ...any) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BuilderInputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: "+msg, append([]any{fn.Name()}, vars...)...),
	}
}

// state holds the working copy of a matrix with one tree node per row.
// Every row starts as a leaf under the container root.
type state struct {
	t      *newick.Tree
	d      [][]float64
	nodes  []newick.NodeID
	active []bool
	n      int
}

func newState(m *matrix.Matrix) (*state, error) {
	if m == nil || m.Len() == 0 {
		return nil, InputError("Distance matrix is empty")
	}
	s := &state{
		t:      newick.New(),
		d:      m.Rows(),
		nodes:  make([]newick.NodeID, m.Len()),
		active: make([]bool, m.Len()),
		n:      m.Len(),
	}
	for i, row := range s.d {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, InputError(
					"Distance between <em>%s</em> and <em>%s</em> is not finite",
					m.Name(i), m.Name(j))
			}
		}
	}
	for i, name := range m.Names() {
		id := s.t.AddChild(s.t.Root())
		s.t.Node(id).Name = name
		s.nodes[i] = id
		s.active[i] = true
	}
	return s, nil
}

// join creates a node with clusters i and j as children.
func (s *state) join(i, j int, li, lj float64) newick.NodeID {
	p := s.t.NewNode()
	s.t.Attach(p, s.nodes[i])
	s.t.Attach(p, s.nodes[j])
	s.t.Node(s.nodes[i]).SetLength(li)
	s.t.Node(s.nodes[j]).SetLength(lj)
	s.t.Attach(s.t.Root(), p)

	s.nodes[i] = p
	s.active[j] = false
	s.n--
	return p
}

// closest finds the active pair with the smallest score. The first pair
// in (i, j) order wins ties.
func (s *state) closest(score func(i, j int) float64) (int, int) {
	bi, bj := -1, -1
	best := math.Inf(1)
	for i := range s.d {
		if !s.active[i] {
			continue
		}
		for j := i + 1; j < len(s.d); j++ {
			if !s.active[j] {
				continue
			}
			if v := score(i, j); bi < 0 || v < best {
				bi, bj, best = i, j, v
			}
		}
	}
	return bi, bj
}
