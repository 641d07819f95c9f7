package treeops

import "github.com/gnames/nwr/pkg/newick"

// DistanceMode tells which distances are computed.
type DistanceMode int

const (
	// ToRoot is the distance from a node to the root.
	ToRoot DistanceMode = iota
	// ToParent is the length of the edge to the parent.
	ToParent
	// Pairwise are distances between every two nodes.
	Pairwise
	// ToLCA are distances from both nodes of a pair to their common
	// ancestor.
	ToLCA
)

// NewDistanceMode converts a command-line value. It returns false for
// unknown values.
func NewDistanceMode(s string) (DistanceMode, bool) {
	switch s {
	case "root":
		return ToRoot, true
	case "parent":
		return ToParent, true
	case "pairwise":
		return Pairwise, true
	case "lca":
		return ToLCA, true
	default:
		return 0, false
	}
}

// Distance is a row of distance output. For single-node modes B is None
// and only D1 is set.
type Distance struct {
	A, B   newick.NodeID
	D1, D2 float64
}

// Distances computes distances between the given nodes. Pairs are taken
// in input order with the first node before the second.
func Distances(t *newick.Tree, ids []newick.NodeID, mode DistanceMode) []Distance {
	var res []Distance
	switch mode {
	case ToRoot:
		for _, id := range ids {
			d, _, _ := t.Distance(id, t.Root())
			res = append(res, Distance{A: id, B: newick.None, D1: d})
		}
	case ToParent:
		for _, id := range ids {
			res = append(res, Distance{A: id, B: newick.None, D1: t.Node(id).Length})
		}
	case Pairwise:
		for i, a := range ids {
			for _, b := range ids[i+1:] {
				d, _, _ := t.Distance(a, b)
				res = append(res, Distance{A: a, B: b, D1: d})
			}
		}
	case ToLCA:
		for i, a := range ids {
			for _, b := range ids[i+1:] {
				lca := t.CommonAncestor(a, b)
				d1, _, _ := t.Distance(a, lca)
				d2, _, _ := t.Distance(b, lca)
				res = append(res, Distance{A: a, B: b, D1: d1, D2: d2})
			}
		}
	}
	return res
}
