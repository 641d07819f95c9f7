package treeops

import "github.com/gnames/nwr/pkg/newick"

// Stats summarizes a tree.
type Stats struct {
	Nodes          int `json:"nodes"`
	Leaves         int `json:"leaves"`
	Dichotomies    int `json:"dichotomies"`
	LeafLabels     int `json:"leafLabels"`
	InternalLabels int `json:"internalLabels"`
}

// Stat counts nodes, leaves, bifurcating nodes and named nodes.
func Stat(t *newick.Tree) Stats {
	var res Stats
	for _, id := range t.PreOrder(t.Root()) {
		res.Nodes++
		named := t.Node(id).Name != ""
		switch kids := len(t.Children(id)); {
		case kids == 0:
			res.Leaves++
			if named {
				res.LeafLabels++
			}
		default:
			if kids == 2 {
				res.Dichotomies++
			}
			if named {
				res.InternalLabels++
			}
		}
	}
	return res
}
