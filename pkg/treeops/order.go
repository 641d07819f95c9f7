// Package treeops edits Newick trees in place.
package treeops

import (
	"cmp"
	"slices"

	"github.com/gnames/nwr/pkg/newick"
)

// OrderOpts sets sorting passes of Order. Passes run in the order
// list, alphanumeric, number of descendants, each of them is stable,
// so the last pass gives the primary key.
type OrderOpts struct {
	// List sorts children by position of their names in the list.
	// Unknown names go after the listed ones.
	List []string

	// AN sorts by name ascending, ANR descending.
	AN, ANR bool

	// ND sorts by the number of descendants ascending, NDR descending.
	ND, NDR bool
}

// Order sorts children of every node, top-down.
func Order(t *newick.Tree, opts OrderOpts) {
	var counts map[newick.NodeID]int
	if opts.ND || opts.NDR {
		counts = descendantCounts(t)
	}
	pos := make(map[string]int, len(opts.List))
	for i, v := range opts.List {
		if _, ok := pos[v]; !ok {
			pos[v] = i
		}
	}

	for _, id := range t.PreOrder(t.Root()) {
		kids := slices.Clone(t.Children(id))
		if len(kids) < 2 {
			continue
		}

		if len(opts.List) > 0 {
			slices.SortStableFunc(kids, func(a, b newick.NodeID) int {
				return cmp.Compare(listPos(t, pos, a), listPos(t, pos, b))
			})
		}

		switch {
		case opts.AN:
			slices.SortStableFunc(kids, func(a, b newick.NodeID) int {
				return cmp.Compare(t.Node(a).Name, t.Node(b).Name)
			})
		case opts.ANR:
			slices.SortStableFunc(kids, func(a, b newick.NodeID) int {
				return cmp.Compare(t.Node(b).Name, t.Node(a).Name)
			})
		}

		switch {
		case opts.ND:
			slices.SortStableFunc(kids, func(a, b newick.NodeID) int {
				return cmp.Compare(counts[a], counts[b])
			})
		case opts.NDR:
			slices.SortStableFunc(kids, func(a, b newick.NodeID) int {
				return cmp.Compare(counts[b], counts[a])
			})
		}

		t.SetChildren(id, kids)
	}
}

func listPos(t *newick.Tree, pos map[string]int, id newick.NodeID) int {
	if i, ok := pos[t.Node(id).Name]; ok {
		return i
	}
	return len(pos)
}

func descendantCounts(t *newick.Tree) map[newick.NodeID]int {
	res := make(map[newick.NodeID]int)
	for _, id := range t.PostOrder(t.Root()) {
		var n int
		for _, c := range t.Children(id) {
			n += res[c] + 1
		}
		res[id] = n
	}
	return res
}
