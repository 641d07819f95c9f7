package treeops

import (
	"strconv"

	"github.com/gnames/nwr/pkg/newick"
	"github.com/gnames/nwr/pkg/selector"
)

// Subtree returns the lowest common ancestor of the nodes. With
// monophyly the leaves of the ancestor must be exactly the given nodes,
// otherwise false is returned.
func Subtree(
	t *newick.Tree,
	ids []newick.NodeID,
	monophyly bool,
) (newick.NodeID, bool) {
	if len(ids) == 0 {
		return newick.None, false
	}
	if monophyly && !selector.IsMonophyletic(t, selector.ToSet(ids)) {
		return newick.None, false
	}
	lca := t.CommonAncestor(ids...)
	return lca, lca != newick.None
}

// Condense replaces the subtree of a node with a leaf named label and
// a comment member=<number of leaves>.
func Condense(t *newick.Tree, id newick.NodeID, label string) {
	members := len(t.Leaves(id))
	for _, c := range append([]newick.NodeID(nil), t.Children(id)...) {
		t.Detach(c)
	}
	t.Node(id).Name = label
	t.CommentSetKV(id, "member", strconv.Itoa(members))
}
