package treeops

import "github.com/gnames/nwr/pkg/newick"

// Reroot places the root on the edge above the lowest common ancestor
// of the given nodes. The edge is split in halves. Former ancestors are
// reoriented, each takes the edge length of its former child. A former
// root left with one child is replaced by that child, which takes the
// reoriented edge of the former root. Nothing changes when the ancestor
// is the root already or when it hangs from an unnamed bifurcating root.
func Reroot(t *newick.Tree, ids []newick.NodeID) bool {
	if len(ids) == 0 {
		return false
	}
	lca := t.CommonAncestor(ids...)
	if lca == newick.None || t.IsRoot(lca) {
		return false
	}

	p := t.Parent(lca)
	oldRoot := t.Root()
	if t.IsRoot(p) && len(t.Children(p)) == 2 && t.Node(p).Name == "" {
		return false
	}

	// ancestors from the parent of lca up to the root with their lengths
	chain := t.PathToRoot(p)
	type edge struct {
		length    float64
		hasLength bool
	}
	edges := make([]edge, len(chain))
	for i, id := range chain {
		n := t.Node(id)
		edges[i] = edge{n.Length, n.HasLength}
	}

	newRoot := t.NewNode()
	ln := t.Node(lca)
	half, hasHalf := ln.Length/2, ln.HasLength

	t.Detach(lca)
	t.Attach(newRoot, lca)
	if hasHalf {
		ln.SetLength(half)
	}

	for i, id := range chain {
		t.Detach(id)
		if i == 0 {
			t.Attach(newRoot, id)
			if hasHalf {
				t.Node(id).SetLength(half)
			} else {
				t.Node(id).ClearLength()
			}
			continue
		}
		t.Attach(chain[i-1], id)
		if edges[i-1].hasLength {
			t.Node(id).SetLength(edges[i-1].length)
		} else {
			t.Node(id).ClearLength()
		}
	}
	t.SetRoot(newRoot)

	old := t.Node(oldRoot)
	switch len(t.Children(oldRoot)) {
	case 0:
		t.Detach(oldRoot)
	case 1:
		child := t.Node(t.Children(oldRoot)[0])
		if old.HasLength {
			child.SetLength(old.Length)
		} else {
			child.ClearLength()
		}
		parent := t.Parent(oldRoot)
		idx := t.ChildIndex(oldRoot)
		t.Detach(oldRoot)
		t.Detach(child.ID())
		t.InsertChild(parent, idx, child.ID())
	}

	t.Compress()
	return true
}
