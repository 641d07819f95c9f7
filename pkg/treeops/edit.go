package treeops

import (
	"strings"

	"github.com/gnames/nwr/pkg/newick"
)

// FindName returns the first node with the name in pre-order.
func FindName(t *newick.Tree, name string) (newick.NodeID, bool) {
	for _, id := range t.PreOrder(t.Root()) {
		if t.Node(id).Name == name {
			return id, true
		}
	}
	return newick.None, false
}

// Rename sets names of nodes. A selector is either a node name or two
// names separated by a comma, which stands for their lowest common
// ancestor. Selectors and names are paired in order, a selector that
// does not resolve is skipped and keeps its name for the next one.
// Extra selectors or names are ignored. It returns the number of
// renamed nodes.
func Rename(t *newick.Tree, selectors, names []string) int {
	var j int
	for _, s := range selectors {
		if j >= len(names) {
			break
		}
		id, ok := resolveSelector(t, s)
		if !ok {
			continue
		}
		t.Node(id).Name = names[j]
		j++
	}
	return j
}

func resolveSelector(t *newick.Tree, s string) (newick.NodeID, bool) {
	a, b, isPair := strings.Cut(s, ",")
	if !isPair {
		return FindName(t, s)
	}
	ida, ok := FindName(t, strings.TrimSpace(a))
	if !ok {
		return newick.None, false
	}
	idb, ok := FindName(t, strings.TrimSpace(b))
	if !ok {
		return newick.None, false
	}
	return t.CommonAncestor(ida, idb), true
}

// ReplaceMode tells where a replacement goes.
type ReplaceMode int

const (
	// ReplaceLabel sets the node name.
	ReplaceLabel ReplaceMode = iota
	// ReplaceTaxID sets comment key T.
	ReplaceTaxID
	// ReplaceSpecies sets comment key S.
	ReplaceSpecies
	// ReplaceAsIs appends a free-form comment item.
	ReplaceAsIs
)

// NewReplaceMode converts a command-line value. Unknown values give
// ReplaceLabel.
func NewReplaceMode(s string) ReplaceMode {
	switch s {
	case "taxid":
		return ReplaceTaxID
	case "species":
		return ReplaceSpecies
	case "asis":
		return ReplaceAsIs
	default:
		return ReplaceLabel
	}
}

// Replacement maps a node name to new values. The first value is placed
// according to ReplaceMode, the rest become free-form comment items.
type Replacement struct {
	From string
	To   []string
}

// Replace applies replacements to the given nodes. It returns the number
// of changed nodes.
func Replace(
	t *newick.Tree,
	ids []newick.NodeID,
	reps []Replacement,
	mode ReplaceMode,
) int {
	m := make(map[string][]string, len(reps))
	for _, v := range reps {
		if _, ok := m[v.From]; !ok && len(v.To) > 0 {
			m[v.From] = v.To
		}
	}

	var count int
	for _, id := range ids {
		to, ok := m[t.Node(id).Name]
		if !ok {
			continue
		}
		switch mode {
		case ReplaceLabel:
			t.Node(id).Name = to[0]
		case ReplaceTaxID:
			t.CommentSetKV(id, "T", to[0])
		case ReplaceSpecies:
			t.CommentSetKV(id, "S", to[0])
		case ReplaceAsIs:
			t.CommentAdd(id, to[0])
		}
		for _, v := range to[1:] {
			t.CommentAdd(id, v)
		}
		count++
	}
	return count
}

// Prune removes nodes with their subtrees. Internal nodes left without
// children are removed too, the ones with a single child are spliced
// out. The root stays even with one child.
func Prune(t *newick.Tree, ids []newick.NodeID) {
	for _, id := range ids {
		if t.IsRoot(id) || t.Parent(id) == newick.None {
			continue
		}
		p := t.Parent(id)
		t.RemoveSubtree(id)
		for !t.IsRoot(p) && t.IsLeaf(p) && t.Parent(p) != newick.None {
			next := t.Parent(p)
			t.RemoveSubtree(p)
			p = next
		}
	}

	for _, id := range t.PostOrder(t.Root()) {
		if !t.IsRoot(id) && len(t.Children(id)) == 1 {
			t.Splice(id)
		}
	}
}

// Topo strips parts of labels. Names are removed from the given nodes,
// lengths and comments are removed unless kept explicitly.
func Topo(
	t *newick.Tree,
	stripNames []newick.NodeID,
	keepLengths, keepComments bool,
) {
	for _, id := range stripNames {
		t.Node(id).Name = ""
	}
	for _, id := range t.PreOrder(t.Root()) {
		n := t.Node(id)
		if !keepLengths {
			n.ClearLength()
		}
		if !keepComments {
			n.Comment = ""
		}
	}
}
