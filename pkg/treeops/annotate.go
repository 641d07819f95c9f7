package treeops

import "github.com/gnames/nwr/pkg/newick"

// Annotation keeps values added to node comments. Empty fields are
// skipped.
type Annotation struct {
	Color string
	Label string
	Dot   string
	Bar   string
	// Free is appended as a free-form comment item.
	Free string
}

// Annotate sets comment keys color, label, dot and bar and appends the
// free-form item on every given node.
func Annotate(t *newick.Tree, ids []newick.NodeID, a Annotation) {
	pairs := [][2]string{
		{"color", a.Color},
		{"label", a.Label},
		{"dot", a.Dot},
		{"bar", a.Bar},
	}
	for _, id := range ids {
		for _, kv := range pairs {
			if kv[1] != "" {
				t.CommentSetKV(id, kv[0], kv[1])
			}
		}
		t.CommentAdd(id, a.Free)
	}
}

// ResolveNodes converts names and comma-separated pairs of names (their
// lowest common ancestor) into nodes. Unknown ones are skipped.
func ResolveNodes(t *newick.Tree, selectors []string) []newick.NodeID {
	var res []newick.NodeID
	for _, s := range selectors {
		if id, ok := resolveSelector(t, s); ok {
			res = append(res, id)
		}
	}
	return res
}
