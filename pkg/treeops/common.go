package treeops

import (
	"strconv"

	"github.com/gnames/nwr/pkg/newick"
	"github.com/gnames/nwr/pkg/taxon"
)

// NoRank is the rank of unranked NCBI taxa.
const NoRank = "no rank"

// Common joins lineages into one tree. Nodes are named by scientific
// names and carry comment T=<tax_id>:rank=<rank>. Single-child internal
// nodes without a rank are spliced out. With compress every single-child
// node is removed, including the root.
func Common(lineages [][]taxon.Taxon, compress bool) *newick.Tree {
	t := &newick.Tree{}
	nodes := make(map[int]newick.NodeID)
	ranks := make(map[newick.NodeID]string)
	root := newick.None

	for _, lin := range lineages {
		parent := newick.None
		for _, tx := range lin {
			id, ok := nodes[tx.TaxID]
			if !ok {
				switch {
				case parent != newick.None:
					id = t.AddChild(parent)
				case root == newick.None:
					id = t.NewNode()
					root = id
				default:
					// a lineage that does not start at the common root
					id = t.AddChild(root)
				}
				t.Node(id).Name = tx.ScientificName()
				t.CommentSetKV(id, "T", strconv.Itoa(tx.TaxID))
				t.CommentSetKV(id, "rank", tx.Rank)
				ranks[id] = tx.Rank
				nodes[tx.TaxID] = id
			}
			parent = id
		}
	}
	if root == newick.None {
		return newick.New()
	}
	t.SetRoot(root)

	if compress {
		t.Compress()
		return t
	}
	for _, id := range t.PostOrder(root) {
		if !t.IsRoot(id) && len(t.Children(id)) == 1 && ranks[id] == NoRank {
			t.Splice(id)
		}
	}
	return t
}
