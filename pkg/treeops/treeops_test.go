package treeops_test

import (
	"context"
	"testing"

	"github.com/gnames/nwr/pkg/newick"
	"github.com/gnames/nwr/pkg/selector"
	"github.com/gnames/nwr/pkg/taxon"
	"github.com/gnames/nwr/pkg/treeops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, s string) *newick.Tree {
	t.Helper()
	tr, err := newick.Parse(s)
	require.NoError(t, err)
	return tr
}

func byNames(tr *newick.Tree, names ...string) []newick.NodeID {
	spec := selector.Spec{Names: names}
	return selector.Select(context.Background(), tr, spec, nil)
}

func TestOrder(t *testing.T) {
	tests := []struct {
		msg, in string
		opts    treeops.OrderOpts
		out     string
	}{
		{"anr", "((A,B),C);", treeops.OrderOpts{ANR: true}, "(C,(B,A));"},
		{"an", "((B,A),C);", treeops.OrderOpts{AN: true}, "((A,B),C);"},
		{"nd", "((A,B),C);", treeops.OrderOpts{ND: true}, "(C,(A,B));"},
		{"ndr", "(C,(A,B));", treeops.OrderOpts{NDR: true}, "((A,B),C);"},
		{"list", "((A,B),C,D);",
			treeops.OrderOpts{List: []string{"D", "B"}}, "(D,(B,A),C);"},
		{"an then nd", "(D,(B,A),C);",
			treeops.OrderOpts{AN: true, ND: true}, "(C,D,(A,B));"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			tr := parse(t, tt.in)
			treeops.Order(tr, tt.opts)
			assert.Equal(t, tt.out, tr.Write(""))
		})
	}
}

func TestRename(t *testing.T) {
	tests := []struct {
		msg       string
		selectors []string
		names     []string
		out       string
		count     int
	}{
		{"names", []string{"A", "C"}, []string{"X", "Y"}, "((X,B),Y);", 2},
		{"lca", []string{"A,B"}, []string{"AB"}, "((A,B)AB,C);", 1},
		{"excess names", []string{"A"}, []string{"X", "Y"}, "((X,B),C);", 1},
		{"excess selectors", []string{"A", "B"}, []string{"X"}, "((X,B),C);", 1},
		{"unresolved keeps name", []string{"Q", "B"}, []string{"X"}, "((A,X),C);", 1},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			tr := parse(t, "((A,B),C);")
			n := treeops.Rename(tr, tt.selectors, tt.names)
			assert.Equal(t, tt.count, n)
			assert.Equal(t, tt.out, tr.Write(""))
		})
	}
}

func TestReplace(t *testing.T) {
	reps := []treeops.Replacement{
		{From: "A", To: []string{"Homo"}},
		{From: "B", To: []string{"Pan"}},
		{From: "C", To: []string{"Gorilla", "note"}},
	}
	tests := []struct {
		msg  string
		mode treeops.ReplaceMode
		out  string
	}{
		{"species", treeops.ReplaceSpecies,
			"((A[S=Homo],B[S=Pan]),C[S=Gorilla:note]);"},
		{"label", treeops.ReplaceLabel, "((Homo,Pan),Gorilla[note]);"},
		{"taxid", treeops.ReplaceTaxID,
			"((A[T=Homo],B[T=Pan]),C[T=Gorilla:note]);"},
		{"asis", treeops.ReplaceAsIs, "((A[Homo],B[Pan]),C[Gorilla:note]);"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			tr := parse(t, "((A,B),C);")
			ids := tr.PreOrder(tr.Root())
			n := treeops.Replace(tr, ids, reps, tt.mode)
			assert.Equal(t, 3, n)
			assert.Equal(t, tt.out, tr.Write(""))
		})
	}

	tr := parse(t, "((A,B),C);")
	treeops.Replace(tr, byNames(tr, "A"), reps, treeops.ReplaceSpecies)
	assert.Equal(t, "((A[S=Homo],B),C);", tr.Write(""))

	assert.Equal(t, treeops.ReplaceAsIs, treeops.NewReplaceMode("asis"))
	assert.Equal(t, treeops.ReplaceLabel, treeops.NewReplaceMode("other"))
}

func TestPrune(t *testing.T) {
	tests := []struct {
		msg, in string
		names   []string
		out     string
	}{
		{"leaf pair", "((A,B)D,C);", []string{"A", "B"}, "(C);"},
		{"one leaf", "((A:1,B:2)D:3,C);", []string{"A"}, "(B:5,C);"},
		{"internal", "((A,B)D,(E,F)G);", []string{"D"}, "((E,F)G);"},
		{"nested", "(((A,B)X,C)Y,D);", []string{"X", "A"}, "(C,D);"},
		{"nothing", "(A,B);", []string{"Q"}, "(A,B);"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			tr := parse(t, tt.in)
			treeops.Prune(tr, byNames(tr, tt.names...))
			assert.Equal(t, tt.out, tr.Write(""))
		})
	}
}

func TestReroot(t *testing.T) {
	tr := parse(t, "((A:1,C:2)D:1,B:1)E;")
	ok := treeops.Reroot(tr, byNames(tr, "B"))
	assert.True(t, ok)
	assert.Equal(t, "(B:0.5,(A:1,C:2)D:0.5);", tr.Write(""))

	// same anchor again changes nothing
	once := tr.Write("")
	treeops.Reroot(tr, byNames(tr, "B"))
	assert.Equal(t, once, tr.Write(""))

	tr = parse(t, "((A:1,C:2)D:1,B:1)E;")
	assert.False(t, treeops.Reroot(tr, byNames(tr, "E")))
	assert.False(t, treeops.Reroot(tr, nil))

	tr = parse(t, "((A:2,B:2)X:4,C:3,D:1)R;")
	treeops.Reroot(tr, byNames(tr, "A"))
	assert.Equal(t, "(A:1,(B:2,(C:3,D:1)R:4)X:1);", tr.Write(""))
}

func TestRerootIdempotent(t *testing.T) {
	inputs := []string{
		"((A:1,C:2)D:1,B:1)E;",
		"(((A:1,B:1)X:1,C:2)Y:1,(D:1,E:1)Z:1);",
		"((A,B),(C,D));",
	}
	for _, in := range inputs {
		for _, anchor := range [][]string{{"A"}, {"C"}, {"A", "B"}} {
			tr := parse(t, in)
			treeops.Reroot(tr, byNames(tr, anchor...))
			once := tr.Write("")
			treeops.Reroot(tr, byNames(tr, anchor...))
			assert.Equal(t, once, tr.Write(""), in)
		}
	}
}

func TestSubtree(t *testing.T) {
	tr := parse(t, "(((A,B)X,C)Y,D)Z;")

	id, ok := treeops.Subtree(tr, byNames(tr, "A", "C"), false)
	require.True(t, ok)
	assert.Equal(t, "((A,B)X,C)Y;", tr.WriteSubtree(id, ""))

	_, ok = treeops.Subtree(tr, byNames(tr, "A", "C"), true)
	assert.False(t, ok)

	id, ok = treeops.Subtree(tr, byNames(tr, "A", "B"), true)
	require.True(t, ok)
	assert.Equal(t, "(A,B)X;", tr.WriteSubtree(id, ""))

	treeops.Condense(tr, id, "AB")
	assert.Equal(t, "((AB[member=2],C)Y,D)Z;", tr.Write(""))

	_, ok = treeops.Subtree(tr, nil, false)
	assert.False(t, ok)
}

func TestTopo(t *testing.T) {
	tr := parse(t, "((A:1[x],B:2)D:1,C:1[y=1])E;")
	internal := selector.Select(context.Background(), tr,
		selector.Spec{SkipLeaf: true}, nil)
	treeops.Topo(tr, internal, false, false)
	assert.Equal(t, "((A,B),C);", tr.Write(""))

	tr = parse(t, "((A:1[x],B:2)D:1,C:1[y=1])E;")
	treeops.Topo(tr, nil, true, true)
	assert.Equal(t, "((A:1[x],B:2)D:1,C:1[y=1])E;", tr.Write(""))
}

func TestStat(t *testing.T) {
	tr := parse(t, "((A,B)D,(C,E,F),G)R;")
	st := treeops.Stat(tr)
	assert.Equal(t, treeops.Stats{
		Nodes:          9,
		Leaves:         6,
		Dichotomies:    1,
		LeafLabels:     6,
		InternalLabels: 2,
	}, st)
}

func TestDistances(t *testing.T) {
	tr := parse(t, "((A:1,B:2)D:3,C:4)R;")
	ids := byNames(tr, "A", "B", "C")

	res := treeops.Distances(tr, ids, treeops.ToRoot)
	require.Len(t, res, 3)
	assert.Equal(t, []float64{4, 5, 4}, []float64{res[0].D1, res[1].D1, res[2].D1})

	res = treeops.Distances(tr, ids, treeops.ToParent)
	assert.Equal(t, 2.0, res[1].D1)

	res = treeops.Distances(tr, ids, treeops.Pairwise)
	require.Len(t, res, 3)
	assert.Equal(t, 3.0, res[0].D1)
	assert.Equal(t, 8.0, res[1].D1)
	assert.Equal(t, 9.0, res[2].D1)

	res = treeops.Distances(tr, ids, treeops.ToLCA)
	assert.Equal(t, 1.0, res[0].D1)
	assert.Equal(t, 2.0, res[0].D2)
	assert.Equal(t, 4.0, res[1].D1)
	assert.Equal(t, 4.0, res[1].D2)

	_, ok := treeops.NewDistanceMode("phylip")
	assert.False(t, ok)
}

func TestAnnotate(t *testing.T) {
	tr := parse(t, "((A,B),C[x]);")
	ids := treeops.ResolveNodes(tr, []string{"A,B", "C", "Q"})
	require.Len(t, ids, 2)
	treeops.Annotate(tr, ids, treeops.Annotation{Color: "red", Free: "note"})
	assert.Equal(t, "((A,B)[color=red:note],C[x:color=red:note]);", tr.Write(""))
}

func TestCommon(t *testing.T) {
	tx := func(id, parent int, rank, name string) taxon.Taxon {
		return taxon.Taxon{TaxID: id, ParentTaxID: parent, Rank: rank,
			Names: map[string][]string{taxon.ScientificName: {name}}}
	}
	root := tx(1, 1, "no rank", "root")
	cell := tx(131567, 1, "no rank", "cellular organisms")
	euk := tx(2759, 131567, "superkingdom", "Eukaryota")
	hom := tx(9604, 2759, "family", "Hominidae")
	homo := tx(9605, 9604, "genus", "Homo")
	hs := tx(9606, 9605, "species", "Homo sapiens")
	pan := tx(9596, 9604, "genus", "Pan")
	pt := tx(9598, 9596, "species", "Pan troglodytes")

	lineages := [][]taxon.Taxon{
		{root, cell, euk, hom, homo, hs},
		{root, cell, euk, hom, pan, pt},
	}

	tr := treeops.Common(lineages, false)
	assert.Equal(t,
		"((((Homo sapiens[T=9606:rank=species])Homo[T=9605:rank=genus],"+
			"(Pan troglodytes[T=9598:rank=species])Pan[T=9596:rank=genus])"+
			"Hominidae[T=9604:rank=family])Eukaryota[T=2759:rank=superkingdom])"+
			"root[T=1:rank=no rank];",
		tr.Write(""))

	tr = treeops.Common(lineages, true)
	assert.Equal(t,
		"(Homo sapiens[T=9606:rank=species],Pan troglodytes[T=9598:rank=species])"+
			"Hominidae[T=9604:rank=family];",
		tr.Write(""))
}
