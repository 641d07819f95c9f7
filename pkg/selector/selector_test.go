package selector_test

import (
	"context"
	"testing"

	"github.com/gnames/nwr/pkg/newick"
	"github.com/gnames/nwr/pkg/selector"
	"github.com/gnames/nwr/pkg/taxon/taxontest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(t *newick.Tree, ids []newick.NodeID) []string {
	var res []string
	for _, id := range ids {
		res = append(res, t.Node(id).Name)
	}
	return res
}

func testStore() *taxontest.Store {
	return taxontest.New(
		taxontest.Taxon(1, 1, "no rank", "root"),
		taxontest.Taxon(9604, 1, "family", "Hominidae"),
		taxontest.Taxon(9605, 9604, "genus", "Homo"),
		taxontest.Taxon(9606, 9605, "species", "Homo sapiens"),
		taxontest.Taxon(9596, 9604, "genus", "Pan"),
		taxontest.Taxon(9598, 9596, "species", "Pan troglodytes"),
		taxontest.Taxon(10239, 1, "superkingdom", "Viruses"),
	)
}

func TestSelect(t *testing.T) {
	tr, err := newick.Parse(
		"((Homo_sapiens[T=9606],Pan_troglodytes[T=9598])Hominidae,Lambda[T=10239],Gorilla)root;")
	require.NoError(t, err)

	tests := []struct {
		msg  string
		spec selector.Spec
		res  []string
	}{
		{"everything", selector.Spec{},
			[]string{"root", "Hominidae", "Homo_sapiens", "Pan_troglodytes",
				"Lambda", "Gorilla"}},
		{"leaves", selector.Spec{SkipInternal: true},
			[]string{"Homo_sapiens", "Pan_troglodytes", "Lambda", "Gorilla"}},
		{"internal", selector.Spec{SkipLeaf: true},
			[]string{"root", "Hominidae"}},
		{"names", selector.Spec{Names: []string{"Gorilla", "Lambda", "Nope"}},
			[]string{"Lambda", "Gorilla"}},
		{"regex case insensitive", selector.Spec{Regexes: []string{"^(homo|pan)_"}},
			[]string{"Homo_sapiens", "Pan_troglodytes"}},
		{"invalid regex", selector.Spec{Regexes: []string{"("}}, nil},
		{"names and regex intersect",
			selector.Spec{Names: []string{"Gorilla", "Lambda"}, Regexes: []string{"^g"}},
			[]string{"Gorilla"}},
		{"descendants", selector.Spec{Names: []string{"Hominidae"}, Descendants: true},
			[]string{"Hominidae", "Homo_sapiens", "Pan_troglodytes"}},
		{"descendants leaves",
			selector.Spec{Names: []string{"Hominidae"}, Descendants: true, SkipInternal: true},
			[]string{"Homo_sapiens", "Pan_troglodytes"}},
		{"lineage by label",
			selector.Spec{TaxonTerms: []string{"Hominidae"}},
			[]string{"Hominidae", "Homo_sapiens", "Pan_troglodytes"}},
		{"lineage by taxid",
			selector.Spec{TaxonTerms: []string{"Viruses", "9605"},
				TaxonMode: selector.ByTaxID},
			[]string{"Homo_sapiens", "Lambda"}},
		{"monophyletic",
			selector.Spec{Names: []string{"Homo_sapiens", "Pan_troglodytes"},
				Monophyly: true},
			[]string{"Homo_sapiens", "Pan_troglodytes"}},
		{"not monophyletic",
			selector.Spec{Names: []string{"Homo_sapiens", "Gorilla"},
				Monophyly: true},
			nil},
		{"internal node is not monophyletic",
			selector.Spec{Names: []string{"Hominidae"}, Monophyly: true},
			nil},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			ids := selector.Select(context.Background(), tr, tt.spec, testStore())
			assert.Equal(t, tt.res, names(tr, ids))
		})
	}
}

func TestSelectWithoutStore(t *testing.T) {
	tr, err := newick.Parse("(A,B);")
	require.NoError(t, err)
	spec := selector.Spec{TaxonTerms: []string{"Homo"}}
	assert.Empty(t, selector.Select(context.Background(), tr, spec, nil))
}

func TestMonophylyProperty(t *testing.T) {
	tr, err := newick.Parse("(((A,B)X,C)Y,(D,E)Z)W;")
	require.NoError(t, err)
	ctx := context.Background()

	sets := [][]string{
		{"A", "B"}, {"A", "B", "C"}, {"A", "C"}, {"D", "E"}, {"C", "D"},
		{"A", "B", "C", "D", "E"},
	}
	for _, s := range sets {
		spec := selector.Spec{Names: s, Monophyly: true}
		ids := selector.Select(ctx, tr, spec, nil)
		if len(ids) == 0 {
			continue
		}
		lca := tr.CommonAncestor(ids...)
		assert.Equal(t, names(tr, tr.Leaves(lca)), names(tr, ids))
	}
}

func TestNewTaxonMode(t *testing.T) {
	assert.Equal(t, selector.ByLabel, selector.NewTaxonMode("label"))
	assert.Equal(t, selector.ByTaxID, selector.NewTaxonMode("taxid"))
	assert.Equal(t, selector.BySpecies, selector.NewTaxonMode("species"))
	assert.Equal(t, selector.ByLabel, selector.NewTaxonMode("nope"))
}
