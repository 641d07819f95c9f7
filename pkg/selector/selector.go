// Package selector picks nodes of a Newick tree by position, name,
// regular expression and taxonomic lineage.
package selector

import (
	"context"
	"log/slog"
	"regexp"
	"slices"

	"github.com/RoaringBitmap/roaring"
	"github.com/gnames/nwr/pkg/newick"
	"github.com/gnames/nwr/pkg/taxon"
)

// TaxonMode tells where a node keeps its taxonomic term.
type TaxonMode int

const (
	// ByLabel uses the name of a node.
	ByLabel TaxonMode = iota
	// ByTaxID uses comment key T.
	ByTaxID
	// BySpecies uses comment key S.
	BySpecies
)

// NewTaxonMode converts a command-line value to TaxonMode.
// Unknown values fall back to ByLabel.
func NewTaxonMode(s string) TaxonMode {
	switch s {
	case "taxid":
		return ByTaxID
	case "species":
		return BySpecies
	default:
		return ByLabel
	}
}

// Spec describes which nodes to select. Filters that are not set do not
// constrain the result, the ones that are set are intersected.
type Spec struct {
	SkipInternal bool
	SkipLeaf     bool

	// Names are exact node names, usually merged from -n options and
	// a names file.
	Names []string

	// Regexes match node names case-insensitively, any of them is enough.
	Regexes []string

	// Descendants adds all descendants of every selected internal node.
	Descendants bool

	// TaxonTerms keep nodes that have any of the terms in their lineage.
	TaxonTerms []string
	TaxonMode  TaxonMode

	// Monophyly requires selected nodes to be exactly the leaves of their
	// lowest common ancestor, otherwise nothing is selected.
	Monophyly bool
}

// HasContent is true if any name, regex or lineage filter is given.
func (s Spec) HasContent() bool {
	return len(s.Names) > 0 || len(s.Regexes) > 0 || len(s.TaxonTerms) > 0
}

// Select returns selected nodes in pre-order. The store is used only for
// lineage filters and can be nil otherwise. Select does not fail: problems
// with regexes or taxonomy lookups are logged and the affected filters
// match nothing.
func Select(
	ctx context.Context,
	t *newick.Tree,
	spec Spec,
	store taxon.Store,
) []newick.NodeID {
	all := t.PreOrder(t.Root())
	res := toBitmap(all)

	if len(spec.Names) > 0 {
		res.And(byNames(t, all, spec.Names))
	}
	if len(spec.Regexes) > 0 {
		res.And(byRegexes(t, all, spec.Regexes))
	}
	if len(spec.TaxonTerms) > 0 {
		res.And(byLineage(ctx, t, all, spec, store))
	}

	if spec.Descendants {
		for _, id := range all {
			if res.Contains(uint32(id)) && !t.IsLeaf(id) {
				for _, d := range t.SubtreeIDs(id) {
					res.Add(uint32(d))
				}
			}
		}
	}

	for _, id := range all {
		leaf := t.IsLeaf(id)
		if (leaf && spec.SkipLeaf) || (!leaf && spec.SkipInternal) {
			res.Remove(uint32(id))
		}
	}

	if spec.Monophyly && !IsMonophyletic(t, res) {
		return nil
	}

	var ids []newick.NodeID
	for _, id := range all {
		if res.Contains(uint32(id)) {
			ids = append(ids, id)
		}
	}
	return ids
}

// IsMonophyletic checks that the set consists of leaves only and that the
// set equals the leaves of their lowest common ancestor.
func IsMonophyletic(t *newick.Tree, set *roaring.Bitmap) bool {
	if set.IsEmpty() {
		return false
	}
	ids := fromBitmap(set)
	for _, id := range ids {
		if !t.IsLeaf(id) {
			return false
		}
	}
	lca := t.CommonAncestor(ids...)
	if lca == newick.None {
		return false
	}
	return toBitmap(t.Leaves(lca)).Equals(set)
}

// ToSet converts node handles to a bitmap.
func ToSet(ids []newick.NodeID) *roaring.Bitmap {
	return toBitmap(ids)
}

func toBitmap(ids []newick.NodeID) *roaring.Bitmap {
	bm := roaring.New()
	for _, id := range ids {
		bm.Add(uint32(id))
	}
	return bm
}

func fromBitmap(bm *roaring.Bitmap) []newick.NodeID {
	res := make([]newick.NodeID, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		res = append(res, newick.NodeID(it.Next()))
	}
	return res
}

func byNames(t *newick.Tree, all []newick.NodeID, names []string) *roaring.Bitmap {
	bm := roaring.New()
	for _, id := range all {
		if slices.Contains(names, t.Node(id).Name) {
			bm.Add(uint32(id))
		}
	}
	return bm
}

func byRegexes(t *newick.Tree, all []newick.NodeID, patterns []string) *roaring.Bitmap {
	var res []*regexp.Regexp
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			slog.Warn("Ignoring invalid regular expression",
				"regex", p, "error", err)
			continue
		}
		res = append(res, re)
	}

	bm := roaring.New()
	for _, id := range all {
		name := t.Node(id).Name
		for _, re := range res {
			if re.MatchString(name) {
				bm.Add(uint32(id))
				break
			}
		}
	}
	return bm
}

// TermOf returns the taxonomic term kept by a node in the given mode.
func TermOf(t *newick.Tree, id newick.NodeID, mode TaxonMode) string {
	switch mode {
	case ByTaxID:
		v, _ := t.CommentGetKV(id, "T")
		return v
	case BySpecies:
		v, _ := t.CommentGetKV(id, "S")
		return v
	default:
		return t.Node(id).Name
	}
}

func byLineage(
	ctx context.Context,
	t *newick.Tree,
	all []newick.NodeID,
	spec Spec,
	store taxon.Store,
) *roaring.Bitmap {
	bm := roaring.New()
	if store == nil {
		slog.Warn("Taxonomy store is not available, lineage filter is empty")
		return bm
	}

	ancestors := make(map[int]struct{})
	for _, term := range spec.TaxonTerms {
		id, err := store.ResolveTerm(ctx, term)
		if err != nil {
			slog.Warn("Cannot resolve taxon term", "term", term, "error", err)
			continue
		}
		ancestors[id] = struct{}{}
	}
	if len(ancestors) == 0 {
		return bm
	}

	// lineage is resolved once per distinct term
	cache := make(map[string]bool)
	for _, id := range all {
		term := TermOf(t, id, spec.TaxonMode)
		if term == "" {
			continue
		}
		ok, seen := cache[term]
		if !seen {
			ok = inLineage(ctx, store, term, ancestors)
			cache[term] = ok
		}
		if ok {
			bm.Add(uint32(id))
		}
	}
	return bm
}

func inLineage(
	ctx context.Context,
	store taxon.Store,
	term string,
	ancestors map[int]struct{},
) bool {
	id, err := store.ResolveTerm(ctx, term)
	if err != nil {
		slog.Debug("Node term is not in taxonomy", "term", term)
		return false
	}
	lineage, err := store.GetLineage(ctx, id)
	if err != nil {
		slog.Warn("Cannot get lineage", "term", term, "error", err)
		return false
	}
	for _, v := range lineage {
		if _, ok := ancestors[v.TaxID]; ok {
			return true
		}
	}
	return false
}
