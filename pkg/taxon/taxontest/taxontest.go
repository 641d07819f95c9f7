// Package taxontest provides an in-memory taxon.Store for tests.
package taxontest

import (
	"context"
	"errors"
	"slices"

	"github.com/gnames/nwr/pkg/taxon"
)

// ErrUnknown is returned for unknown terms and identifiers.
var ErrUnknown = errors.New("unknown taxon")

// Store keeps taxa in a map.
type Store struct {
	Taxa map[int]taxon.Taxon
}

// New creates a Store from taxa. Each taxon needs TaxID, ParentTaxID
// and a scientific name.
func New(taxa ...taxon.Taxon) *Store {
	res := &Store{Taxa: make(map[int]taxon.Taxon)}
	for _, v := range taxa {
		res.Taxa[v.TaxID] = v
	}
	return res
}

// Taxon is a shortcut for a taxon with a scientific name only.
func Taxon(id, parent int, rank, name string) taxon.Taxon {
	return taxon.Taxon{
		TaxID:       id,
		ParentTaxID: parent,
		Rank:        rank,
		Names:       map[string][]string{taxon.ScientificName: {name}},
	}
}

func (s *Store) ResolveTerm(_ context.Context, term string) (int, error) {
	id, name, isID := taxon.ParseTerm(term)
	if isID {
		return id, nil
	}
	ids := make([]int, 0, len(s.Taxa))
	for k := range s.Taxa {
		ids = append(ids, k)
	}
	slices.Sort(ids)
	for _, k := range ids {
		if s.Taxa[k].ScientificName() == name {
			return k, nil
		}
	}
	return 0, ErrUnknown
}

func (s *Store) GetTaxa(_ context.Context, ids []int) ([]taxon.Taxon, error) {
	res := make([]taxon.Taxon, 0, len(ids))
	for _, id := range ids {
		t, ok := s.Taxa[id]
		if !ok {
			return nil, ErrUnknown
		}
		res = append(res, t)
	}
	return res, nil
}

func (s *Store) GetLineage(ctx context.Context, id int) ([]taxon.Taxon, error) {
	t, ok := s.Taxa[id]
	if !ok {
		return nil, ErrUnknown
	}
	res := []taxon.Taxon{t}
	for !t.IsRoot() {
		if t, ok = s.Taxa[t.ParentTaxID]; !ok {
			return nil, ErrUnknown
		}
		res = append(res, t)
	}
	slices.Reverse(res)
	return res, nil
}

func (s *Store) childIDs(id int) []int {
	var res []int
	for k, v := range s.Taxa {
		if v.ParentTaxID == id && k != id {
			res = append(res, k)
		}
	}
	slices.Sort(res)
	return res
}

func (s *Store) GetChildren(ctx context.Context, id int) ([]taxon.Taxon, error) {
	return s.GetTaxa(ctx, s.childIDs(id))
}

func (s *Store) GetAllDescendants(_ context.Context, id int) ([]int, error) {
	res := []int{id}
	for i := 0; i < len(res); i++ {
		res = append(res, s.childIDs(res[i])...)
	}
	return res, nil
}

func (s *Store) Close() error { return nil }

var _ taxon.Store = (*Store)(nil)
