package iotaxdb

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/nwr/pkg/errcode"
	"github.com/gnames/nwr/pkg/taxon"
)

// store implements taxon.Store with a read-only SQLite connection.
type store struct {
	db     *sql.DB
	parser gnparser.GNparser
}

// Open connects to taxonomy.sqlite in read-only mode.
func Open(path string) (taxon.Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, StoreNotFoundError(path)
		}
		return nil, StoreOpenError(path, err)
	}

	db, err := sql.Open(driverName, "file:"+path+"?mode=ro")
	if err != nil {
		return nil, StoreOpenError(path, err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, StoreOpenError(path, err)
	}

	return &store{db: db}, nil
}

// Close releases the connection.
func (s *store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ResolveTerm returns integer literals as they are, names are looked up
// among scientific names and synonyms. A name with authorship or other
// decorations is retried with its canonical form.
func (s *store) ResolveTerm(ctx context.Context, term string) (int, error) {
	id, name, isID := taxon.ParseTerm(term)
	if isID {
		return id, nil
	}

	id, err := s.nameToID(ctx, name)
	if err != nil {
		return 0, err
	}
	if id > 0 {
		return id, nil
	}

	if canonical := s.canonical(name); canonical != "" && canonical != name {
		slog.Debug("Retrying term with canonical form",
			"term", name, "canonical", canonical)
		if id, err = s.nameToID(ctx, canonical); err != nil {
			return 0, err
		}
		if id > 0 {
			return id, nil
		}
	}

	return 0, UnknownTermError(term)
}

// canonical returns simple canonical form of a name or an empty string.
func (s *store) canonical(name string) string {
	if s.parser == nil {
		cfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
		s.parser = gnparser.New(cfg)
	}
	parsed := s.parser.ParseName(name)
	if !parsed.Parsed {
		return ""
	}
	return parsed.Canonical.Simple
}

func (s *store) nameToID(ctx context.Context, name string) (int, error) {
	q := `
		SELECT tax_id FROM name
		WHERE name = ? AND name_class IN (?, ?, ?)
		ORDER BY CASE name_class WHEN ? THEN 0 ELSE 1 END, tax_id
		LIMIT 1`
	var id int
	err := s.db.QueryRowContext(ctx, q, name,
		taxon.ScientificName, taxon.Synonym, taxon.GenbankSynonym,
		taxon.ScientificName,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, QueryError(err)
	}
	return id, nil
}

// GetTaxa returns aggregates in input order.
func (s *store) GetTaxa(ctx context.Context, ids []int) ([]taxon.Taxon, error) {
	res := make([]taxon.Taxon, 0, len(ids))
	for _, id := range ids {
		t, err := s.getTaxon(ctx, id)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, nil
}

func (s *store) getTaxon(ctx context.Context, id int) (taxon.Taxon, error) {
	q := `
		SELECT n.tax_id, n.parent_tax_id, n.rank,
		       COALESCE(d.name, ''), COALESCE(n.comment, '')
		FROM node n
		LEFT JOIN division d ON d.id = n.division_id
		WHERE n.tax_id = ?`
	var t taxon.Taxon
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&t.TaxID, &t.ParentTaxID, &t.Rank, &t.Division, &t.Comment,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return t, UnknownIDError(id)
	}
	if err != nil {
		return t, QueryError(err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT name_class, name FROM name WHERE tax_id = ? ORDER BY id", id)
	if err != nil {
		return t, QueryError(err)
	}
	defer rows.Close()

	t.Names = make(map[string][]string)
	for rows.Next() {
		var class, name string
		if err = rows.Scan(&class, &name); err != nil {
			return t, QueryError(err)
		}
		t.Names[class] = append(t.Names[class], name)
	}
	if err = rows.Err(); err != nil {
		return t, QueryError(err)
	}
	return t, nil
}

// parentOf returns parent of a node.
func (s *store) parentOf(ctx context.Context, id int) (int, bool, error) {
	var parent int
	err := s.db.QueryRowContext(ctx,
		"SELECT parent_tax_id FROM node WHERE tax_id = ?", id,
	).Scan(&parent)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, QueryError(err)
	}
	return parent, true, nil
}

// GetLineage walks parent pointers until tax_id 1 or a self-parent.
func (s *store) GetLineage(ctx context.Context, id int) ([]taxon.Taxon, error) {
	ids := []int{id}
	visited := map[int]struct{}{id: {}}

	cur := id
	for {
		parent, ok, err := s.parentOf(ctx, cur)
		if err != nil {
			return nil, err
		}
		if !ok {
			if cur == id {
				return nil, UnknownIDError(id)
			}
			return nil, MalformedStoreError(id, cur)
		}
		if cur == taxon.RootID || parent == cur {
			break
		}
		if _, seen := visited[parent]; seen {
			return nil, MalformedStoreError(id, parent)
		}
		visited[parent] = struct{}{}
		ids = append(ids, parent)
		cur = parent
	}

	// root first
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return s.GetTaxa(ctx, ids)
}

func (s *store) childIDs(ctx context.Context, id int) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tax_id FROM node
		 WHERE parent_tax_id = ? AND tax_id != parent_tax_id
		 ORDER BY tax_id`, id)
	if err != nil {
		return nil, QueryError(err)
	}
	defer rows.Close()

	var res []int
	for rows.Next() {
		var child int
		if err = rows.Scan(&child); err != nil {
			return nil, QueryError(err)
		}
		res = append(res, child)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError(err)
	}
	return res, nil
}

// GetChildren returns direct children sorted by tax_id.
func (s *store) GetChildren(ctx context.Context, id int) ([]taxon.Taxon, error) {
	ids, err := s.childIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.GetTaxa(ctx, ids)
}

// GetAllDescendants returns the input id followed by its descendants in
// breadth-first order.
func (s *store) GetAllDescendants(ctx context.Context, id int) ([]int, error) {
	res := []int{id}
	seen := map[int]struct{}{id: {}}

	for i := 0; i < len(res); i++ {
		children, err := s.childIDs(ctx, res[i])
		if err != nil {
			return nil, err
		}
		for _, c := range children {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			res = append(res, c)
		}
	}
	return res, nil
}

// IsUnknown is true for unknown-term and unknown-id errors.
func IsUnknown(err error) bool {
	var gnErr *gn.Error
	if !errors.As(err, &gnErr) {
		return false
	}
	return gnErr.Code == errcode.TaxUnknownTermError ||
		gnErr.Code == errcode.TaxUnknownIDError
}
