package taxon

import (
	"context"
	"strconv"
	"strings"
)

// Name classes used by the store.
const (
	ScientificName = "scientific name"
	Synonym        = "synonym"
	GenbankSynonym = "genbank synonym"
)

// ResolvableClasses are the name classes accepted by term resolution.
var ResolvableClasses = []string{ScientificName, Synonym, GenbankSynonym}

// RootID is the identifier of the root of NCBI taxonomy.
const RootID = 1

// Taxon is an aggregate view of a node with all its names.
type Taxon struct {
	TaxID       int                 `json:"taxId"`
	ParentTaxID int                 `json:"parentTaxId"`
	Rank        string              `json:"rank"`
	Division    string              `json:"division"`
	Comment     string              `json:"comment,omitempty"`
	Names       map[string][]string `json:"names"`
}

// ScientificName returns the scientific name of the taxon.
func (t Taxon) ScientificName() string {
	if names := t.Names[ScientificName]; len(names) > 0 {
		return names[0]
	}
	return ""
}

// IsRoot is true when the walk towards the root must stop at this taxon.
func (t Taxon) IsRoot() bool {
	return t.TaxID == RootID || t.TaxID == t.ParentTaxID
}

// FindRank scans a lineage from the root end and returns the identifier
// and scientific name of the first taxon with the given rank.
// If none match, it returns (0, "NA").
func FindRank(lineage []Taxon, rank string) (int, string) {
	for _, t := range lineage {
		if t.Rank == rank {
			return t.TaxID, t.ScientificName()
		}
	}
	return 0, "NA"
}

// ParseTerm splits a term into a numeric identifier or a name.
// Underscores in names stand for spaces.
func ParseTerm(term string) (id int, name string, isID bool) {
	term = strings.TrimSpace(term)
	if i, err := strconv.Atoi(term); err == nil {
		return i, "", true
	}
	return 0, strings.ReplaceAll(term, "_", " "), false
}

// Store answers queries against the taxonomy cache.
type Store interface {
	// ResolveTerm converts an integer literal or a name into tax_id.
	ResolveTerm(ctx context.Context, term string) (int, error)

	// GetTaxa returns aggregates in input order, stopping at the first
	// unknown identifier.
	GetTaxa(ctx context.Context, ids []int) ([]Taxon, error)

	// GetLineage returns taxa from the root to the target, both inclusive.
	GetLineage(ctx context.Context, id int) ([]Taxon, error)

	// GetChildren returns direct children of a taxon.
	GetChildren(ctx context.Context, id int) ([]Taxon, error)

	// GetAllDescendants returns the transitive closure of children
	// including the given identifier.
	GetAllDescendants(ctx context.Context, id int) ([]int, error)

	// Close releases the database connection.
	Close() error
}

// Builder creates the taxonomy store from NCBI dumps.
type Builder interface {
	// Build ingests division.dmp, names.dmp and nodes.dmp from dumpDir.
	// The store is replaced atomically, a failure leaves the previous
	// store untouched.
	Build(ctx context.Context, dumpDir string) error
}
