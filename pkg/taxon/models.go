// Package taxon provides the data model of the NCBI taxonomy cache and the
// contracts of its store. Models are used by GORM AutoMigrate to create the
// tables, the indexes are created after the bulk load.
package taxon

// Division is a taxonomic division, a static table from division.dmp.
type Division struct {
	// ID is the NCBI division identifier.
	ID int `gorm:"column:id;primaryKey;autoIncrement:false"`

	// Name is the division name (Bacteria, Primates, ...).
	Name string `gorm:"column:name;type:text;not null"`
}

// TableName returns the table name of Division.
func (Division) TableName() string { return "division" }

// Node is a taxon node from nodes.dmp.
// The root is its own parent.
type Node struct {
	// TaxID is the NCBI taxon identifier.
	TaxID int `gorm:"column:tax_id;primaryKey;autoIncrement:false"`

	// ParentTaxID is the identifier of the parent taxon.
	ParentTaxID int `gorm:"column:parent_tax_id;not null"`

	// Rank is an open vocabulary: species, genus, no rank ...
	Rank string `gorm:"column:rank;type:text;not null"`

	// DivisionID references Division.
	DivisionID int `gorm:"column:division_id;not null"`

	// Comment is a free text remark.
	Comment string `gorm:"column:comment;type:text"`
}

// TableName returns the table name of Node.
func (Node) TableName() string { return "node" }

// Name is one of the names of a taxon from names.dmp.
type Name struct {
	// ID is a surrogate key assigned in dump order.
	ID int `gorm:"column:id;primaryKey"`

	// TaxID references Node.
	TaxID int `gorm:"column:tax_id;not null"`

	// Name is the name string.
	Name string `gorm:"column:name;type:text;not null"`

	// NameClass is scientific name, synonym, genbank synonym,
	// common name, authority etc.
	NameClass string `gorm:"column:name_class;type:text;not null"`
}

// TableName returns the table name of Name.
func (Name) TableName() string { return "name" }

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Division{},
		&Node{},
		&Name{},
	}
}

// IndexDDL returns CREATE INDEX statements that are executed after the
// bulk load.
func IndexDDL() []string {
	return []string{
		"CREATE INDEX idx_name_tax_id ON name (tax_id)",
		"CREATE INDEX idx_name_name ON name (name)",
		"CREATE INDEX idx_node_parent_tax_id ON node (parent_tax_id)",
	}
}
