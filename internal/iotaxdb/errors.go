package iotaxdb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/nwr/pkg/errcode"
)

// StoreNotFoundError is returned when taxonomy.sqlite does not exist.
func StoreNotFoundError(path string) error {
	msg := `Taxonomy store <em>%s</em> not found

<em>How to fix:</em>
  1. Download NCBI taxdump into the directory
  2. Run <em>'nwr txdb'</em> to build the store`
	vars := []any{path}
	return &gn.Error{
		Code: errcode.TaxStoreNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("taxonomy store not found: %s", path),
	}
}

// StoreOpenError is returned when the database cannot be opened.
func StoreOpenError(path string, err error) error {
	msg := "Cannot open taxonomy store <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxStoreOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn.Name(), path, err),
	}
}

// SchemaError is returned when tables cannot be created.
func SchemaError(err error) error {
	msg := "Cannot create taxonomy tables"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxSchemaError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot create schema: %w", fn.Name(), err),
	}
}

// DumpReadError is returned when a dump file cannot be read.
func DumpReadError(path string, err error) error {
	msg := "Cannot read NCBI dump <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxDumpReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), path, err),
	}
}

// DumpParseError is returned for a malformed dump row.
// Ingestion stops and nothing is committed.
func DumpParseError(file string, line int, err error) error {
	msg := "Malformed row in <em>%s</em> at line %d"
	vars := []any{file, line}
	return &gn.Error{
		Code: errcode.TaxDumpParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s:%d: %w", file, line, err),
	}
}

// InsertError is returned when rows cannot be inserted.
func InsertError(table string, err error) error {
	msg := "Cannot insert data into <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxInsertError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: insert into %s: %w", fn.Name(), table, err),
	}
}

// IndexError is returned when an index cannot be created.
func IndexError(ddl string, err error) error {
	msg := "Cannot create index"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxIndexError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %s: %w", fn.Name(), ddl, err),
	}
}

// CommitError is returned when the ingestion cannot be finalized.
func CommitError(path string, err error) error {
	msg := "Cannot finalize taxonomy store <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxCommitError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: commit %s: %w", fn.Name(), path, err),
	}
}

// QueryError wraps a failed query.
func QueryError(err error) error {
	msg := "Taxonomy query failed"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TaxQueryError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}

// UnknownTermError is returned when a name has no matching taxon.
func UnknownTermError(term string) error {
	msg := "No such name: <em>%s</em>"
	vars := []any{term}
	return &gn.Error{
		Code: errcode.TaxUnknownTermError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown term: %s", term),
	}
}

// UnknownIDError is returned when a numeric identifier is absent.
func UnknownIDError(id int) error {
	msg := "No such tax_id: <em>%d</em>"
	vars := []any{id}
	return &gn.Error{
		Code: errcode.TaxUnknownIDError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown tax_id: %d", id),
	}
}

// MalformedStoreError is returned when a parent chain is broken.
func MalformedStoreError(id, missing int) error {
	msg := `Taxonomy store is malformed: lineage of %d is broken at %d

<em>How to fix:</em>
  Rebuild the store with <em>'nwr txdb'</em>`
	vars := []any{id, missing}
	return &gn.Error{
		Code: errcode.TaxMalformedStoreError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("broken lineage of %d at %d", id, missing),
	}
}
