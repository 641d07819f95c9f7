package iotaxdb

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/gnames/nwr/pkg/taxon"
)

// Dump file names inside the taxonomy directory.
const (
	divisionFile = "division.dmp"
	namesFile    = "names.dmp"
	nodesFile    = "nodes.dmp"
)

// nodes.dmp column with the comment.
const nodeCommentCol = 12

var errFieldsNum = errors.New("not enough fields")

// dumpFields splits a dump row into fields. Rows are separated by
// "\t|\t" and terminated by "\t|".
func dumpFields(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	line = strings.TrimSuffix(line, "\t|")
	return strings.Split(line, "\t|\t")
}

func atoi(field, col string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, fmt.Errorf("column %s is not an integer: %q", col, field)
	}
	return i, nil
}

// scanDump calls fn for every non-empty row of a dump file.
// The context is checked between rows.
func scanDump(
	ctx context.Context,
	path string,
	fn func(fields []string) error,
) error {
	f, err := os.Open(path)
	if err != nil {
		return DumpReadError(path, err)
	}
	defer f.Close()
	return scanReader(ctx, filepath.Base(path), f, fn)
}

func scanReader(
	ctx context.Context,
	name string,
	r io.Reader,
	fn func(fields []string) error,
) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var lineNum int
	for sc.Scan() {
		lineNum++
		if lineNum%10_000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := fn(dumpFields(line)); err != nil {
			return DumpParseError(name, lineNum, err)
		}
	}
	if err := sc.Err(); err != nil {
		return DumpReadError(name, err)
	}
	return nil
}

// readDivisions parses division.dmp: id, code, name, ...
func readDivisions(ctx context.Context, dir string) ([]taxon.Division, error) {
	var res []taxon.Division
	err := scanDump(ctx, filepath.Join(dir, divisionFile),
		func(ff []string) error {
			if len(ff) < 3 {
				return errFieldsNum
			}
			id, err := atoi(ff[0], "id")
			if err != nil {
				return err
			}
			res = append(res, taxon.Division{
				ID:   id,
				Name: strings.TrimSpace(ff[2]),
			})
			return nil
		})
	return res, err
}

// readNames parses names.dmp: tax_id, name, unique name, name class.
// Surrogate ids follow the row order, so repeated ingestion gives the
// same store.
func readNames(ctx context.Context, dir string) ([]taxon.Name, error) {
	var res []taxon.Name
	err := scanDump(ctx, filepath.Join(dir, namesFile),
		func(ff []string) error {
			if len(ff) < 4 {
				return errFieldsNum
			}
			id, err := atoi(ff[0], "tax_id")
			if err != nil {
				return err
			}
			res = append(res, taxon.Name{
				ID:        len(res) + 1,
				TaxID:     id,
				Name:      gnlib.FixUtf8(strings.TrimSpace(ff[1])),
				NameClass: strings.TrimSpace(ff[3]),
			})
			return nil
		})
	return res, err
}

// readNodes parses nodes.dmp: tax_id, parent, rank, embl code,
// division id, ..., comment.
func readNodes(ctx context.Context, dir string) ([]taxon.Node, error) {
	var res []taxon.Node
	err := scanDump(ctx, filepath.Join(dir, nodesFile),
		func(ff []string) error {
			if len(ff) < 5 {
				return errFieldsNum
			}
			id, err := atoi(ff[0], "tax_id")
			if err != nil {
				return err
			}
			parent, err := atoi(ff[1], "parent_tax_id")
			if err != nil {
				return err
			}
			div, err := atoi(ff[4], "division_id")
			if err != nil {
				return err
			}
			var comment string
			if len(ff) > nodeCommentCol {
				comment = strings.TrimSpace(ff[nodeCommentCol])
			}
			res = append(res, taxon.Node{
				TaxID:       id,
				ParentTaxID: parent,
				Rank:        strings.TrimSpace(ff[2]),
				DivisionID:  div,
				Comment:     comment,
			})
			return nil
		})
	return res, err
}
