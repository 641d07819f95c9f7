/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/gnames/nwr/pkg/taxon"
	"github.com/spf13/cobra"
)

// getInfoCmd returns the info command.
func getInfoCmd() *cobra.Command {
	var (
		out    string
		tsv    bool
		asJSON bool
	)

	infoCmd := &cobra.Command{
		Use:   "info TERM...",
		Short: "Show information about taxa",
		Long: `Show information about taxa given by tax_ids or names.

Underscores in names are replaced with spaces. By default every taxon
gets a text block with its rank, division, names by class, parent and
comment. Use --tsv for a table with the columns
'#tax_id sci_name rank division' or --json for JSON.

Examples:
  nwr info 9606
  nwr info Homo_sapiens "Pan troglodytes"
  nwr info --tsv 9606 9598`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tsv && asJSON {
				return ArgumentError("--tsv and --json are mutually exclusive")
			}
			return runInfo(cmd.Context(), args, out, tsv, asJSON)
		},
	}

	infoCmd.Flags().BoolVar(&tsv, "tsv", false, "output a TSV table")
	infoCmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	outFlag(infoCmd, &out)

	return infoCmd
}

func runInfo(
	ctx context.Context,
	terms []string,
	outPath string,
	tsv, asJSON bool,
) error {
	taxa, err := termsToTaxa(ctx, terms)
	if err != nil {
		return err
	}

	out, err := createOutput(outPath)
	if err != nil {
		return err
	}

	switch {
	case asJSON:
		enc := gnfmt.GNjson{Pretty: true}
		bs, err := enc.Encode(taxa)
		if err != nil {
			out.Close()
			return err
		}
		out.Write(bs)
		out.line("")
	case tsv:
		out.line(taxaHeader)
		for _, t := range taxa {
			out.line(taxonRow(t))
		}
	default:
		for _, t := range taxa {
			out.WriteString(infoBlock(t))
		}
	}

	return out.Close()
}

// termsToTaxa resolves terms and fetches their aggregates in the
// order of terms.
func termsToTaxa(ctx context.Context, terms []string) ([]taxon.Taxon, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	ids := make([]int, 0, len(terms))
	for _, v := range terms {
		id, err := store.ResolveTerm(ctx, v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return store.GetTaxa(ctx, ids)
}

const taxaHeader = "#tax_id\tsci_name\trank\tdivision"

func taxonRow(t taxon.Taxon) string {
	return strings.Join([]string{
		strconv.Itoa(t.TaxID), t.ScientificName(), t.Rank, t.Division,
	}, "\t")
}

func infoBlock(t taxon.Taxon) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ID: %d\n", t.TaxID)
	fmt.Fprintf(&sb, "Rank: %s\n", t.Rank)
	fmt.Fprintf(&sb, "Division: %s\n", t.Division)

	classes := make([]string, 0, len(t.Names))
	for k := range t.Names {
		if k != taxon.ScientificName {
			classes = append(classes, k)
		}
	}
	slices.Sort(classes)
	classes = slices.Insert(classes, 0, taxon.ScientificName)

	sb.WriteString("Names:\n")
	for _, class := range classes {
		for _, name := range t.Names[class] {
			fmt.Fprintf(&sb, "  - %s (%s)\n", name, class)
		}
	}
	fmt.Fprintf(&sb, "Parent ID: %d\n", t.ParentTaxID)
	if t.Comment != "" {
		fmt.Fprintf(&sb, "Comment: %s\n", t.Comment)
	}
	sb.WriteString("\n")
	return sb.String()
}
