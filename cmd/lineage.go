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

	"github.com/spf13/cobra"
)

// getLineageCmd returns the lineage command.
func getLineageCmd() *cobra.Command {
	var (
		out string
		tsv bool
	)

	lineageCmd := &cobra.Command{
		Use:   "lineage TERM",
		Short: "Print lineage of a taxon",
		Long: `Print lineage of a taxon from the root to the taxon itself.

Every line has 'rank sci_name tax_id' separated by tabs. The --tsv flag
adds a header line.

Examples:
  nwr lineage 9606
  nwr lineage --tsv Homo_sapiens`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLineage(cmd.Context(), args[0], out, tsv)
		},
	}

	lineageCmd.Flags().BoolVar(&tsv, "tsv", false, "add a header line")
	outFlag(lineageCmd, &out)

	return lineageCmd
}

func runLineage(ctx context.Context, term, outPath string, tsv bool) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.ResolveTerm(ctx, term)
	if err != nil {
		return err
	}
	lineage, err := store.GetLineage(ctx, id)
	if err != nil {
		return err
	}

	out, err := createOutput(outPath)
	if err != nil {
		return err
	}
	if tsv {
		out.line("#rank\tsci_name\ttax_id")
	}
	for _, t := range lineage {
		out.line(fmt.Sprintf("%s\t%s\t%d", t.Rank, t.ScientificName(), t.TaxID))
	}
	return out.Close()
}
