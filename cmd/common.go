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

	"github.com/gnames/nwr/pkg/newick"
	"github.com/gnames/nwr/pkg/taxon"
	"github.com/gnames/nwr/pkg/treeops"
	"github.com/spf13/cobra"
)

// getCommonCmd returns the common command.
func getCommonCmd() *cobra.Command {
	var (
		out      string
		compress bool
	)

	commonCmd := &cobra.Command{
		Use:   "common TERM...",
		Short: "Output a Newick tree joining lineages of taxa",
		Long: `Output the common tree of taxa as Newick.

The tree is the union of lineages of all taxa. Nodes are named by
scientific names and carry comments T=<tax_id>:rank=<rank>.
Single-child nodes are kept when they have a rank, use --compress to
remove all of them.

Examples:
  nwr common "Homo sapiens" "Pan troglodytes" "Gorilla gorilla"
  nwr common 9606 9598 --compress`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommon(cmd.Context(), args, out, compress)
		},
	}

	commonCmd.Flags().BoolVar(&compress, "compress", false,
		"remove all single-child nodes")
	outFlag(commonCmd, &out)

	return commonCmd
}

func runCommon(
	ctx context.Context,
	terms []string,
	outPath string,
	compress bool,
) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	lineages := make([][]taxon.Taxon, 0, len(terms))
	for _, term := range terms {
		id, err := store.ResolveTerm(ctx, term)
		if err != nil {
			return err
		}
		lineage, err := store.GetLineage(ctx, id)
		if err != nil {
			return err
		}
		lineages = append(lineages, lineage)
	}

	t := treeops.Common(lineages, compress)
	return writeTrees(outPath, []*newick.Tree{t}, "")
}
