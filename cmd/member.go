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
	"log/slog"
	"slices"

	"github.com/spf13/cobra"
)

// getMemberCmd returns the member command.
func getMemberCmd() *cobra.Command {
	var (
		out   string
		ranks []string
	)

	memberCmd := &cobra.Command{
		Use:   "member TERM...",
		Short: "List members (descendants) of taxa",
		Long: `List all descendants of taxa, the taxa themselves included.

Output is a table with the columns '#tax_id sci_name rank division'.
Repeat -r to keep only members of the given ranks.

Examples:
  nwr member Hominidae
  nwr member Primates -r species -r subspecies`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMember(cmd.Context(), args, ranks, out)
		},
	}

	memberCmd.Flags().StringArrayVarP(&ranks, "rank", "r", nil,
		"keep only members of the rank, can be repeated")
	outFlag(memberCmd, &out)

	return memberCmd
}

func runMember(
	ctx context.Context,
	terms, ranks []string,
	outPath string,
) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	out, err := createOutput(outPath)
	if err != nil {
		return err
	}
	out.line(taxaHeader)

	for _, term := range terms {
		id, err := store.ResolveTerm(ctx, term)
		if err != nil {
			out.Close()
			return err
		}
		ids, err := store.GetAllDescendants(ctx, id)
		if err != nil {
			out.Close()
			return err
		}
		taxa, err := store.GetTaxa(ctx, ids)
		if err != nil {
			out.Close()
			return err
		}

		var count int
		for _, t := range taxa {
			if len(ranks) > 0 && !slices.Contains(ranks, t.Rank) {
				continue
			}
			out.line(taxonRow(t))
			count++
		}
		slog.Info("Members listed", "term", term, "members", count)
	}

	return out.Close()
}
