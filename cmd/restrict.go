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
	"strings"

	"github.com/RoaringBitmap/roaring"
	"github.com/dustin/go-humanize"
	"github.com/gnames/nwr/internal/iofs"
	"github.com/gnames/nwr/internal/iotaxdb"
	"github.com/spf13/cobra"
)

// getRestrictCmd returns the restrict command.
func getRestrictCmd() *cobra.Command {
	var (
		out     string
		file    string
		column  int
		exclude bool
	)

	restrictCmd := &cobra.Command{
		Use:   "restrict TERM...",
		Short: "Keep rows that belong to given taxa",
		Long: `Keep rows of a TSV file whose term is a descendant of any of the
given taxa (the taxa themselves included).

The term is taken from the column given by -c (1-based). Lines that
start with '#' are kept as headers. Rows with unknown terms are
skipped. Use -e to keep rows outside of the taxa instead.

Examples:
  nwr restrict Hominidae -f species.tsv
  nwr restrict Primates Rodentia -f species.tsv -c 2 -e`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestrict(
				cmd.Context(), args, file, out, column, exclude,
			)
		},
	}

	restrictCmd.Flags().StringVarP(&file, "file", "f", iofs.Stdin,
		"TSV file to filter, 'stdin' for standard input")
	restrictCmd.Flags().IntVarP(&column, "column", "c", 1,
		"column with taxonomic terms, 1-based")
	restrictCmd.Flags().BoolVarP(&exclude, "exclude", "e", false,
		"keep rows that are not members of the taxa")
	outFlag(restrictCmd, &out)

	return restrictCmd
}

func runRestrict(
	ctx context.Context,
	terms []string,
	inPath, outPath string,
	column int,
	exclude bool,
) error {
	if column < 1 {
		return ArgumentError("column must be positive, got <em>%d</em>", column)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	members := roaring.New()
	for _, term := range terms {
		id, err := store.ResolveTerm(ctx, term)
		if err != nil {
			return err
		}
		ids, err := store.GetAllDescendants(ctx, id)
		if err != nil {
			return err
		}
		for _, v := range ids {
			members.Add(uint32(v))
		}
	}
	slog.Info("Members collected",
		"terms", len(terms),
		"members", humanize.Comma(int64(members.GetCardinality())),
	)

	lines, err := iofs.ReadLines(inPath)
	if err != nil {
		return err
	}

	out, err := createOutput(outPath)
	if err != nil {
		return err
	}

	cache := make(map[string]int)
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			out.line(line)
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if column > len(fields) {
			slog.Warn("Row has no term column", "row", line, "column", column)
			continue
		}
		term := fields[column-1]

		id, ok := cache[term]
		if !ok {
			id, err = store.ResolveTerm(ctx, term)
			if iotaxdb.IsUnknown(err) {
				slog.Warn("Cannot resolve term", "term", term)
				id, err = -1, nil
			}
			if err != nil {
				out.Close()
				return err
			}
			cache[term] = id
		}
		if id < 0 {
			continue
		}

		if members.Contains(uint32(id)) != exclude {
			out.line(line)
		}
	}

	return out.Close()
}
