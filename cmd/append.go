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
	"strconv"
	"strings"

	"github.com/gnames/nwr/internal/iofs"
	"github.com/gnames/nwr/internal/iotaxdb"
	"github.com/gnames/nwr/pkg/taxon"
	"github.com/spf13/cobra"
)

// getAppendCmd returns the append command.
func getAppendCmd() *cobra.Command {
	var (
		out    string
		column int
		ranks  []string
		withID bool
	)

	appendCmd := &cobra.Command{
		Use:   "append FILE",
		Short: "Append taxonomic columns to a TSV file",
		Long: `Append taxonomic information to every row of a TSV file.

The term (tax_id or name) is taken from the column given by -c
(1-based). Without -r the scientific name of the term is appended.
With -r the name of the ancestor at each rank is appended, --id adds
its tax_id as well. Lines starting with '#' are headers, they get the
names of the new columns. Rows with unknown terms get 'NA'.

Examples:
  nwr append species.tsv
  nwr append -c 2 -r family -r order --id species.tsv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppend(
				cmd.Context(), inputArg(args), out, column, ranks, withID,
			)
		},
	}

	appendCmd.Flags().IntVarP(&column, "column", "c", 1,
		"column with taxonomic terms, 1-based")
	appendCmd.Flags().StringArrayVarP(&ranks, "rank", "r", nil,
		"rank to append, can be repeated")
	appendCmd.Flags().BoolVar(&withID, "id", false, "append tax_id too")
	outFlag(appendCmd, &out)

	return appendCmd
}

func runAppend(
	ctx context.Context,
	inPath, outPath string,
	column int,
	ranks []string,
	withID bool,
) error {
	if column < 1 {
		return ArgumentError("column must be positive, got <em>%d</em>", column)
	}

	lines, err := iofs.ReadLines(inPath)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	out, err := createOutput(outPath)
	if err != nil {
		return err
	}

	ap := appender{store: store, ranks: ranks, withID: withID,
		cache: make(map[string][]string)}
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			out.line(line + "\t" + strings.Join(ap.header(), "\t"))
			continue
		}
		if strings.TrimSpace(line) == "" {
			out.line(line)
			continue
		}

		var term string
		if fields := strings.Split(line, "\t"); column <= len(fields) {
			term = fields[column-1]
		}
		cols, err := ap.columns(ctx, term)
		if err != nil {
			out.Close()
			return err
		}
		out.line(line + "\t" + strings.Join(cols, "\t"))
	}

	return out.Close()
}

type appender struct {
	store  taxon.Store
	ranks  []string
	withID bool
	cache  map[string][]string
}

func (a *appender) header() []string {
	if len(a.ranks) == 0 {
		if a.withID {
			return []string{"sci_name", "tax_id"}
		}
		return []string{"sci_name"}
	}

	var res []string
	for _, r := range a.ranks {
		res = append(res, r)
		if a.withID {
			res = append(res, r+"_id")
		}
	}
	return res
}

// columns returns appended values for a term. Unknown terms are
// logged and get NA, any other store failure is returned.
func (a *appender) columns(ctx context.Context, term string) ([]string, error) {
	if res, ok := a.cache[term]; ok {
		return res, nil
	}

	res, err := a.lookup(ctx, term)
	if iotaxdb.IsUnknown(err) || (err == nil && res == nil) {
		slog.Warn("Cannot resolve term", "term", term, "error", err)
		res = a.missing()
		err = nil
	}
	if err != nil {
		return nil, err
	}

	a.cache[term] = res
	return res, nil
}

func (a *appender) lookup(ctx context.Context, term string) ([]string, error) {
	if strings.TrimSpace(term) == "" {
		return nil, nil
	}
	id, err := a.store.ResolveTerm(ctx, term)
	if err != nil {
		return nil, err
	}

	if len(a.ranks) == 0 {
		taxa, err := a.store.GetTaxa(ctx, []int{id})
		if err != nil {
			return nil, err
		}
		res := []string{taxa[0].ScientificName()}
		if a.withID {
			res = append(res, strconv.Itoa(id))
		}
		return res, nil
	}

	lineage, err := a.store.GetLineage(ctx, id)
	if err != nil {
		return nil, err
	}
	var res []string
	for _, r := range a.ranks {
		rankID, name := taxon.FindRank(lineage, r)
		res = append(res, name)
		if a.withID {
			res = append(res, strconv.Itoa(rankID))
		}
	}
	return res, nil
}

func (a *appender) missing() []string {
	res := make([]string, len(a.header()))
	for i := range res {
		res[i] = "NA"
		if a.withID && i%2 == 1 {
			res[i] = "0"
		}
	}
	return res
}
