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
	"log/slog"
	"strconv"

	"github.com/gnames/gn"
	"github.com/gnames/nwr/internal/iofs"
	"github.com/gnames/nwr/pkg/matrix"
	"github.com/spf13/cobra"
)

// getMatCmd returns the mat group of commands.
func getMatCmd() *cobra.Command {
	matCmd := &cobra.Command{
		Use:   "mat",
		Short: "Convert, subset and compare distance matrices",
		Long: `Commands for PHYLIP distance matrices. Full, lower-triangular
and lower-triangular with diagonal matrices are accepted as input.`,
	}

	matCmd.AddCommand(
		getToPhylipCmd(),
		getToPairCmd(),
		getFormatCmd(),
		getSubsetCmd(),
		getCompareCmd(),
	)
	return matCmd
}

// writeMatrix writes a matrix in PHYLIP format.
func writeMatrix(outPath string, m *matrix.Matrix, f matrix.Format) error {
	out, err := createOutput(outPath)
	if err != nil {
		return err
	}
	if err = m.WritePhylip(out, f); err != nil {
		out.Close()
		return iofs.WriteFileError(outPath, err)
	}
	return out.Close()
}

// getToPhylipCmd returns the mat to-phylip command.
func getToPhylipCmd() *cobra.Command {
	var (
		out     string
		same    float64
		missing float64
	)

	toPhylipCmd := &cobra.Command{
		Use:   "to-phylip [INFILE]",
		Short: "Convert pairwise distances to a PHYLIP matrix",
		Long: `Convert lines of 'name1 name2 distance' separated by tabs to a
full PHYLIP matrix. Names are ordered by their first appearance.

Examples:
  nwr mat to-phylip pairs.tsv
  nwr mat to-phylip pairs.tsv --missing 0.5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inPath := inputArg(args)
			r, err := iofs.OpenInput(inPath)
			if err != nil {
				return err
			}
			defer r.Close()

			m, err := matrix.ReadPairs(r, same, missing)
			if err != nil {
				return err
			}
			return writeMatrix(out, m, matrix.Full)
		},
	}

	toPhylipCmd.Flags().Float64Var(&same, "same", 0,
		"distance of a name to itself when absent")
	toPhylipCmd.Flags().Float64Var(&missing, "missing", 1,
		"distance of absent pairs")
	outFlag(toPhylipCmd, &out)

	return toPhylipCmd
}

// getToPairCmd returns the mat to-pair command.
func getToPairCmd() *cobra.Command {
	var out string

	toPairCmd := &cobra.Command{
		Use:   "to-pair [INFILE]",
		Short: "Convert a PHYLIP matrix to pairwise distances",
		Long: `Write every pair of names with their distance once, in the
order of the matrix.

Examples:
  nwr mat to-pair matrix.phy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readPhylip(inputArg(args))
			if err != nil {
				return err
			}

			o, err := createOutput(out)
			if err != nil {
				return err
			}
			if err = m.WritePairs(o); err != nil {
				o.Close()
				return iofs.WriteFileError(out, err)
			}
			return o.Close()
		},
	}

	outFlag(toPairCmd, &out)
	return toPairCmd
}

// getFormatCmd returns the mat format command.
func getFormatCmd() *cobra.Command {
	var (
		out  string
		mode string
	)

	formatCmd := &cobra.Command{
		Use:   "format [INFILE]",
		Short: "Rewrite a PHYLIP matrix in another dialect",
		Long: `Rewrite a PHYLIP matrix.

Modes:
  full    square matrix
  lower   lower triangle without diagonal
  strict  names cut to 10 characters, values with 6 decimals

Examples:
  nwr mat format matrix.phy --mode lower`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok := matrix.NewFormat(mode)
			if !ok {
				return ArgumentError("unknown matrix format <em>%s</em>", mode)
			}
			m, err := readPhylip(inputArg(args))
			if err != nil {
				return err
			}
			return writeMatrix(out, m, f)
		},
	}

	formatCmd.Flags().StringVar(&mode, "mode", "full",
		"full, lower or strict")
	outFlag(formatCmd, &out)

	return formatCmd
}

// getSubsetCmd returns the mat subset command.
func getSubsetCmd() *cobra.Command {
	var out string

	subsetCmd := &cobra.Command{
		Use:   "subset INFILE LIST",
		Short: "Keep rows and columns of listed names",
		Long: `Extract a matrix of names listed in the first column of LIST,
in the order of the list. Names absent from the matrix are skipped.

Examples:
  nwr mat subset matrix.phy names.txt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readPhylip(args[0])
			if err != nil {
				return err
			}
			names, err := iofs.ReadNames(args[1])
			if err != nil {
				return err
			}

			sub, missing, err := m.Subset(names)
			if err != nil {
				return err
			}
			warnMissing(missing)
			return writeMatrix(out, sub, matrix.Full)
		},
	}

	outFlag(subsetCmd, &out)
	return subsetCmd
}

// warnMissing tells the user which listed names were skipped.
func warnMissing(names []string) {
	for _, v := range names {
		slog.Warn("Name is not in the matrix", "name", v)
		gn.Warn("Name <em>%s</em> is not in the matrix", v)
	}
}

// getCompareCmd returns the mat compare command.
func getCompareCmd() *cobra.Command {
	var (
		out     string
		methods []string
	)

	compareCmd := &cobra.Command{
		Use:   "compare INFILE1 INFILE2",
		Short: "Compare two distance matrices",
		Long: `Compare lower triangles of two matrices over their common
names. Output has a 'method value' line per method.

Methods: pearson, spearman, mae, cosine, weighted_jaccard, euclid
or all.

Examples:
  nwr mat compare a.phy b.phy
  nwr mat compare a.phy b.phy --method pearson,mae
  nwr mat compare a.phy b.phy --method all`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, err := compareMethods(methods)
			if err != nil {
				return err
			}
			a, err := readPhylip(args[0])
			if err != nil {
				return err
			}
			b, err := readPhylip(args[1])
			if err != nil {
				return err
			}

			res, err := matrix.Compare(a, b, ms)
			if err != nil {
				return err
			}

			o, err := createOutput(out)
			if err != nil {
				return err
			}
			for _, v := range res {
				o.line(string(v.Method) + "\t" +
					strconv.FormatFloat(v.Value, 'f', 6, 64))
			}
			return o.Close()
		},
	}

	compareCmd.Flags().StringSliceVar(&methods, "method",
		[]string{string(matrix.Pearson)},
		"comparison methods, comma-separated or repeated")
	outFlag(compareCmd, &out)

	return compareCmd
}

func compareMethods(values []string) ([]matrix.Method, error) {
	var res []matrix.Method
	for _, v := range values {
		if v == "all" {
			return matrix.Methods, nil
		}
		m, err := matrix.NewMethod(v)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, nil
}
