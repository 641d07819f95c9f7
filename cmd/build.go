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
	"github.com/gnames/nwr/pkg/builder"
	"github.com/gnames/nwr/pkg/newick"
	"github.com/spf13/cobra"
)

// getBuildCmd returns the build group of commands.
func getBuildCmd() *cobra.Command {
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build trees from distance matrices",
	}

	buildCmd.AddCommand(
		getBuilderCmd("upgma", builder.UPGMA,
			"Build an ultrametric tree with UPGMA",
			`Build a rooted ultrametric tree with UPGMA (average linkage).

Examples:
  nwr build upgma matrix.phy`),
		getBuilderCmd("nj", builder.NJ,
			"Build a tree with Neighbor-Joining",
			`Build a tree with Neighbor-Joining. The result is unrooted in
nature, it is written rooted at the last join. Negative branch lengths
are kept.

Examples:
  nwr build nj matrix.phy`),
	)
	return buildCmd
}

func getBuilderCmd(use string, method builder.Method, short, long string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   use + " [INFILE]",
		Short: short,
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readPhylip(inputArg(args))
			if err != nil {
				return err
			}
			t, err := builder.Build(m, method)
			if err != nil {
				return err
			}
			return writeTrees(out, []*newick.Tree{t}, "")
		},
	}

	outFlag(cmd, &out)
	return cmd
}
