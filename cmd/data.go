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
	"strconv"
	"strings"

	"github.com/gnames/nwr/pkg/matrix"
	"github.com/gnames/nwr/pkg/newick"
	"github.com/gnames/nwr/pkg/treeops"
	"github.com/spf13/cobra"
)

// getDataCmd returns the data group of commands.
func getDataCmd() *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Read information from Newick trees",
		Long: `Commands that read Newick trees and report labels,
statistics and distances. Every tree of the input is processed.`,
	}

	dataCmd.AddCommand(
		getLabelCmd(),
		getStatCmd(),
		getDistanceCmd(),
	)
	return dataCmd
}

// getLabelCmd returns the data label command.
func getLabelCmd() *cobra.Command {
	var (
		out string
		sel selectorFlags
		tab bool
	)

	labelCmd := &cobra.Command{
		Use:   "label [INFILE]",
		Short: "Print names of selected nodes",
		Long: `Print names of selected nodes in pre-order, unnamed nodes are
skipped. Without selection options all nodes are selected.

Examples:
  nwr data label tree.nwk -I
  nwr data label tree.nwk -r '^homo' -D --tab`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLabel(cmd.Context(), inputArg(args), out, &sel, tab)
		},
	}

	sel.register(labelCmd, true)
	labelCmd.Flags().BoolVar(&tab, "tab", false,
		"print names of a tree in one tab-separated line")
	outFlag(labelCmd, &out)

	return labelCmd
}

func runLabel(
	ctx context.Context,
	inPath, outPath string,
	sel *selectorFlags,
	tab bool,
) error {
	spec, err := sel.spec()
	if err != nil {
		return err
	}
	trees, err := readTrees(inPath)
	if err != nil {
		return err
	}

	out, err := createOutput(outPath)
	if err != nil {
		return err
	}
	for _, t := range trees {
		ids, err := selectNodes(ctx, t, spec)
		if err != nil {
			out.Close()
			return err
		}

		var names []string
		for _, id := range ids {
			if name := t.Node(id).Name; name != "" {
				names = append(names, name)
			}
		}

		if tab {
			out.line(strings.Join(names, "\t"))
			continue
		}
		for _, v := range names {
			out.line(v)
		}
	}
	return out.Close()
}

// getStatCmd returns the data stat command.
func getStatCmd() *cobra.Command {
	var (
		out   string
		style string
	)

	statCmd := &cobra.Command{
		Use:   "stat [INFILE]",
		Short: "Print statistics of trees",
		Long: `Print number of nodes, leaves, dichotomies, named leaves and
named internal nodes.

The 'col' style prints a key-value pair per line, the 'line' style
prints a header and one line per tree.

Examples:
  nwr data stat tree.nwk
  nwr data stat --style line trees.nwk`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if style != "col" && style != "line" {
				return ArgumentError("unknown style <em>%s</em>", style)
			}
			return runStat(inputArg(args), out, style)
		},
	}

	statCmd.Flags().StringVar(&style, "style", "col",
		"output style: col or line")
	outFlag(statCmd, &out)

	return statCmd
}

var statKeys = []string{
	"nodes", "leaves", "dichotomies", "leaf labels", "internal labels",
}

func statValues(s treeops.Stats) []string {
	vals := []int{
		s.Nodes, s.Leaves, s.Dichotomies, s.LeafLabels, s.InternalLabels,
	}
	res := make([]string, len(vals))
	for i, v := range vals {
		res[i] = strconv.Itoa(v)
	}
	return res
}

func runStat(inPath, outPath, style string) error {
	trees, err := readTrees(inPath)
	if err != nil {
		return err
	}

	out, err := createOutput(outPath)
	if err != nil {
		return err
	}
	if style == "line" {
		out.line(strings.Join(statKeys, "\t"))
	}
	for _, t := range trees {
		vals := statValues(treeops.Stat(t))
		if style == "line" {
			out.line(strings.Join(vals, "\t"))
			continue
		}
		for i, k := range statKeys {
			out.line(k + "\t" + vals[i])
		}
	}
	return out.Close()
}

// getDistanceCmd returns the data distance command.
func getDistanceCmd() *cobra.Command {
	var (
		out  string
		sel  selectorFlags
		mode string
	)

	distanceCmd := &cobra.Command{
		Use:   "distance [INFILE]",
		Short: "Print distances between nodes",
		Long: `Print distances between selected nodes.

Modes:
  root      distance from every node to the root
  parent    length of the edge to the parent
  pairwise  distance between every two nodes
  lca       distances from both nodes of a pair to their LCA
  phylip    PHYLIP matrix of distances between selected leaves

Examples:
  nwr data distance -m root tree.nwk -I
  nwr data distance -m pairwise -n A -n B tree.nwk
  nwr data distance -m phylip tree.nwk`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDistance(cmd.Context(), inputArg(args), out, &sel, mode)
		},
	}

	sel.register(distanceCmd, false)
	distanceCmd.Flags().StringVarP(&mode, "method", "m", "root",
		"root, parent, pairwise, lca or phylip")
	outFlag(distanceCmd, &out)

	return distanceCmd
}

func runDistance(
	ctx context.Context,
	inPath, outPath string,
	sel *selectorFlags,
	mode string,
) error {
	dm, ok := treeops.NewDistanceMode(mode)
	if !ok && mode != "phylip" {
		return ArgumentError("unknown distance method <em>%s</em>", mode)
	}

	spec, err := sel.spec()
	if err != nil {
		return err
	}
	trees, err := readTrees(inPath)
	if err != nil {
		return err
	}

	out, err := createOutput(outPath)
	if err != nil {
		return err
	}
	for _, t := range trees {
		ids, err := selectNodes(ctx, t, spec)
		if err != nil {
			out.Close()
			return err
		}

		if mode == "phylip" {
			m, err := leafMatrix(t, ids)
			if err != nil {
				out.Close()
				return err
			}
			if err = m.WritePhylip(out, matrix.Full); err != nil {
				out.Close()
				return err
			}
			continue
		}

		for _, d := range treeops.Distances(t, ids, dm) {
			out.line(distanceRow(t, d, dm))
		}
	}
	return out.Close()
}

func distanceRow(t *newick.Tree, d treeops.Distance, mode treeops.DistanceMode) string {
	a := t.Node(d.A).Name
	d1 := newick.FormatLength(d.D1)
	switch mode {
	case treeops.Pairwise:
		return fmt.Sprintf("%s\t%s\t%s", a, t.Node(d.B).Name, d1)
	case treeops.ToLCA:
		return fmt.Sprintf("%s\t%s\t%s\t%s",
			a, t.Node(d.B).Name, d1, newick.FormatLength(d.D2))
	default:
		return a + "\t" + d1
	}
}

// leafMatrix creates a distance matrix of named selected leaves.
func leafMatrix(t *newick.Tree, ids []newick.NodeID) (*matrix.Matrix, error) {
	var leaves []newick.NodeID
	var names []string
	for _, id := range ids {
		if t.IsLeaf(id) && t.Node(id).Name != "" {
			leaves = append(leaves, id)
			names = append(names, t.Node(id).Name)
		}
	}

	m, err := matrix.New(names)
	if err != nil {
		return nil, err
	}
	for i := range leaves {
		for j := i + 1; j < len(leaves); j++ {
			d, _, _ := t.Distance(leaves[i], leaves[j])
			m.Set(i, j, d)
		}
	}
	return m, nil
}
