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

	"github.com/gnames/nwr/pkg/newick"
	"github.com/gnames/nwr/pkg/treeops"
	"github.com/spf13/cobra"
)

// getSubtreeCmd returns the ops subtree command.
func getSubtreeCmd() *cobra.Command {
	var (
		out      string
		sel      selectorFlags
		condense string
	)

	subtreeCmd := &cobra.Command{
		Use:   "subtree [INFILE]",
		Short: "Extract or condense the clade of selected nodes",
		Long: `Output the subtree rooted at the lowest common ancestor of
selected nodes. With -M nothing is written for a tree where selected
nodes are not exactly the leaves of that subtree.

With --condense the whole tree is written, the subtree is replaced by
a leaf with the given name and a comment member=<number of leaves>.

Examples:
  nwr ops subtree tree.nwk -n A -n B
  nwr ops subtree tree.nwk -r '^Homo' -M
  nwr ops subtree tree.nwk -n A -n B --condense AB`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubtree(cmd.Context(), inputArg(args), out, &sel, condense)
		},
	}

	sel.register(subtreeCmd, true)
	subtreeCmd.Flags().StringVar(&condense, "condense", "",
		"replace the subtree with a leaf of this name")
	outFlag(subtreeCmd, &out)

	return subtreeCmd
}

func runSubtree(
	ctx context.Context,
	inPath, outPath string,
	sel *selectorFlags,
	condense string,
) error {
	spec, err := sel.spec()
	if err != nil {
		return err
	}
	if !spec.HasContent() {
		return ArgumentError("subtree needs names, regexes or taxa to select nodes")
	}
	monophyly := spec.Monophyly
	spec.Monophyly = false

	trees, err := readTrees(inPath)
	if err != nil {
		return err
	}

	out, err := createOutput(outPath)
	if err != nil {
		return err
	}
	for i, t := range trees {
		ids, err := selectNodes(ctx, t, spec)
		if err != nil {
			out.Close()
			return err
		}

		lca, ok := treeops.Subtree(t, ids, monophyly)
		if !ok {
			slog.Info("No subtree found", "tree", i+1, "selected", len(ids))
			continue
		}

		if condense != "" {
			treeops.Condense(t, lca, condense)
			out.line(t.Write(""))
			continue
		}
		out.line(t.WriteSubtree(lca, ""))
	}
	return out.Close()
}

// getTopoCmd returns the ops topo command.
func getTopoCmd() *cobra.Command {
	var (
		out          string
		skipInternal bool
		skipLeaf     bool
		keepLengths  bool
		keepComments bool
	)

	topoCmd := &cobra.Command{
		Use:   "topo [INFILE]",
		Short: "Keep only the topology of trees",
		Long: `Remove branch lengths and comments from trees. Use --bl and
--comment to keep them, -I and -L to remove internal and leaf names.

Examples:
  nwr ops topo tree.nwk
  nwr ops topo tree.nwk -I --bl`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editTrees(inputArg(args), out, func(t *newick.Tree) error {
				var strip []newick.NodeID
				for _, id := range t.PreOrder(t.Root()) {
					leaf := t.IsLeaf(id)
					if (leaf && skipLeaf) || (!leaf && skipInternal) {
						strip = append(strip, id)
					}
				}
				treeops.Topo(t, strip, keepLengths, keepComments)
				return nil
			})
		},
	}

	topoCmd.Flags().BoolVarP(&skipInternal, "internal", "I", false,
		"remove names of internal nodes")
	topoCmd.Flags().BoolVarP(&skipLeaf, "leaf", "L", false,
		"remove names of leaves")
	topoCmd.Flags().BoolVar(&keepLengths, "bl", false, "keep branch lengths")
	topoCmd.Flags().BoolVar(&keepComments, "comment", false, "keep comments")
	outFlag(topoCmd, &out)

	return topoCmd
}
