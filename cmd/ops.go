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

	"github.com/gnames/nwr/internal/iofs"
	"github.com/gnames/nwr/pkg/newick"
	"github.com/gnames/nwr/pkg/treeops"
	"github.com/spf13/cobra"
)

// getOpsCmd returns the ops group of commands.
func getOpsCmd() *cobra.Command {
	opsCmd := &cobra.Command{
		Use:   "ops",
		Short: "Edit Newick trees",
		Long: `Commands that change Newick trees: sort children, rename and
replace labels, prune, reroot, extract subtrees and strip labels.
Every tree of the input is processed and written on its own line.`,
	}

	opsCmd.AddCommand(
		getOrderCmd(),
		getRenameCmd(),
		getReplaceCmd(),
		getPruneCmd(),
		getRerootCmd(),
		getSubtreeCmd(),
		getTopoCmd(),
	)
	return opsCmd
}

// editTrees reads trees, changes each of them and writes them out.
func editTrees(
	inPath, outPath string,
	edit func(*newick.Tree) error,
) error {
	trees, err := readTrees(inPath)
	if err != nil {
		return err
	}
	for _, t := range trees {
		if err = edit(t); err != nil {
			return err
		}
	}
	return writeTrees(outPath, trees, "")
}

// getOrderCmd returns the ops order command.
func getOrderCmd() *cobra.Command {
	var (
		out      string
		opts     treeops.OrderOpts
		listFile string
	)

	orderCmd := &cobra.Command{
		Use:   "order [INFILE]",
		Short: "Sort children of nodes",
		Long: `Sort children of every node. Sorting by a list of names runs
first, then alphanumeric sorting, then sorting by number of
descendants. All sorts are stable, so the last one is the primary.

Examples:
  nwr ops order --an tree.nwk
  nwr ops order --nd --anr tree.nwk
  nwr ops order --list names.txt tree.nwk`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if listFile != "" {
				list, err := iofs.ReadNames(listFile)
				if err != nil {
					return err
				}
				opts.List = list
			}
			return editTrees(inputArg(args), out, func(t *newick.Tree) error {
				treeops.Order(t, opts)
				return nil
			})
		},
	}

	f := orderCmd.Flags()
	f.StringVarP(&listFile, "list", "l", "",
		"file with names in the wanted order")
	f.BoolVar(&opts.AN, "an", false, "sort by names")
	f.BoolVar(&opts.ANR, "anr", false, "sort by names, reversed")
	f.BoolVar(&opts.ND, "nd", false, "sort by number of descendants")
	f.BoolVar(&opts.NDR, "ndr", false,
		"sort by number of descendants, reversed")
	orderCmd.MarkFlagsMutuallyExclusive("an", "anr")
	orderCmd.MarkFlagsMutuallyExclusive("nd", "ndr")
	outFlag(orderCmd, &out)

	return orderCmd
}

// getRenameCmd returns the ops rename command.
func getRenameCmd() *cobra.Command {
	var (
		out       string
		selectors []string
		names     []string
	)

	renameCmd := &cobra.Command{
		Use:   "rename [INFILE]",
		Short: "Rename nodes",
		Long: `Rename nodes. Every -n selects a node by its name or, given as
'A,B', the lowest common ancestor of two nodes. Every -r is the new
name of the corresponding selected node.

Examples:
  nwr ops rename tree.nwk -n C -r F
  nwr ops rename tree.nwk -n A,B -r Clade1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editTrees(inputArg(args), out, func(t *newick.Tree) error {
				treeops.Rename(t, selectors, names)
				return nil
			})
		},
	}

	renameCmd.Flags().StringArrayVarP(&selectors, "node", "n", nil,
		"node name or 'A,B' for the LCA, can be repeated")
	renameCmd.Flags().StringArrayVarP(&names, "rename", "r", nil,
		"new name, can be repeated")
	outFlag(renameCmd, &out)

	return renameCmd
}

// getReplaceCmd returns the ops replace command.
func getReplaceCmd() *cobra.Command {
	var (
		out          string
		mode         string
		skipInternal bool
		skipLeaf     bool
	)

	replaceCmd := &cobra.Command{
		Use:   "replace INFILE REPLACE.tsv...",
		Short: "Replace node names using TSV files",
		Long: `Replace names of nodes using tab-separated files. The first
column is the original name, the second one is the replacement.
Further columns are added to node comments.

Modes:
  label    replace the name
  taxid    set comment T=<value>
  species  set comment S=<value>
  asis     add the value to the comment as is

Examples:
  nwr ops replace tree.nwk replace.tsv
  nwr ops replace tree.nwk taxids.tsv --mode taxid -I`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplace(
				args[0], args[1:], out, mode, skipInternal, skipLeaf,
			)
		},
	}

	replaceCmd.Flags().StringVar(&mode, "mode", "label",
		"label, taxid, species or asis")
	positionFlags(replaceCmd, &skipInternal, &skipLeaf)
	outFlag(replaceCmd, &out)

	return replaceCmd
}

func runReplace(
	inPath string,
	mapPaths []string,
	outPath, mode string,
	skipInternal, skipLeaf bool,
) error {
	var reps []treeops.Replacement
	for _, path := range mapPaths {
		rows, err := iofs.ReadReplaceMap(path)
		if err != nil {
			return err
		}
		for _, v := range rows {
			reps = append(reps, treeops.Replacement{From: v.From, To: v.To})
		}
	}

	rm := treeops.NewReplaceMode(mode)
	return editTrees(inPath, outPath, func(t *newick.Tree) error {
		var ids []newick.NodeID
		for _, id := range t.PreOrder(t.Root()) {
			leaf := t.IsLeaf(id)
			if (leaf && skipLeaf) || (!leaf && skipInternal) {
				continue
			}
			ids = append(ids, id)
		}
		treeops.Replace(t, ids, reps, rm)
		return nil
	})
}

// getPruneCmd returns the ops prune command.
func getPruneCmd() *cobra.Command {
	var (
		out string
		sel selectorFlags
	)

	pruneCmd := &cobra.Command{
		Use:   "prune [INFILE]",
		Short: "Remove nodes and their subtrees",
		Long: `Remove selected nodes with their subtrees. Internal nodes left
without children are removed as well, nodes left with one child are
spliced out.

Examples:
  nwr ops prune tree.nwk -n A -n B
  nwr ops prune tree.nwk -r '^Homo'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelectEdit(cmd.Context(), inputArg(args), out, &sel,
				func(t *newick.Tree, ids []newick.NodeID) {
					treeops.Prune(t, ids)
				})
		},
	}

	sel.register(pruneCmd, false)
	outFlag(pruneCmd, &out)

	return pruneCmd
}

// getRerootCmd returns the ops reroot command.
func getRerootCmd() *cobra.Command {
	var (
		out string
		sel selectorFlags
	)

	rerootCmd := &cobra.Command{
		Use:   "reroot [INFILE]",
		Short: "Place the root above selected nodes",
		Long: `Place the root in the middle of the edge above the lowest
common ancestor of selected nodes. Rerooting on the same nodes again
does not change the tree.

Examples:
  nwr ops reroot tree.nwk -n C
  nwr ops reroot tree.nwk -n A -n B`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelectEdit(cmd.Context(), inputArg(args), out, &sel,
				func(t *newick.Tree, ids []newick.NodeID) {
					treeops.Reroot(t, ids)
				})
		},
	}

	sel.register(rerootCmd, false)
	outFlag(rerootCmd, &out)

	return rerootCmd
}

// runSelectEdit selects nodes in every tree and edits the tree with
// them. Without names, regexes or taxa nothing is selected and trees
// are written unchanged.
func runSelectEdit(
	ctx context.Context,
	inPath, outPath string,
	sel *selectorFlags,
	edit func(*newick.Tree, []newick.NodeID),
) error {
	spec, err := sel.spec()
	if err != nil {
		return err
	}
	if !spec.HasContent() {
		return editTrees(inPath, outPath, func(*newick.Tree) error { return nil })
	}
	return editTrees(inPath, outPath, func(t *newick.Tree) error {
		ids, err := selectNodes(ctx, t, spec)
		if err != nil {
			return err
		}
		edit(t, ids)
		return nil
	})
}
