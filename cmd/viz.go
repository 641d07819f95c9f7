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

	"github.com/gnames/nwr/pkg/newick"
	"github.com/gnames/nwr/pkg/treeops"
	"github.com/spf13/cobra"
)

// getVizCmd returns the viz group of commands.
func getVizCmd() *cobra.Command {
	vizCmd := &cobra.Command{
		Use:   "viz",
		Short: "Format and annotate Newick trees",
	}

	vizCmd.AddCommand(
		getIndentCmd(),
		getCommentCmd(),
	)
	return vizCmd
}

// getIndentCmd returns the viz indent command.
func getIndentCmd() *cobra.Command {
	var (
		out  string
		text string
	)

	indentCmd := &cobra.Command{
		Use:   "indent [INFILE]",
		Short: "Write trees with one node per line",
		Long: `Write every node on its own line, indented by its depth.
Removing the whitespace gives the compact form back.

Examples:
  nwr viz indent tree.nwk
  nwr viz indent tree.nwk --text '    '`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" {
				return ArgumentError("indentation text cannot be empty")
			}
			trees, err := readTrees(inputArg(args))
			if err != nil {
				return err
			}
			return writeTrees(out, trees, text)
		},
	}

	indentCmd.Flags().StringVar(&text, "text", "  ",
		"text used for one level of indentation")
	outFlag(indentCmd, &out)

	return indentCmd
}

// getCommentCmd returns the viz comment command.
func getCommentCmd() *cobra.Command {
	var (
		out       string
		selectors []string
		ann       treeops.Annotation
	)

	commentCmd := &cobra.Command{
		Use:   "comment [INFILE]",
		Short: "Add comments to nodes",
		Long: `Add comments to nodes selected by -n. A selector is a node name
or 'A,B' for the lowest common ancestor of two nodes. Options --color,
--label, --dot and --bar set keys of the comment, --string adds
free text.

Examples:
  nwr viz comment tree.nwk -n A --color red
  nwr viz comment tree.nwk -n A,B --label Clade --dot`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editTrees(inputArg(args), out, func(t *newick.Tree) error {
				ids := treeops.ResolveNodes(t, selectors)
				if len(ids) < len(selectors) {
					slog.Warn("Some selectors were not found",
						"selectors", len(selectors), "found", len(ids))
				}
				treeops.Annotate(t, ids, ann)
				return nil
			})
		},
	}

	f := commentCmd.Flags()
	f.StringArrayVarP(&selectors, "node", "n", nil,
		"node name or 'A,B' for the LCA, can be repeated")
	f.StringVar(&ann.Color, "color", "", "color of the node")
	f.StringVar(&ann.Label, "label", "", "label of the node")
	f.StringVar(&ann.Dot, "dot", "", "dot at the node, usually its color")
	f.Lookup("dot").NoOptDefVal = "black"
	f.StringVar(&ann.Bar, "bar", "", "bar at the node, usually its color")
	f.Lookup("bar").NoOptDefVal = "black"
	f.StringVarP(&ann.Free, "string", "s", "", "free text added to the comment")
	outFlag(commentCmd, &out)

	return commentCmd
}
