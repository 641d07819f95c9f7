package cmd

import (
	"fmt"
	"os"

	"github.com/gnames/nwr/internal/iofs"
	nwr "github.com/gnames/nwr/pkg"
	"github.com/gnames/nwr/pkg/selector"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", nwr.Version, nwr.Build)
		os.Exit(0)
	}
}

// outFlag registers -o/--outfile.
func outFlag(cmd *cobra.Command, out *string) {
	cmd.Flags().StringVarP(
		out, "outfile", "o", iofs.Stdout,
		"output filename, 'stdout' for screen",
	)
}

// positionFlags registers -I and -L.
func positionFlags(cmd *cobra.Command, skipInternal, skipLeaf *bool) {
	cmd.Flags().BoolVarP(skipInternal, "internal", "I", false,
		"skip internal nodes")
	cmd.Flags().BoolVarP(skipLeaf, "leaf", "L", false,
		"skip leaf nodes")
}

// selectorFlags keeps values of node selection options shared by tree
// commands.
type selectorFlags struct {
	skipInternal bool
	skipLeaf     bool
	names        []string
	namesFile    string
	regexes      []string
	descendants  bool
	terms        []string
	mode         string
	monophyly    bool
}

// register adds selection options to a command. Options with commas
// are kept intact, so every value needs its own flag.
func (s *selectorFlags) register(cmd *cobra.Command, withMonophyly bool) {
	f := cmd.Flags()
	positionFlags(cmd, &s.skipInternal, &s.skipLeaf)
	f.StringArrayVarP(&s.names, "node", "n", nil,
		"node name, can be repeated")
	f.StringVarP(&s.namesFile, "file", "f", "",
		"file with node names in the first column")
	f.StringArrayVarP(&s.regexes, "regex", "r", nil,
		"case insensitive regular expression for node names, can be repeated")
	f.BoolVarP(&s.descendants, "descendants", "D", false,
		"include all descendants of selected internal nodes")
	f.StringArrayVarP(&s.terms, "taxon", "t", nil,
		"keep nodes with the taxon in their lineage, can be repeated")
	f.StringVar(&s.mode, "mode", "label",
		"where nodes keep taxonomy terms: label, taxid (T=), species (S=)")
	if withMonophyly {
		f.BoolVarP(&s.monophyly, "monophyly", "M", false,
			"select nothing unless selected nodes form a clade")
	}
}

// spec converts flag values to selector.Spec, merging names from the
// names file.
func (s *selectorFlags) spec() (selector.Spec, error) {
	names := append([]string(nil), s.names...)
	if s.namesFile != "" {
		fileNames, err := iofs.ReadNames(s.namesFile)
		if err != nil {
			return selector.Spec{}, err
		}
		names = append(names, fileNames...)
	}

	res := selector.Spec{
		SkipInternal: s.skipInternal,
		SkipLeaf:     s.skipLeaf,
		Names:        names,
		Regexes:      s.regexes,
		Descendants:  s.descendants,
		TaxonTerms:   s.terms,
		TaxonMode:    selector.NewTaxonMode(s.mode),
		Monophyly:    s.monophyly,
	}
	return res, nil
}
