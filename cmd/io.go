package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gnames/nwr/internal/iofs"
	"github.com/gnames/nwr/internal/iotaxdb"
	"github.com/gnames/nwr/pkg/config"
	"github.com/gnames/nwr/pkg/matrix"
	"github.com/gnames/nwr/pkg/newick"
	"github.com/gnames/nwr/pkg/selector"
	"github.com/gnames/nwr/pkg/taxon"
)

// openStore opens the taxonomy store of the configured directory.
func openStore() (taxon.Store, error) {
	path := config.StorePath(cfg.TaxonomyDir())
	slog.Info("Opening taxonomy store", "path", path)
	return iotaxdb.Open(path)
}

// inputArg returns the first positional argument or stdin.
func inputArg(args []string) string {
	if len(args) == 0 {
		return iofs.Stdin
	}
	return args[0]
}

// readTrees parses all trees of an input.
func readTrees(path string) ([]*newick.Tree, error) {
	text, err := iofs.ReadText(path)
	if err != nil {
		return nil, err
	}
	trees, err := newick.ParseAll(text)
	if err != nil {
		return nil, err
	}
	slog.Info("Trees parsed", "input", path, "trees", len(trees))
	return trees, nil
}

// readPhylip loads a PHYLIP matrix from an input.
func readPhylip(path string) (*matrix.Matrix, error) {
	r, err := iofs.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return matrix.ReadPhylip(r)
}

// selectNodes runs the selector. The store is opened only when lineage
// filters are used.
func selectNodes(
	ctx context.Context,
	t *newick.Tree,
	spec selector.Spec,
) ([]newick.NodeID, error) {
	var store taxon.Store
	if len(spec.TaxonTerms) > 0 {
		var err error
		if store, err = openStore(); err != nil {
			return nil, err
		}
		defer store.Close()
	}
	return selector.Select(ctx, t, spec, store), nil
}

// output wraps a buffered writer of the output file.
type output struct {
	path string
	wc   io.WriteCloser
	*bufio.Writer
}

func createOutput(path string) (*output, error) {
	wc, err := iofs.CreateOutput(path)
	if err != nil {
		return nil, err
	}
	return &output{path: path, wc: wc, Writer: bufio.NewWriter(wc)}, nil
}

// line writes a string followed by a newline.
func (o *output) line(s string) {
	fmt.Fprintln(o.Writer, s)
}

// Close flushes buffered data and closes the file.
func (o *output) Close() error {
	if err := o.Flush(); err != nil {
		o.wc.Close()
		return iofs.WriteFileError(o.path, err)
	}
	if err := o.wc.Close(); err != nil {
		return iofs.WriteFileError(o.path, err)
	}
	return nil
}

// writeTrees writes trees one per line, or indented when indent is set.
func writeTrees(path string, trees []*newick.Tree, indent string) error {
	out, err := createOutput(path)
	if err != nil {
		return err
	}
	for _, t := range trees {
		out.line(t.Write(indent))
	}
	return out.Close()
}
