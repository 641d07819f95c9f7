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
	"github.com/gnames/gn"
	"github.com/gnames/nwr/internal/iotaxdb"
	"github.com/spf13/cobra"
)

// getTxdbCmd returns the txdb command.
func getTxdbCmd() *cobra.Command {
	txdbCmd := &cobra.Command{
		Use:   "txdb",
		Short: "Build taxonomy store from NCBI dumps",
		Long: `Build taxonomy.sqlite from NCBI taxdump files.

The command reads division.dmp, names.dmp and nodes.dmp from the
taxonomy directory (~/.nwr or the one given by --dir) and writes
taxonomy.sqlite next to them. The store is built in a temporary file
and replaces the old one only on success, so a failed or interrupted
run leaves the previous store intact.

Examples:
  nwr txdb
  nwr txdb -d /data/ncbi/taxdump`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTxdb(cmd)
		},
	}

	return txdbCmd
}

func runTxdb(cmd *cobra.Command) error {
	dir := cfg.TaxonomyDir()
	b := iotaxdb.NewBuilder(cfg)
	if err := b.Build(cmd.Context(), dir); err != nil {
		return err
	}

	gn.Info("\nNext steps:")
	gn.Info("  - Run 'nwr info Homo_sapiens' to check the store")
	return nil
}
