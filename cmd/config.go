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
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// getConfigCmd returns the config command.
func getConfigCmd() *cobra.Command {
	var out string

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print effective configuration",
		Long: `Print configuration after merging defaults, config.yaml,
NWR_ environment variables and command-line flags.

Examples:
  nwr config
  NWR_LOG_LEVEL=debug nwr config
  nwr config -d /data/ncbi`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(out)
		},
	}

	outFlag(configCmd, &out)
	return configCmd
}

func runConfig(outPath string) error {
	bs, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	out, err := createOutput(outPath)
	if err != nil {
		return err
	}
	out.Write(bs)
	out.line("# taxonomy store: " + cfg.TaxonomyDir())
	return out.Close()
}
