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
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/nwr/internal/iofs"
	"github.com/gnames/nwr/internal/iologger"
	nwr "github.com/gnames/nwr/pkg"
	"github.com/gnames/nwr/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd creates the base command with all subcommands attached.
// A fresh instance is returned on every call, so tests do not share
// flag state.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", nwr.Version, nwr.Build),
		Use:     "nwr",
		Short:   "Works with NCBI taxonomy, Newick trees and distance matrices",
		Long: `nwr keeps a local copy of NCBI taxonomy and uses it to query
taxa, build lineage trees and annotate tabular data. It also reads,
edits and writes Newick trees, converts and compares PHYLIP distance
matrices and builds trees from them with UPGMA or Neighbor-Joining.

Before using taxonomy commands, download division.dmp, names.dmp and
nodes.dmp from NCBI taxdump into ~/.nwr (or a directory given by
--dir) and run 'nwr txdb'.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "nwr version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for nwr")
	rootCmd.PersistentFlags().StringP(
		"dir", "d", "",
		"directory with the taxonomy store (default ~/.nwr)",
	)

	rootCmd.AddCommand(
		getConfigCmd(),
		getTxdbCmd(),
		getInfoCmd(),
		getLineageCmd(),
		getMemberCmd(),
		getAppendCmd(),
		getRestrictCmd(),
		getCommonCmd(),
		getDataCmd(),
		getOpsCmd(),
		getVizCmd(),
		getMatCmd(),
		getBuildCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// --dir has the highest precedence
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.Update([]config.Option{config.OptTaxDir(dir)})
	}

	// Reconfigure logging with user's settings, keeping records
	// written so far.
	if err = reconfigureLogging(cfg); err != nil {
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.CommandPath(),
	)

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute runs the root command. Interrupts cancel the context given
// to subcommands. Failures are reported to STDERR with the name of the
// failed subcommand and the process exits with code 1.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)

	c, err := getRootCmd().ExecuteContextC(ctx)
	stop()
	if err != nil {
		name := "nwr"
		if c != nil {
			name = c.CommandPath()
		}
		slog.Error("Command failed", "command", name, "error", err)
		fmt.Fprintf(os.Stderr, "%s: ", name)
		gn.PrintErrorMessage(err)
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("NWR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Taxonomy store
	v.BindEnv("tax_dir", "NWR_TAX_DIR")
	v.BindEnv("batch_size", "NWR_BATCH_SIZE")
	v.BindEnv("with_progress_bar", "NWR_WITH_PROGRESS_BAR")

	// Log configuration
	v.BindEnv("log.level", "NWR_LOG_LEVEL")
	v.BindEnv("log.format", "NWR_LOG_FORMAT")
	v.BindEnv("log.destination", "NWR_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "NWR_JOBS_NUMBER")

	v.AutomaticEnv()
}
