// Package main provides the CLI entry point for srcmatrix-go.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/srcmatrix-go/internal/config"
	"github.com/ukaji3/srcmatrix-go/internal/logging"
)

// Version is set at build time.
var Version = "0.1.0"

// app carries the state shared by all subcommands after the root pre-run.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "srcmatrix",
		Short: "Extract entity columns from source-matrix workbooks",
		Long: `srcmatrix-go reads a source-matrix workbook, extracts the entity columns of
every qualifying sheet with their primary/foreign key classification and
upstream system, and writes a color-coded workbook with a legend.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./srcmatrix.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "Log format: console or json")

	rootCmd.AddCommand(newExtractCmd(a))
	rootCmd.AddCommand(newLegendCmd(a))
	rootCmd.AddCommand(newCatalogCmd(a))
	rootCmd.AddCommand(newObjectsCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.log = logger
	if cfg.File != "" {
		a.log.Debug("using config file", zap.String("path", cfg.File))
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "srcmatrix %s\n", Version)
		},
	}
}
