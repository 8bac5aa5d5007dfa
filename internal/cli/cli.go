// Package cli implements the vinscan-report command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/porticus-lab/go-report-pdf/internal/config"
)

// CLI represents the command-line interface
type CLI struct {
	logger     zerolog.Logger
	configPath string
	cfg        *config.Config
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	Logger zerolog.Logger
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	cli := &CLI{logger: opts.Logger}
	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

// Execute runs the command selected by os.Args.
func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "vinscan-report",
		Short:             "Generate and inspect VINScan analytics PDF reports",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.loadConfig,
	}
	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "",
		"Path to a YAML, JSON or TOML config file")

	cmd.AddCommand(NewGenerateCmd(cli))
	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewServeCmd(cli))
	return cmd
}

// loadConfig reads the config file and installs a logger at the configured
// level in the command context.
func (cli *CLI) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cli.configPath)
	if err != nil {
		return err
	}
	lvl, err := cfg.Level()
	if err != nil {
		return err
	}
	cli.cfg = cfg
	cli.logger = cli.logger.Level(lvl)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(cli.logger.WithContext(ctx))

	if cli.configPath != "" {
		cli.logger.Debug().Str("path", cli.configPath).Msg("configuration loaded")
	}
	return nil
}

func (cli *CLI) config() (*config.Config, error) {
	if cli.cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cli.cfg, nil
}
