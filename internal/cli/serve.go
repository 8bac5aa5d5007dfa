package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/porticus-lab/go-report-pdf/internal/server"
)

type ServeCmd struct {
	cli    *CLI
	listen string
}

func NewServeCmd(cli *CLI) *cobra.Command {
	sc := &ServeCmd{cli: cli}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP report service",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.listen, "listen", "", "Listen address (default from config)")

	return cmd
}

func (sc *ServeCmd) run(cmd *cobra.Command, _ []string) error {
	cfg, err := sc.cli.config()
	if err != nil {
		return err
	}
	addr := sc.listen
	if addr == "" {
		addr = cfg.Listen
	}

	api := server.NewWebAPI(server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Logger:        *zerolog.Ctx(cmd.Context()),
			ReportOptions: cfg.ReportOptions(),
		},
	})
	return api.Start(cmd.Context())
}
