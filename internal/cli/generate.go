package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	reportpdf "github.com/porticus-lab/go-report-pdf"
	"github.com/porticus-lab/go-report-pdf/capture"
	"github.com/porticus-lab/go-report-pdf/internal/config"
)

type GenerateCmd struct {
	cli       *CLI
	dataPath  string
	chartsURL string
	kind      string
	extended  bool
	outDir    string
}

func NewGenerateCmd(cli *CLI) *cobra.Command {
	gc := &GenerateCmd{cli: cli}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a report from a snapshot file",
		Long: `Render a report from a snapshot file.

Charts are captured from a rendered dashboard when --charts-url is given.
The page must contain the elements #sales-chart-pdf, #make-chart-pdf,
#price-chart-pdf and #inventory-chart-pdf; missing ones are left out.`,
		Args: cobra.NoArgs,
		RunE: gc.run,
	}

	cmd.Flags().StringVar(&gc.dataPath, "data", "", "Path to the snapshot file (YAML, JSON or TOML)")
	cmd.Flags().StringVar(&gc.chartsURL, "charts-url", "", "Dashboard URL to capture charts from")
	cmd.Flags().StringVar(&gc.kind, "kind", "comprehensive",
		"Report kind: comprehensive, summary, charts-only or data-only")
	cmd.Flags().BoolVar(&gc.extended, "extended", false, "Add status and location tables")
	cmd.Flags().StringVar(&gc.outDir, "out", "", "Output directory (default from config)")

	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	cfg, err := gc.cli.config()
	if err != nil {
		return err
	}
	kind, err := reportpdf.ParseKind(gc.kind)
	if err != nil {
		return err
	}
	snapshot, err := config.LoadSnapshot(gc.dataPath)
	if err != nil {
		return err
	}

	var charts reportpdf.ChartSource
	if gc.chartsURL != "" {
		c, err := capture.NewCapturer(cfg.CaptureOptions()...)
		if err != nil {
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer c.Close()

		session, err := c.Open(ctx, gc.chartsURL)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", gc.chartsURL, err)
		}
		defer session.Close()
		charts = session
	}

	opts := append(cfg.ReportOptions(), reportpdf.WithKind(kind))
	if gc.extended {
		opts = append(opts, reportpdf.WithExtendedTables())
	}
	res, err := reportpdf.NewGenerator(opts...).Generate(ctx, snapshot, charts)
	if err != nil {
		return err
	}

	dir := gc.outDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, res.Filename())
	if err := res.WriteToFile(path, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Info().Str("path", path).Int("pages", res.PageCount()).Msg("report written")
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d pages, %d bytes)\n", path, res.PageCount(), res.Len())
	return nil
}
