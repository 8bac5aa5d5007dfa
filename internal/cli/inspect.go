package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/porticus-lab/go-report-pdf/internal/pdftext"
)

type InspectCmd struct {
	pages  string
	format string
}

type pageResult struct {
	Page  int      `json:"page"`
	Lines []string `json:"lines"`
}

type inspectResult struct {
	File    string       `json:"file"`
	Version string       `json:"version"`
	Pages   int          `json:"pageCount"`
	Text    []pageResult `json:"pages"`
}

func NewInspectCmd() *cobra.Command {
	ic := &InspectCmd{}
	cmd := &cobra.Command{
		Use:   "inspect <file.pdf>",
		Short: "Print the text of a generated report",
		Args:  cobra.ExactArgs(1),
		RunE:  ic.run,
	}

	cmd.Flags().StringVarP(&ic.pages, "pages", "p", "", `Page range, e.g. "1", "1-5", "1,3,5" (default: all)`)
	cmd.Flags().StringVarP(&ic.format, "format", "f", "text", "Output format: text, json or markdown")

	return cmd
}

func (ic *InspectCmd) run(cmd *cobra.Command, args []string) error {
	switch ic.format {
	case "text", "json", "markdown":
	default:
		return fmt.Errorf("unknown format %q", ic.format)
	}

	doc, err := pdftext.Open(args[0])
	if err != nil {
		return err
	}
	indices, err := parsePageRange(ic.pages, doc.PageCount())
	if err != nil {
		return fmt.Errorf("invalid page range %q: %w", ic.pages, err)
	}

	result := inspectResult{File: args[0], Version: doc.Version(), Pages: doc.PageCount()}
	for _, idx := range indices {
		lines, err := doc.PageLines(idx)
		if err != nil {
			return err
		}
		result.Text = append(result.Text, pageResult{Page: idx + 1, Lines: lines})
	}

	out := cmd.OutOrStdout()
	switch ic.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "markdown":
		for _, p := range result.Text {
			fmt.Fprintf(out, "## Page %d\n\n", p.Page)
			for _, l := range p.Lines {
				fmt.Fprintf(out, "%s\n", l)
			}
			fmt.Fprintln(out)
		}
	default:
		for i, p := range result.Text {
			if i > 0 {
				fmt.Fprintln(out, "\f") // form feed between pages
			}
			for _, l := range p.Lines {
				fmt.Fprintln(out, l)
			}
		}
	}
	return nil
}
