// vinscan-report renders VINScan analytics snapshots as PDF reports.
//
// Usage:
//
//	vinscan-report generate --data snapshot.yaml [--charts-url URL] [--kind KIND] [--extended] [--out DIR]
//	vinscan-report inspect [-p RANGE] [-f text|json|markdown] <file.pdf>
//	vinscan-report serve [--listen ADDR]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/porticus-lab/go-report-pdf/internal/cli"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().
		Timestamp().
		Logger()
	ctx := logger.WithContext(context.Background())

	app := cli.NewCLI(cli.Options{Output: os.Stdout, Logger: logger})
	if err := app.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
