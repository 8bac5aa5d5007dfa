package reportpdf

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Generator builds PDF reports from a [Snapshot] and a [ChartSource].
//
// A Generator only holds configuration. Every call to Generate works on its
// own Document, so one Generator may serve concurrent calls.
type Generator struct {
	cfg generatorConfig
}

// NewGenerator creates a Generator with the given options.
func NewGenerator(opts ...Option) *Generator {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Generator{cfg: cfg}
}

// section is one step of document assembly.
type section struct {
	name    string
	compose func(ctx context.Context, doc *Document, cur *Layout) error
}

// Generate assembles the report and serializes it. Charts are requested from
// charts one at a time, in document order, as their section is reached; a
// nil charts source produces a report without charts.
//
// The only outcomes are a complete report or an error. A failed call should
// be retried in full. When ctx ends first the error wraps [ErrInterrupted]
// and the context error.
func (g *Generator) Generate(ctx context.Context, s *Snapshot, charts ChartSource) (*Result, error) {
	doc, created, err := g.build(ctx, s, charts)
	if err != nil {
		return nil, err
	}
	data, err := doc.Serialize()
	if err != nil {
		return nil, err
	}
	return &Result{
		data:     data,
		pages:    doc.PageCount(),
		filename: SuggestedFilename(g.cfg.filePrefix, created),
	}, nil
}

// Build assembles the report and stamps its footers but does not serialize
// it. The returned Document accepts no further drawing.
func (g *Generator) Build(ctx context.Context, s *Snapshot, charts ChartSource) (*Document, error) {
	doc, _, err := g.build(ctx, s, charts)
	return doc, err
}

func (g *Generator) build(ctx context.Context, s *Snapshot, charts ChartSource) (*Document, time.Time, error) {
	if s == nil {
		return nil, time.Time{}, fmt.Errorf("%w: nil snapshot", ErrPrecondition)
	}
	if charts == nil {
		charts = ChartImageSet{}
	}

	logger := zerolog.Ctx(ctx)
	created := g.cfg.now()
	doc := newDocument(docMeta{Title: s.Title, Author: g.cfg.productName, Created: created})
	cur := doc.begin()

	for _, sec := range g.sections(s, charts) {
		if err := ctx.Err(); err != nil {
			return nil, created, fmt.Errorf("reportpdf: before %s section: %w", sec.name, interrupted(err))
		}
		logger.Debug().
			Str("section", sec.name).
			Int("page", cur.PageCount()).
			Float64("y", cur.Y()).
			Msg("composing section")
		if err := sec.compose(ctx, doc, cur); err != nil {
			return nil, created, fmt.Errorf("reportpdf: %s section: %w", sec.name, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, created, fmt.Errorf("reportpdf: before footers: %w", interrupted(err))
	}
	doc.stampFooters(g.cfg.attribution)
	if err := doc.Err(); err != nil {
		return nil, created, fmt.Errorf("reportpdf: stamping footers: %w", err)
	}

	logger.Info().
		Str("kind", g.cfg.kind.String()).
		Int("pages", doc.PageCount()).
		Msg("report assembled")
	return doc, created, nil
}

type captionedTable struct {
	caption string
	table   Table
}

// sections lists the composers for the configured report kind in the fixed
// document order.
func (g *Generator) sections(s *Snapshot, charts ChartSource) []section {
	kind := g.cfg.kind
	secs := []section{{
		name: "header",
		compose: func(_ context.Context, doc *Document, cur *Layout) error {
			return composeHeader(doc, cur, g.cfg.productName, s)
		},
	}}

	if kind.hasMetrics() {
		secs = append(secs, section{
			name: "metrics",
			compose: func(_ context.Context, doc *Document, cur *Layout) error {
				return composeMetrics(doc, cur, s.Metrics)
			},
		})
	}

	if kind.hasCharts() {
		for _, name := range ChartNames() {
			name := name
			secs = append(secs, section{
				name: name.Key(),
				compose: func(ctx context.Context, doc *Document, cur *Layout) error {
					return composeChart(ctx, doc, cur, charts, name)
				},
			})
		}
	}

	if kind.hasTables() {
		tables := []captionedTable{
			{"Monthly Sales Data", salesTable(s.Sales)},
			{"Inventory Distribution by Make", makeTable(s.Makes)},
			{"Top Performing Models", performersTable(s.TopPerformers)},
		}
		if g.cfg.extended {
			tables = append(tables,
				captionedTable{"Vehicle Status Distribution", statusTable(s.Statuses)},
				captionedTable{"Location Analytics", locationTable(s.Locations)},
			)
		}
		for _, tbl := range tables {
			tbl := tbl
			secs = append(secs, section{
				name: tbl.caption,
				compose: func(_ context.Context, doc *Document, cur *Layout) error {
					return composeTable(doc, cur, tbl.caption, tbl.table)
				},
			})
		}
	}
	return secs
}

// Generate builds a report with a temporary [Generator].
func Generate(ctx context.Context, s *Snapshot, charts ChartSource, opts ...Option) (*Result, error) {
	return NewGenerator(opts...).Generate(ctx, s, charts)
}

// SuggestedFilename returns "<prefix>-Report-<YYYY-MM-DD>.pdf" using the UTC
// calendar date of t.
func SuggestedFilename(prefix string, t time.Time) string {
	return fmt.Sprintf("%s-Report-%s.pdf", prefix, t.UTC().Format("2006-01-02"))
}
