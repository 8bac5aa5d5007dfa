package reportpdf

import (
	"fmt"
	"time"
)

// generatorConfig holds internal configuration for a Generator.
type generatorConfig struct {
	productName string
	attribution string
	filePrefix  string
	kind        Kind
	extended    bool
	now         func() time.Time
}

func defaultConfig() generatorConfig {
	return generatorConfig{
		productName: "VINScan Pro",
		attribution: "Generated by VINScan Pro Analytics",
		filePrefix:  "VINScan",
		kind:        KindComprehensive,
		now:         time.Now,
	}
}

// Option configures a [Generator].
type Option func(*generatorConfig)

// WithProductName sets the product title printed at the top of the report
// and recorded as the document author. Defaults to "VINScan Pro".
func WithProductName(name string) Option {
	return func(c *generatorConfig) {
		c.productName = name
	}
}

// WithAttribution sets the left-hand footer text on every page.
func WithAttribution(text string) Option {
	return func(c *generatorConfig) {
		c.attribution = text
	}
}

// WithFilePrefix sets the leading part of the suggested file name.
// Defaults to "VINScan", giving names like "VINScan-Report-2024-03-01.pdf".
func WithFilePrefix(prefix string) Option {
	return func(c *generatorConfig) {
		c.filePrefix = prefix
	}
}

// WithKind selects which sections the report contains.
func WithKind(k Kind) Option {
	return func(c *generatorConfig) {
		c.kind = k
	}
}

// WithExtendedTables appends the status distribution and location analytics
// tables after the top performers table.
func WithExtendedTables() Option {
	return func(c *generatorConfig) {
		c.extended = true
	}
}

// WithClock overrides the time source used for the document creation date
// and the suggested file name.
func WithClock(now func() time.Time) Option {
	return func(c *generatorConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// Kind selects the sections included in a report.
type Kind int

const (
	// KindComprehensive includes every section. It is the default.
	KindComprehensive Kind = iota
	// KindSummary includes the header and key metrics only.
	KindSummary
	// KindChartsOnly includes the header and the charts.
	KindChartsOnly
	// KindDataOnly includes the header and the data tables.
	KindDataOnly
)

var kindNames = map[Kind]string{
	KindComprehensive: "comprehensive",
	KindSummary:       "summary",
	KindChartsOnly:    "charts-only",
	KindDataOnly:      "data-only",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a name such as "charts-only" to a Kind. The empty string
// selects KindComprehensive.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindComprehensive, nil
	}
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("reportpdf: unknown report kind %q", s)
}

func (k Kind) hasMetrics() bool { return k == KindComprehensive || k == KindSummary }
func (k Kind) hasCharts() bool  { return k == KindComprehensive || k == KindChartsOnly }
func (k Kind) hasTables() bool  { return k == KindComprehensive || k == KindDataOnly }
