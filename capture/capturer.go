// Package capture takes chart snapshots from a rendered dashboard page with
// headless Chrome, for embedding into reports built by reportpdf.
//
// A [Capturer] owns one browser process. Each dashboard page is opened as a
// [Session], which implements [reportpdf.ChartSource]:
//
//	c, err := capture.NewCapturer(capture.WithNoSandbox())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	s, err := c.Open(ctx, "http://localhost:3000/reports")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	res, err := reportpdf.Generate(ctx, snapshot, s)
//
// Charts are looked up by element id, see [Selector].
package capture

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"

	reportpdf "github.com/porticus-lab/go-report-pdf"
)

// Capturer manages a headless browser used to screenshot chart elements.
// It is safe for concurrent use; each Session has its own tab.
//
// Call [Capturer.Close] when the Capturer is no longer needed to release
// browser resources.
type Capturer struct {
	cfg           capturerConfig
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewCapturer creates a Capturer with the given options.
//
// It starts a headless browser in the background. The caller must call
// [Capturer.Close] when finished.
func NewCapturer(opts ...Option) (*Capturer, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.chromePath == "" && cfg.autoDownload {
		path, err := resolveBrowser()
		if err != nil {
			return nil, err
		}
		cfg.chromePath = path
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", cfg.headless),
		chromedp.WindowSize(int(cfg.viewportWidth), int(cfg.viewportHeight)),
	)
	if cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface at creation time.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("capture: starting browser: %w", err)
	}

	return &Capturer{
		cfg:           cfg,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close releases all resources held by the Capturer, including the
// browser process. Close is idempotent.
func (c *Capturer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.browserCancel()
	c.allocCancel()
	return nil
}

// Open loads the dashboard at rawURL in a new tab and waits for its body to
// be ready. The returned Session must be closed by the caller.
func (c *Capturer) Open(ctx context.Context, rawURL string) (*Session, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("capture: invalid URL %q: %w", rawURL, err)
	}

	tabCtx, tabCancel := chromedp.NewContext(c.browserCtx)
	s := &Session{owner: c, cfg: c.cfg, tabCtx: tabCtx, tabCancel: tabCancel}

	if err := s.run(ctx,
		emulation.SetDeviceMetricsOverride(c.cfg.viewportWidth, c.cfg.viewportHeight, 1, false),
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		tabCancel()
		return nil, fmt.Errorf("capture: loading %s: %w", rawURL, err)
	}
	return s, nil
}

func (c *Capturer) checkClosed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}

// Session is one loaded dashboard page. Captures on a Session run one at a
// time; a Session must not be shared between concurrent report generations.
type Session struct {
	owner     *Capturer
	cfg       capturerConfig
	tabCtx    context.Context
	tabCancel context.CancelFunc
}

// CaptureChart implements [reportpdf.ChartSource]. A chart whose element is
// missing from the page is reported as absent. An element without a laid
// out box, for example one hidden with display:none, fails with
// [reportpdf.ErrImageCapture]. Capturing after the Capturer was closed
// fails with [ErrClosed], and an ended ctx is returned as its own error.
func (s *Session) CaptureChart(ctx context.Context, name reportpdf.ChartName) (*reportpdf.ChartImage, error) {
	if err := s.owner.checkClosed(); err != nil {
		return nil, err
	}
	sel := Selector(name)
	if sel == "" {
		return nil, nil
	}

	var nodes []*cdp.Node
	if err := s.run(ctx, chromedp.Nodes(sel, &nodes, chromedp.ByQuery, chromedp.AtLeast(0))); err != nil {
		return nil, s.failure(ctx, name, "locating element", err)
	}
	if len(nodes) == 0 {
		return nil, nil
	}

	var box *dom.BoxModel
	if err := s.run(ctx, chromedp.Dimensions(sel, &box, chromedp.ByQuery)); err != nil {
		return nil, s.failure(ctx, name, "measuring element", err)
	}
	if box == nil || box.Width == 0 || box.Height == 0 {
		return nil, fmt.Errorf("%w: %s has no visible area", reportpdf.ErrImageCapture, name)
	}

	var buf []byte
	if err := s.run(ctx, chromedp.ScreenshotScale(sel, s.cfg.scale, &buf, chromedp.ByQuery)); err != nil {
		return nil, s.failure(ctx, name, "taking screenshot", err)
	}
	return reportpdf.DecodePNG(buf)
}

// failure classifies a failed browser step. When ctx has ended the context
// error is returned so the caller sees an interrupted run rather than a
// broken chart.
func (s *Session) failure(ctx context.Context, name reportpdf.ChartName, step string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("capture: %s %s: %w", step, name, ctxErr)
	}
	if closedErr := s.owner.checkClosed(); closedErr != nil {
		return closedErr
	}
	return fmt.Errorf("%w: %s %s: %v", reportpdf.ErrImageCapture, step, name, err)
}

// Close closes the tab.
func (s *Session) Close() error {
	s.tabCancel()
	return nil
}

// run executes actions in the session tab, bounded by the configured
// timeout and by ctx. Cancelling the derived context leaves the tab open.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if s.cfg.timeout > 0 {
		runCtx, cancel = context.WithTimeout(s.tabCtx, s.cfg.timeout)
	} else {
		runCtx, cancel = context.WithCancel(s.tabCtx)
	}
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

var chartIDs = map[reportpdf.ChartName]string{
	reportpdf.SalesChart:     "sales-chart-pdf",
	reportpdf.MakeChart:      "make-chart-pdf",
	reportpdf.PriceChart:     "price-chart-pdf",
	reportpdf.InventoryChart: "inventory-chart-pdf",
}

// Selector returns the CSS selector of the element holding a chart, for
// example "#sales-chart-pdf".
func Selector(name reportpdf.ChartName) string {
	id, ok := chartIDs[name]
	if !ok {
		return ""
	}
	return "#" + id
}
