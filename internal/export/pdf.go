package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ErrBackendUnavailable is returned when no headless browser can be found
var ErrBackendUnavailable = errors.New("PDF backend unavailable")

// Printer turns a complete HTML page into PDF bytes
type Printer interface {
	Available() error
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// browserNames are the executables searched for when CHROME_PATH is not set
var browserNames = []string{
	"headless-shell",
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
}

// A4 in inches
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// ChromePrinter prints HTML with a headless Chrome or Chromium
type ChromePrinter struct {
	execPath string
	timeout  time.Duration
}

// NewChromePrinter locates a browser. The printer is returned even when none is found; Available reports it.
func NewChromePrinter(timeout time.Duration) *ChromePrinter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChromePrinter{execPath: findBrowser(), timeout: timeout}
}

func findBrowser() string {
	if p := os.Getenv("CHROME_PATH"); p != "" {
		return p
	}
	for _, name := range browserNames {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}

// Available reports whether a browser executable was found
func (p *ChromePrinter) Available() error {
	if p.execPath == "" {
		return fmt.Errorf("%w: no Chrome or Chromium found (set CHROME_PATH)", ErrBackendUnavailable)
	}
	return nil
}

// PrintPDF loads html into a blank page and prints it on A4
func (p *ChromePrinter) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	if err := p.Available(); err != nil {
		return nil, err
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.ExecPath(p.execPath),
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, p.timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	return pdf, nil
}
