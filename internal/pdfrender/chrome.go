package pdfrender

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const renderTimeout = 60 * time.Second

// ChromeRenderer prints HTML to PDF through headless Chrome.
type ChromeRenderer struct {
	// ExecPath overrides the Chrome binary location; empty means the
	// chromedp default lookup.
	ExecPath string
}

// NewChromeRenderer constructs a ChromeRenderer.
func NewChromeRenderer(execPath string) *ChromeRenderer {
	return &ChromeRenderer{ExecPath: execPath}
}

// RenderHTML writes the document to a temp file, loads it in headless
// Chrome, and prints it to US-Letter PDF bytes.
func (r *ChromeRenderer) RenderHTML(ctx context.Context, html []byte) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	chromeCtx, cancelChrome := chromedp.NewContext(allocCtx)
	defer cancelChrome()

	runCtx, cancelRun := context.WithTimeout(chromeCtx, renderTimeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "jobtailor-print-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "document.html")
	if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
		return nil, err
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// US Letter: 8.5in x 11in.
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(false).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}

var _ Renderer = (*ChromeRenderer)(nil)
