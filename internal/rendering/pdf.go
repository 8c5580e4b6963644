package rendering

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultPDFTimeout bounds a single browser print.
const DefaultPDFTimeout = 30 * time.Second

// PDFPrinter prints HTML to PDF with a headless Chrome instance.
// Requires Chrome/Chromium to be installed on the system.
type PDFPrinter struct {
	execPath string
	timeout  time.Duration
}

// NewPDFPrinter creates a printer. An empty execPath lets chromedp locate the browser.
func NewPDFPrinter(execPath string, timeout time.Duration) *PDFPrinter {
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	return &PDFPrinter{execPath: execPath, timeout: timeout}
}

// Print loads html into a blank page and prints it on US letter paper with
// the given margin in inches.
func (p *PDFPrinter) Print(ctx context.Context, html []byte, margin float64) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.execPath != "" {
		opts = append(opts, chromedp.ExecPath(p.execPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
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
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "browser PDF printing failed", Cause: err}
	}

	return pdf, nil
}
