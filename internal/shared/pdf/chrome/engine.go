package chrome

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"donordesk-backend/internal/shared/pdf"
)

// A4 paper in inches; margins are 20 CSS pixels at 96 DPI.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
	marginIn      = 20.0 / 96.0
)

const renderTimeout = 60 * time.Second

// Engine prints HTML to PDF through a headless Chrome instance. Each call
// launches and tears down its own browser context; instances are never shared
// across requests.
type Engine struct {
	execPath string
}

// New creates a chrome-backed PDF engine. execPath may be empty, in which
// case the browser binary is resolved from the environment.
func New(execPath string) *Engine {
	return &Engine{execPath: execPath}
}

// RenderHTML loads the document into a fresh browser page and prints it to
// PDF with A4 paper, printed backgrounds, and uniform margins.
func (e *Engine) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.NoSandbox)
	if e.execPath != "" {
		opts = append(opts, chromedp.ExecPath(e.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithMarginTop(marginIn).
				WithMarginBottom(marginIn).
				WithMarginLeft(marginIn).
				WithMarginRight(marginIn).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	return buf, nil
}

var _ pdf.Engine = (*Engine)(nil)
