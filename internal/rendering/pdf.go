package rendering

import (
	"context"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jordan/talentbridge/internal/db"
)

// DefaultPDFTimeout bounds a single print run, browser startup included.
const DefaultPDFTimeout = 30 * time.Second

// a4 paper dimensions in inches.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// ReportPDF renders a stored report to PDF bytes using a headless browser.
// Requires Chrome/Chromium to be installed on the system.
func ReportPDF(ctx context.Context, report *db.Report) ([]byte, error) {
	html, err := ReportHTML(report)
	if err != nil {
		return nil, err
	}
	return printHTML(ctx, html)
}

func printHTML(ctx context.Context, html string) ([]byte, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, DefaultPDFTimeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("data:text/html,"+url.PathEscape(html)),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "failed to print report", Cause: err}
	}
	return pdf, nil
}
