package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"sticker_factory_go/models"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PrintSurfaceID is the element id of the rendered sticker sheet
const PrintSurfaceID = "print-area"

const mmPerInch = 25.4

var surfaceIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// PrintJob is one request to print a rendered surface
type PrintJob struct {
	Title       string
	SurfaceHTML string // full document containing the surface element
	SurfaceID   string
	Settings    models.PrintSettings
}

// PrintDispatcher turns a rendered sticker surface into a printed document
type PrintDispatcher interface {
	Dispatch(ctx context.Context, job PrintJob) ([]byte, error)
}

// Printer is the global print dispatcher
var Printer PrintDispatcher

// ChromePrintDispatcher prints through headless Chrome and returns a PDF
type ChromePrintDispatcher struct {
	ChromePath string
	Timeout    time.Duration
}

// NewChromePrintDispatcher creates a dispatcher. An empty chromePath lets
// chromedp find a local Chrome.
func NewChromePrintDispatcher(chromePath string, timeout time.Duration) *ChromePrintDispatcher {
	return &ChromePrintDispatcher{ChromePath: chromePath, Timeout: timeout}
}

// setDocumentContent replaces the current frame's document with content
func setDocumentContent(content string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		frameTree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return page.SetDocumentContent(frameTree.Frame.ID, content).Do(ctx)
	})
}

// Dispatch loads the surface document, clones the surface element into a
// second tab styled for print, waits for that tab to report it has rendered
// and prints it to PDF.
func (d *ChromePrintDispatcher) Dispatch(ctx context.Context, job PrintJob) ([]byte, error) {
	if !surfaceIDPattern.MatchString(job.SurfaceID) {
		return nil, ErrPrintSurfaceMissing
	}

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	if d.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(d.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	surfaceCtx, surfaceCancel := chromedp.NewContext(allocCtx)
	defer surfaceCancel()

	selector := "#" + job.SurfaceID
	var nodes []*cdp.Node
	err := chromedp.Run(surfaceCtx,
		chromedp.Navigate("about:blank"),
		setDocumentContent(job.SurfaceHTML),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load render surface: %w", err)
	}
	if len(nodes) == 0 {
		log.Printf("[WARNING] Print surface %q not found in rendered document", job.SurfaceID)
		return nil, ErrPrintSurfaceMissing
	}

	var markup string
	if err := chromedp.Run(surfaceCtx, chromedp.OuterHTML(selector, &markup, chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("failed to clone render surface: %w", err)
	}

	// a context derived from an existing tab opens a new tab in the same browser
	printCtx, printCancel := chromedp.NewContext(surfaceCtx)
	defer printCancel()

	if err := chromedp.Run(printCtx, chromedp.Navigate("about:blank")); err != nil {
		log.Printf("[WARNING] Failed to open print target: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrPrintWindowUnavailable, err)
	}

	document := WrapStickerSheetForPrint(job.Title, SanitizePrintMarkup(markup), job.Settings)
	paperWidth, paperHeight := job.Settings.PaperDimensionsMM()

	var pdfBuf []byte
	err = chromedp.Run(printCtx,
		setDocumentContent(document),
		chromedp.WaitReady("body["+PrintReadyAttribute+"]", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(paperWidth / mmPerInch).
				WithPaperHeight(paperHeight / mmPerInch).
				WithMarginTop(job.Settings.MarginTopMM / mmPerInch).
				WithMarginBottom(job.Settings.MarginBottomMM / mmPerInch).
				WithMarginLeft(job.Settings.MarginLeftMM / mmPerInch).
				WithMarginRight(job.Settings.MarginRightMM / mmPerInch).
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
