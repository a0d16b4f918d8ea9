package services

import (
	"fmt"
	"html"
	"regexp"
	"strconv"

	"sticker_factory_go/models"

	"github.com/microcosm-cc/bluemonday"
)

// PrintReadyAttribute is set on <body> by the print document once it has
// finished rendering; the dispatcher waits for it before printing.
const PrintReadyAttribute = "data-print-ready"

var printStyleProperties = []string{
	"width", "height", "max-width", "padding", "border", "color",
	"font-size", "margin-bottom", "display", "grid-template-columns", "gap",
	"flex-direction", "align-items", "justify-content", "text-decoration",
	"text-align",
}

var cssValuePattern = regexp.MustCompile(`^[#%(),.\w\s-]+$`)

var printSurfacePolicy = newPrintSurfacePolicy()

// newPrintSurfacePolicy allows the layout markup the sticker sheet produces,
// including its inline sizing, and nothing executable.
func newPrintSurfacePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "span", "section", "p", "s", "strong")
	p.AllowAttrs("id", "class").Globally()
	p.AllowDataAttributes()
	p.AllowStyles(printStyleProperties...).Matching(cssValuePattern).Globally()
	return p
}

// SanitizePrintMarkup strips anything but sticker layout markup from a cloned
// render surface
func SanitizePrintMarkup(markup string) string {
	return printSurfacePolicy.Sanitize(markup)
}

func formatMM(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "mm"
}

// WrapStickerSheetForPrint builds the standalone print document around a
// cloned sticker surface. Page size, margins and break rules come from
// settings; pages marked data-page-break="after" force a break after them.
func WrapStickerSheetForPrint(title string, markup string, settings models.PrintSettings) string {
	margins := fmt.Sprintf("%s %s %s %s",
		formatMM(settings.MarginTopMM),
		formatMM(settings.MarginRightMM),
		formatMM(settings.MarginBottomMM),
		formatMM(settings.MarginLeftMM),
	)

	return `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>` + html.EscapeString(title) + `</title>
    <style>
        @page {
            size: ` + settings.CSSPageSize() + `;
            margin: ` + margins + `;
        }
        body {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
            font-family: Arial, Helvetica, sans-serif;
        }
        .print-grid {
            display: grid;
            gap: 0.5rem;
            padding: 0.5rem;
            page-break-inside: avoid;
        }
        [data-page-break="after"] {
            break-after: page;
            page-break-after: always;
        }
        .sticker {
            display: flex;
            flex-direction: column;
            align-items: center;
            justify-content: center;
            box-sizing: border-box;
            border: 1px solid #222;
            border-radius: 4px;
            text-align: center;
            background-color: white;
            overflow: hidden;
            page-break-inside: avoid;
            break-inside: avoid;
        }
        .sticker-name {
            font-weight: bold;
        }
        .sticker-mrp {
            text-decoration: line-through;
        }
        .sticker-price {
            font-weight: bold;
        }
    </style>
</head>
<body>
` + markup + `
<script>
    (document.fonts ? document.fonts.ready : Promise.resolve()).then(function () {
        document.body.setAttribute('` + PrintReadyAttribute + `', 'true');
    });
</script>
</body>
</html>`
}
