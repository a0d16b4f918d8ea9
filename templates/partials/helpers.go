package partials

import (
	"fmt"
	"strconv"

	"sticker_factory_go/models"
	"sticker_factory_go/services"

	"github.com/a-h/templ"
)

// StickerSheetView is everything needed to draw the printable sheet
type StickerSheetView struct {
	Layout models.StickerLayout
	Pages  []models.Page
}

// NoticeView is a user visible message shown after an action
type NoticeView struct {
	Kind    string // "success" or "error"
	Title   string
	Message string
}

// WorkspaceView is the session dependent part of the home page
type WorkspaceView struct {
	FileName    string
	RecordCount int
	First       *models.StickerRecord
	Sheet       StickerSheetView
	Notice      *NoticeView
	CSRFToken   string
}

// NewWorkspaceView paginates records with the layout's geometry. The layout
// must be valid.
func NewWorkspaceView(fileName string, records []models.StickerRecord, layout models.StickerLayout, notice *NoticeView) (WorkspaceView, error) {
	pages, err := services.Paginate(records, layout.Geometry())
	if err != nil {
		return WorkspaceView{}, err
	}

	view := WorkspaceView{
		FileName:    fileName,
		RecordCount: len(records),
		Sheet:       StickerSheetView{Layout: layout, Pages: pages},
		Notice:      notice,
	}
	if len(records) > 0 {
		first := records[0]
		view.First = &first
	}
	return view, nil
}

// LayoutField describes one numeric input of the settings form
type LayoutField struct {
	Name  string
	Label string
	Unit  string
	Min   int
	Max   int
	Value int
}

// LayoutFields lists the settings form inputs for a layout. Font inputs accept
// 0, which selects the automatic size.
func LayoutFields(l models.StickerLayout) []LayoutField {
	return []LayoutField{
		{"width_mm", "Width", "mm", models.MinStickerWidthMM, models.MaxStickerWidthMM, l.WidthMM},
		{"height_mm", "Height", "mm", models.MinStickerHeightMM, models.MaxStickerHeightMM, l.HeightMM},
		{"columns", "Columns", "", models.MinColumns, models.MaxColumns, l.Columns},
		{"rows", "Rows", "", models.MinRows, models.MaxRows, l.Rows},
		{"name_font_px", "Name font size", "px", 0, models.MaxNameFontPx, l.NameFontPx},
		{"mrp_font_px", "MRP font size", "px", 0, models.MaxMRPFontPx, l.MRPFontPx},
		{"price_font_px", "Price font size", "px", 0, models.MaxPriceFontPx, l.PriceFontPx},
		{"name_spacing_px", "Space after name", "px", 0, models.MaxSpacingPx, l.NameSpacingPx},
		{"price_spacing_px", "Space between prices", "px", 0, models.MaxSpacingPx, l.PriceSpacingPx},
	}
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

func mm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "mm"
}

func gridStyle(l models.StickerLayout) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("display: grid; grid-template-columns: repeat(%d, 1fr); gap: 0.5rem;", l.Columns))
}

func stickerStyle(l models.StickerLayout) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("width: %s; height: %s; padding: %s; max-width: 100%%; border: 1px solid #000000e6;",
		mm(float64(l.WidthMM)), mm(float64(l.HeightMM)), mm(l.PaddingMM())))
}

func nameStyle(l models.StickerLayout) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("font-size: %s; color: #000000e6; margin-bottom: %s;", px(l.NameFontSize()), px(float64(l.NameSpacingPx))))
}

func pricesStyle(l models.StickerLayout) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("display: flex; flex-direction: column; align-items: center; justify-content: center; gap: %s;", px(float64(l.PriceSpacingPx))))
}

func mrpStyle(l models.StickerLayout) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("font-size: %s; color: #0006; text-decoration: line-through;", px(l.MRPFontSize())))
}

func priceStyle(l models.StickerLayout) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("font-size: %s; color: #000000e6;", px(l.PriceFontSize())))
}

func mrpText(r models.StickerRecord) string {
	return "MRP " + services.FormatCurrency(r.MRP)
}

func sellPriceText(r models.StickerRecord) string {
	return services.FormatCurrency(r.SellPrice)
}

func pageNumber(p models.Page) string {
	return strconv.Itoa(p.Index + 1)
}

func stickerCountText(n int) string {
	if n == 1 {
		return "1 sticker ready for printing"
	}
	return fmt.Sprintf("%d stickers ready for printing", n)
}

func paddingNote(pages []models.Page) string {
	if len(pages) == 0 {
		return ""
	}
	last := pages[len(pages)-1]
	if last.Padding == 0 {
		return ""
	}
	return fmt.Sprintf("The last page is filled with %d extra copies of the first sticker.", last.Padding)
}
