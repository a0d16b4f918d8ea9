package models

import (
	"fmt"
	"math"
	"strings"
)

// Paper size constants
const (
	PaperSizeA4     = "A4"
	PaperSizeLetter = "letter"
	PaperSizeLegal  = "legal"
)

// Page orientation constants
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Layout bounds. Font sizes of 0 mean "derive from the sticker width".
const (
	MinStickerWidthMM  = 30
	MaxStickerWidthMM  = 150
	MinStickerHeightMM = 20
	MaxStickerHeightMM = 100
	MinColumns         = 1
	MaxColumns         = 10
	MinRows            = 1
	MaxRows            = 20
	MinNameFontPx      = 8
	MaxNameFontPx      = 24
	MinMRPFontPx       = 6
	MaxMRPFontPx       = 18
	MinPriceFontPx     = 8
	MaxPriceFontPx     = 28
	MaxSpacingPx       = 40
)

// PageGeometry is the columns x rows shape of one printable sheet
type PageGeometry struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

// Capacity is the number of stickers on one page
func (g PageGeometry) Capacity() int {
	return g.Columns * g.Rows
}

// Page is one printable sheet of stickers. The last page of a set may end in
// Padding copies of the first record of the whole set; those are filler, not
// distinct items, and must not be treated as products to label.
type Page struct {
	Index      int             `json:"index"`
	Stickers   []StickerRecord `json:"stickers"`
	Padding    int             `json:"padding"`
	BreakAfter bool            `json:"break_after"`
}

// IsPadding reports whether the sticker at position i is filler
func (p Page) IsPadding(i int) bool {
	return i >= len(p.Stickers)-p.Padding
}

// StickerLayout holds every user adjustable rendering setting. It is
// replaced wholesale on each change, never edited in place.
type StickerLayout struct {
	WidthMM        int `json:"width_mm"`
	HeightMM       int `json:"height_mm"`
	Columns        int `json:"columns"`
	Rows           int `json:"rows"`
	NameFontPx     int `json:"name_font_px"`
	MRPFontPx      int `json:"mrp_font_px"`
	PriceFontPx    int `json:"price_font_px"`
	NameSpacingPx  int `json:"name_spacing_px"`
	PriceSpacingPx int `json:"price_spacing_px"`
}

// DefaultStickerLayout returns the layout used before any adjustment
func DefaultStickerLayout() StickerLayout {
	return StickerLayout{
		WidthMM:        45,
		HeightMM:       35,
		Columns:        4,
		Rows:           6,
		NameFontPx:     11,
		MRPFontPx:      8,
		PriceFontPx:    14,
		NameSpacingPx:  4,
		PriceSpacingPx: 2,
	}
}

// Geometry returns the grid shape of the layout
func (l StickerLayout) Geometry() PageGeometry {
	return PageGeometry{Columns: l.Columns, Rows: l.Rows}
}

// LayoutError lists every out of range layout setting
type LayoutError struct {
	Problems []string
}

func (e *LayoutError) Error() string {
	return "invalid sticker layout: " + strings.Join(e.Problems, "; ")
}

// Validate checks every setting against its range
func (l StickerLayout) Validate() error {
	var problems []string
	check := func(name string, value, min, max int) {
		if value < min || value > max {
			problems = append(problems, fmt.Sprintf("%s must be between %d and %d (got %d)", name, min, max, value))
		}
	}
	checkFont := func(name string, value, min, max int) {
		if value == 0 {
			return
		}
		check(name, value, min, max)
	}

	check("width", l.WidthMM, MinStickerWidthMM, MaxStickerWidthMM)
	check("height", l.HeightMM, MinStickerHeightMM, MaxStickerHeightMM)
	check("columns", l.Columns, MinColumns, MaxColumns)
	check("rows", l.Rows, MinRows, MaxRows)
	checkFont("name font size", l.NameFontPx, MinNameFontPx, MaxNameFontPx)
	checkFont("MRP font size", l.MRPFontPx, MinMRPFontPx, MaxMRPFontPx)
	checkFont("price font size", l.PriceFontPx, MinPriceFontPx, MaxPriceFontPx)
	check("name spacing", l.NameSpacingPx, 0, MaxSpacingPx)
	check("price spacing", l.PriceSpacingPx, 0, MaxSpacingPx)

	if len(problems) > 0 {
		return &LayoutError{Problems: problems}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// NameFontSize returns the effective name font size in px
func (l StickerLayout) NameFontSize() float64 {
	if l.NameFontPx > 0 {
		return float64(l.NameFontPx)
	}
	return clamp(float64(l.WidthMM)/10, 10, 16)
}

// MRPFontSize returns the effective MRP font size in px
func (l StickerLayout) MRPFontSize() float64 {
	if l.MRPFontPx > 0 {
		return float64(l.MRPFontPx)
	}
	return clamp(float64(l.WidthMM)/12, 8, 14)
}

// PriceFontSize returns the effective sell price font size in px
func (l StickerLayout) PriceFontSize() float64 {
	if l.PriceFontPx > 0 {
		return float64(l.PriceFontPx)
	}
	return clamp(float64(l.WidthMM)/8, 12, 20)
}

// PaddingMM is the inner padding of one sticker
func (l StickerLayout) PaddingMM() float64 {
	return math.Max(4, float64(l.HeightMM)/10)
}

// PrintSettings describes the physical sheet the stickers are printed on
type PrintSettings struct {
	PaperSize      string  `json:"paper_size"`
	Orientation    string  `json:"orientation"`
	MarginTopMM    float64 `json:"margin_top_mm"`
	MarginRightMM  float64 `json:"margin_right_mm"`
	MarginBottomMM float64 `json:"margin_bottom_mm"`
	MarginLeftMM   float64 `json:"margin_left_mm"`
}

// DefaultPrintSettings returns A4 portrait with 10mm margins
func DefaultPrintSettings() PrintSettings {
	return PrintSettings{
		PaperSize:      PaperSizeA4,
		Orientation:    OrientationPortrait,
		MarginTopMM:    10,
		MarginRightMM:  10,
		MarginBottomMM: 10,
		MarginLeftMM:   10,
	}
}

// PaperDimensionsMM returns width and height of the sheet after applying
// orientation
func (p PrintSettings) PaperDimensionsMM() (float64, float64) {
	var w, h float64
	switch p.PaperSize {
	case PaperSizeLetter:
		w, h = 215.9, 279.4
	case PaperSizeLegal:
		w, h = 215.9, 355.6
	default:
		w, h = 210, 297
	}
	if p.Orientation == OrientationLandscape {
		w, h = h, w
	}
	return w, h
}

// CSSPageSize returns the value for the CSS @page size descriptor
func (p PrintSettings) CSSPageSize() string {
	orientation := p.Orientation
	if orientation != OrientationLandscape {
		orientation = OrientationPortrait
	}
	size := p.PaperSize
	switch size {
	case PaperSizeLetter, PaperSizeLegal:
	default:
		size = PaperSizeA4
	}
	return size + " " + orientation
}
