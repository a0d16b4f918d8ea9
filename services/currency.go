package services

import (
	"strconv"
	"strings"

	"sticker_factory_go/models"
)

// CurrencySymbol prefixes every formatted price
const CurrencySymbol = "₹"

// FormatCurrency renders a price cell for display. Text cells are stripped
// down to digits, '.' and '-' and parsed; text that still does not parse is
// returned unchanged.
func FormatCurrency(value models.CellValue) string {
	if value.IsNumber() {
		return formatAmount(value.Number)
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, value.Text)

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return value.Text
	}
	return formatAmount(n)
}

func formatAmount(n float64) string {
	amount := strconv.FormatFloat(n, 'f', 2, 64)
	if amount == "-0.00" {
		// -0 and small negatives that round to zero
		amount = "0.00"
	}
	return CurrencySymbol + " " + amount
}
