package services

import (
	"math"
	"testing"

	"sticker_factory_go/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name  string
		value models.CellValue
		want  string
	}{
		{"Number", models.NumberCell(49.5), "₹ 49.50"},
		{"Integer", models.NumberCell(120), "₹ 120.00"},
		{"Zero", models.NumberCell(0), "₹ 0.00"},
		{"Negative", models.NumberCell(-5), "₹ -5.00"},
		{"NegativeZero", models.NumberCell(math.Copysign(0, -1)), "₹ 0.00"},
		{"NegativeZeroText", models.TextCell("-0"), "₹ 0.00"},
		{"NegativeZeroDecimalText", models.TextCell("-0.00"), "₹ 0.00"},
		{"RoundsToNegativeZero", models.NumberCell(-0.004), "₹ 0.00"},
		{"SmallNegative", models.NumberCell(-0.005), "₹ -0.01"},
		{"RoundsHalfCent", models.NumberCell(99.999), "₹ 100.00"},
		{"TextWithSymbol", models.TextCell("₹49.5"), "₹ 49.50"},
		{"TextWithGrouping", models.TextCell("1,299"), "₹ 1299.00"},
		{"NumericText", models.TextCell("78"), "₹ 78.00"},
		{"Unparseable", models.TextCell("N/A"), "N/A"},
		{"Empty", models.TextCell(""), ""},
		{"OnlyDots", models.TextCell("..."), "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.value))
		})
	}
}
