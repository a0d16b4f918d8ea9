package services

import (
	"bytes"
	"context"
	"testing"

	"sticker_factory_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateSampleSheet(t *testing.T) {
	buf, err := GenerateSampleSheet()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SampleSheetName}, f.GetSheetList())

	rows, err := f.GetRows(SampleSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, SampleSheetHeaders, rows[0])
}

func TestSampleSheetRoundTrip(t *testing.T) {
	buf, err := GenerateSampleSheet()
	require.NoError(t, err)

	result, err := ExtractStickerSheet(context.Background(), "sample.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, SampleSheetName, result.SheetName)
	assert.Equal(t, "Name", result.Columns[models.FieldName])
	assert.Equal(t, "MRP", result.Columns[models.FieldMRP])
	assert.Equal(t, "Sell Price", result.Columns[models.FieldSellPrice])

	require.Len(t, result.Records, 3)
	assert.Equal(t, "Basmati Rice 1kg", result.Records[0].Name)
	assert.Equal(t, models.NumberCell(120), result.Records[0].MRP)
	assert.Equal(t, "₹ 99.50", FormatCurrency(result.Records[0].SellPrice))
}
