package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SampleSheetName is the worksheet name of the downloadable sample
const SampleSheetName = "Stickers"

// SampleSheetHeaders are the canonical headers the extractor matches exactly
var SampleSheetHeaders = []string{"Name", "MRP", "Sell Price"}

var sampleRows = []struct {
	name      string
	mrp       float64
	sellPrice float64
}{
	{"Basmati Rice 1kg", 120, 99.5},
	{"Toor Dal 500g", 85, 78},
	{"Sunflower Oil 1L", 165, 149},
}

// GenerateSampleSheet builds a small workbook showing the expected layout
func GenerateSampleSheet() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SampleSheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	for i, header := range SampleSheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SampleSheetName, cell, header)
	}

	for i, row := range sampleRows {
		r := i + 2
		f.SetCellValue(SampleSheetName, fmt.Sprintf("A%d", r), row.name)
		f.SetCellValue(SampleSheetName, fmt.Sprintf("B%d", r), row.mrp)
		f.SetCellValue(SampleSheetName, fmt.Sprintf("C%d", r), row.sellPrice)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(SampleSheetName, "A1", "C1", headerStyle)
	f.SetColWidth(SampleSheetName, "A", "A", 30)
	f.SetColWidth(SampleSheetName, "B", "C", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf, nil
}
