package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"sticker_factory_go/models"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// sheetGrid is the first worksheet of a workbook as typed cells, row-major,
// rows and cells in sheet order. Missing trailing cells are simply absent.
type sheetGrid struct {
	Name string
	Rows [][]models.CellValue
}

// readFirstSheet decodes data according to the file extension and returns
// its first worksheet. Other sheets are ignored.
func readFirstSheet(filename string, data []byte) (*sheetGrid, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return readFirstSheetXLS(data)
	default:
		return readFirstSheetXLSX(data)
	}
}

func readFirstSheetXLSX(data []byte) (*sheetGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ReadFailureError{Err: fmt.Errorf("failed to open excel file: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}
	sheetName := sheets[0]

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ReadFailureError{Err: fmt.Errorf("failed to read sheet %q: %w", sheetName, err)}
	}

	grid := &sheetGrid{Name: sheetName, Rows: make([][]models.CellValue, len(rows))}
	for r, row := range rows {
		cells := make([]models.CellValue, len(row))
		for c, raw := range row {
			cellName, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, &ReadFailureError{Err: err}
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, &ReadFailureError{Err: fmt.Errorf("failed to read cell %s: %w", cellName, err)}
			}
			cells[c] = classifyXLSXCell(cellType, raw)
		}
		grid.Rows[r] = cells
	}

	return grid, nil
}

// classifyXLSXCell keeps numeric cells numeric. Strings stay text even when
// they look like numbers, since the sheet stored them as text.
func classifyXLSXCell(cellType excelize.CellType, raw string) models.CellValue {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeDate, excelize.CellTypeError:
		return models.TextCell(raw)
	case excelize.CellTypeBool:
		switch raw {
		case "1":
			return models.TextCell("TRUE")
		case "0":
			return models.TextCell("FALSE")
		}
		return models.TextCell(raw)
	default:
		// number, formula result or untyped
		if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return models.NumberCell(n)
		}
		return models.TextCell(raw)
	}
}

// readFirstSheetXLS reads legacy BIFF workbooks. The reader only exposes
// cell text, so text that is exactly a decimal number is treated as numeric.
func readFirstSheetXLS(data []byte) (grid *sheetGrid, err error) {
	// the BIFF decoder panics on some malformed input
	defer func() {
		if r := recover(); r != nil {
			grid = nil
			err = &ReadFailureError{Err: fmt.Errorf("malformed xls file: %v", r)}
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, &ReadFailureError{Err: fmt.Errorf("failed to open xls file: %w", err)}
	}
	if wb == nil {
		return nil, &ReadFailureError{Err: fmt.Errorf("no workbook stream in xls file")}
	}
	if wb.NumSheets() == 0 {
		return nil, ErrEmptySheet
	}
	sheet := wb.GetSheet(0)
	if sheet == nil || sheet.MaxRow == 0 {
		// at most a header row
		return nil, ErrEmptySheet
	}

	// ReadAllCells fills rows from the first sheet up to the limit before it
	// moves on, so MaxRow+1 keeps it on the first sheet. Rows without cells
	// come back nil; cells left of a row's first cell come back "".
	rows := wb.ReadAllCells(int(sheet.MaxRow) + 1)

	grid = &sheetGrid{Name: sheet.Name, Rows: make([][]models.CellValue, len(rows))}
	for r, row := range rows {
		if row == nil {
			continue
		}
		cells := make([]models.CellValue, len(row))
		for c, text := range row {
			cells[c] = classifyText(text)
		}
		grid.Rows[r] = cells
	}

	return grid, nil
}

func classifyText(text string) models.CellValue {
	if n, err := strconv.ParseFloat(text, 64); err == nil {
		return models.NumberCell(n)
	}
	return models.TextCell(text)
}
