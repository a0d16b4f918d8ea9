package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"sticker_factory_go/models"
)

// AllowedSpreadsheetExtensions are the upload extensions accepted before parsing
var AllowedSpreadsheetExtensions = []string{".xlsx", ".xls"}

// SourceCell is one cell of a data row, keyed by its column header
type SourceCell struct {
	Header string
	Value  models.CellValue
}

// SourceRow is one data row of the first sheet. Cells follow column order and
// every header of the header row is present, blank cells included.
type SourceRow struct {
	Number int // 1-based sheet row
	Cells  []SourceCell
}

// Headers returns the row's header set in column order
func (r SourceRow) Headers() []string {
	headers := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		headers[i] = c.Header
	}
	return headers
}

// ExtractResult is the outcome of a successful extraction
type ExtractResult struct {
	FileName  string                         `json:"file_name"`
	SheetName string                         `json:"sheet_name"`
	Columns   map[models.StickerField]string `json:"columns"`
	Records   []models.StickerRecord         `json:"records"`
}

// ValidateSpreadsheetUpload checks extension and size before any parsing.
// maxSize <= 0 disables the size check.
func ValidateSpreadsheetUpload(filename string, size int64, maxSize int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	allowed := false
	for _, a := range AllowedSpreadsheetExtensions {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidFileType
	}

	if maxSize > 0 && size > maxSize {
		return fmt.Errorf("%w (%d MB)", ErrFileTooLarge, maxSize/(1024*1024))
	}
	return nil
}

// ExtractStickers parses a spreadsheet into sticker records
func ExtractStickers(ctx context.Context, filename string, r io.Reader) ([]models.StickerRecord, error) {
	result, err := ExtractStickerSheet(ctx, filename, r)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

// ExtractStickerSheet parses the first sheet of a workbook into sticker
// records. Any row whose headers cannot be resolved rejects the whole file.
func ExtractStickerSheet(ctx context.Context, filename string, r io.Reader) (*ExtractResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ReadFailureError{Err: err}
	}

	grid, err := readFirstSheet(filename, data)
	if err != nil {
		return nil, err
	}

	rows := sourceRows(grid)
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	result := &ExtractResult{
		FileName:  filepath.Base(filename),
		SheetName: grid.Name,
		Records:   make([]models.StickerRecord, 0, len(rows)),
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		columns, err := ResolveColumns(row.Headers(), row.Number)
		if err != nil {
			return nil, err
		}
		if result.Columns == nil {
			result.Columns = columns.Headers()
		}

		result.Records = append(result.Records, buildRecord(row, columns))
	}

	return result, nil
}

// sourceRows turns a grid into keyed data rows. The first non-blank row is
// the header row; fully blank rows after it are skipped.
func sourceRows(grid *sheetGrid) []SourceRow {
	headerIdx := -1
	for i, row := range grid.Rows {
		if !isBlankRow(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	headerCells := grid.Rows[headerIdx]
	headers := make([]string, len(headerCells))
	for i, c := range headerCells {
		headers[i] = c.String()
	}

	var rows []SourceRow
	for i := headerIdx + 1; i < len(grid.Rows); i++ {
		cells := grid.Rows[i]
		if isBlankRow(cells) {
			continue
		}

		row := SourceRow{Number: i + 1, Cells: make([]SourceCell, len(headers))}
		for c, h := range headers {
			value := models.TextCell("")
			if c < len(cells) {
				value = cells[c]
			}
			row.Cells[c] = SourceCell{Header: h, Value: value}
		}
		rows = append(rows, row)
	}
	return rows
}

func isBlankRow(cells []models.CellValue) bool {
	for _, c := range cells {
		if c.IsNumber() || strings.TrimSpace(c.Text) != "" {
			return false
		}
	}
	return true
}

func buildRecord(row SourceRow, columns ColumnMap) models.StickerRecord {
	return models.StickerRecord{
		Name:      row.Cells[columns.Name.Index].Value.String(),
		MRP:       row.Cells[columns.MRP.Index].Value,
		SellPrice: row.Cells[columns.SellPrice.Index].Value,
	}
}
