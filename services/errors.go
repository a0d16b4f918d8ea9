package services

import (
	"errors"
	"fmt"
	"strings"

	"sticker_factory_go/models"
)

var (
	// ErrInvalidFileType is returned before parsing when the upload is not .xlsx/.xls
	ErrInvalidFileType = errors.New("invalid file type: please upload an Excel file (.xlsx or .xls)")
	// ErrFileTooLarge is returned when the upload exceeds the configured limit
	ErrFileTooLarge = errors.New("file size exceeds the maximum allowed size")
	// ErrEmptySheet is returned when the first sheet has no data rows
	ErrEmptySheet = errors.New("the first sheet of the workbook has no data rows")
	// ErrInvalidGeometry is returned when columns or rows are below 1
	ErrInvalidGeometry = errors.New("invalid page geometry: columns and rows must be at least 1")
	// ErrNoStickers is returned when printing is requested without records
	ErrNoStickers = errors.New("no data to print: please upload an Excel file first")
	// ErrStaleExtraction is returned when a newer upload superseded this one
	ErrStaleExtraction = errors.New("extraction superseded by a newer upload")
	// ErrSessionNotFound is returned for unknown or expired sticker sessions
	ErrSessionNotFound = errors.New("sticker session not found")
	// ErrPrintSurfaceMissing is returned when the render surface id is not in the document
	ErrPrintSurfaceMissing = errors.New("print area not found")
	// ErrPrintWindowUnavailable is returned when the print target cannot be opened
	ErrPrintWindowUnavailable = errors.New("unable to open print window")
)

// MissingColumnsError reports the logical fields no header could be matched to
type MissingColumnsError struct {
	Row    int // 1-based sheet row
	Fields []models.StickerField
}

func (e *MissingColumnsError) Error() string {
	labels := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		labels = append(labels, f.Label())
	}
	return fmt.Sprintf("required columns not found in row %d: %s (expected Name, MRP and Sell Price)", e.Row, strings.Join(labels, ", "))
}

// ReadFailureError wraps errors from reading or decoding the workbook bytes
type ReadFailureError struct {
	Err error
}

func (e *ReadFailureError) Error() string {
	return fmt.Sprintf("error reading the file: %v", e.Err)
}

func (e *ReadFailureError) Unwrap() error {
	return e.Err
}

// IsExtractionError reports whether err rejects an uploaded file as a whole
func IsExtractionError(err error) bool {
	var missing *MissingColumnsError
	var read *ReadFailureError
	return errors.Is(err, ErrInvalidFileType) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrEmptySheet) ||
		errors.As(err, &missing) ||
		errors.As(err, &read)
}
