package models

import (
	"encoding/json"
	"strconv"
)

// CellKind tells whether a spreadsheet cell held a number or text
type CellKind int

const (
	CellText CellKind = iota
	CellNumber
)

// CellValue is a scalar spreadsheet cell. Prices keep the kind the sheet
// stored them with; formatting happens at render time.
type CellValue struct {
	Kind   CellKind
	Text   string
	Number float64
}

// TextCell wraps a string cell value
func TextCell(s string) CellValue {
	return CellValue{Kind: CellText, Text: s}
}

// NumberCell wraps a numeric cell value
func NumberCell(n float64) CellValue {
	return CellValue{Kind: CellNumber, Number: n}
}

// IsNumber reports whether the cell held a number
func (v CellValue) IsNumber() bool {
	return v.Kind == CellNumber
}

// IsEmpty reports whether the cell is blank text
func (v CellValue) IsEmpty() bool {
	return v.Kind == CellText && v.Text == ""
}

// String returns the cell as text. Numbers use the shortest representation
// that round-trips.
func (v CellValue) String() string {
	if v.Kind == CellNumber {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}

// MarshalJSON encodes numbers as JSON numbers and everything else as strings
func (v CellValue) MarshalJSON() ([]byte, error) {
	if v.Kind == CellNumber {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON accepts a JSON number, string or null
func (v *CellValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = TextCell("")
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumberCell(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = TextCell(s)
	return nil
}

// StickerField identifies one logical column of the sticker sheet
type StickerField string

const (
	FieldName      StickerField = "name"
	FieldMRP       StickerField = "mrp"
	FieldSellPrice StickerField = "sell_price"
)

// StickerFields lists the required fields in resolution order
var StickerFields = []StickerField{FieldName, FieldMRP, FieldSellPrice}

// Label returns the human readable column name used in messages
func (f StickerField) Label() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldMRP:
		return "MRP"
	case FieldSellPrice:
		return "Sell Price"
	default:
		return string(f)
	}
}

// StickerRecord is one product destined for one printed label
type StickerRecord struct {
	Name      string    `json:"name"`
	MRP       CellValue `json:"mrp"`
	SellPrice CellValue `json:"sell_price"`
}
