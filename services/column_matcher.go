package services

import (
	"strings"

	"sticker_factory_go/models"
)

// headerCandidates lists the accepted header spellings per field, already
// normalized (lower-case, trimmed).
var headerCandidates = map[models.StickerField][]string{
	models.FieldName:      {"name", "item name", "product name", "product"},
	models.FieldMRP:       {"mrp", "maximum retail price", "retail price", "max price"},
	models.FieldSellPrice: {"sell price", "selling price", "price", "sale price", "sell"},
}

// HeaderCandidates returns the accepted header spellings for a field
func HeaderCandidates(field models.StickerField) []string {
	return append([]string(nil), headerCandidates[field]...)
}

// MatchKind tells how a header was resolved
type MatchKind int

const (
	Unresolved MatchKind = iota
	ExactMatch
	SubstringMatch
)

// Resolution is the outcome of matching one field against a header set
type Resolution struct {
	Kind   MatchKind
	Header string // original header text, empty when unresolved
	Index  int    // position in the header list, -1 when unresolved
}

// Resolved reports whether a header was found
func (r Resolution) Resolved() bool {
	return r.Kind != Unresolved
}

// NormalizeHeader lower-cases and trims a header cell
func NormalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

// MatchField resolves one field in two passes: exact match first, then
// containment in either direction. The first header in iteration order wins
// within a pass. Blank headers never match.
func MatchField(field models.StickerField, headers []string) Resolution {
	candidates := headerCandidates[field]

	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
	}

	for i, h := range normalized {
		if h == "" {
			continue
		}
		for _, candidate := range candidates {
			if h == candidate {
				return Resolution{Kind: ExactMatch, Header: headers[i], Index: i}
			}
		}
	}

	for i, h := range normalized {
		if h == "" {
			continue
		}
		for _, candidate := range candidates {
			if strings.Contains(h, candidate) || strings.Contains(candidate, h) {
				return Resolution{Kind: SubstringMatch, Header: headers[i], Index: i}
			}
		}
	}

	return Resolution{Kind: Unresolved, Index: -1}
}

// ColumnMap holds the resolved header for every sticker field
type ColumnMap struct {
	Name      Resolution
	MRP       Resolution
	SellPrice Resolution
}

// Headers returns the resolved header text keyed by field, for reporting
func (m ColumnMap) Headers() map[models.StickerField]string {
	return map[models.StickerField]string{
		models.FieldName:      m.Name.Header,
		models.FieldMRP:       m.MRP.Header,
		models.FieldSellPrice: m.SellPrice.Header,
	}
}

// ResolveColumns matches every field against headers. It fails with a
// MissingColumnsError naming all unresolved fields; row is only used for the
// error message.
func ResolveColumns(headers []string, row int) (ColumnMap, error) {
	m := ColumnMap{
		Name:      MatchField(models.FieldName, headers),
		MRP:       MatchField(models.FieldMRP, headers),
		SellPrice: MatchField(models.FieldSellPrice, headers),
	}

	var missing []models.StickerField
	if !m.Name.Resolved() {
		missing = append(missing, models.FieldName)
	}
	if !m.MRP.Resolved() {
		missing = append(missing, models.FieldMRP)
	}
	if !m.SellPrice.Resolved() {
		missing = append(missing, models.FieldSellPrice)
	}
	if len(missing) > 0 {
		return ColumnMap{}, &MissingColumnsError{Row: row, Fields: missing}
	}
	return m, nil
}
