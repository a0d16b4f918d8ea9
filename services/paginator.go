package services

import (
	"sticker_factory_go/models"
)

// Paginate splits records into pages of geometry.Capacity() stickers in
// record order. An underfull last page is padded with copies of records[0]
// (the first record of the whole set) so every printed sheet is full; the
// page's Padding field counts those filler stickers. Every page but the last
// is marked BreakAfter.
func Paginate(records []models.StickerRecord, geometry models.PageGeometry) ([]models.Page, error) {
	if geometry.Columns < 1 || geometry.Rows < 1 {
		return nil, ErrInvalidGeometry
	}
	capacity := geometry.Capacity()
	// columns*rows must not overflow
	if capacity <= 0 || capacity/geometry.Columns != geometry.Rows {
		return nil, ErrInvalidGeometry
	}

	if len(records) == 0 {
		return []models.Page{}, nil
	}

	pageCount := (len(records) + capacity - 1) / capacity
	pages := make([]models.Page, 0, pageCount)

	for i := 0; i < pageCount; i++ {
		start := i * capacity
		end := min(start+capacity, len(records))

		stickers := make([]models.StickerRecord, capacity)
		n := copy(stickers, records[start:end])
		for j := n; j < capacity; j++ {
			stickers[j] = records[0]
		}

		pages = append(pages, models.Page{
			Index:      i,
			Stickers:   stickers,
			Padding:    capacity - n,
			BreakAfter: i < pageCount-1,
		})
	}

	return pages, nil
}
