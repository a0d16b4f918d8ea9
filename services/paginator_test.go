package services

import (
	"fmt"
	"testing"

	"sticker_factory_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRecords(n int) []models.StickerRecord {
	records := make([]models.StickerRecord, n)
	for i := range records {
		records[i] = models.StickerRecord{
			Name:      fmt.Sprintf("r%d", i),
			MRP:       models.NumberCell(float64(10 + i)),
			SellPrice: models.NumberCell(float64(9 + i)),
		}
	}
	return records
}

func pageNames(p models.Page) []string {
	names := make([]string, len(p.Stickers))
	for i, s := range p.Stickers {
		names[i] = s.Name
	}
	return names
}

func TestPaginate(t *testing.T) {
	t.Run("EmptyRecords", func(t *testing.T) {
		pages, err := Paginate(nil, models.PageGeometry{Columns: 2, Rows: 2})
		require.NoError(t, err)
		assert.Empty(t, pages)
	})

	t.Run("PadsLastPageWithFirstRecord", func(t *testing.T) {
		pages, err := Paginate(makeRecords(5), models.PageGeometry{Columns: 2, Rows: 2})
		require.NoError(t, err)
		require.Len(t, pages, 2)

		assert.Equal(t, []string{"r0", "r1", "r2", "r3"}, pageNames(pages[0]))
		assert.Equal(t, 0, pages[0].Padding)
		assert.True(t, pages[0].BreakAfter)

		assert.Equal(t, []string{"r4", "r0", "r0", "r0"}, pageNames(pages[1]))
		assert.Equal(t, 3, pages[1].Padding)
		assert.False(t, pages[1].BreakAfter)
		assert.False(t, pages[1].IsPadding(0))
		assert.True(t, pages[1].IsPadding(1))
	})

	t.Run("ExactFit", func(t *testing.T) {
		pages, err := Paginate(makeRecords(8), models.PageGeometry{Columns: 2, Rows: 2})
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, 0, pages[1].Padding)
	})

	t.Run("SingleCellGeometry", func(t *testing.T) {
		pages, err := Paginate(makeRecords(3), models.PageGeometry{Columns: 1, Rows: 1})
		require.NoError(t, err)
		require.Len(t, pages, 3)
		for i, p := range pages {
			assert.Equal(t, i, p.Index)
			assert.Len(t, p.Stickers, 1)
			assert.Equal(t, 0, p.Padding)
		}
	})

	t.Run("SevenRecordsThreeByTwo", func(t *testing.T) {
		pages, err := Paginate(makeRecords(7), models.PageGeometry{Columns: 3, Rows: 2})
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Equal(t, []string{"r6", "r0", "r0", "r0", "r0", "r0"}, pageNames(pages[1]))
		assert.Equal(t, 5, pages[1].Padding)
	})

	t.Run("InvalidGeometry", func(t *testing.T) {
		for _, g := range []models.PageGeometry{{Columns: 0, Rows: 2}, {Columns: 2, Rows: 0}, {Columns: -1, Rows: -1}} {
			_, err := Paginate(makeRecords(3), g)
			assert.ErrorIs(t, err, ErrInvalidGeometry)
		}
	})

	t.Run("OverflowingGeometry", func(t *testing.T) {
		// capacity wraps to zero, to a negative number and to a small positive one
		for _, g := range []models.PageGeometry{
			{Columns: 1 << 32, Rows: 1 << 32},
			{Columns: 3037000500, Rows: 3037000500},
			{Columns: 1<<62 + 1, Rows: 4},
		} {
			assert.NotPanics(t, func() {
				pages, err := Paginate(makeRecords(3), g)
				assert.ErrorIs(t, err, ErrInvalidGeometry, "geometry %v", g)
				assert.Nil(t, pages)
			})
		}
	})

	t.Run("PagesAreIndependentCopies", func(t *testing.T) {
		records := makeRecords(5)
		pages, err := Paginate(records, models.PageGeometry{Columns: 2, Rows: 2})
		require.NoError(t, err)

		pages[0].Stickers[0].Name = "changed"
		assert.Equal(t, "r0", records[0].Name)
		assert.Equal(t, "r0", pages[1].Stickers[1].Name)
	})

	t.Run("Deterministic", func(t *testing.T) {
		g := models.PageGeometry{Columns: 4, Rows: 6}
		a, err := Paginate(makeRecords(50), g)
		require.NoError(t, err)
		b, err := Paginate(makeRecords(50), g)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})
}
