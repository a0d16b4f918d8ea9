package services

import (
	"context"
	"os"
	"testing"
	"time"

	"sticker_factory_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchRejectsInvalidSurfaceID(t *testing.T) {
	// fails before Chrome is started, so no browser is needed
	d := NewChromePrintDispatcher("/nonexistent/chrome", time.Second)

	for _, id := range []string{"", "1area", "#print-area", "print area", "a]"} {
		pdf, err := d.Dispatch(context.Background(), PrintJob{
			Title:       "Stickers",
			SurfaceHTML: `<div id="print-area"></div>`,
			SurfaceID:   id,
			Settings:    models.DefaultPrintSettings(),
		})
		assert.ErrorIs(t, err, ErrPrintSurfaceMissing, "id %q", id)
		assert.Nil(t, pdf)
	}
}

func chromeDispatcher(t *testing.T) *ChromePrintDispatcher {
	chromePath := os.Getenv("CHROME_PATH")
	if chromePath == "" {
		t.Skip("Skipping print test: CHROME_PATH not set")
	}
	if _, err := os.Stat(chromePath); os.IsNotExist(err) {
		t.Skipf("Skipping: Chrome not found at %s", chromePath)
	}
	return NewChromePrintDispatcher(chromePath, 30*time.Second)
}

func TestDispatchSmoke(t *testing.T) {
	d := chromeDispatcher(t)

	pdf, err := d.Dispatch(context.Background(), PrintJob{
		Title:       "Stickers",
		SurfaceHTML: `<!doctype html><html><body><section id="print-area"><div class="sticker">Tea</div></section></body></html>`,
		SurfaceID:   PrintSurfaceID,
		Settings:    models.DefaultPrintSettings(),
	})
	require.NoError(t, err)
	require.True(t, len(pdf) > 5)
	assert.Equal(t, "%PDF-", string(pdf[:5]))
}

func TestDispatchMissingSurface(t *testing.T) {
	d := chromeDispatcher(t)

	_, err := d.Dispatch(context.Background(), PrintJob{
		Title:       "Stickers",
		SurfaceHTML: `<!doctype html><html><body><p>nothing here</p></body></html>`,
		SurfaceID:   PrintSurfaceID,
		Settings:    models.DefaultPrintSettings(),
	})
	assert.ErrorIs(t, err, ErrPrintSurfaceMissing)
}
