package config

import (
	"testing"
	"time"

	"sticker_factory_go/models"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "ENVIRONMENT", "CHROME_PATH", "MAX_UPLOAD_MB", "PRINT_TIMEOUT_SECONDS",
		"SESSION_TTL_MINUTES", "SECURE_COOKIES", "STICKER_WIDTH_MM", "STICKER_HEIGHT_MM",
		"STICKER_COLUMNS", "STICKER_ROWS", "PAPER_SIZE", "PAPER_ORIENTATION", "PAPER_MARGIN_MM",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.SecureCookies)
	assert.Equal(t, DefaultMaxUploadMB, cfg.MaxUploadMB)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadSize)
	assert.Equal(t, 30*time.Second, cfg.PrintTimeout)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, models.DefaultStickerLayout(), cfg.DefaultLayout)
	assert.Equal(t, models.DefaultPrintSettings(), cfg.Print)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("MAX_UPLOAD_MB", "2")
	t.Setenv("STICKER_WIDTH_MM", "60")
	t.Setenv("STICKER_COLUMNS", "3")
	t.Setenv("PAPER_SIZE", "Letter")
	t.Setenv("PAPER_ORIENTATION", "LANDSCAPE")
	t.Setenv("PAPER_MARGIN_MM", "5.5")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, int64(2<<20), cfg.MaxUploadSize)
	assert.Equal(t, 60, cfg.DefaultLayout.WidthMM)
	assert.Equal(t, 3, cfg.DefaultLayout.Columns)
	assert.Equal(t, models.PaperSizeLetter, cfg.Print.PaperSize)
	assert.Equal(t, models.OrientationLandscape, cfg.Print.Orientation)
	assert.Equal(t, 5.5, cfg.Print.MarginLeftMM)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_MB", "0")
	t.Setenv("STICKER_WIDTH_MM", "5")
	t.Setenv("STICKER_ROWS", "many")
	t.Setenv("PAPER_SIZE", "A3")
	t.Setenv("PAPER_MARGIN_MM", "-1")

	cfg := Load()

	assert.Equal(t, DefaultMaxUploadMB, cfg.MaxUploadMB)
	assert.Equal(t, models.DefaultStickerLayout(), cfg.DefaultLayout)
	assert.Equal(t, models.PaperSizeA4, cfg.Print.PaperSize)
	assert.Equal(t, 10.0, cfg.Print.MarginTopMM)
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FLAG_ON", "yes")
	t.Setenv("FLAG_OFF", "0")
	t.Setenv("FLAG_JUNK", "maybe")

	assert.True(t, getEnvBool("FLAG_ON", false))
	assert.False(t, getEnvBool("FLAG_OFF", true))
	assert.True(t, getEnvBool("FLAG_JUNK", true))
	assert.False(t, getEnvBool("FLAG_UNSET", false))
}
