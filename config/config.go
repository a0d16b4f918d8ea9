package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"sticker_factory_go/models"

	"github.com/joho/godotenv"
)

const (
	// DefaultMaxUploadMB caps spreadsheet uploads when MAX_UPLOAD_MB is unset
	DefaultMaxUploadMB = 10
	// DefaultPrintTimeoutSeconds bounds one print job, render wait included
	DefaultPrintTimeoutSeconds = 30
	// DefaultSessionTTLMinutes is how long an idle sticker session is kept
	DefaultSessionTTLMinutes = 120
)

type Config struct {
	ServerPort  string
	Environment string
	// Headless Chrome used by the print dispatcher (empty = auto-detect)
	ChromePath   string
	PrintTimeout time.Duration
	// Uploads
	MaxUploadMB   int
	MaxUploadSize int64
	// Sessions
	SessionTTL    time.Duration
	SecureCookies bool
	// Sticker defaults
	DefaultLayout models.StickerLayout
	Print         models.PrintSettings
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	maxUploadMB := getEnvInt("MAX_UPLOAD_MB", DefaultMaxUploadMB)
	if maxUploadMB < 1 {
		log.Printf("[WARNING] MAX_UPLOAD_MB must be positive, using %d", DefaultMaxUploadMB)
		maxUploadMB = DefaultMaxUploadMB
	}

	environment := getEnv("ENVIRONMENT", "development")

	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		Environment:   environment,
		ChromePath:    getEnv("CHROME_PATH", ""),
		PrintTimeout:  time.Duration(getEnvInt("PRINT_TIMEOUT_SECONDS", DefaultPrintTimeoutSeconds)) * time.Second,
		MaxUploadMB:   maxUploadMB,
		MaxUploadSize: int64(maxUploadMB) << 20,
		SessionTTL:    time.Duration(getEnvInt("SESSION_TTL_MINUTES", DefaultSessionTTLMinutes)) * time.Minute,
		SecureCookies: getEnvBool("SECURE_COOKIES", environment == "production"),
		DefaultLayout: loadDefaultLayout(),
		Print:         loadPrintSettings(),
	}
}

// loadDefaultLayout reads the sticker defaults. A layout that fails
// validation is replaced by the built-in one as a whole.
func loadDefaultLayout() models.StickerLayout {
	builtin := models.DefaultStickerLayout()

	layout := builtin
	layout.WidthMM = getEnvInt("STICKER_WIDTH_MM", builtin.WidthMM)
	layout.HeightMM = getEnvInt("STICKER_HEIGHT_MM", builtin.HeightMM)
	layout.Columns = getEnvInt("STICKER_COLUMNS", builtin.Columns)
	layout.Rows = getEnvInt("STICKER_ROWS", builtin.Rows)

	if err := layout.Validate(); err != nil {
		log.Printf("[WARNING] Ignoring sticker layout from environment: %v", err)
		return builtin
	}
	return layout
}

func loadPrintSettings() models.PrintSettings {
	settings := models.DefaultPrintSettings()

	switch size := getEnv("PAPER_SIZE", settings.PaperSize); strings.ToLower(size) {
	case "a4":
		settings.PaperSize = models.PaperSizeA4
	case models.PaperSizeLetter:
		settings.PaperSize = models.PaperSizeLetter
	case models.PaperSizeLegal:
		settings.PaperSize = models.PaperSizeLegal
	default:
		log.Printf("[WARNING] Unknown PAPER_SIZE %q, using %s", size, settings.PaperSize)
	}

	switch orientation := strings.ToLower(getEnv("PAPER_ORIENTATION", settings.Orientation)); orientation {
	case models.OrientationPortrait, models.OrientationLandscape:
		settings.Orientation = orientation
	default:
		log.Printf("[WARNING] Unknown PAPER_ORIENTATION %q, using %s", orientation, settings.Orientation)
	}

	margin := getEnvFloat("PAPER_MARGIN_MM", settings.MarginTopMM)
	if margin < 0 {
		log.Printf("[WARNING] PAPER_MARGIN_MM cannot be negative, using %v", settings.MarginTopMM)
		margin = settings.MarginTopMM
	}
	settings.MarginTopMM = margin
	settings.MarginRightMM = margin
	settings.MarginBottomMM = margin
	settings.MarginLeftMM = margin

	return settings
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("[WARNING] %s is not a number (%q), using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		log.Printf("[WARNING] %s is not a number (%q), using %v", key, value, defaultValue)
		return defaultValue
	}
	return f
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

// IsProduction reports whether the service runs with ENVIRONMENT=production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
