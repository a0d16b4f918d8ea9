package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"sticker_factory_go/config"
	"sticker_factory_go/middleware"
	"sticker_factory_go/models"
	"sticker_factory_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const testSessionID = "4f9c2d1e-8a7b-4c3d-9e2f-1a2b3c4d5e6f"

func testConfig() *config.Config {
	return &config.Config{
		Environment:   "test",
		MaxUploadMB:   10,
		MaxUploadSize: 10 << 20,
		DefaultLayout: models.DefaultStickerLayout(),
		Print:         models.DefaultPrintSettings(),
	}
}

// setupSessions gives every test a fresh in-memory session store
func setupSessions(t *testing.T) {
	t.Helper()
	services.Sessions = services.NewSessionStore(time.Hour, models.DefaultStickerLayout())
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config and session to context
	c.Set("config", testConfig())
	c.Set(middleware.ContextKeySession, testSessionID)

	return e, c, rec
}

// stickerWorkbook builds an .xlsx with a header row followed by rows
func stickerWorkbook(t *testing.T, headers []string, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// productRows returns n rows of name, MRP and sell price
func productRows(n int) [][]interface{} {
	rows := make([][]interface{}, n)
	for i := range rows {
		rows[i] = []interface{}{"Product " + string(rune('A'+i)), 100 + i, 90 + i}
	}
	return rows
}

// multipartFile wraps data as the "file" field of a multipart form
func multipartFile(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return body, w.FormDataContentType()
}

// uploadRequest prepares an upload of data as filename
func uploadRequest(t *testing.T, path, filename string, data []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	body, contentType := multipartFile(t, filename, data)
	_, c, rec := setupEcho("POST", path, body)
	c.Request().Header.Set(echo.HeaderContentType, contentType)
	return c, rec
}

// fakePrinter records print jobs instead of starting a browser
type fakePrinter struct {
	pdf  []byte
	err  error
	jobs []services.PrintJob
}

func (p *fakePrinter) Dispatch(ctx context.Context, job services.PrintJob) ([]byte, error) {
	p.jobs = append(p.jobs, job)
	if p.err != nil {
		return nil, p.err
	}
	return p.pdf, nil
}
