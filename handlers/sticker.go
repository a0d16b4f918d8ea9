package handlers

import (
	"fmt"
	"log"
	"net/http"

	"sticker_factory_go/config"
	"sticker_factory_go/middleware"
	"sticker_factory_go/models"
	"sticker_factory_go/services"
	"sticker_factory_go/templates/pages"
	"sticker_factory_go/templates/partials"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sampleFileName  = "sticker_sample.xlsx"
	printTitle      = "Stickers"
)

func getConfig(c echo.Context) *config.Config {
	return c.Get("config").(*config.Config)
}

// sessionWorkspace builds the workspace view for the request's sticker session
func sessionWorkspace(c echo.Context, notice *partials.NoticeView) (partials.WorkspaceView, error) {
	sess := services.Sessions.Get(middleware.GetSessionID(c))

	view, err := partials.NewWorkspaceView(sess.FileName, sess.Records, sess.Layout, notice)
	if err != nil {
		return partials.WorkspaceView{}, err
	}
	view.CSRFToken = middleware.GetCSRFToken(c)
	return view, nil
}

// HomeHandler renders the upload, settings and preview page
func HomeHandler(c echo.Context) error {
	view, err := sessionWorkspace(c, nil)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, pages.Home(pages.HomeView{
		Workspace:   view,
		MaxUploadMB: getConfig(c).MaxUploadMB,
	}))
}

// UploadStickersHandler extracts sticker records from an uploaded spreadsheet
// and replaces the session's record set
func UploadStickersHandler(c echo.Context) error {
	cfg := getConfig(c)
	sessionID := middleware.GetSessionID(c)

	file, err := c.FormFile("file")
	if err != nil {
		return respondError(c, "Upload failed", echo.NewHTTPError(http.StatusBadRequest, "No file uploaded"))
	}

	// a rejected file type or size leaves the loaded stickers alone
	if err := services.ValidateSpreadsheetUpload(file.Filename, file.Size, cfg.MaxUploadSize); err != nil {
		return respondError(c, "Upload failed", err)
	}

	generation := services.Sessions.BeginExtraction(sessionID)

	src, err := file.Open()
	if err != nil {
		services.Sessions.FailExtraction(sessionID, generation)
		return respondError(c, "Upload failed", &services.ReadFailureError{Err: err})
	}
	defer src.Close()

	result, err := services.ExtractStickerSheet(c.Request().Context(), file.Filename, src)
	if err != nil {
		log.Printf("[WARNING] Rejected sticker upload %q: %v", file.Filename, err)
		services.Sessions.FailExtraction(sessionID, generation)
		return respondError(c, "Upload failed", err)
	}

	if err := services.Sessions.CommitExtraction(sessionID, generation, result.FileName, result.Records); err != nil {
		return respondError(c, "Upload discarded", err)
	}

	log.Printf("[INFO] Loaded %d sticker records from %q (sheet %q)", len(result.Records), result.FileName, result.SheetName)

	if !isHTMX(c) {
		return c.JSON(http.StatusOK, result)
	}

	notice := &partials.NoticeView{
		Kind:    "success",
		Title:   "File processed",
		Message: fmt.Sprintf("Loaded %d stickers from %s.", len(result.Records), result.FileName),
	}
	view, err := sessionWorkspace(c, notice)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, partials.Workspace(view))
}

// bindLayout reads the settings form on top of current. Missing fields keep
// their current value.
func bindLayout(c echo.Context, current models.StickerLayout) (models.StickerLayout, error) {
	layout := current
	err := echo.FormFieldBinder(c).
		Int("width_mm", &layout.WidthMM).
		Int("height_mm", &layout.HeightMM).
		Int("columns", &layout.Columns).
		Int("rows", &layout.Rows).
		Int("name_font_px", &layout.NameFontPx).
		Int("mrp_font_px", &layout.MRPFontPx).
		Int("price_font_px", &layout.PriceFontPx).
		Int("name_spacing_px", &layout.NameSpacingPx).
		Int("price_spacing_px", &layout.PriceSpacingPx).
		BindError()
	if err != nil {
		return current, err
	}
	if err := layout.Validate(); err != nil {
		return current, err
	}
	return layout, nil
}

// UpdateLayoutHandler replaces the session layout from the settings form
func UpdateLayoutHandler(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	var layout models.StickerLayout
	if c.FormValue("reset") == "true" {
		layout = getConfig(c).DefaultLayout
	} else {
		var err error
		layout, err = bindLayout(c, services.Sessions.Get(sessionID).Layout)
		if err != nil {
			return respondError(c, "Invalid layout", err)
		}
	}

	sess := services.Sessions.SetLayout(sessionID, layout)

	if !isHTMX(c) {
		return c.JSON(http.StatusOK, sess.Layout)
	}

	view, err := sessionWorkspace(c, nil)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, partials.Workspace(view))
}

// PreviewStickersHandler returns the paginated sticker sheet fragment
func PreviewStickersHandler(c echo.Context) error {
	view, err := sessionWorkspace(c, nil)
	if err != nil {
		return respondError(c, "Preview failed", err)
	}
	return render(c, http.StatusOK, partials.StickerSheet(view.Sheet))
}

// PrintStickersHandler renders the session's sticker sheet and prints it to
// a PDF. A failed print leaves the session untouched.
func PrintStickersHandler(c echo.Context) error {
	cfg := getConfig(c)
	sess := services.Sessions.Get(middleware.GetSessionID(c))

	if len(sess.Records) == 0 {
		return respondError(c, "Nothing to print", services.ErrNoStickers)
	}

	pageSet, err := services.Paginate(sess.Records, sess.Layout.Geometry())
	if err != nil {
		return respondError(c, "Print failed", err)
	}

	surface, err := templ.ToGoHTML(c.Request().Context(), pages.PrintSurface(printTitle, partials.StickerSheetView{
		Layout: sess.Layout,
		Pages:  pageSet,
	}))
	if err != nil {
		return err
	}

	pdf, err := services.Printer.Dispatch(c.Request().Context(), services.PrintJob{
		Title:       printTitle,
		SurfaceHTML: string(surface),
		SurfaceID:   services.PrintSurfaceID,
		Settings:    cfg.Print,
	})
	if err != nil {
		log.Printf("[ERROR] Failed to print %d stickers: %v", len(sess.Records), err)
		return respondError(c, "Print failed", err)
	}

	log.Printf("[INFO] Printed %d stickers on %d pages", len(sess.Records), len(pageSet))

	c.Response().Header().Set("Content-Disposition", "inline; filename=stickers.pdf")
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// DownloadSampleSheetHandler serves a spreadsheet with the expected columns
func DownloadSampleSheetHandler(c echo.Context) error {
	buf, err := services.GenerateSampleSheet()
	if err != nil {
		log.Printf("[ERROR] Failed to generate sample sheet: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate sample sheet")
	}

	c.Response().Header().Set("Content-Disposition", "attachment; filename="+sampleFileName)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExtractStickersAPIHandler extracts records from an uploaded spreadsheet
// without touching any session
func ExtractStickersAPIHandler(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "No file uploaded")
	}

	if err := services.ValidateSpreadsheetUpload(file.Filename, file.Size, getConfig(c).MaxUploadSize); err != nil {
		code, message := errorStatus(err)
		return jsonError(c, code, message)
	}

	src, err := file.Open()
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Failed to open file")
	}
	defer src.Close()

	result, err := services.ExtractStickerSheet(c.Request().Context(), file.Filename, src)
	if err != nil {
		code, message := errorStatus(err)
		return jsonError(c, code, message)
	}
	return c.JSON(http.StatusOK, result)
}

// PaginateRequest is the body of the stateless pagination endpoint
type PaginateRequest struct {
	Records []models.StickerRecord `json:"records"`
	Columns int                    `json:"columns"`
	Rows    int                    `json:"rows"`
}

// PaginateResponse lists the pages of a paginated record set
type PaginateResponse struct {
	Capacity  int           `json:"capacity"`
	PageCount int           `json:"page_count"`
	Pages     []models.Page `json:"pages"`
}

// PaginateStickersAPIHandler splits posted records into printable pages
func PaginateStickersAPIHandler(c echo.Context) error {
	var req PaginateRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid request body")
	}

	if req.Columns > models.MaxColumns || req.Rows > models.MaxRows {
		return jsonError(c, http.StatusBadRequest,
			fmt.Sprintf("columns must be at most %d and rows at most %d", models.MaxColumns, models.MaxRows))
	}

	geometry := models.PageGeometry{Columns: req.Columns, Rows: req.Rows}
	pageSet, err := services.Paginate(req.Records, geometry)
	if err != nil {
		code, message := errorStatus(err)
		return jsonError(c, code, message)
	}

	return c.JSON(http.StatusOK, PaginateResponse{
		Capacity:  geometry.Capacity(),
		PageCount: len(pageSet),
		Pages:     pageSet,
	})
}

// HealthHandler reports liveness
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"sessions": services.Sessions.Len(),
	})
}
