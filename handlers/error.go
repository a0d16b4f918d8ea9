package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"sticker_factory_go/models"
	"sticker_factory_go/services"
	"sticker_factory_go/templates/pages"
	"sticker_factory_go/templates/partials"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

const genericErrorMessage = "Something went wrong. Please try again."

// errorStatus maps an error to the status code and the message shown to the
// user. Unknown errors are reported as 500 without their details.
func errorStatus(err error) (int, string) {
	var httpErr *echo.HTTPError
	var bindErr *echo.BindingError
	var missing *services.MissingColumnsError
	var readErr *services.ReadFailureError
	var layoutErr *models.LayoutError

	switch {
	case errors.As(err, &bindErr):
		return http.StatusBadRequest, "invalid value for " + bindErr.Field
	case errors.As(err, &httpErr):
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	case errors.Is(err, services.ErrInvalidFileType):
		return http.StatusUnsupportedMediaType, err.Error()
	case errors.Is(err, services.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, services.ErrEmptySheet), errors.As(err, &missing):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.As(err, &readErr):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrInvalidGeometry), errors.As(err, &layoutErr):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrNoStickers):
		return http.StatusBadRequest, "No data to print. Please upload an Excel file first."
	case errors.Is(err, services.ErrStaleExtraction):
		return http.StatusConflict, "A newer upload replaced this one."
	case errors.Is(err, services.ErrPrintSurfaceMissing):
		return http.StatusServiceUnavailable, "Print area not found. Please try again."
	case errors.Is(err, services.ErrPrintWindowUnavailable):
		return http.StatusServiceUnavailable, "Unable to open print window. Please try again."
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "The request took too long. Please try again."
	default:
		return http.StatusInternalServerError, genericErrorMessage
	}
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}

// render writes a templ component with the given status
func render(c echo.Context, status int, component templ.Component) error {
	buf := templ.GetBuffer()
	defer templ.ReleaseBuffer(buf)

	if err := component.Render(c.Request().Context(), buf); err != nil {
		return err
	}
	return c.HTML(status, buf.String())
}

// respondError reports a failed sticker action. HTMX requests get the
// workspace back with an error notice; browsers submitting a plain form get
// the home page; everything else gets JSON.
func respondError(c echo.Context, title string, err error) error {
	code, message := errorStatus(err)
	if code >= http.StatusInternalServerError {
		log.Printf("[ERROR] %s: %v", title, err)
	}

	notice := &partials.NoticeView{Kind: "error", Title: title, Message: message}

	if isHTMX(c) {
		view, verr := sessionWorkspace(c, notice)
		if verr != nil {
			return verr
		}
		return render(c, http.StatusOK, partials.Workspace(view))
	}

	if wantsHTML(c) {
		view, verr := sessionWorkspace(c, notice)
		if verr != nil {
			return verr
		}
		return render(c, code, pages.Home(pages.HomeView{Workspace: view, MaxUploadMB: getConfig(c).MaxUploadMB}))
	}

	return jsonError(c, code, message)
}

func jsonError(c echo.Context, code int, message string) error {
	return c.JSON(code, map[string]string{"error": message})
}
