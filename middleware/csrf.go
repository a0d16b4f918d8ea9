package middleware

import (
	"net/http"

	"sticker_factory_go/config"
	"sticker_factory_go/templates/components"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// CSRFFormField is the hidden input name plain form posts carry the token in
const CSRFFormField = "_csrf"

// CSRF protects the browser routes. HTMX requests send the token in a header
// set on <body>; the print form posts it as a hidden field.
func CSRF(cfg *config.Config) echo.MiddlewareFunc {
	return echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		TokenLookup:    "header:" + components.CSRFHeaderName + ",form:" + CSRFFormField,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.SecureCookies,
		CookieSameSite: http.SameSiteLaxMode,
	})
}

// GetCSRFToken returns the token the CSRF middleware stored for this request,
// or "" outside the protected routes
func GetCSRFToken(c echo.Context) string {
	token, _ := c.Get(echomiddleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}
