package middleware

import (
	"net/http"

	"sticker_factory_go/config"
	"sticker_factory_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the name of the sticker session cookie
	SessionCookieName = "sticker_session"
	// ContextKeySession is the context key for the sticker session id
	ContextKeySession = "sticker_session_id"
)

// StickerSession makes sure every request carries a sticker session id. A
// missing or malformed cookie is replaced by a fresh id.
func StickerSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					id = cookie.Value
				}
			}

			if id == "" {
				id = services.NewSessionID()
				setSessionCookie(c, id)
			}

			c.Set(ContextKeySession, id)
			return next(c)
		}
	}
}

// GetSessionID returns the sticker session id stored by StickerSession
func GetSessionID(c echo.Context) string {
	if id, ok := c.Get(ContextKeySession).(string); ok {
		return id
	}
	return ""
}

func setSessionCookie(c echo.Context, id string) {
	var secure bool
	if cfg, ok := c.Get("config").(*config.Config); ok {
		secure = cfg.SecureCookies
	}

	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
}
