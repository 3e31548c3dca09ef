package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lfmelo/stockboard/internal/utils"
)

// Context keys under which the gate stores the caller's identity. The
// values are scoped to the single in-flight request; nothing global is
// mutated.
const (
	ctxUserID   = "user_id"
	ctxUserName = "user_name"
)

// Authenticate returns an Echo middleware that guards protected routes. A
// missing bearer token is rejected with 401, an invalid or expired one with
// 403; the two cases intentionally carry different status codes so the
// frontend can distinguish "log in" from "session ended". On success the
// decoded identity is attached to the request context for handlers to read
// via CallerID/CallerName.
func Authenticate(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token não enviado"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseSessionToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Token inválido"})
			}
			uid, err := claims.UserID()
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Token inválido"})
			}

			c.Set(ctxUserID, uid)
			c.Set(ctxUserName, claims.Name)
			return next(c)
		}
	}
}

// CallerID extracts the authenticated account id attached by Authenticate.
// ok is false when the route was not wrapped by the gate.
func CallerID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(ctxUserID).(uint64)
	return id, ok && id != 0
}

// CallerName extracts the display name attached by Authenticate.
func CallerName(c echo.Context) string {
	name, _ := c.Get(ctxUserName).(string)
	return name
}
