package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin returns a middleware that gates admin-only operations
// behind the injected allow-list of privileged participant ids. The
// denial carries no diagnostic detail. It assumes JWTAuth has already
// stored the participant id in the context.
func RequireAdmin(allowed map[uint64]bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := contextUserID(c)
			if !ok || !allowed[id] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
