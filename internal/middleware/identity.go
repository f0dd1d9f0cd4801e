package middleware

// identity.go provides a helper shared across middleware files to read the
// participant id stored in the Echo context by JWTAuth. Numeric JWT claims
// arrive as float64 after JSON decoding, so the helper normalizes the
// supported representations to uint64.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// contextUserID extracts the participant id from the context. The second
// return value is false when no authenticated participant is present.
func contextUserID(c echo.Context) (uint64, bool) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, true
	case int64:
		if t >= 0 {
			return uint64(t), true
		}
	case float64:
		if t >= 0 {
			return uint64(t), true
		}
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
