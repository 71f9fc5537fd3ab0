package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

const SeedKeyHeader = "x-seed-key"

func errorJSON(msg string) map[string]interface{} {
	return map[string]interface{}{"success": false, "message": msg}
}

// x-seed-key ヘッダか seedKey クエリが一致するときだけ通す。
func SeedKeyGuard(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get(SeedKeyHeader)
			if got == "" {
				got = c.QueryParam("seedKey")
			}

			if key == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				return c.JSON(http.StatusUnauthorized, errorJSON("Unauthorized. Invalid seed key."))
			}

			return next(c)
		}
	}
}
