package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		res := ErrorResponse{Message: he.Message}
		// 開発時だけ原因を返す
		if he.Status >= http.StatusInternalServerError && he.Err != nil && c.Echo().Debug {
			res.Error = he.Err.Error()
		}
		return c.JSON(he.Status, res)
	}

	//500
	res := ErrorResponse{Message: "Internal server error"}
	if c.Echo().Debug {
		res.Error = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, res)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Message: msg})
}
