package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func runWriteError(debug bool, err error) *httptest.ResponseRecorder {
	e := echo.New()
	e.Debug = debug
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = writeError(c, err)
	return rec
}

func TestWriteError(t *testing.T) {
	cause := errors.New("dial tcp: refused")

	tests := []struct {
		name   string
		debug  bool
		err    error
		status int
		body   string
	}{
		{
			name:   "client error",
			err:    usecase.NewHTTPError(http.StatusNotFound, "Product not found"),
			status: http.StatusNotFound,
			body:   `{"success":false,"message":"Product not found"}`,
		},
		{
			name:   "server error hides cause in production",
			err:    serverError(cause),
			status: http.StatusInternalServerError,
			body:   `{"success":false,"message":"Error fetching products"}`,
		},
		{
			name:   "server error shows cause in development",
			debug:  true,
			err:    serverError(cause),
			status: http.StatusInternalServerError,
			body:   `{"success":false,"message":"Error fetching products","error":"dial tcp: refused"}`,
		},
		{
			name:   "plain error",
			err:    cause,
			status: http.StatusInternalServerError,
			body:   `{"success":false,"message":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runWriteError(tt.debug, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

// usecaseの500と同じ形のエラーを作る
func serverError(err error) error {
	return &usecase.HTTPError{Status: http.StatusInternalServerError, Message: "Error fetching products", Err: err}
}
