package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Newはmiddlewareとルートを組み立てたechoを返す
func New(cfg config.Config, log *zap.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.GoEnv == "development"
	e.HTTPErrorHandler = errorHandler(log)

	e.Use(echomw.RequestID())
	e.Use(middleware.AccessLog(log))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.AllowedOrigin()},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, middleware.SeedKeyHeader},
		AllowCredentials: true,
	}))

	RegisterRoutes(e, h, cfg.SeedKey)
	return e
}

// echo内部のエラー（404/405/panic）も同じ形で返す
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		res := handler.ErrorResponse{Message: "Internal server error"}
		status := http.StatusInternalServerError

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			switch status {
			case http.StatusNotFound:
				res.Message = "Route not found"
			default:
				if msg, ok := he.Message.(string); ok {
					res.Message = msg
				} else {
					res.Message = http.StatusText(status)
				}
			}
		} else {
			log.Error("unhandled error", zap.Error(err))
			if c.Echo().Debug {
				res.Error = err.Error()
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, res)
		}
		if err != nil {
			log.Warn("write error response failed", zap.Error(err))
		}
	}
}

// Startはctxがキャンセルされるまで待ち、その後graceful shutdownする
func Start(ctx context.Context, e *echo.Echo, addr string, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
