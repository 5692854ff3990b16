package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/service"
)

// httpError maps a service error onto a status and a message safe to show
// the client. Anything unclassified is a 500 with a generic message.
func httpError(l *slog.Logger, event string, err error) error {
	code := http.StatusInternalServerError
	msg := "internal error"

	var stockErr *service.InsufficientStockError
	switch {
	case errors.Is(err, service.ErrAlreadyVerified), errors.Is(err, service.ErrDuplicate):
		code, msg = http.StatusConflict, err.Error()
	case errors.As(err, &stockErr):
		code, msg = http.StatusBadRequest, stockErr.Error()
	case errors.Is(err, service.ErrBadCredentials):
		code, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		code, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotFound):
		code, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrForbidden):
		code, msg = http.StatusForbidden, err.Error()
	}

	if code >= 500 {
		l.Error(event, "status", code, "reason", msg, "error", err)
	} else {
		l.Warn(event, "status", code, "reason", msg, "error", err)
	}
	return echo.NewHTTPError(code, msg)
}

func badRequest(l *slog.Logger, event, reason string, err error) error {
	l.Warn(event, "status", http.StatusBadRequest, "reason", reason, "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, reason)
}

// ErrorHandler renders every error as {"error": "..."}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if he.Internal != nil && code >= 500 {
			msg = http.StatusText(code)
		} else if m, ok := he.Message.(string); ok {
			msg = m
		} else if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, map[string]string{"error": msg})
}
