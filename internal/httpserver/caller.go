package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/service"
	middleware "github.com/Skotchmaster/coffee_shop/pkg/middleware/auth"
)

const ctxCaller = "caller"

// callerFrom returns the identity the auth middleware attached, or an
// anonymous caller when there is none.
func callerFrom(c echo.Context) service.Caller {
	if caller, ok := c.Get(ctxCaller).(service.Caller); ok {
		return caller
	}
	return service.Caller{}
}

// withCaller resolves the verified token fields into a service.Caller once
// per request. Tokens carrying an unknown role are rejected.
func withCaller(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sub := middleware.UserID(c)
		if sub == "" {
			return next(c)
		}
		caller, err := service.CallerFromClaims(sub, middleware.Role(c), middleware.Name(c))
		if err != nil {
			return echo.NewHTTPError(http.StatusForbidden, "unknown role")
		}
		c.Set(ctxCaller, caller)
		return next(c)
	}
}

// requireOp lets the request through only if the caller's role may perform op.
func requireOp(op service.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := service.Authorize(callerFrom(c).Role, op); err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// allowAnonymous admits callers without a token and checks op for everyone
// else.
func allowAnonymous(op service.Operation) echo.MiddlewareFunc {
	check := requireOp(op)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		guarded := check(next)
		return func(c echo.Context) error {
			if callerFrom(c).Anonymous() {
				return next(c)
			}
			return guarded(c)
		}
	}
}
