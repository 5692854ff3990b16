package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/service"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
	middleware "github.com/Skotchmaster/coffee_shop/pkg/middleware/auth"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "login_error", "invalid body", err)
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(l, "login_error", err)
	}

	c.SetCookie(middleware.CreateCookie(middleware.AccessCookie, res.AccessToken, "/", res.AccessExp))
	l.Info("login_success", "user_id", res.User.ID, "role", res.User.Role)
	return c.JSON(http.StatusOK, map[string]any{
		"token": res.AccessToken,
		"user":  res.User,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	c.SetCookie(middleware.DeleteCookie(middleware.AccessCookie, "/"))
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.create_user")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_user_error", "invalid body", err)
	}
	user, err := h.Svc.CreateUser(ctx, req)
	if err != nil {
		return httpError(l, "create_user_error", err)
	}

	l.Info("create_user_success", "user_id", user.ID, "role", user.Role)
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.list_users")

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		return httpError(l, "list_users_error", err)
	}
	return c.JSON(http.StatusOK, users)
}
