package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/service"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
	"github.com/Skotchmaster/coffee_shop/internal/util"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

type MenuHTTP struct {
	Svc *service.MenuService
}

func (h *MenuHTTP) GetMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.get")

	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		return badRequest(l, "get_menu_item_error", "id is not a number", err)
	}
	item, err := h.Svc.GetMenuItem(ctx, id)
	if err != nil {
		return httpError(l, "get_menu_item_error", err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *MenuHTTP) ListMenuItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListMenuItems(ctx, c.QueryParam("category"), offset, limit)
	if err != nil {
		return httpError(l, "list_menu_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": util.Meta(page, offset, limit, total),
	})
}

func (h *MenuHTTP) SearchMenuItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.Search(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		return httpError(l, "search_menu_error", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": util.Meta(page, offset, limit, total),
	})
}

func (h *MenuHTTP) CreateMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.create")

	var req transport.CreateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_menu_item_error", "invalid body", err)
	}
	item, err := h.Svc.CreateMenuItem(ctx, req)
	if err != nil {
		return httpError(l, "create_menu_item_error", err)
	}

	l.Info("create_menu_item_success", "menu_id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *MenuHTTP) PatchMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.patch")

	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		return badRequest(l, "patch_menu_item_error", "id is not a number", err)
	}
	var req transport.PatchMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "patch_menu_item_error", "invalid body", err)
	}
	item, err := h.Svc.PatchMenuItem(ctx, req, id)
	if err != nil {
		return httpError(l, "patch_menu_item_error", err)
	}

	l.Info("patch_menu_item_success", "menu_id", id)
	return c.JSON(http.StatusOK, item)
}

func (h *MenuHTTP) RestockMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.restock")

	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		return badRequest(l, "restock_error", "id is not a number", err)
	}
	var req transport.RestockRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "restock_error", "invalid body", err)
	}
	item, err := h.Svc.Restock(ctx, id, req.Quantity)
	if err != nil {
		return httpError(l, "restock_error", err)
	}

	l.Info("restock_success", "menu_id", id, "stock", item.Stock)
	return c.JSON(http.StatusOK, item)
}

func (h *MenuHTTP) DeleteMenuItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.delete")

	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		return badRequest(l, "delete_menu_item_error", "id is not a number", err)
	}
	if err := h.Svc.DeleteMenuItem(ctx, id); err != nil {
		return httpError(l, "delete_menu_item_error", err)
	}

	l.Info("delete_menu_item_success", "menu_id", id)
	return c.NoContent(http.StatusNoContent)
}
