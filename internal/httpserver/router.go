package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/service"
	pkgdb "github.com/Skotchmaster/coffee_shop/pkg/db"
	middleware "github.com/Skotchmaster/coffee_shop/pkg/middleware/auth"
)

type Deps struct {
	DB         *gorm.DB
	JWTSecret  []byte
	UploadsDir string

	Orders   *OrderHTTP
	Payments *PaymentHTTP
	Menu     *MenuHTTP
	Vouchers *VoucherHTTP
	Auth     *AuthHTTP
	Uploads  *UploadHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if err := pkgdb.Ping(c.Request().Context(), d.DB); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
		}
		return c.NoContent(http.StatusOK)
	})

	authn := middleware.NewAuthenticator(d.JWTSecret)
	required := []echo.MiddlewareFunc{authn.RequireAuth, withCaller}
	optional := []echo.MiddlewareFunc{authn.Optional, withCaller}

	e.POST("/auth/login", d.Auth.Login)
	e.POST("/auth/logout", d.Auth.Logout)

	menu := e.Group("/menu")
	menu.GET("", d.Menu.ListMenuItems)
	menu.GET("/search", d.Menu.SearchMenuItems)
	menu.GET("/:id", d.Menu.GetMenuItem)

	admin := e.Group("/admin", required...)
	adminMenu := admin.Group("/menu", requireOp(service.OpManageMenu))
	adminMenu.POST("", d.Menu.CreateMenuItem)
	adminMenu.PATCH("/:id", d.Menu.PatchMenuItem)
	adminMenu.DELETE("/:id", d.Menu.DeleteMenuItem)
	adminMenu.POST("/:id/restock", d.Menu.RestockMenuItem)

	adminVouchers := admin.Group("/vouchers", requireOp(service.OpManageVoucher))
	adminVouchers.POST("", d.Vouchers.Create)
	adminVouchers.GET("", d.Vouchers.List)

	adminUsers := admin.Group("/users", requireOp(service.OpManageUsers))
	adminUsers.POST("", d.Auth.CreateUser)
	adminUsers.GET("", d.Auth.ListUsers)

	orders := e.Group("/orders")
	orders.POST("", d.Orders.PlaceOrder, chain(optional, allowAnonymous(service.OpPlaceOrder))...)
	orders.GET("", d.Orders.ListOrders, chain(required, requireOp(service.OpViewOrders))...)
	orders.GET("/:id", d.Orders.GetOrder, chain(required, requireOp(service.OpViewOrders))...)
	orders.PATCH("/:id", d.Orders.TransitionOrder, chain(required, requireOp(service.OpTransition))...)
	orders.DELETE("/:id", d.Orders.DeleteOrder, chain(required, requireOp(service.OpDeleteOrder))...)

	payments := e.Group("/payments")
	payments.POST("", d.Payments.SubmitPaymentProof, chain(optional, allowAnonymous(service.OpSubmitPayment))...)
	payments.PATCH("/:id", d.Payments.VerifyPayment, chain(required, requireOp(service.OpVerifyPayment))...)

	e.POST("/vouchers/apply", d.Vouchers.Apply)

	e.POST("/uploads", d.Uploads.Upload)
	if d.UploadsDir != "" {
		e.Static("/uploads", d.UploadsDir)
	}
}

func chain(base []echo.MiddlewareFunc, extra ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
	out := make([]echo.MiddlewareFunc, 0, len(base)+len(extra))
	return append(append(out, base...), extra...)
}
