// Package router maps the HTTP surface onto handlers and access
// middleware. Browsing the menu, tables and reviews is public; every
// mutation except review submission requires a staff token, and menu
// administration additionally requires the admin role.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-management/internal/handler"
	"github.com/iliyamo/restaurant-management/internal/middleware"
	"github.com/iliyamo/restaurant-management/internal/model"
)

// Deps bundles the handlers and the signing secret needed to build
// the route table.
type Deps struct {
	JWTSecret    string
	Health       echo.HandlerFunc
	Auth         *handler.AuthHandler
	Menu         *handler.MenuHandler
	Tables       *handler.TableHandler
	Customers    *handler.CustomerHandler
	Orders       *handler.OrderHandler
	Bills        *handler.BillHandler
	Reservations *handler.ReservationHandler
	Reviews      *handler.ReviewHandler
}

// Register wires every route of the API onto the Echo instance.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", d.Health)

	// Staff authentication, no token required.
	auth := e.Group("/v1/auth")
	auth.POST("/signup", d.Auth.Signup)
	auth.POST("/login", d.Auth.Login)

	// Public browsing. Guests read the menu and table availability
	// and submit reviews without an account.
	e.GET("/v1/menu", d.Menu.List)
	e.GET("/v1/menu/categories", d.Menu.Categories)
	e.GET("/v1/menu/:id", d.Menu.Get)
	e.GET("/v1/tables", d.Tables.List)
	e.GET("/v1/tables/:id", d.Tables.Get)
	e.GET("/v1/reviews", d.Reviews.List)
	e.GET("/v1/reviews/:id", d.Reviews.Get)
	e.POST("/v1/reviews", d.Reviews.Create)
	e.GET("/v1/stats", d.Reviews.Stats)

	// Staff endpoints: anything that creates or destroys rows in the
	// workflow tables runs behind the access token.
	staff := e.Group("/v1", middleware.JWTAuth(d.JWTSecret))

	staff.POST("/orders", d.Orders.Place)
	staff.GET("/orders", d.Orders.List)
	staff.GET("/orders/:id", d.Orders.Get)
	staff.DELETE("/orders/:id", d.Orders.Delete)

	staff.POST("/bills", d.Bills.Create)
	staff.GET("/bills", d.Bills.List)
	staff.GET("/bills/:id", d.Bills.Get)

	staff.POST("/reservations", d.Reservations.Reserve)
	staff.GET("/reservations", d.Reservations.List)
	staff.GET("/reservations/:id", d.Reservations.Get)
	staff.DELETE("/reservations/:id", d.Reservations.Cancel)

	staff.GET("/customers", d.Customers.List)
	staff.GET("/customers/:id", d.Customers.Get)
	staff.POST("/customers", d.Customers.Create)

	// Catalogue administration is admin-only.
	admin := staff.Group("", middleware.RequireRole(model.RoleAdmin))
	admin.POST("/menu", d.Menu.Create)
	admin.PUT("/menu/:id", d.Menu.Update)
	admin.DELETE("/menu/:id", d.Menu.Delete)
	admin.DELETE("/reviews/:id", d.Reviews.Delete)
}
