package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/room-booking-admin/internal/handler"    // handlers that drive the list views
	"github.com/iliyamo/room-booking-admin/internal/middleware" // response cache and entity scoping
)

// RegisterRoutes registers routes that sit outside the admin API.  At the
// moment it only exposes a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// entityRoutes is the part of EntityHandler that RegisterEntity needs.  It
// lets one function register users, rooms and bookings alike.
type entityRoutes interface {
	Entity() string
	Revision() uint64
	List(echo.Context) error
	View(echo.Context) error
	Search(echo.Context) error
	Sort(echo.Context) error
	Page(echo.Context) error
	ResetView(echo.Context) error
	OpenModal(echo.Context) error
	SetField(echo.Context) error
	Submit(echo.Context) error
	CancelModal(echo.Context) error
	RequestDelete(echo.Context) error
	ConfirmDelete(echo.Context) error
	CancelDelete(echo.Context) error
	Reload(echo.Context) error
}

// RegisterEntity mounts one list view under /v1/<entity>.  cache wraps only
// the stateless list query; session endpoints always hit the engine.
// The group is returned so callers can add entity-specific routes.
func RegisterEntity(e *echo.Echo, h entityRoutes, cache echo.MiddlewareFunc) *echo.Group {
	g := e.Group("/v1/"+h.Entity(), middleware.Scope(h.Entity(), h.Revision))

	// Stateless, cacheable query: ?search=&sort=&order=&page=
	if cache != nil {
		g.GET("", h.List, cache)
	} else {
		g.GET("", h.List)
	}

	// Session view state
	g.GET("/view", h.View)
	g.DELETE("/view", h.ResetView)
	g.PUT("/view/search", h.Search)
	g.POST("/view/sort", h.Sort)
	g.PUT("/view/page", h.Page)

	// Modal session
	g.POST("/modal", h.OpenModal)
	g.PATCH("/modal", h.SetField)
	g.POST("/modal/submit", h.Submit)
	g.DELETE("/modal", h.CancelModal)

	// Delete gate; nothing is removed before confirm
	g.POST("/:id/delete", h.RequestDelete)
	g.POST("/delete/confirm", h.ConfirmDelete)
	g.POST("/delete/cancel", h.CancelDelete)

	g.POST("/reload", h.Reload)
	return g
}

// RegisterDashboard mounts the summary endpoint.
func RegisterDashboard(e *echo.Echo, d *handler.DashboardHandler) {
	e.GET("/v1/dashboard", d.Get)
}
