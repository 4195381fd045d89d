package http

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	adaptermiddleware "asset-console/internal/adapters/http/middleware"
)

type Middleware struct {
	XRay          echo.MiddlewareFunc
	RequestLogger echo.MiddlewareFunc
	SetupGate     echo.MiddlewareFunc
	Session       echo.MiddlewareFunc
	State         adaptermiddleware.SessionState
}

// NewMainRouter wires every store operation behind the gate chain:
// X-Ray segment, request log, setup gate, session, then per-route
// permission.
func NewMainRouter(assets *AssetsHandler, roles *RolesHandler, auth *AuthHandler, m Middleware) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	if m.XRay != nil {
		e.Use(m.XRay)
	}
	if m.RequestLogger != nil {
		e.Use(m.RequestLogger)
	}
	if m.SetupGate != nil {
		e.Use(m.SetupGate)
	}
	if m.Session != nil {
		e.Use(m.Session)
	}

	perm := func(id string) echo.MiddlewareFunc {
		return adaptermiddleware.RequirePermission(m.State, id)
	}

	e.POST("/login", auth.Login)
	e.POST("/logout", auth.Logout)
	e.GET("/session", auth.Session)
	e.PATCH("/session/user", auth.UpdateUser)
	e.POST("/setup/complete", auth.CompleteSetup)

	e.GET("/assets", assets.List, perm("assets.read"))
	e.POST("/assets", assets.Create, perm("assets.create"))
	e.GET("/assets/export", assets.Export, perm("reports.assets"))
	e.POST("/assets/import", assets.Import, perm("assets.create"))
	e.GET("/assets/rfid/:tag", assets.Scan, perm("rfid.scan"))
	e.GET("/assets/:id", assets.Get, perm("assets.read"))
	e.PATCH("/assets/:id", assets.Update, perm("assets.update"))
	e.DELETE("/assets/:id", assets.Delete, perm("assets.delete"))
	e.GET("/categories", assets.Categories, perm("assets.read"))

	e.GET("/roles", roles.List, perm("roles.read"))
	e.POST("/roles", roles.Create, perm("roles.create"))
	e.PATCH("/roles/:id", roles.Update, perm("roles.update"))
	e.DELETE("/roles/:id", roles.Delete, perm("roles.delete"))
	e.POST("/roles/:id/permissions", roles.AssignPermission, perm("roles.update"))
	e.DELETE("/roles/:id/permissions/:permission_id", roles.RemovePermission, perm("roles.update"))
	e.GET("/permissions", roles.Permissions, perm("roles.read"))
	e.GET("/schema", roles.Schema, perm("system.settings"))
	e.PUT("/schema", roles.UpdateSchema, perm("system.settings"))

	return e
}
