package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/gigboard/gigboard/internal/config"
	"github.com/gigboard/gigboard/internal/handler"
	"github.com/gigboard/gigboard/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterDirectory registers the public directory surface: venues,
// artists and shows. These routes carry the IP rate limiter but no
// JWT; browsing and listing are open to everyone.
func RegisterDirectory(e *echo.Echo, v *handler.VenueHandler, a *handler.ArtistHandler, s *handler.ShowHandler, rl config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("", middleware.NewTokenBucket(rl, rdb))

	// Venues: grouped index, search, detail, create, edit, delete.
	g.GET("/venues", v.List)
	g.POST("/venues/search", v.Search)
	g.GET("/venues/create", v.NewForm)
	g.POST("/venues/create", v.Create)
	g.GET("/venues/:id", v.Get)
	g.GET("/venues/:id/edit", v.EditForm)
	g.POST("/venues/:id/edit", v.Edit)
	g.DELETE("/venues/:id", v.Delete)

	// Artists: flat index, search, detail, create, edit.
	g.GET("/artists", a.List)
	g.POST("/artists/search", a.Search)
	g.GET("/artists/create", a.NewForm)
	g.POST("/artists/create", a.Create)
	g.GET("/artists/:id", a.Get)
	g.GET("/artists/:id/edit", a.EditForm)
	g.POST("/artists/:id/edit", a.Edit)

	// Shows: listing, search, create. Insert-only, no edit routes.
	g.GET("/shows", s.List)
	g.POST("/shows/search", s.Search)
	g.GET("/shows/create", s.NewForm)
	g.POST("/shows/create", s.Create)
}

// RegisterAuth registers the promoter account routes. Register, login,
// refresh and logout live under /v1/auth; /v1/me requires a valid
// access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}
