package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/bookit/bookit/internal/handler" // import the handlers that implement business logic
)

// RegisterRoutes registers routes that do not require the API prefix on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the public BookIt endpoints under /api.  The
// rate limiter guards the whole group; the response cache wraps only
// the catalog reads, because booking and promo responses must never be
// served stale.  Either middleware may be nil, in which case it is
// simply not applied (e.g. when Redis is unavailable).
func RegisterAPI(e *echo.Echo, catalog *handler.CatalogHandler, booking *handler.BookingHandler, cache, limiter echo.MiddlewareFunc) {
	g := e.Group("/api")
	if limiter != nil {
		g.Use(limiter)
	}

	// Catalog reads (home page and detail page). Cacheable.
	if cache != nil {
		g.GET("/experiences", catalog.ListExperiences, cache)
		g.GET("/experiences/:id", catalog.GetExperience, cache)
	} else {
		g.GET("/experiences", catalog.ListExperiences)
		g.GET("/experiences/:id", catalog.GetExperience)
	}

	// Checkout page promo validation. Static table, never cached.
	g.POST("/promo/validate", handler.ValidatePromo)

	// Checkout and confirmation.
	g.POST("/bookings", booking.CreateBooking)
	g.GET("/bookings/:id", booking.GetBooking)
}
