package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv" // .env loader for local development
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/bookit/bookit/internal/config"
	"github.com/bookit/bookit/internal/database"
	"github.com/bookit/bookit/internal/handler"
	"github.com/bookit/bookit/internal/middleware"
	"github.com/bookit/bookit/internal/queue"
	"github.com/bookit/bookit/internal/repository"
	"github.com/bookit/bookit/internal/router"
	"github.com/bookit/bookit/internal/service"
)

func main() {
	// Load .env if present; real environments set variables directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	// Open the catalog store once and inject it everywhere; it is
	// closed when the process exits.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	experienceRepo := repository.NewExperienceRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	reservations := service.NewReservationService(bookingRepo)

	catalogHandler := handler.NewCatalogHandler(experienceRepo)
	bookingHandler := handler.NewBookingHandler(reservations, bookingRepo, queue.PublishBookingConfirmed)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
		AllowCredentials: true,
	}))

	// Redis is optional: without it the cache and limiter middlewares
	// are left out and every request goes straight to the handlers.
	var cacheMW, limiterMW echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
		limiterMW = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	} else {
		log.Printf("redis unavailable: response cache and rate limiting disabled")
	}

	router.RegisterRoutes(e)
	router.RegisterAPI(e, catalogHandler, bookingHandler, cacheMW, limiterMW)

	// Background consumer that appends confirmed bookings to
	// logs/booking.log. It reconnects on broker failure and never
	// takes the server down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
