package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sticker_factory_go/config"
	"sticker_factory_go/handlers"
	"sticker_factory_go/middleware"
	"sticker_factory_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// In-memory sticker sessions, swept every 10 minutes
	services.Sessions = services.NewSessionStore(cfg.SessionTTL, cfg.DefaultLayout)
	services.Sessions.StartCleanup(ctx, 10*time.Minute)

	// Headless Chrome print dispatcher
	services.Printer = services.NewChromePrintDispatcher(cfg.ChromePath, cfg.PrintTimeout)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Debug = !cfg.IsProduction()

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(fmt.Sprintf("%dM", cfg.MaxUploadMB+1)))
	e.Use(middleware.CSPNonce())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	e.GET("/healthz", handlers.HealthHandler)

	// Stateless JSON API
	api := e.Group("/api/stickers")
	{
		api.POST("/extract", handlers.ExtractStickersAPIHandler, middleware.UploadRateLimiter.Middleware())
		api.POST("/paginate", handlers.PaginateStickersAPIHandler)
	}

	// Browser routes (sticker session + CSRF)
	web := e.Group("")
	web.Use(middleware.StickerSession())
	web.Use(middleware.CSRF(cfg))
	{
		web.GET("/", handlers.HomeHandler)
		web.GET("/stickers/preview", handlers.PreviewStickersHandler)
		web.GET("/stickers/sample.xlsx", handlers.DownloadSampleSheetHandler)
		web.POST("/stickers/upload", handlers.UploadStickersHandler, middleware.UploadRateLimiter.Middleware())
		web.POST("/stickers/layout", handlers.UpdateLayoutHandler)
		web.POST("/stickers/print", handlers.PrintStickersHandler, middleware.PrintRateLimiter.Middleware())
	}

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[INFO] Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.PrintTimeout+5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] Graceful shutdown failed: %v", err)
	}
	middleware.UploadRateLimiter.Stop()
	middleware.PrintRateLimiter.Stop()
}
