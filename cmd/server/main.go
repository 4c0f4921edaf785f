package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/abbey12/CardioMate-AI-sub000/internal/api"
	"github.com/abbey12/CardioMate-AI-sub000/internal/config"
	"github.com/abbey12/CardioMate-AI-sub000/internal/store"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "cardiomate.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	records := store.NewRecords(cfg.Records.MaxRecords)

	handlers := api.NewHandlers(&api.Dependencies{
		Records: records,
		Config:  cfg,
		Version: Version,
	})

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/api/health"
		},
	}))
	e.Use(middleware.Recover())
	// The upload ceiling; anything larger never reaches the pipeline.
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	e.Use(middleware.Gzip())

	if cfg.Server.EnableCORS {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{cfg.Server.AllowOrigins},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	api.RegisterRoutes(e, handlers)

	s := &http.Server{
		Addr:         cfg.ServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	fmt.Printf("CardioMate ECG backend %s (built %s)\n", Version, BuildTime)
	fmt.Printf("Listening on http://%s\n", cfg.ServerAddr())
	fmt.Printf("Default sample rate: %g Hz, preview: %d samples, upload limit: %s\n",
		cfg.Pipeline.DefaultSampleRateHz, cfg.Pipeline.PreviewSamples, cfg.Server.BodyLimit)

	e.Logger.Fatal(e.StartServer(s))
}
