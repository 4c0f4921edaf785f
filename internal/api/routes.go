// routes.go - Route registration helpers
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/abbey12/CardioMate-AI-sub000/internal/config"
	"github.com/abbey12/CardioMate-AI-sub000/internal/store"
)

// Dependencies holds all handler dependencies.
type Dependencies struct {
	Records *store.Records
	Config  *config.Config
	Version string
}

// Handlers holds all handler instances.
type Handlers struct {
	Health  HealthHandler
	Analyze AnalyzeHandler
}

// NewHandlers creates all handler instances.
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(deps.Version),
		Analyze: NewAnalyzeHandler(
			deps.Records,
			deps.Config.Pipeline.DefaultSampleRateHz,
			deps.Config.Pipeline.PreviewSamples,
		),
	}
}

// RegisterRoutes registers all API routes with the Echo instance.
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	e.GET("/api/health", handlers.Health.HandleHealth)

	ecgGroup := e.Group("/api/ecg")
	ecgGroup.POST("/analyze", handlers.Analyze.HandleAnalyze)
	ecgGroup.GET("/analyses/recent", handlers.Analyze.HandleRecentAnalyses)
	ecgGroup.GET("/analyses/:id", handlers.Analyze.HandleGetAnalysis)
	ecgGroup.GET("/analyses/:id/preview.msgpack", handlers.Analyze.HandlePreviewMsgpack)
	ecgGroup.DELETE("/analyses/:id", handlers.Analyze.HandleDeleteAnalysis)
}
