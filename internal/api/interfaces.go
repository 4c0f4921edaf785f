// interfaces.go - Handler interfaces for dependency wiring
package api

import "github.com/labstack/echo/v4"

// HealthHandler serves liveness checks.
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// AnalyzeHandler serves ECG upload analysis and record retrieval.
type AnalyzeHandler interface {
	HandleAnalyze(c echo.Context) error
	HandleGetAnalysis(c echo.Context) error
	HandleRecentAnalyses(c echo.Context) error
	HandlePreviewMsgpack(c echo.Context) error
	HandleDeleteAnalysis(c echo.Context) error
}
