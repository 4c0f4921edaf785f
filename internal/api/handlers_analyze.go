// handlers_analyze.go - ECG upload analysis handlers
package api

import (
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/abbey12/CardioMate-AI-sub000/internal/parser"
	"github.com/abbey12/CardioMate-AI-sub000/internal/pipeline"
	"github.com/abbey12/CardioMate-AI-sub000/internal/store"
)

// AnalyzeHandlerImpl implements the AnalyzeHandler interface.
type AnalyzeHandlerImpl struct {
	records             *store.Records
	defaultSampleRateHz float64
	previewSamples      int
}

// NewAnalyzeHandler creates a new analysis handler instance.
func NewAnalyzeHandler(records *store.Records, defaultSampleRateHz float64, previewSamples int) AnalyzeHandler {
	return &AnalyzeHandlerImpl{
		records:             records,
		defaultSampleRateHz: defaultSampleRateHz,
		previewSamples:      previewSamples,
	}
}

// HandleAnalyze accepts a multipart upload, runs the preprocessing
// pipeline on it and stores the resulting record. The optional
// sampleRateHz query parameter overrides the configured default; the
// resolved value is passed into the pipeline explicitly.
func (h *AnalyzeHandlerImpl) HandleAnalyze(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return NewBadRequestError("missing multipart field: file", err)
	}

	rate := h.defaultSampleRateHz
	if q := c.QueryParam("sampleRateHz"); q != "" {
		rate, err = strconv.ParseFloat(q, 64)
		if err != nil || rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			return NewValidationError("sampleRateHz", "must be a positive finite number")
		}
	}

	f, err := fileHeader.Open()
	if err != nil {
		return NewInternalError("failed to open upload", err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return NewInternalError("failed to read upload", err)
	}

	analysis, err := pipeline.Run(content, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), pipeline.Options{
		SampleRateHz:   rate,
		PreviewSamples: h.previewSamples,
	})
	if err != nil {
		var pe *parser.ParseError
		switch {
		case errors.Is(err, pipeline.ErrUnsupportedFormat):
			return NewUnsupportedFormatError()
		case errors.As(err, &pe):
			return NewParseFailedError(pe)
		default:
			return NewBadRequestError("analysis failed", err)
		}
	}

	rec := h.records.Add(fileHeader.Filename, analysis.Format, analysis.Preprocess, analysis.Preview)
	return c.JSON(http.StatusCreated, rec)
}

// HandleGetAnalysis returns a stored analysis record by ID.
func (h *AnalyzeHandlerImpl) HandleGetAnalysis(c echo.Context) error {
	id := c.Param("id")
	rec, err := h.records.Get(id)
	if err != nil {
		return NewNotFoundError("analysis", id)
	}
	return c.JSON(http.StatusOK, rec)
}

// HandleRecentAnalyses returns recent records, newest first. The limit
// query parameter defaults to 20.
func (h *AnalyzeHandlerImpl) HandleRecentAnalyses(c echo.Context) error {
	limit := 20
	if q := c.QueryParam("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			return NewValidationError("limit", "must be a positive integer")
		}
		limit = n
	}
	return c.JSON(http.StatusOK, h.records.Recent(limit))
}

// HandlePreviewMsgpack returns the preview waveforms of a record as
// msgpack, the compact transfer the waveform renderer prefers over JSON.
func (h *AnalyzeHandlerImpl) HandlePreviewMsgpack(c echo.Context) error {
	id := c.Param("id")
	rec, err := h.records.Get(id)
	if err != nil {
		return NewNotFoundError("analysis", id)
	}

	data, err := msgpack.Marshal(map[string]interface{}{
		"id":         rec.ID,
		"cleaned":    rec.Preview.Cleaned,
		"normalized": rec.Preview.Normalized,
	})
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}
	return c.Blob(http.StatusOK, "application/msgpack", data)
}

// HandleDeleteAnalysis removes a stored record.
func (h *AnalyzeHandlerImpl) HandleDeleteAnalysis(c echo.Context) error {
	id := c.Param("id")
	if err := h.records.Delete(id); err != nil {
		return NewNotFoundError("analysis", id)
	}
	return c.NoContent(http.StatusNoContent)
}
