// handlers_test.go - Tests for the analysis handlers
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/abbey12/CardioMate-AI-sub000/internal/models"
	"github.com/abbey12/CardioMate-AI-sub000/internal/store"
	"github.com/abbey12/CardioMate-AI-sub000/internal/testutil"
)

func newAnalyzeHandler() (AnalyzeHandler, *store.Records) {
	records := store.NewRecords(10)
	return NewAnalyzeHandler(records, 250, 2000), records
}

// multipartBody builds a multipart form with one file field.
func multipartBody(t *testing.T, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if contentType != "" {
		hdr.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return body, w.FormDataContentType()
}

func doAnalyze(t *testing.T, h AnalyzeHandler, target, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, formType := multipartBody(t, filename, contentType, content)

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set(echo.HeaderContentType, formType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.HandleAnalyze(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func syntheticCSV(t *testing.T) []byte {
	t.Helper()
	samples := testutil.SyntheticECG(75, 250, 10)
	var sb strings.Builder
	for _, v := range samples {
		fmt.Fprintf(&sb, "%.6f\n", v)
	}
	return []byte(sb.String())
}

func TestHandleAnalyze_CSVUpload(t *testing.T) {
	h, records := newAnalyzeHandler()

	rec := doAnalyze(t, h, "/api/ecg/analyze", "ecg.csv", "text/csv", syntheticCSV(t))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got models.AnalysisRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, models.FormatCSV, got.Format)
	assert.Equal(t, 2500, got.Preprocess.SampleCount)
	assert.InDelta(t, 10.0, got.Preprocess.DurationSec, 1e-9)
	require.NotNil(t, got.Preprocess.EstimatedHeartRateBpm)
	assert.InDelta(t, 75, *got.Preprocess.EstimatedHeartRateBpm, 5)
	assert.NotEmpty(t, got.Preprocess.RPeakIndices)
	assert.LessOrEqual(t, len(got.Preview.Cleaned), 2000)

	// Stored record matches the response.
	stored, err := records.Get(got.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Preprocess.SampleCount, stored.Preprocess.SampleCount)
}

func TestHandleAnalyze_SampleRateOverride(t *testing.T) {
	h, _ := newAnalyzeHandler()

	rec := doAnalyze(t, h, "/api/ecg/analyze?sampleRateHz=500", "ecg.csv", "", []byte("0.1\n0.2\n0.3\n"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.AnalysisRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 500.0, got.Preprocess.SampleRateHz)
}

func TestHandleAnalyze_InvalidSampleRate(t *testing.T) {
	h, _ := newAnalyzeHandler()

	for _, q := range []string{"0", "-250", "abc", "Inf"} {
		rec := doAnalyze(t, h, "/api/ecg/analyze?sampleRateHz="+q, "ecg.csv", "", []byte("0.1\n"))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "sampleRateHz=%s", q)

		var apiErr APIError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
		assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	}
}

func TestHandleAnalyze_UnsupportedFormat(t *testing.T) {
	h, _ := newAnalyzeHandler()

	rec := doAnalyze(t, h, "/api/ecg/analyze", "notes.txt", "text/plain", []byte("hello"))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "UNSUPPORTED_FORMAT", apiErr.Code)
	// The message lists every accepted extension.
	for _, ext := range models.AcceptedExtensions {
		assert.Contains(t, apiErr.Message, ext)
	}
}

func TestHandleAnalyze_MalformedUpload(t *testing.T) {
	h, _ := newAnalyzeHandler()

	rec := doAnalyze(t, h, "/api/ecg/analyze", "ecg.json", "application/json", []byte(`[1, "bad"]`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "PARSE_ERROR", apiErr.Code)
	assert.Contains(t, apiErr.Details, "row 1")
}

func TestHandleAnalyze_ImageUploadSentinel(t *testing.T) {
	h, _ := newAnalyzeHandler()

	rec := doAnalyze(t, h, "/api/ecg/analyze", "scan.png", "image/png", []byte{0x89, 'P', 'N', 'G'})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got models.AnalysisRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.FormatImage, got.Format)
	assert.Zero(t, got.Preprocess.SampleCount)
	assert.Nil(t, got.Preprocess.EstimatedHeartRateBpm)
	assert.Empty(t, got.Preprocess.RPeakIndices)
}

func TestHandleAnalyze_MissingFile(t *testing.T) {
	h, _ := newAnalyzeHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/ecg/analyze", strings.NewReader("{}"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.HandleAnalyze(c)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestHandleGetAnalysis(t *testing.T) {
	h, records := newAnalyzeHandler()
	stored := records.Add("ecg.csv", models.FormatCSV, models.EmptyPreprocessResult(), models.SignalPreview{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(stored.ID)

	require.NoError(t, h.HandleGetAnalysis(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.AnalysisRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, stored.ID, got.ID)
}

func TestHandleGetAnalysis_NotFound(t *testing.T) {
	h, _ := newAnalyzeHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.HandleGetAnalysis(c)
	require.Error(t, err)
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestHandlePreviewMsgpack(t *testing.T) {
	h, records := newAnalyzeHandler()
	stored := records.Add("ecg.csv", models.FormatCSV, models.EmptyPreprocessResult(), models.SignalPreview{
		Cleaned:    []float64{0.1, 0.2},
		Normalized: []float64{1.0, 2.0},
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(stored.ID)

	require.NoError(t, h.HandlePreviewMsgpack(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/msgpack", rec.Header().Get(echo.HeaderContentType))

	var decoded map[string]interface{}
	require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, stored.ID, decoded["id"])
}

func TestHandleRecentAnalyses(t *testing.T) {
	h, records := newAnalyzeHandler()
	for i := 0; i < 5; i++ {
		records.Add(fmt.Sprintf("file-%d.csv", i), models.FormatCSV, models.EmptyPreprocessResult(), models.SignalPreview{})
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?limit=3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.HandleRecentAnalyses(c))

	var got []models.AnalysisRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "file-4.csv", got[0].FileName)
}
