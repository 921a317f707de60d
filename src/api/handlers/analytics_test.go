package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"server/src/api/handlers"
	"server/src/models"
	"server/src/schemas"
	"server/src/services"
)

type fakeController struct {
	report      *schemas.AnalyticsReport
	projections *schemas.ProjectionReport
	rateSet     *schemas.RateSet
	err         error
}

func (f *fakeController) GenerateAnalyticsReport(_ context.Context, _ []models.Holding) (*schemas.AnalyticsReport, error) {
	return f.report, f.err
}

func (f *fakeController) GenerateProjections(_ context.Context, _ []models.Holding, _ schemas.GoalParams) (*schemas.ProjectionReport, error) {
	return f.projections, f.err
}

func (f *fakeController) GetRegionRates(_ context.Context, _ string) (*schemas.RateSet, error) {
	return f.rateSet, f.err
}

func TestGenerateAnalyticsReportHandler(t *testing.T) {
	t.Run("should return 200 with the report payload", func(t *testing.T) {
		report := &schemas.AnalyticsReport{
			Metadata: schemas.ReportMetadata{RequestID: "req-1", Region: schemas.RegionUS},
		}
		handler := &handlers.Handler{Controller: &fakeController{report: report}}

		body := `{"holdings":[{"ticker":"AAPL","status":"Vested"}]}`
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/api/analytics/report", strings.NewReader(body))

		handler.GenerateAnalyticsReport(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

		var decoded schemas.AnalyticsReport
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
		assert.Equal(t, "req-1", decoded.Metadata.RequestID)
	})

	t.Run("should return 400 on a malformed body", func(t *testing.T) {
		handler := &handlers.Handler{Controller: &fakeController{}}

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/api/analytics/report", strings.NewReader("{not json"))

		handler.GenerateAnalyticsReport(recorder, request)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("should return 422 with the breakdown for a mixed-region batch", func(t *testing.T) {
		mixedErr := &services.MixedRegionError{TickersByRegion: map[schemas.Region][]string{
			schemas.RegionIndia: {"RELIANCE.NS"},
			schemas.RegionUS:    {"AAPL"},
		}}
		handler := &handlers.Handler{Controller: &fakeController{err: mixedErr}}

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/api/analytics/report", strings.NewReader(`{"holdings":[]}`))

		handler.GenerateAnalyticsReport(recorder, request)

		require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "tickersByRegion")
		assert.Contains(t, recorder.Body.String(), "RELIANCE.NS")
	})

	t.Run("should return 503 when rate providers are exhausted", func(t *testing.T) {
		handler := &handlers.Handler{Controller: &fakeController{err: services.ErrRatesUnavailable}}

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/api/analytics/report", strings.NewReader(`{"holdings":[]}`))

		handler.GenerateAnalyticsReport(recorder, request)
		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	})

	t.Run("should return 504 on a deadline overrun", func(t *testing.T) {
		handler := &handlers.Handler{Controller: &fakeController{err: context.DeadlineExceeded}}

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/api/analytics/report", strings.NewReader(`{"holdings":[]}`))

		handler.GenerateAnalyticsReport(recorder, request)
		assert.Equal(t, http.StatusGatewayTimeout, recorder.Code)
	})
}

func TestGenerateProjectionsHandler(t *testing.T) {
	t.Run("should return 200 with the projection payload", func(t *testing.T) {
		projections := &schemas.ProjectionReport{
			Metadata: schemas.ProjectionMetadata{RequestID: "req-2", Region: schemas.RegionIndia},
		}
		handler := &handlers.Handler{Controller: &fakeController{projections: projections}}

		body := `{"holdings":[],"goals":{"monthlyContribution":1000,"horizonYears":10,"riskTolerance":"Moderate","region":"IN"}}`
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/api/analytics/projections", strings.NewReader(body))

		handler.GenerateProjections(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		var decoded schemas.ProjectionReport
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
		assert.Equal(t, "req-2", decoded.Metadata.RequestID)
	})

	t.Run("should return 400 on a malformed body", func(t *testing.T) {
		handler := &handlers.Handler{Controller: &fakeController{}}

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/api/analytics/projections", strings.NewReader("[["))

		handler.GenerateProjections(recorder, request)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
