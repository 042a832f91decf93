package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight-delay-api/internal/model"
	"flight-delay-api/internal/pipeline"
	"flight-delay-api/internal/storage"
)

// MockMetrics implements MetricsInterface for testing.
type MockMetrics struct {
	predictions        int
	predictionRows     float64
	delayed            float64
	latencies          int
	validationFailures int
	errors             int
}

func (m *MockMetrics) PredictionsInc()                  { m.predictions++ }
func (m *MockMetrics) PredictionRowsAdd(n float64)      { m.predictionRows += n }
func (m *MockMetrics) DelayedPredictionsAdd(n float64)  { m.delayed += n }
func (m *MockMetrics) PredictionLatencyObserve(float64) { m.latencies++ }
func (m *MockMetrics) ValidationFailuresInc()           { m.validationFailures++ }
func (m *MockMetrics) ErrorsInc()                       { m.errors++ }

type staticContainer struct {
	model *model.DelayModel
	err   error
}

func (c *staticContainer) Get() (*model.DelayModel, error) { return c.model, c.err }

// trainedModel fits a model through the real pipeline so its schema matches
// what the request path produces.
func trainedModel(t *testing.T) *model.DelayModel {
	t.Helper()

	df := dataframe.New(
		series.New([]string{
			"2017-07-02 10:00:00", "2017-07-03 10:00:00",
			"2017-01-10 15:00:00", "2017-01-11 15:00:00",
			"2017-04-05 08:00:00", "2017-04-06 08:00:00",
		}, series.String, pipeline.ColFechaI),
		series.New([]string{
			"Grupo LATAM", "Grupo LATAM",
			"Sky Airline", "Sky Airline",
			"Copa Air", "Copa Air",
		}, series.String, pipeline.ColOpera),
		series.New([]string{"I", "I", "N", "N", "I", "I"}, series.String, pipeline.ColTipoVuelo),
		series.New([]int{7, 7, 1, 1, 4, 4}, series.Int, pipeline.ColMes),
	)
	df = df.Mutate(series.New([]int{1, 1, 0, 0, 1, 0}, series.Int, pipeline.ColDelay))

	feats, target, err := pipeline.PreprocessLabeled(df)
	require.NoError(t, err)

	m := model.New()
	require.NoError(t, m.Fit(feats, target))
	return m
}

func newTestHandler(t *testing.T) (*Handler, *MockMetrics) {
	t.Helper()
	metrics := &MockMetrics{}
	h := NewHandler(&staticContainer{model: trainedModel(t)}, nil, metrics)
	return h, metrics
}

func doRequest(h *Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	NewRouter(h).ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doRequest(h, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
}

func TestPredict_ValidBatch(t *testing.T) {
	h, metrics := newTestHandler(t)

	rec := doRequest(h, http.MethodPost, "/predict", PredictRequest{
		Flights: []Flight{
			{Opera: "Grupo LATAM", TipoVuelo: "I", Mes: 7},
			{Opera: "Sky Airline", TipoVuelo: "N", Mes: 1},
			{Opera: "Qantas Airways", TipoVuelo: "N", Mes: 5},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp PredictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Predict, 3)
	for _, p := range resp.Predict {
		assert.Contains(t, []int{0, 1}, p)
	}

	assert.Equal(t, 1, metrics.predictions)
	assert.Equal(t, 3.0, metrics.predictionRows)
	assert.Equal(t, 1, metrics.latencies)
}

func TestPredict_ValidationFailures(t *testing.T) {
	testCases := []struct {
		name   string
		flight Flight
	}{
		{"unknown airline", Flight{Opera: "Unknown Air", TipoVuelo: "I", Mes: 7}},
		{"bad flight type", Flight{Opera: "Grupo LATAM", TipoVuelo: "X", Mes: 7}},
		{"month too large", Flight{Opera: "Grupo LATAM", TipoVuelo: "I", Mes: 13}},
		{"month zero", Flight{Opera: "Grupo LATAM", TipoVuelo: "I", Mes: 0}},
		{"missing fields", Flight{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, metrics := newTestHandler(t)
			rec := doRequest(h, http.MethodPost, "/predict", PredictRequest{Flights: []Flight{tc.flight}})

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, 1, metrics.validationFailures)
		})
	}
}

func TestPredict_EmptyFlights(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doRequest(h, http.MethodPost, "/predict", PredictRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredict_MalformedJSON(t *testing.T) {
	h, _ := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	NewRouter(h).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredict_TrainingFailure(t *testing.T) {
	metrics := &MockMetrics{}
	h := NewHandler(&staticContainer{err: errors.New("dataset unavailable")}, nil, metrics)

	rec := doRequest(h, http.MethodPost, "/predict", PredictRequest{
		Flights: []Flight{{Opera: "Grupo LATAM", TipoVuelo: "I", Mes: 7}},
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, metrics.errors)
}

func TestPredict_UnfittedModel(t *testing.T) {
	h := NewHandler(&staticContainer{model: model.New()}, nil, &MockMetrics{})

	rec := doRequest(h, http.MethodPost, "/predict", PredictRequest{
		Flights: []Flight{{Opera: "Grupo LATAM", TipoVuelo: "I", Mes: 7}},
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPredict_AuditsToStore(t *testing.T) {
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	h := NewHandler(&staticContainer{model: trainedModel(t)}, store, &MockMetrics{})

	rec := doRequest(h, http.MethodPost, "/predict", PredictRequest{
		Flights: []Flight{{Opera: "Copa Air", TipoVuelo: "I", Mes: 4}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	recs, err := store.GetPredictionsInRange(time.Now().Add(-time.Minute), time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Copa Air", recs[0].Airline)
	assert.Equal(t, "I", recs[0].FlightType)
	assert.Equal(t, 4, recs[0].Month)
}

func TestPredict_MethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doRequest(h, http.MethodGet, "/predict", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
