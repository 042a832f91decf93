// Package api is the HTTP boundary of the delay service. It validates
// requests against the fixed categorical domains, synthesizes the scheduled
// timestamp the pipeline structurally requires, and maps the core's error
// kinds onto status codes. No modeling logic lives here.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/rs/zerolog/log"

	"flight-delay-api/internal/model"
	"flight-delay-api/internal/pipeline"
	"flight-delay-api/internal/storage"
)

// placeholderFechaI stands in for the scheduled timestamp on inference
// requests. The pipeline needs the column to exist, but none of the ten
// trained features depend on its derived values, so any fixed value works.
const placeholderFechaI = "2023-01-01 12:00:00"

// MetricsInterface defines the metrics methods the handler needs.
type MetricsInterface interface {
	PredictionsInc()
	PredictionRowsAdd(float64)
	DelayedPredictionsAdd(float64)
	PredictionLatencyObserve(float64)
	ValidationFailuresInc()
	ErrorsInc()
}

// Flight is one itinerary in a prediction request.
type Flight struct {
	Opera     string `json:"OPERA"`
	TipoVuelo string `json:"TIPOVUELO"`
	Mes       int    `json:"MES"`
}

// flightRow is the Flight shape the pipeline consumes, scheduled timestamp
// included. Tags drive the dataframe column names.
type flightRow struct {
	FechaI    string `dataframe:"Fecha-I,string"`
	Opera     string `dataframe:"OPERA,string"`
	TipoVuelo string `dataframe:"TIPOVUELO,string"`
	Mes       int    `dataframe:"MES,int"`
}

type PredictRequest struct {
	Flights []Flight `json:"flights"`
}

type PredictResponse struct {
	Predict []int `json:"predict"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Container is the read side of the write-once model slot.
type Container interface {
	Get() (*model.DelayModel, error)
}

// Handler serves the prediction API.
type Handler struct {
	container Container
	store     *storage.Store
	metrics   MetricsInterface
}

// NewHandler wires the handler. store may be nil (auditing disabled) and
// metrics may be nil (metrics disabled).
func NewHandler(container Container, store *storage.Store, metrics MetricsInterface) *Handler {
	return &Handler{container: container, store: store, metrics: metrics}
}

// Health reports liveness with a fixed payload.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// Predict scores a batch of flights and returns one {0,1} label per flight
// in input order.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		if h.metrics != nil {
			h.metrics.PredictionLatencyObserve(time.Since(start).Seconds())
		}
	}()

	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.reject(w, "invalid request body")
		return
	}
	if len(req.Flights) == 0 {
		h.reject(w, "flights must be a non-empty list")
		return
	}
	for _, f := range req.Flights {
		if err := validateFlight(f); err != nil {
			h.reject(w, err.Error())
			return
		}
	}

	m, err := h.container.Get()
	if err != nil {
		log.Error().Err(err).Msg("model initialization failed")
		h.fail(w, err)
		return
	}

	rows := make([]flightRow, len(req.Flights))
	for i, f := range req.Flights {
		rows[i] = flightRow{
			FechaI:    placeholderFechaI,
			Opera:     f.Opera,
			TipoVuelo: f.TipoVuelo,
			Mes:       f.Mes,
		}
	}

	feats, err := pipeline.Preprocess(dataframe.LoadStructs(rows))
	if err != nil {
		h.fail(w, err)
		return
	}

	preds, err := m.Predict(feats)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.audit(req.Flights, preds)
	if h.metrics != nil {
		h.metrics.PredictionsInc()
		h.metrics.PredictionRowsAdd(float64(len(preds)))
		delayed := 0
		for _, p := range preds {
			delayed += p
		}
		h.metrics.DelayedPredictionsAdd(float64(delayed))
	}

	writeJSON(w, http.StatusOK, PredictResponse{Predict: preds})
}

// audit persists the served batch when a store is configured. Failures are
// logged, never surfaced: auditing must not break serving.
func (h *Handler) audit(flights []Flight, preds []int) {
	if h.store == nil {
		return
	}
	for i, f := range flights {
		err := h.store.StorePrediction(storage.PredictionRecord{
			Airline:    f.Opera,
			FlightType: f.TipoVuelo,
			Month:      f.Mes,
			Predicted:  preds[i],
		})
		if err != nil {
			log.Warn().Err(err).Msg("failed to store prediction record")
		}
	}
}

// reject answers a client-side validation failure.
func (h *Handler) reject(w http.ResponseWriter, detail string) {
	if h.metrics != nil {
		h.metrics.ValidationFailuresInc()
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Detail: detail})
}

// fail maps a core error onto a status code: schema and validation problems
// are the client's fault, an unfitted model means the service is not ready,
// anything else is a server error.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	var schemaErr *pipeline.SchemaError
	var valErr *model.ValidationError
	var notFitted *model.NotFittedError

	switch {
	case errors.As(err, &schemaErr), errors.As(err, &valErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: err.Error()})
	case errors.As(err, &notFitted):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Detail: err.Error()})
	default:
		if h.metrics != nil {
			h.metrics.ErrorsInc()
		}
		log.Error().Err(err).Msg("prediction failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
