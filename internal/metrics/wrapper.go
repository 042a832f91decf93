package metrics

// Wrapper exposes the metric operations the API handler and trainer need,
// without handing them prometheus types directly. Consumers declare their
// own small interface against these methods, which keeps the core packages
// free of a prometheus dependency.
type Wrapper struct {
	m *Metrics
}

func NewWrapper(m *Metrics) *Wrapper {
	return &Wrapper{m: m}
}

func (w *Wrapper) PredictionsInc() { w.m.PredictionsTotal.Inc() }

func (w *Wrapper) PredictionRowsAdd(n float64) { w.m.PredictionRows.Add(n) }

func (w *Wrapper) DelayedPredictionsAdd(n float64) { w.m.DelayedPredictions.Add(n) }

func (w *Wrapper) PredictionLatencyObserve(s float64) { w.m.PredictionLatency.Observe(s) }

func (w *Wrapper) ValidationFailuresInc() { w.m.ValidationFailures.Inc() }

func (w *Wrapper) TrainingsInc() { w.m.TrainingsTotal.Inc() }

func (w *Wrapper) TrainingFailuresInc() { w.m.TrainingFailures.Inc() }

func (w *Wrapper) TrainingDurationObserve(s float64) { w.m.TrainingDuration.Observe(s) }

func (w *Wrapper) TrainingRowsSet(n float64) { w.m.TrainingRows.Set(n) }

func (w *Wrapper) ModelReadySet(v float64) { w.m.ModelReady.Set(v) }

func (w *Wrapper) ErrorsInc() { w.m.ErrorsTotal.Inc() }
