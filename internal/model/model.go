// Package model holds the delay classifier: a class-weighted logistic
// regression fitted on the pipeline's fixed feature schema, plus the
// write-once container the serving path publishes it through.
package model

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// DelayModel predicts whether a flight will be delayed by more than 15
// minutes. It is mutable only through Fit; once fitted it is safe for
// concurrent Predict calls without locking.
type DelayModel struct {
	clf           *logisticRegression
	schema        []string
	weightOnTime  float64
	weightDelayed float64
}

func New() *DelayModel {
	return &DelayModel{}
}

// IsFitted reports whether Fit has completed on this model.
func (m *DelayModel) IsFitted() bool {
	return m.clf != nil
}

// ClassWeights returns the per-class loss weights used at fit time,
// (on-time, delayed). Zero before fitting.
func (m *DelayModel) ClassWeights() (float64, float64) {
	return m.weightOnTime, m.weightDelayed
}

// Schema returns the feature column order the fitted weights are bound to.
func (m *DelayModel) Schema() []string {
	return append([]string(nil), m.schema...)
}

// Fit trains the classifier. The target must be a single {0,1} column with
// one label per feature row and at least one delayed example; anything else
// is a *ValidationError.
//
// The delayed class is weighted n0/n and the on-time class n1/n. That is
// deliberately not the canonical n/(2*n_c) balancing rule: each class is
// scaled by the other class's share of the data, which is the behavior the
// trained feature schema was selected against. Changing it changes model
// output.
func (m *DelayModel) Fit(feats dataframe.DataFrame, target series.Series) error {
	if feats.Err != nil {
		return &ValidationError{Reason: "invalid feature frame: " + feats.Err.Error()}
	}
	if target.Err != nil {
		return &ValidationError{Reason: "invalid target column: " + target.Err.Error()}
	}
	if feats.Nrow() != target.Len() {
		return &ValidationError{Reason: "features and target must have the same number of rows"}
	}
	if feats.Nrow() == 0 {
		return &ValidationError{Reason: "training set is empty"}
	}

	labels, err := target.Int()
	if err != nil {
		return &ValidationError{Reason: "target must be an integer column"}
	}

	var n0, n1 int
	for _, y := range labels {
		switch y {
		case 0:
			n0++
		case 1:
			n1++
		default:
			return &ValidationError{Reason: "target labels must be 0 or 1"}
		}
	}
	if n1 == 0 {
		return &ValidationError{Reason: "no positive samples in target"}
	}

	n := float64(n0 + n1)
	weightDelayed := float64(n0) / n
	weightOnTime := float64(n1) / n

	x := matrix(feats)
	sw := make([]float64, len(labels))
	for i, y := range labels {
		if y == 1 {
			sw[i] = weightDelayed
		} else {
			sw[i] = weightOnTime
		}
	}

	m.clf = fitLogistic(x, labels, sw)
	m.schema = append([]string(nil), feats.Names()...)
	m.weightOnTime = weightOnTime
	m.weightDelayed = weightDelayed
	return nil
}

// Predict returns one {0,1} label per feature row, in input order. The
// feature columns must match the schema the model was fitted on, in the
// same order. Calling Predict before Fit yields a *NotFittedError.
func (m *DelayModel) Predict(feats dataframe.DataFrame) ([]int, error) {
	if !m.IsFitted() {
		return nil, &NotFittedError{}
	}
	if feats.Err != nil {
		return nil, &ValidationError{Reason: "invalid feature frame: " + feats.Err.Error()}
	}

	names := feats.Names()
	if len(names) != len(m.schema) {
		return nil, &ValidationError{Reason: "feature schema mismatch"}
	}
	for i, name := range names {
		if name != m.schema[i] {
			return nil, &ValidationError{Reason: "feature schema mismatch"}
		}
	}

	x := matrix(feats)
	out := make([]int, len(x))
	for i, row := range x {
		out[i] = m.clf.decide(row)
	}
	return out, nil
}

// matrix converts a frame to row-major float64, column order preserved.
func matrix(df dataframe.DataFrame) [][]float64 {
	names := df.Names()
	cols := make([][]float64, len(names))
	for j, name := range names {
		cols[j] = df.Col(name).Float()
	}

	x := make([][]float64, df.Nrow())
	for i := range x {
		row := make([]float64, len(cols))
		for j := range cols {
			row[j] = cols[j][i]
		}
		x[i] = row
	}
	return x
}
