package pipeline

import (
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"flight-delay-api/internal/features"
)

// requiredColumns must be present in every raw frame, for training and for
// prediction alike.
var requiredColumns = []string{ColFechaI, ColOpera, ColTipoVuelo, ColMes}

// Preprocess prepares a raw frame for prediction: derives the temporal
// features, expands the categorical columns and aligns the result to the
// TopFeatures schema. The input frame is left untouched.
func Preprocess(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	work, _, err := run(df, false)
	return work, err
}

// PreprocessLabeled prepares a raw frame for training and additionally
// returns the delay target. An existing delay column is used as-is;
// otherwise the label is derived from Fecha-O vs Fecha-I, which makes
// Fecha-O required.
func PreprocessLabeled(df dataframe.DataFrame) (dataframe.DataFrame, series.Series, error) {
	return run(df, true)
}

func run(df dataframe.DataFrame, withTarget bool) (dataframe.DataFrame, series.Series, error) {
	empty := series.New([]int{}, series.Int, ColDelay)

	if df.Err != nil {
		return df, empty, fmt.Errorf("invalid input frame: %w", df.Err)
	}
	if err := requireColumns(df); err != nil {
		return df, empty, err
	}

	work := df.Copy()

	scheduled, err := parseColumn(work, ColFechaI)
	if err != nil {
		return work, empty, err
	}

	target := empty
	if withTarget {
		target, work, err = buildTarget(work, scheduled)
		if err != nil {
			return work, empty, err
		}
	}

	// period_day and high_season are part of the documented feature
	// engineering but sit outside the trained top-10 schema; they are
	// computed into the working frame and dropped by Align.
	periods := make([]string, len(scheduled))
	seasons := make([]int, len(scheduled))
	for i, ts := range scheduled {
		periods[i] = features.PeriodOfDay(ts)
		seasons[i] = features.IsHighSeason(ts)
	}
	work = work.
		Mutate(series.New(periods, series.String, ColPeriodDay)).
		Mutate(series.New(seasons, series.Int, ColHighSeason))

	feats := Align(Dummies(work))
	if feats.Err != nil {
		return feats, empty, fmt.Errorf("encode features: %w", feats.Err)
	}
	return feats, target, nil
}

// buildTarget returns the delay label column, deriving it from the timestamp
// pair when the frame does not already carry one.
func buildTarget(work dataframe.DataFrame, scheduled []time.Time) (series.Series, dataframe.DataFrame, error) {
	if hasColumn(work, ColDelay) {
		labels, err := work.Col(ColDelay).Int()
		if err != nil {
			return series.Series{}, work, fmt.Errorf("delay column is not integer: %w", err)
		}
		return series.New(labels, series.Int, ColDelay), work, nil
	}

	if !hasColumn(work, ColFechaO) {
		return series.Series{}, work, &SchemaError{Column: ColFechaO, Reason: "cannot compute delay"}
	}

	actual, err := parseColumn(work, ColFechaO)
	if err != nil {
		return series.Series{}, work, err
	}

	diffs := make([]float64, len(scheduled))
	labels := make([]int, len(scheduled))
	for i := range scheduled {
		diffs[i] = features.MinutesDiff(actual[i], scheduled[i])
		labels[i] = features.BuildTarget(diffs[i])
	}
	work = work.Mutate(series.New(diffs, series.Float, ColMinDiff))

	return series.New(labels, series.Int, ColDelay), work, nil
}

func parseColumn(df dataframe.DataFrame, col string) ([]time.Time, error) {
	recs := df.Col(col).Records()
	out := make([]time.Time, len(recs))
	for i, r := range recs {
		ts, err := features.ParseTimestamp(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse %s: %w", i, col, err)
		}
		out[i] = ts
	}
	return out, nil
}

func requireColumns(df dataframe.DataFrame) error {
	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}
	for _, col := range requiredColumns {
		if !present[col] {
			return &SchemaError{Column: col}
		}
	}
	return nil
}

func hasColumn(df dataframe.DataFrame, col string) bool {
	for _, name := range df.Names() {
		if name == col {
			return true
		}
	}
	return false
}
