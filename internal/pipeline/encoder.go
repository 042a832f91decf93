package pipeline

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// categoricalColumns are expanded into indicator columns, one per observed
// value, named <column>_<value>.
var categoricalColumns = []string{ColOpera, ColTipoVuelo, ColMes}

// Dummies expands the categorical columns of df into indicator columns.
// Values never observed in df simply produce no column; alignment to the
// trained schema happens in Align.
func Dummies(df dataframe.DataFrame) dataframe.DataFrame {
	if df.Err != nil {
		return df
	}

	n := df.Nrow()
	var cols []series.Series

	for _, col := range categoricalColumns {
		recs := df.Col(col).Records()

		var values []string
		seen := make(map[string]bool)
		for _, v := range recs {
			if !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}
		sort.Strings(values)

		for _, v := range values {
			indicator := make([]float64, n)
			for i, r := range recs {
				if r == v {
					indicator[i] = 1
				}
			}
			cols = append(cols, series.New(indicator, series.Float, col+"_"+v))
		}
	}

	return dataframe.New(cols...)
}

// Align projects an expanded frame onto the fixed TopFeatures schema. Schema
// columns absent from df are zero-filled, columns outside the schema are
// dropped, and the output column order always matches the schema order. A
// linear model's weights are positionally bound to these columns, so the
// order must not depend on what the input happened to contain.
func Align(df dataframe.DataFrame) dataframe.DataFrame {
	if df.Err != nil {
		return df
	}

	n := df.Nrow()
	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}

	cols := make([]series.Series, 0, len(TopFeatures))
	for _, name := range TopFeatures {
		if present[name] {
			cols = append(cols, series.New(df.Col(name).Float(), series.Float, name))
		} else {
			cols = append(cols, series.New(make([]float64, n), series.Float, name))
		}
	}

	return dataframe.New(cols...)
}
