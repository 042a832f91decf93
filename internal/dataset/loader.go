// Package dataset loads the raw flight table the model trains on, from a
// local CSV file or an HTTP(S) URL.
package dataset

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/go-resty/resty/v2"

	"flight-delay-api/internal/pipeline"
)

// Loader fetches and parses raw flight datasets.
type Loader struct {
	client *resty.Client
}

func NewLoader(timeout time.Duration) *Loader {
	return &Loader{
		client: resty.New().SetTimeout(timeout),
	}
}

// Load reads a CSV dataset from a file path or, when source starts with
// http:// or https://, downloads it first. MES and delay are forced to
// integer columns so indicator names come out as MES_7, not MES_7.000000.
func (l *Loader) Load(ctx context.Context, source string) (dataframe.DataFrame, error) {
	var raw []byte

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := l.client.R().SetContext(ctx).Get(source)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("fetch dataset %s: %w", source, err)
		}
		if resp.IsError() {
			return dataframe.DataFrame{}, fmt.Errorf("fetch dataset %s: status %d", source, resp.StatusCode())
		}
		raw = resp.Body()
	} else {
		data, err := os.ReadFile(source)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("read dataset: %w", err)
		}
		raw = data
	}

	df := dataframe.ReadCSV(
		bytes.NewReader(raw),
		dataframe.WithTypes(map[string]series.Type{
			pipeline.ColMes:   series.Int,
			pipeline.ColDelay: series.Int,
		}),
	)
	if df.Err != nil {
		return df, fmt.Errorf("parse dataset csv: %w", df.Err)
	}
	if df.Nrow() == 0 {
		return df, fmt.Errorf("dataset %s is empty", source)
	}
	return df, nil
}

// Split partitions features and target into train and holdout portions.
// Rows are shuffled with a fixed seed so evaluation runs are reproducible.
// holdout is the fraction reserved for evaluation; 0 disables the split.
func Split(feats dataframe.DataFrame, target series.Series, holdout float64, seed int64) (
	trainX, testX dataframe.DataFrame, trainY, testY series.Series,
) {
	n := feats.Nrow()
	nTest := int(float64(n) * holdout)
	if nTest <= 0 {
		return feats, dataframe.DataFrame{}, target, series.New([]int{}, series.Int, target.Name)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	testIdx, trainIdx := perm[:nTest], perm[nTest:]

	trainX = feats.Subset(trainIdx)
	testX = feats.Subset(testIdx)
	trainY = target.Subset(trainIdx)
	testY = target.Subset(testIdx)
	return trainX, testX, trainY, testY
}
