package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight-delay-api/internal/pipeline"
)

const sampleCSV = `Fecha-I,Fecha-O,OPERA,TIPOVUELO,MES
2017-01-01 10:00:00,2017-01-01 10:20:00,Grupo LATAM,I,1
2017-07-15 23:30:00,2017-07-15 23:35:00,Sky Airline,N,7
2017-12-20 08:00:00,2017-12-20 08:02:00,Copa Air,I,12
`

func TestLoad_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	l := NewLoader(5 * time.Second)
	df, err := l.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 3, df.Nrow())
	assert.Contains(t, df.Names(), pipeline.ColOpera)

	// MES must come through as an integer column for stable indicator names.
	mes := df.Col(pipeline.ColMes).Records()
	assert.Equal(t, []string{"1", "7", "12"}, mes)
}

func TestLoad_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	l := NewLoader(5 * time.Second)
	df, err := l.Load(context.Background(), srv.URL+"/data.csv")
	require.NoError(t, err)
	assert.Equal(t, 3, df.Nrow())
}

func TestLoad_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	l := NewLoader(5 * time.Second)
	_, err := l.Load(context.Background(), srv.URL+"/missing.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestLoad_MissingFile(t *testing.T) {
	l := NewLoader(time.Second)
	_, err := l.Load(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

func TestSplit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	l := NewLoader(time.Second)
	df, err := l.Load(context.Background(), path)
	require.NoError(t, err)

	feats, target, err := pipeline.PreprocessLabeled(df)
	require.NoError(t, err)

	trainX, testX, trainY, testY := Split(feats, target, 0.34, 42)
	assert.Equal(t, 1, testX.Nrow())
	assert.Equal(t, 2, trainX.Nrow())
	assert.Equal(t, 1, testY.Len())
	assert.Equal(t, 2, trainY.Len())

	// Holdout of zero keeps everything in the training portion.
	trainX, testX, _, _ = Split(feats, target, 0, 42)
	assert.Equal(t, 3, trainX.Nrow())
	assert.Equal(t, 0, testX.Nrow())
}

func TestSplit_Reproducible(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	l := NewLoader(time.Second)
	df, err := l.Load(context.Background(), path)
	require.NoError(t, err)

	feats, target, err := pipeline.PreprocessLabeled(df)
	require.NoError(t, err)

	_, testA, _, _ := Split(feats, target, 0.34, 7)
	_, testB, _, _ := Split(feats, target, 0.34, 7)
	assert.Equal(t, testA.Records(), testB.Records())
}
