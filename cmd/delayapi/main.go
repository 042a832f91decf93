package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flight-delay-api/internal/api"
	"flight-delay-api/internal/cfg"
	"flight-delay-api/internal/dataset"
	"flight-delay-api/internal/metrics"
	"flight-delay-api/internal/model"
	"flight-delay-api/internal/pipeline"
	"flight-delay-api/internal/storage"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const splitSeed = 42

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	c, err := cfg.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	if level, err := zerolog.ParseLevel(c.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()
	mw := metrics.NewWrapper(m)

	store := initializeStorage(c)
	if store != nil {
		defer store.Close()
	}

	container := model.NewContainer(trainFunc(c, mw, store))

	metricsServer := startMetricsServer(ctx, c)
	apiServer := startAPIServer(ctx, c, container, store, mw)

	log.Info().
		Int("port", c.Port).
		Int("metrics_port", c.MetricsPort).
		Str("data_source", c.DataSource).
		Msg("flight delay service started")

	waitForShutdown(ctx, cancel, apiServer, metricsServer)
}

// trainFunc builds the training closure the model container runs on first
// use: load the dataset, preprocess it with labels, fit, and record the run.
func trainFunc(c cfg.Settings, mw *metrics.Wrapper, store *storage.Store) func() (*model.DelayModel, error) {
	return func() (*model.DelayModel, error) {
		start := time.Now()
		log.Info().Str("source", c.DataSource).Msg("training delay model")

		loader := dataset.NewLoader(c.HTTPTimeout)
		df, err := loader.Load(context.Background(), c.DataSource)
		if err != nil {
			mw.TrainingFailuresInc()
			return nil, fmt.Errorf("load training data: %w", err)
		}

		feats, target, err := pipeline.PreprocessLabeled(df)
		if err != nil {
			mw.TrainingFailuresInc()
			return nil, fmt.Errorf("preprocess training data: %w", err)
		}

		trainX, testX, trainY, testY := dataset.Split(feats, target, c.TrainHoldout, splitSeed)

		dm := model.New()
		if err := dm.Fit(trainX, trainY); err != nil {
			mw.TrainingFailuresInc()
			return nil, fmt.Errorf("fit model: %w", err)
		}

		if testX.Nrow() > 0 {
			evaluateHoldout(dm, testX, testY)
		}

		elapsed := time.Since(start)
		rows := trainX.Nrow()
		labels, _ := trainY.Int()
		positives := 0
		for _, y := range labels {
			positives += y
		}
		w0, w1 := dm.ClassWeights()

		mw.TrainingsInc()
		mw.TrainingDurationObserve(elapsed.Seconds())
		mw.TrainingRowsSet(float64(rows))
		mw.ModelReadySet(1)

		if store != nil {
			err := store.StoreTraining(storage.TrainingRecord{
				Rows:               rows,
				Positives:          positives,
				ClassWeightOnTime:  w0,
				ClassWeightDelayed: w1,
				Duration:           elapsed,
			})
			if err != nil {
				log.Warn().Err(err).Msg("failed to store training record")
			}
		}

		log.Info().
			Int("rows", rows).
			Int("positives", positives).
			Float64("class_weight_delayed", w1).
			Dur("elapsed", elapsed).
			Msg("model trained")
		return dm, nil
	}
}

// evaluateHoldout scores the held-out rows and logs classifier quality.
func evaluateHoldout(dm *model.DelayModel, testX dataframe.DataFrame, testY series.Series) {
	preds, err := dm.Predict(testX)
	if err != nil {
		log.Warn().Err(err).Msg("holdout evaluation failed")
		return
	}
	actual, err := testY.Int()
	if err != nil {
		log.Warn().Err(err).Msg("holdout labels are not integers")
		return
	}
	r := model.Evaluate(preds, actual)
	log.Info().
		Int("samples", r.Total()).
		Float64("accuracy", r.Accuracy()).
		Float64("precision", r.Precision()).
		Float64("recall", r.Recall()).
		Float64("f1", r.F1()).
		Msg("holdout evaluation")
}

// initializeStorage opens audit storage if DATA_PATH is configured.
func initializeStorage(c cfg.Settings) *storage.Store {
	if c.DataPath == "" {
		return nil
	}
	store, err := storage.New(c.DataPath)
	if err != nil {
		log.Warn().Err(err).Msg("storage initialization failed, continuing without persistence")
		return nil
	}
	return store
}

// startMetricsServer starts the Prometheus metrics HTTP server.
func startMetricsServer(ctx context.Context, c cfg.Settings) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", c.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	return server
}

// startAPIServer starts the prediction API server.
func startAPIServer(ctx context.Context, c cfg.Settings, container *model.Container, store *storage.Store, mw *metrics.Wrapper) *http.Server {
	handler := api.NewHandler(container, store, mw)
	server := api.NewServer(c.Port, api.NewRouter(handler))

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("API server failed")
		}
	}()

	return server
}

// waitForShutdown blocks until a shutdown signal arrives, then drains the
// HTTP servers.
func waitForShutdown(ctx context.Context, cancel context.CancelFunc, servers ...*http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info().Msg("shutdown signal received")
	case <-ctx.Done():
		log.Info().Msg("context canceled")
	}

	log.Info().Msg("shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Str("addr", s.Addr).Msg("server shutdown failed")
		}
	}
	log.Info().Msg("all servers stopped")
}
