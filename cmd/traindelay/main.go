package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"flight-delay-api/internal/dataset"
	"flight-delay-api/internal/model"
	"flight-delay-api/internal/pipeline"
	"flight-delay-api/internal/storage"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const splitSeed = 42

func main() {
	var (
		dataSource = flag.String("data", "", "Path or URL of the training CSV")
		holdout    = flag.Float64("holdout", 0.33, "Fraction of rows held out for evaluation (0 disables)")
		dataPath   = flag.String("data-path", "", "BoltDB directory for recording the training run (optional)")
		timeout    = flag.Duration("timeout", 30*time.Second, "HTTP timeout when -data is a URL")
		logLevel   = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	)
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *dataSource == "" {
		log.Fatal().Msg("-data is required")
	}

	fmt.Println("=== Training Configuration ===")
	fmt.Printf("Data Source: %s\n", *dataSource)
	fmt.Printf("Holdout: %.2f\n", *holdout)
	fmt.Printf("Data Path: %s\n", *dataPath)
	fmt.Println("==============================")

	start := time.Now()

	loader := dataset.NewLoader(*timeout)
	df, err := loader.Load(context.Background(), *dataSource)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load dataset")
	}
	log.Info().Int("rows", df.Nrow()).Msg("dataset loaded")

	feats, target, err := pipeline.PreprocessLabeled(df)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to preprocess dataset")
	}

	trainX, testX, trainY, testY := dataset.Split(feats, target, *holdout, splitSeed)

	m := model.New()
	if err := m.Fit(trainX, trainY); err != nil {
		log.Fatal().Err(err).Msg("Failed to fit model")
	}
	elapsed := time.Since(start)

	w0, w1 := m.ClassWeights()
	positives := countPositives(trainY.Records())

	fmt.Println("=== Training Report ===")
	fmt.Printf("Training Rows: %d\n", trainX.Nrow())
	fmt.Printf("Positive Labels: %d\n", positives)
	fmt.Printf("Class Weight (on-time): %.4f\n", w0)
	fmt.Printf("Class Weight (delayed): %.4f\n", w1)
	fmt.Printf("Elapsed: %s\n", elapsed.Round(time.Millisecond))
	fmt.Println("=======================")

	// With no holdout, report on the training set so the run still prints
	// a quality summary.
	evalX, evalY := testX, testY
	if evalX.Nrow() == 0 {
		evalX, evalY = trainX, trainY
	}
	preds, err := m.Predict(evalX)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to score evaluation set")
	}
	actual, err := evalY.Int()
	if err != nil {
		log.Fatal().Err(err).Msg("Evaluation labels are not integers")
	}
	printReport(model.Evaluate(preds, actual), testX.Nrow() > 0)

	if *dataPath != "" {
		recordTraining(*dataPath, trainX.Nrow(), positives, w0, w1, elapsed)
	}

	log.Info().Dur("elapsed", elapsed).Msg("Training completed successfully")
}

func printReport(r model.Report, holdout bool) {
	if holdout {
		fmt.Println("=== Holdout Evaluation ===")
	} else {
		fmt.Println("=== Training-Set Evaluation ===")
	}
	fmt.Printf("Samples: %d\n", r.Total())
	fmt.Printf("Confusion: TP=%d TN=%d FP=%d FN=%d\n",
		r.TruePositives, r.TrueNegatives, r.FalsePositives, r.FalseNegatives)
	fmt.Printf("Accuracy: %.4f\n", r.Accuracy())
	fmt.Printf("Precision: %.4f\n", r.Precision())
	fmt.Printf("Recall: %.4f\n", r.Recall())
	fmt.Printf("F1: %.4f\n", r.F1())
	fmt.Println("==========================")
}

func recordTraining(path string, rows, positives int, w0, w1 float64, elapsed time.Duration) {
	store, err := storage.New(path)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open storage")
		return
	}
	defer store.Close()

	err = store.StoreTraining(storage.TrainingRecord{
		Rows:               rows,
		Positives:          positives,
		ClassWeightOnTime:  w0,
		ClassWeightDelayed: w1,
		Duration:           elapsed,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to store training record")
		return
	}
	log.Info().Str("path", path).Msg("training run recorded")
}

func countPositives(records []string) int {
	n := 0
	for _, r := range records {
		if r == "1" {
			n++
		}
	}
	return n
}
