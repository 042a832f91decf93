// Package storage persists serving-side audit data for the delay service:
// every served prediction batch and every training run. It uses BoltDB as
// the storage engine with time-ordered keys for efficient range queries.
//
// Fitted model weights are deliberately not stored here; the model is
// retrained from the source dataset on startup.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

const (
	predictionsBucket = "predictions" // one record per served flight
	trainingsBucket   = "trainings"   // one record per model fit
)

// PredictionRecord captures a single served prediction.
type PredictionRecord struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Airline    string    `json:"airline"`
	FlightType string    `json:"flight_type"`
	Month      int       `json:"month"`
	Predicted  int       `json:"predicted"`
}

// TrainingRecord captures one model fit for later inspection.
type TrainingRecord struct {
	ID                 string        `json:"id"`
	Timestamp          time.Time     `json:"timestamp"`
	Rows               int           `json:"rows"`
	Positives          int           `json:"positives"`
	ClassWeightOnTime  float64       `json:"class_weight_on_time"`
	ClassWeightDelayed float64       `json:"class_weight_delayed"`
	Duration           time.Duration `json:"duration"`
}

// Store provides persistent storage backed by BoltDB.
type Store struct {
	db *bbolt.DB
}

// New opens (or creates) the database under dataPath and ensures the
// buckets exist.
func New(dataPath string) (*Store, error) {
	dbPath := filepath.Join(dataPath, "delay-data.db")

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(predictionsBucket)); err != nil {
			return fmt.Errorf("create predictions bucket: %w", err)
		}
		if _, err := tx.CreateBucketIfNotExists([]byte(trainingsBucket)); err != nil {
			return fmt.Errorf("create trainings bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection gracefully.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StorePrediction stores one served prediction. A missing ID or timestamp
// is filled in. Keys are "unixnano_uuid" so records sort by time.
func (s *Store) StorePrediction(rec PredictionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(predictionsBucket))

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal prediction record: %w", err)
		}

		key := fmt.Sprintf("%020d_%s", rec.Timestamp.UnixNano(), rec.ID)
		return b.Put([]byte(key), data)
	})
}

// StoreTraining stores one training-run record.
func (s *Store) StoreTraining(rec TrainingRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(trainingsBucket))

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal training record: %w", err)
		}

		key := fmt.Sprintf("%020d_%s", rec.Timestamp.UnixNano(), rec.ID)
		return b.Put([]byte(key), data)
	})
}

// GetPredictionsInRange retrieves prediction records within [start, end],
// ordered by timestamp.
func (s *Store) GetPredictionsInRange(start, end time.Time) ([]PredictionRecord, error) {
	var records []PredictionRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(predictionsBucket)).Cursor()

		startKey := []byte(fmt.Sprintf("%020d", start.UnixNano()))
		endKey := []byte(fmt.Sprintf("%020d", end.UnixNano()+1))

		for k, v := c.Seek(startKey); k != nil && bytes.Compare(k, endKey) < 0; k, v = c.Next() {
			var rec PredictionRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				continue // Skip malformed records
			}
			records = append(records, rec)
		}
		return nil
	})

	return records, err
}

// GetTrainings retrieves all training-run records, oldest first.
func (s *Store) GetTrainings() ([]TrainingRecord, error) {
	var records []TrainingRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(trainingsBucket)).ForEach(func(_, v []byte) error {
			var rec TrainingRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return nil
			}
			records = append(records, rec)
			return nil
		})
	})

	return records, err
}
