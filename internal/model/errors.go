package model

import "fmt"

// ValidationError reports training input that is structurally unusable:
// mismatched row counts, non-binary labels, or a target with no positive
// example at all.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid training input: %s", e.Reason)
}

// NotFittedError is returned by Predict when no training has happened yet.
// A model that has not been fit refuses to answer instead of guessing zeros.
type NotFittedError struct{}

func (e *NotFittedError) Error() string {
	return "model has not been fitted"
}
