package model

import (
	"math"
	"math/rand"
)

// Training hyperparameters. The seed is fixed so that fitting the same data
// always yields the same weights; the iteration cap is generous for a
// 10-feature problem and in practice the tolerance stops training far
// earlier.
const (
	randomSeed   = 42
	maxIter      = 1000
	learningRate = 0.1
	tolerance    = 1e-6
	l2Penalty    = 1.0
)

// logisticRegression is a dense binary classifier trained with batch
// gradient descent. Sample weights scale each row's loss contribution,
// which is how the class-imbalance correction enters the fit.
type logisticRegression struct {
	weights []float64
	bias    float64
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// fit trains on X (n rows, d columns) with binary labels y and per-sample
// weights sw. The bias is excluded from the L2 penalty.
func fitLogistic(x [][]float64, y []int, sw []float64) *logisticRegression {
	n := len(x)
	d := len(x[0])

	rng := rand.New(rand.NewSource(randomSeed))
	clf := &logisticRegression{weights: make([]float64, d)}
	for j := range clf.weights {
		clf.weights[j] = (rng.Float64() - 0.5) * 0.02
	}

	grad := make([]float64, d)
	for iter := 0; iter < maxIter; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		gradBias := 0.0

		for i := 0; i < n; i++ {
			z := clf.bias
			for j := 0; j < d; j++ {
				z += clf.weights[j] * x[i][j]
			}
			residual := sw[i] * (sigmoid(z) - float64(y[i]))
			for j := 0; j < d; j++ {
				grad[j] += residual * x[i][j]
			}
			gradBias += residual
		}

		maxStep := math.Abs(gradBias) / float64(n)
		for j := 0; j < d; j++ {
			grad[j] = grad[j]/float64(n) + l2Penalty*clf.weights[j]/float64(n)
			if s := math.Abs(grad[j]); s > maxStep {
				maxStep = s
			}
		}

		for j := 0; j < d; j++ {
			clf.weights[j] -= learningRate * grad[j]
		}
		clf.bias -= learningRate * gradBias / float64(n)

		if maxStep < tolerance {
			break
		}
	}

	return clf
}

// decide applies the fitted decision function to one row.
func (clf *logisticRegression) decide(row []float64) int {
	z := clf.bias
	for j, w := range clf.weights {
		z += w * row[j]
	}
	if sigmoid(z) >= 0.5 {
		return 1
	}
	return 0
}
