package model

import "gonum.org/v1/gonum/mat"

// Fitter is the interface of models that learn from data.
type Fitter interface {
	// Fit trains the model on X (n_samples x n_features) against the
	// column vector y.
	Fit(X, y mat.Matrix) error
}

// Predictor is the interface of models that produce predictions.
type Predictor interface {
	// Predict returns an n_samples x 1 matrix of predictions for X.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// SupervisedEstimator is what the auto-ML tournament trains, scores
// and persists: anything that can fit and predict.
type SupervisedEstimator interface {
	Fitter
	Predictor
}
