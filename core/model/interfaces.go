package model

import "gonum.org/v1/gonum/mat"

// Scorer is the interface of models that can evaluate themselves.
type Scorer interface {
	// Score returns the model's default metric on (X, y): R² for
	// regressors, accuracy for classifiers.
	Score(X, y mat.Matrix) (float64, error)
}

// Regressor combines the interfaces a regression model satisfies.
type Regressor interface {
	SupervisedEstimator
	Scorer
}

// Classifier combines the interfaces a classification model satisfies.
// Class labels are encoded as indices 0..k-1 in the prediction matrix.
type Classifier interface {
	SupervisedEstimator
	Scorer

	// NClasses returns the number of classes seen during fitting.
	NClasses() int
}

// Persistable is the interface of artifacts that round-trip through a
// file on disk.
type Persistable interface {
	Save(path string) error
	Load(path string) error
}
