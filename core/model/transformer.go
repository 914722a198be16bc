package model

import "gonum.org/v1/gonum/mat"

// Transformer is the interface of stateful data transformations such
// as the scalers. A fitted Transformer can be replayed on new data at
// prediction time.
type Transformer interface {
	// Fit learns the transformation parameters from X.
	Fit(X mat.Matrix) error

	// Transform applies the learned transformation to X.
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform fits on X and returns the transformed X.
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}
