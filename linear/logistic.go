package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/go-sanice/sanice/core/model"
	"github.com/go-sanice/sanice/metrics"
	"github.com/go-sanice/sanice/pkg/errors"
)

// LogisticRegression is a binary classifier trained with batch
// gradient descent on the log loss. Labels must be 0 or 1; multiclass
// input is rejected so the auto-ML tournament can skip this model and
// move on to the ensemble classifiers.
type LogisticRegression struct {
	model.BaseEstimator

	// Coef holds the learned coefficients, one per feature.
	Coef []float64

	// Intercept is the learned bias term.
	Intercept float64

	// NFeatures is the number of features seen during Fit.
	NFeatures int

	// LearningRate is the gradient descent step size.
	LearningRate float64

	// MaxIter bounds the number of gradient descent iterations.
	MaxIter int

	// Tol stops training early once the largest gradient component
	// falls below it.
	Tol float64
}

// LogisticOption configures a LogisticRegression.
type LogisticOption func(*LogisticRegression)

// WithLearningRate sets the gradient descent step size.
func WithLearningRate(rate float64) LogisticOption {
	return func(lr *LogisticRegression) { lr.LearningRate = rate }
}

// WithMaxIter sets the iteration cap.
func WithMaxIter(n int) LogisticOption {
	return func(lr *LogisticRegression) { lr.MaxIter = n }
}

// WithTol sets the early-stopping gradient tolerance.
func WithTol(tol float64) LogisticOption {
	return func(lr *LogisticRegression) { lr.Tol = tol }
}

// NewLogisticRegression creates an unfitted LogisticRegression with
// learning rate 0.1, 1000 iterations and tolerance 1e-6.
func NewLogisticRegression(opts ...LogisticOption) *LogisticRegression {
	lr := &LogisticRegression{
		LearningRate: 0.1,
		MaxIter:      1000,
		Tol:          1e-6,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// Fit trains the classifier on X against binary labels y.
func (lr *LogisticRegression) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LogisticRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LogisticRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LogisticRegression.Fit", "y must be a column vector")
	}
	for i := 0; i < r; i++ {
		if v := y.At(i, 0); v != 0 && v != 1 {
			return errors.NewValueError("LogisticRegression.Fit", "labels must be binary (0 or 1)")
		}
	}

	lr.NFeatures = c
	lr.Coef = make([]float64, c)
	lr.Intercept = 0

	grad := make([]float64, c)
	for iter := 0; iter < lr.MaxIter; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		gradIntercept := 0.0

		for i := 0; i < r; i++ {
			z := lr.Intercept
			for j := 0; j < c; j++ {
				z += X.At(i, j) * lr.Coef[j]
			}
			residual := sigmoid(z) - y.At(i, 0)

			gradIntercept += residual
			for j := 0; j < c; j++ {
				grad[j] += residual * X.At(i, j)
			}
		}

		maxGrad := math.Abs(gradIntercept / float64(r))
		lr.Intercept -= lr.LearningRate * gradIntercept / float64(r)
		for j := 0; j < c; j++ {
			g := grad[j] / float64(r)
			if math.Abs(g) > maxGrad {
				maxGrad = math.Abs(g)
			}
			lr.Coef[j] -= lr.LearningRate * g
		}

		if maxGrad < lr.Tol {
			break
		}
	}

	lr.SetFitted()
	return nil
}

// Predict returns the predicted class (0 or 1) per row as an n x 1
// matrix, thresholding the positive-class probability at 0.5.
func (lr *LogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	proba, err := lr.PredictProba(X)
	if err != nil {
		return nil, err
	}

	r, _ := proba.Dims()
	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		if proba.At(i, 0) >= 0.5 {
			predictions.Set(i, 0, 1)
		}
	}
	return predictions, nil
}

// PredictProba returns the positive-class probability per row.
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LogisticRegression", "PredictProba")
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, errors.NewDimensionError("LogisticRegression.PredictProba", lr.NFeatures, c, 1)
	}

	proba := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		z := lr.Intercept
		for j := 0; j < c; j++ {
			z += X.At(i, j) * lr.Coef[j]
		}
		proba.Set(i, 0, sigmoid(z))
	}
	return proba, nil
}

// NClasses returns 2; the model is strictly binary.
func (lr *LogisticRegression) NClasses() int {
	return 2
}

// Score returns the accuracy on (X, y).
func (lr *LogisticRegression) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyMatrix(y, yPred)
}
