package ensemble

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/go-sanice/sanice/core/model"
	"github.com/go-sanice/sanice/metrics"
	"github.com/go-sanice/sanice/pkg/errors"
	"github.com/go-sanice/sanice/tree"
)

// BoostingOption configures a gradient boosting ensemble.
type BoostingOption func(*boostingParams)

type boostingParams struct {
	nEstimators  int
	learningRate float64
	maxDepth     int
	seed         int64
}

// WithBoostingEstimators sets the number of boosting rounds.
func WithBoostingEstimators(n int) BoostingOption {
	return func(p *boostingParams) { p.nEstimators = n }
}

// WithBoostingLearningRate sets the shrinkage applied to every tree.
func WithBoostingLearningRate(rate float64) BoostingOption {
	return func(p *boostingParams) { p.learningRate = rate }
}

// WithBoostingMaxDepth caps the depth of the weak learners.
func WithBoostingMaxDepth(depth int) BoostingOption {
	return func(p *boostingParams) { p.maxDepth = depth }
}

// WithBoostingSeed sets the seed for the weak learners.
func WithBoostingSeed(seed int64) BoostingOption {
	return func(p *boostingParams) { p.seed = seed }
}

// sklearn's GradientBoosting defaults.
func newBoostingParams(opts []BoostingOption) boostingParams {
	p := boostingParams{
		nEstimators:  100,
		learningRate: 0.1,
		maxDepth:     3,
		seed:         42,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// GradientBoostingRegressor fits shallow regression trees to the
// residuals of the running prediction, shrunk by the learning rate.
type GradientBoostingRegressor struct {
	model.BaseEstimator

	// NEstimators is the number of boosting rounds.
	NEstimators int

	// LearningRate is the shrinkage applied to every tree.
	LearningRate float64

	// MaxDepth caps the depth of the weak learners.
	MaxDepth int

	// Seed drives the weak learners' feature subsampling.
	Seed int64

	// NFeatures is the number of features seen during Fit.
	NFeatures int

	// Init is the constant initial prediction (the target mean).
	Init float64

	// Trees holds the fitted weak learners in boosting order.
	Trees []*tree.DecisionTree
}

// NewGradientBoostingRegressor creates an unfitted booster with
// 100 rounds, learning rate 0.1 and depth-3 trees.
func NewGradientBoostingRegressor(opts ...BoostingOption) *GradientBoostingRegressor {
	p := newBoostingParams(opts)
	return &GradientBoostingRegressor{
		NEstimators:  p.nEstimators,
		LearningRate: p.learningRate,
		MaxDepth:     p.maxDepth,
		Seed:         p.seed,
	}
}

// Fit boosts on X against the column vector y.
func (gb *GradientBoostingRegressor) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("GradientBoostingRegressor.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("GradientBoostingRegressor.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("GradientBoostingRegressor.Fit", "y must be a column vector")
	}

	gb.NFeatures = c

	sum := 0.0
	for i := 0; i < r; i++ {
		sum += y.At(i, 0)
	}
	gb.Init = sum / float64(r)

	current := make([]float64, r)
	for i := range current {
		current[i] = gb.Init
	}

	gb.Trees = gb.Trees[:0]
	residuals := mat.NewDense(r, 1, nil)

	for round := 0; round < gb.NEstimators; round++ {
		for i := 0; i < r; i++ {
			residuals.Set(i, 0, y.At(i, 0)-current[i])
		}

		t := tree.NewDecisionTree(tree.TaskRegression,
			tree.WithMaxDepth(gb.MaxDepth),
			tree.WithSeed(gb.Seed+int64(round)),
		)
		if err := t.Fit(X, residuals); err != nil {
			return err
		}

		pred, err := t.Predict(X)
		if err != nil {
			return err
		}
		for i := 0; i < r; i++ {
			current[i] += gb.LearningRate * pred.At(i, 0)
		}

		gb.Trees = append(gb.Trees, t)
	}

	gb.SetFitted()
	return nil
}

// Predict returns the boosted prediction per row.
func (gb *GradientBoostingRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !gb.IsFitted() {
		return nil, errors.NewNotFittedError("GradientBoostingRegressor", "Predict")
	}

	r, c := X.Dims()
	if c != gb.NFeatures {
		return nil, errors.NewDimensionError("GradientBoostingRegressor.Predict", gb.NFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		predictions.Set(i, 0, gb.Init)
	}
	for _, t := range gb.Trees {
		pred, err := t.Predict(X)
		if err != nil {
			return nil, err
		}
		for i := 0; i < r; i++ {
			predictions.Set(i, 0, predictions.At(i, 0)+gb.LearningRate*pred.At(i, 0))
		}
	}
	return predictions, nil
}

// Score returns the coefficient of determination R² on (X, y).
func (gb *GradientBoostingRegressor) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := gb.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, yPred)
}

// GradientBoostingClassifier is a binary classifier boosting
// regression trees on the log-odds scale. Labels must be 0 or 1;
// multiclass input is rejected and the tournament skips the model.
type GradientBoostingClassifier struct {
	model.BaseEstimator

	// NEstimators is the number of boosting rounds.
	NEstimators int

	// LearningRate is the shrinkage applied to every tree.
	LearningRate float64

	// MaxDepth caps the depth of the weak learners.
	MaxDepth int

	// Seed drives the weak learners' feature subsampling.
	Seed int64

	// NFeatures is the number of features seen during Fit.
	NFeatures int

	// Init is the initial log-odds of the positive class.
	Init float64

	// Trees holds the fitted weak learners in boosting order.
	Trees []*tree.DecisionTree
}

// NewGradientBoostingClassifier creates an unfitted booster with
// 100 rounds, learning rate 0.1 and depth-3 trees.
func NewGradientBoostingClassifier(opts ...BoostingOption) *GradientBoostingClassifier {
	p := newBoostingParams(opts)
	return &GradientBoostingClassifier{
		NEstimators:  p.nEstimators,
		LearningRate: p.learningRate,
		MaxDepth:     p.maxDepth,
		Seed:         p.seed,
	}
}

// Fit boosts on X against binary labels y.
func (gb *GradientBoostingClassifier) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("GradientBoostingClassifier.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("GradientBoostingClassifier.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("GradientBoostingClassifier.Fit", "y must be a column vector")
	}

	positives := 0
	for i := 0; i < r; i++ {
		switch y.At(i, 0) {
		case 0:
		case 1:
			positives++
		default:
			return errors.NewValueError("GradientBoostingClassifier.Fit", "labels must be binary (0 or 1)")
		}
	}
	if positives == 0 || positives == r {
		return errors.NewValueError("GradientBoostingClassifier.Fit", "both classes must be present")
	}

	gb.NFeatures = c

	// Initial log-odds of the positive class.
	prior := float64(positives) / float64(r)
	gb.Init = math.Log(prior / (1 - prior))

	current := make([]float64, r)
	for i := range current {
		current[i] = gb.Init
	}

	gb.Trees = gb.Trees[:0]
	pseudo := mat.NewDense(r, 1, nil)

	for round := 0; round < gb.NEstimators; round++ {
		// Pseudo-residuals of the log loss: y - sigmoid(F).
		for i := 0; i < r; i++ {
			p := 1.0 / (1.0 + math.Exp(-current[i]))
			pseudo.Set(i, 0, y.At(i, 0)-p)
		}

		t := tree.NewDecisionTree(tree.TaskRegression,
			tree.WithMaxDepth(gb.MaxDepth),
			tree.WithSeed(gb.Seed+int64(round)),
		)
		if err := t.Fit(X, pseudo); err != nil {
			return err
		}

		pred, err := t.Predict(X)
		if err != nil {
			return err
		}
		for i := 0; i < r; i++ {
			current[i] += gb.LearningRate * pred.At(i, 0)
		}

		gb.Trees = append(gb.Trees, t)
	}

	gb.SetFitted()
	return nil
}

// decisionFunction returns the boosted log-odds per row.
func (gb *GradientBoostingClassifier) decisionFunction(X mat.Matrix) (*mat.Dense, error) {
	r, c := X.Dims()
	if c != gb.NFeatures {
		return nil, errors.NewDimensionError("GradientBoostingClassifier.Predict", gb.NFeatures, c, 1)
	}

	scores := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		scores.Set(i, 0, gb.Init)
	}
	for _, t := range gb.Trees {
		pred, err := t.Predict(X)
		if err != nil {
			return nil, err
		}
		for i := 0; i < r; i++ {
			scores.Set(i, 0, scores.At(i, 0)+gb.LearningRate*pred.At(i, 0))
		}
	}
	return scores, nil
}

// Predict returns the predicted class (0 or 1) per row.
func (gb *GradientBoostingClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !gb.IsFitted() {
		return nil, errors.NewNotFittedError("GradientBoostingClassifier", "Predict")
	}

	scores, err := gb.decisionFunction(X)
	if err != nil {
		return nil, err
	}

	r, _ := scores.Dims()
	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		if scores.At(i, 0) >= 0 {
			predictions.Set(i, 0, 1)
		}
	}
	return predictions, nil
}

// PredictProba returns the positive-class probability per row.
func (gb *GradientBoostingClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	if !gb.IsFitted() {
		return nil, errors.NewNotFittedError("GradientBoostingClassifier", "PredictProba")
	}

	scores, err := gb.decisionFunction(X)
	if err != nil {
		return nil, err
	}

	r, _ := scores.Dims()
	proba := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		proba.Set(i, 0, 1.0/(1.0+math.Exp(-scores.At(i, 0))))
	}
	return proba, nil
}

// NClasses returns 2; the model is strictly binary.
func (gb *GradientBoostingClassifier) NClasses() int {
	return 2
}

// Score returns the accuracy on (X, y).
func (gb *GradientBoostingClassifier) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := gb.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyMatrix(y, yPred)
}
