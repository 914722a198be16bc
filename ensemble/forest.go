// Package ensemble implements the tree ensembles entered in the
// auto-ML tournament: random forests and gradient boosting, both built
// on the CART trees from the tree package.
package ensemble

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/go-sanice/sanice/core/model"
	"github.com/go-sanice/sanice/core/parallel"
	"github.com/go-sanice/sanice/metrics"
	"github.com/go-sanice/sanice/pkg/errors"
	"github.com/go-sanice/sanice/tree"
)

// ForestOption configures a random forest.
type ForestOption func(*forestParams)

type forestParams struct {
	nEstimators int
	maxDepth    int
	seed        int64
}

// WithForestMaxDepth caps the depth of every tree in the forest.
func WithForestMaxDepth(depth int) ForestOption {
	return func(p *forestParams) { p.maxDepth = depth }
}

// WithForestSeed sets the seed driving bootstrap sampling and feature
// subsampling.
func WithForestSeed(seed int64) ForestOption {
	return func(p *forestParams) { p.seed = seed }
}

func newForestParams(nEstimators int, opts []ForestOption) forestParams {
	p := forestParams{nEstimators: nEstimators, seed: 42}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// bootstrapIndices draws n samples with replacement.
func bootstrapIndices(n int, rnd *rand.Rand) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rnd.Intn(n)
	}
	return idx
}

// subsample builds the bootstrap matrices for one tree.
func subsample(X, y mat.Matrix, idx []int) (*mat.Dense, *mat.Dense) {
	_, p := X.Dims()
	Xb := mat.NewDense(len(idx), p, nil)
	yb := mat.NewDense(len(idx), 1, nil)
	for row, src := range idx {
		for j := 0; j < p; j++ {
			Xb.Set(row, j, X.At(src, j))
		}
		yb.Set(row, 0, y.At(src, 0))
	}
	return Xb, yb
}

// fitForest grows the trees of a forest in parallel, one bootstrap
// sample per tree. Each tree gets its own derived seed so the forest
// is reproducible regardless of scheduling.
func fitForest(X, y mat.Matrix, task string, params forestParams, maxFeatures int) ([]*tree.DecisionTree, error) {
	n, _ := X.Dims()
	trees := make([]*tree.DecisionTree, params.nEstimators)
	errs := make([]error, params.nEstimators)

	parallel.Parallelize(params.nEstimators, func(start, end int) {
		for i := start; i < end; i++ {
			rnd := rand.New(rand.NewSource(params.seed + int64(i)))
			Xb, yb := subsample(X, y, bootstrapIndices(n, rnd))

			t := tree.NewDecisionTree(task,
				tree.WithMaxDepth(params.maxDepth),
				tree.WithMaxFeatures(maxFeatures),
				tree.WithSeed(params.seed+int64(i)),
			)
			if err := t.Fit(Xb, yb); err != nil {
				errs[i] = err
				continue
			}
			trees[i] = t
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return trees, nil
}

// RandomForestRegressor averages the predictions of bootstrapped CART
// regression trees.
type RandomForestRegressor struct {
	model.BaseEstimator

	// NEstimators is the number of trees in the forest.
	NEstimators int

	// MaxDepth caps the depth of every tree; 0 means unlimited.
	MaxDepth int

	// Seed drives bootstrap and feature subsampling.
	Seed int64

	// NFeatures is the number of features seen during Fit.
	NFeatures int

	// Trees holds the fitted forest.
	Trees []*tree.DecisionTree
}

// NewRandomForestRegressor creates an unfitted forest of nEstimators
// regression trees.
func NewRandomForestRegressor(nEstimators int, opts ...ForestOption) *RandomForestRegressor {
	p := newForestParams(nEstimators, opts)
	return &RandomForestRegressor{
		NEstimators: p.nEstimators,
		MaxDepth:    p.maxDepth,
		Seed:        p.seed,
	}
}

// Fit grows the forest on X against the column vector y.
func (rf *RandomForestRegressor) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("RandomForestRegressor.Fit", "empty data", errors.ErrEmptyData)
	}
	if rf.NEstimators < 1 {
		return errors.NewValueError("RandomForestRegressor.Fit", "NEstimators must be at least 1")
	}

	rf.NFeatures = c

	// sklearn default for regression forests: p/3 features per split.
	maxFeatures := c / 3
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	trees, err := fitForest(X, y, tree.TaskRegression, forestParams{
		nEstimators: rf.NEstimators,
		maxDepth:    rf.MaxDepth,
		seed:        rf.Seed,
	}, maxFeatures)
	if err != nil {
		return err
	}

	rf.Trees = trees
	rf.SetFitted()
	return nil
}

// Predict returns the mean tree prediction per row.
func (rf *RandomForestRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !rf.IsFitted() {
		return nil, errors.NewNotFittedError("RandomForestRegressor", "Predict")
	}

	r, c := X.Dims()
	if c != rf.NFeatures {
		return nil, errors.NewDimensionError("RandomForestRegressor.Predict", rf.NFeatures, c, 1)
	}

	sum := mat.NewDense(r, 1, nil)
	for _, t := range rf.Trees {
		pred, err := t.Predict(X)
		if err != nil {
			return nil, err
		}
		sum.Add(sum, pred)
	}
	sum.Scale(1.0/float64(len(rf.Trees)), sum)
	return sum, nil
}

// Score returns the coefficient of determination R² on (X, y).
func (rf *RandomForestRegressor) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := rf.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, yPred)
}

// RandomForestClassifier majority-votes the predictions of
// bootstrapped CART classification trees.
type RandomForestClassifier struct {
	model.BaseEstimator

	// NEstimators is the number of trees in the forest.
	NEstimators int

	// MaxDepth caps the depth of every tree; 0 means unlimited.
	MaxDepth int

	// Seed drives bootstrap and feature subsampling.
	Seed int64

	// NFeatures is the number of features seen during Fit.
	NFeatures int

	// NumClasses is the number of classes seen during Fit.
	NumClasses int

	// Trees holds the fitted forest.
	Trees []*tree.DecisionTree
}

// NewRandomForestClassifier creates an unfitted forest of nEstimators
// classification trees.
func NewRandomForestClassifier(nEstimators int, opts ...ForestOption) *RandomForestClassifier {
	p := newForestParams(nEstimators, opts)
	return &RandomForestClassifier{
		NEstimators: p.nEstimators,
		MaxDepth:    p.maxDepth,
		Seed:        p.seed,
	}
}

// Fit grows the forest on X against class indices y.
func (rf *RandomForestClassifier) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("RandomForestClassifier.Fit", "empty data", errors.ErrEmptyData)
	}
	if rf.NEstimators < 1 {
		return errors.NewValueError("RandomForestClassifier.Fit", "NEstimators must be at least 1")
	}

	rf.NFeatures = c

	// sklearn default for classification forests: sqrt(p) features.
	maxFeatures := int(math.Sqrt(float64(c)))
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	trees, err := fitForest(X, y, tree.TaskClassification, forestParams{
		nEstimators: rf.NEstimators,
		maxDepth:    rf.MaxDepth,
		seed:        rf.Seed,
	}, maxFeatures)
	if err != nil {
		return err
	}

	rf.NumClasses = 0
	for _, t := range trees {
		if t.NumClasses > rf.NumClasses {
			rf.NumClasses = t.NumClasses
		}
	}

	rf.Trees = trees
	rf.SetFitted()
	return nil
}

// Predict returns the majority-vote class index per row.
func (rf *RandomForestClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !rf.IsFitted() {
		return nil, errors.NewNotFittedError("RandomForestClassifier", "Predict")
	}

	r, c := X.Dims()
	if c != rf.NFeatures {
		return nil, errors.NewDimensionError("RandomForestClassifier.Predict", rf.NFeatures, c, 1)
	}

	votes := make([][]int, r)
	for i := range votes {
		votes[i] = make([]int, rf.NumClasses)
	}

	for _, t := range rf.Trees {
		pred, err := t.Predict(X)
		if err != nil {
			return nil, err
		}
		for i := 0; i < r; i++ {
			votes[i][int(pred.At(i, 0))]++
		}
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		best := 0
		for cls := 1; cls < rf.NumClasses; cls++ {
			if votes[i][cls] > votes[i][best] {
				best = cls
			}
		}
		predictions.Set(i, 0, float64(best))
	}
	return predictions, nil
}

// NClasses returns the number of classes seen during Fit.
func (rf *RandomForestClassifier) NClasses() int {
	return rf.NumClasses
}

// Score returns the accuracy on (X, y).
func (rf *RandomForestClassifier) Score(X, y mat.Matrix) (float64, error) {
	yPred, err := rf.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyMatrix(y, yPred)
}
