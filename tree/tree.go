// Package tree implements the CART decision tree shared by the random
// forest and gradient boosting ensembles. Classification splits
// minimize Gini impurity; regression splits maximize variance
// reduction.
package tree

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/go-sanice/sanice/core/model"
	"github.com/go-sanice/sanice/pkg/errors"
)

// Task selects the split criterion of a DecisionTree.
const (
	TaskRegression     = "regression"
	TaskClassification = "classification"
)

// Node is one node of a fitted tree. Fields are exported so a trained
// tree gob-encodes inside a saved artifact.
type Node struct {
	Leaf      bool
	Feature   int
	Threshold float64
	Left      *Node
	Right     *Node

	// Value is the leaf prediction: the target mean for regression,
	// the majority class index for classification.
	Value float64
}

// DecisionTree is a CART tree over a dense numeric feature matrix.
// Samples with x <= Threshold go left.
type DecisionTree struct {
	model.BaseEstimator

	// Task is TaskRegression or TaskClassification.
	Task string

	// MaxDepth caps the tree depth; 0 means unlimited.
	MaxDepth int

	// MinSamplesSplit is the minimum node size to attempt a split.
	MinSamplesSplit int

	// MaxFeatures is the number of features sampled per split;
	// 0 means all features.
	MaxFeatures int

	// Seed drives the feature subsampling.
	Seed int64

	// NumClasses is the number of classes seen during Fit
	// (classification only).
	NumClasses int

	// NFeatures is the number of features seen during Fit.
	NFeatures int

	// Root is the fitted tree.
	Root *Node
}

// TreeOption configures a DecisionTree.
type TreeOption func(*DecisionTree)

// WithMaxDepth caps the tree depth.
func WithMaxDepth(depth int) TreeOption {
	return func(t *DecisionTree) { t.MaxDepth = depth }
}

// WithMinSamplesSplit sets the minimum node size to attempt a split.
func WithMinSamplesSplit(n int) TreeOption {
	return func(t *DecisionTree) { t.MinSamplesSplit = n }
}

// WithMaxFeatures sets the number of features sampled per split.
func WithMaxFeatures(k int) TreeOption {
	return func(t *DecisionTree) { t.MaxFeatures = k }
}

// WithSeed sets the feature subsampling seed.
func WithSeed(seed int64) TreeOption {
	return func(t *DecisionTree) { t.Seed = seed }
}

// NewDecisionTree creates an unfitted tree for the given task.
func NewDecisionTree(task string, opts ...TreeOption) *DecisionTree {
	t := &DecisionTree{
		Task:            task,
		MinSamplesSplit: 2,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Fit grows the tree on X against the column vector y. For
// classification, labels must be class indices 0..k-1.
func (t *DecisionTree) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("DecisionTree.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("DecisionTree.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("DecisionTree.Fit", "y must be a column vector")
	}
	if t.Task != TaskRegression && t.Task != TaskClassification {
		return errors.NewValueError("DecisionTree.Fit", "unknown task "+t.Task)
	}

	rows := make([][]float64, r)
	labels := make([]float64, r)
	for i := 0; i < r; i++ {
		rows[i] = make([]float64, c)
		for j := 0; j < c; j++ {
			rows[i][j] = X.At(i, j)
		}
		labels[i] = y.At(i, 0)
	}

	t.NFeatures = c
	if t.Task == TaskClassification {
		maxLabel := 0.0
		for _, lab := range labels {
			if lab != math.Trunc(lab) || lab < 0 {
				return errors.NewValueError("DecisionTree.Fit", "classification labels must be non-negative integers")
			}
			if lab > maxLabel {
				maxLabel = lab
			}
		}
		t.NumClasses = int(maxLabel) + 1
	}

	idx := make([]int, r)
	for i := range idx {
		idx[i] = i
	}

	rnd := rand.New(rand.NewSource(t.Seed))
	t.Root = t.grow(rows, labels, idx, 0, rnd)
	t.SetFitted()
	return nil
}

// Predict returns the leaf value per row as an n x 1 matrix.
func (t *DecisionTree) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !t.IsFitted() {
		return nil, errors.NewNotFittedError("DecisionTree", "Predict")
	}

	r, c := X.Dims()
	if c != t.NFeatures {
		return nil, errors.NewDimensionError("DecisionTree.Predict", t.NFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			row[j] = X.At(i, j)
		}
		predictions.Set(i, 0, t.predictRow(row))
	}
	return predictions, nil
}

func (t *DecisionTree) predictRow(x []float64) float64 {
	node := t.Root
	for !node.Leaf {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

// grow builds one node over the samples in idx.
func (t *DecisionTree) grow(rows [][]float64, labels []float64, idx []int, depth int, rnd *rand.Rand) *Node {
	if len(idx) < t.MinSamplesSplit || (t.MaxDepth > 0 && depth >= t.MaxDepth) || t.pure(labels, idx) {
		return t.leaf(labels, idx)
	}

	feature, threshold, gain := t.bestSplit(rows, labels, idx, rnd)
	if gain <= 0 {
		return t.leaf(labels, idx)
	}

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if rows[i][feature] <= threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	if len(leftIdx) == 0 || len(rightIdx) == 0 {
		return t.leaf(labels, idx)
	}

	return &Node{
		Feature:   feature,
		Threshold: threshold,
		Left:      t.grow(rows, labels, leftIdx, depth+1, rnd),
		Right:     t.grow(rows, labels, rightIdx, depth+1, rnd),
	}
}

func (t *DecisionTree) pure(labels []float64, idx []int) bool {
	first := labels[idx[0]]
	for _, i := range idx[1:] {
		if labels[i] != first {
			return false
		}
	}
	return true
}

func (t *DecisionTree) leaf(labels []float64, idx []int) *Node {
	if t.Task == TaskClassification {
		counts := make([]int, t.NumClasses)
		for _, i := range idx {
			counts[int(labels[i])]++
		}
		best := 0
		for c := 1; c < len(counts); c++ {
			if counts[c] > counts[best] {
				best = c
			}
		}
		return &Node{Leaf: true, Value: float64(best)}
	}

	sum := 0.0
	for _, i := range idx {
		sum += labels[i]
	}
	return &Node{Leaf: true, Value: sum / float64(len(idx))}
}

// bestSplit scans candidate features and midpoints between adjacent
// distinct values, returning the split with the largest impurity
// decrease.
func (t *DecisionTree) bestSplit(rows [][]float64, labels []float64, idx []int, rnd *rand.Rand) (feature int, threshold, gain float64) {
	p := len(rows[idx[0]])
	features := make([]int, p)
	for j := range features {
		features[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		rnd.Shuffle(p, func(a, b int) { features[a], features[b] = features[b], features[a] })
		features = features[:t.MaxFeatures]
	}

	parent := t.impurity(labels, idx)
	feature = -1

	ordered := make([]int, len(idx))
	for _, f := range features {
		copy(ordered, idx)
		sortByFeature(rows, ordered, f)

		for s := 1; s < len(ordered); s++ {
			prev := rows[ordered[s-1]][f]
			cur := rows[ordered[s]][f]
			if prev == cur {
				continue
			}

			left := ordered[:s]
			right := ordered[s:]
			weighted := (float64(len(left))*t.impurity(labels, left) +
				float64(len(right))*t.impurity(labels, right)) / float64(len(ordered))

			if g := parent - weighted; g > gain {
				gain = g
				feature = f
				threshold = (prev + cur) / 2.0
			}
		}
	}
	return feature, threshold, gain
}

// impurity is Gini for classification, variance for regression.
func (t *DecisionTree) impurity(labels []float64, idx []int) float64 {
	n := float64(len(idx))
	if n == 0 {
		return 0
	}

	if t.Task == TaskClassification {
		counts := make([]int, t.NumClasses)
		for _, i := range idx {
			counts[int(labels[i])]++
		}
		gini := 1.0
		for _, c := range counts {
			p := float64(c) / n
			gini -= p * p
		}
		return gini
	}

	var sum, sumSq float64
	for _, i := range idx {
		sum += labels[i]
		sumSq += labels[i] * labels[i]
	}
	mean := sum / n
	return sumSq/n - mean*mean
}

func sortByFeature(rows [][]float64, idx []int, f int) {
	sort.Slice(idx, func(a, b int) bool { return rows[idx[a]][f] < rows[idx[b]][f] })
}
