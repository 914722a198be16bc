package tree

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestDecisionTreeClassification(t *testing.T) {
	// Two clusters split on the first feature at x=0.
	X := mat.NewDense(8, 2, []float64{
		-3, 1,
		-2, 5,
		-1, 2,
		-4, 3,
		1, 4,
		2, 1,
		3, 5,
		4, 2,
	})
	y := mat.NewDense(8, 1, []float64{0, 0, 0, 0, 1, 1, 1, 1})

	dt := NewDecisionTree(TaskClassification, WithMaxDepth(3))
	if err := dt.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if dt.NumClasses != 2 {
		t.Errorf("NumClasses = %d, want 2", dt.NumClasses)
	}

	pred, err := dt.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	for i := 0; i < 8; i++ {
		if pred.At(i, 0) != y.At(i, 0) {
			t.Errorf("Predict()[%d] = %v, want %v", i, pred.At(i, 0), y.At(i, 0))
		}
	}
}

func TestDecisionTreeRegression(t *testing.T) {
	// Step function: y = 10 for x < 5, y = 20 otherwise.
	X := mat.NewDense(8, 1, []float64{1, 2, 3, 4, 6, 7, 8, 9})
	y := mat.NewDense(8, 1, []float64{10, 10, 10, 10, 20, 20, 20, 20})

	dt := NewDecisionTree(TaskRegression, WithMaxDepth(2))
	if err := dt.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	pred, err := dt.Predict(mat.NewDense(2, 1, []float64{0, 100}))
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if math.Abs(pred.At(0, 0)-10) > 1e-10 {
		t.Errorf("Predict(0) = %v, want 10", pred.At(0, 0))
	}
	if math.Abs(pred.At(1, 0)-20) > 1e-10 {
		t.Errorf("Predict(100) = %v, want 20", pred.At(1, 0))
	}
}

func TestDecisionTreeConstantTarget(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{5, 5, 5, 5})

	dt := NewDecisionTree(TaskRegression)
	if err := dt.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if !dt.Root.Leaf {
		t.Error("pure target should produce a single leaf")
	}
	if dt.Root.Value != 5 {
		t.Errorf("Root.Value = %v, want 5", dt.Root.Value)
	}
}

func TestDecisionTreeValidation(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})

	dt := NewDecisionTree(TaskClassification)
	if err := dt.Fit(X, mat.NewDense(3, 1, []float64{0, 1.5, 1})); err == nil {
		t.Error("non-integer classification labels should error")
	}

	dt = NewDecisionTree("clustering")
	if err := dt.Fit(X, mat.NewDense(3, 1, []float64{0, 1, 0})); err == nil {
		t.Error("unknown task should error")
	}

	dt = NewDecisionTree(TaskRegression)
	if _, err := dt.Predict(X); err == nil {
		t.Error("Predict() before Fit should error")
	}
}
