package linear

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestLinearRegressionFitPredict(t *testing.T) {
	tests := []struct {
		name      string
		X         *mat.Dense
		y         *mat.Dense
		XTest     *mat.Dense
		want      []float64
		tolerance float64
	}{
		{
			name:      "y = 2x",
			X:         mat.NewDense(4, 1, []float64{1, 2, 3, 4}),
			y:         mat.NewDense(4, 1, []float64{2, 4, 6, 8}),
			XTest:     mat.NewDense(2, 1, []float64{5, 6}),
			want:      []float64{10, 12},
			tolerance: 1e-8,
		},
		{
			name: "y = x1 + 2*x2 + 3",
			X: mat.NewDense(5, 2, []float64{
				1, 1,
				2, 1,
				1, 2,
				3, 2,
				2, 3,
			}),
			y:         mat.NewDense(5, 1, []float64{6, 7, 8, 10, 11}),
			XTest:     mat.NewDense(1, 2, []float64{4, 4}),
			want:      []float64{15},
			tolerance: 1e-8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := NewLinearRegression()
			if err := lr.Fit(tt.X, tt.y); err != nil {
				t.Fatalf("Fit() error = %v", err)
			}

			pred, err := lr.Predict(tt.XTest)
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}
			for i, want := range tt.want {
				if got := pred.At(i, 0); math.Abs(got-want) > tt.tolerance {
					t.Errorf("Predict()[%d] = %v, want %v", i, got, want)
				}
			}

			score, err := lr.Score(tt.X, tt.y)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if math.Abs(score-1.0) > 1e-8 {
				t.Errorf("Score() = %v, want 1.0 on noiseless data", score)
			}
		})
	}
}

func TestLinearRegressionNotFitted(t *testing.T) {
	lr := NewLinearRegression()
	if _, err := lr.Predict(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("Predict() before Fit should error")
	}
}

func TestLinearRegressionDimensionMismatch(t *testing.T) {
	lr := NewLinearRegression()
	if err := lr.Fit(mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6}), mat.NewDense(3, 1, []float64{1, 2, 3})); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := lr.Predict(mat.NewDense(1, 3, []float64{1, 2, 3})); err == nil {
		t.Error("Predict() with wrong feature count should error")
	}
}

func TestLogisticRegressionBinary(t *testing.T) {
	// Linearly separable on x: negatives below 0, positives above.
	X := mat.NewDense(8, 1, []float64{-4, -3, -2, -1, 1, 2, 3, 4})
	y := mat.NewDense(8, 1, []float64{0, 0, 0, 0, 1, 1, 1, 1})

	clf := NewLogisticRegression()
	if err := clf.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	score, err := clf.Score(X, y)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if score < 1.0 {
		t.Errorf("Score() = %v, want 1.0 on separable data", score)
	}

	proba, err := clf.PredictProba(mat.NewDense(2, 1, []float64{-10, 10}))
	if err != nil {
		t.Fatalf("PredictProba() error = %v", err)
	}
	if proba.At(0, 0) > 0.5 {
		t.Errorf("P(y=1 | x=-10) = %v, want below 0.5", proba.At(0, 0))
	}
	if proba.At(1, 0) < 0.5 {
		t.Errorf("P(y=1 | x=10) = %v, want above 0.5", proba.At(1, 0))
	}
}

func TestLogisticRegressionRejectsMulticlass(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{0, 1, 2})

	clf := NewLogisticRegression()
	if err := clf.Fit(X, y); err == nil {
		t.Error("Fit() with three classes should error")
	}
}
