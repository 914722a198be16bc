package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "all correct",
			yTrue:     mat.NewVecDense(4, []float64{0, 1, 1, 0}),
			yPred:     mat.NewVecDense(4, []float64{0, 1, 1, 0}),
			want:      1.0,
			tolerance: 1e-10,
		},
		{
			name:      "half correct",
			yTrue:     mat.NewVecDense(4, []float64{0, 1, 1, 0}),
			yPred:     mat.NewVecDense(4, []float64{0, 1, 0, 1}),
			want:      0.5,
			tolerance: 1e-10,
		},
		{
			name:      "multiclass",
			yTrue:     mat.NewVecDense(5, []float64{0, 1, 2, 2, 1}),
			yPred:     mat.NewVecDense(5, []float64{0, 1, 2, 1, 1}),
			want:      0.8,
			tolerance: 1e-10,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{0, 1, 0}),
			yPred:   mat.NewVecDense(2, []float64{0, 1}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Accuracy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("Accuracy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccuracyMatrix(t *testing.T) {
	yTrue := mat.NewDense(3, 1, []float64{0, 1, 1})
	yPred := mat.NewDense(3, 1, []float64{0, 1, 0})

	got, err := AccuracyMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("AccuracyMatrix() error = %v", err)
	}
	if want := 2.0 / 3.0; math.Abs(got-want) > 1e-10 {
		t.Errorf("AccuracyMatrix() = %v, want %v", got, want)
	}
}
