package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1.0, 10.0,
		2.0, 20.0,
		3.0, 30.0,
		4.0, 40.0,
	})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	r, c := scaled.Dims()
	for j := 0; j < c; j++ {
		var sum, sumSq float64
		for i := 0; i < r; i++ {
			sum += scaled.At(i, j)
		}
		mean := sum / float64(r)
		for i := 0; i < r; i++ {
			diff := scaled.At(i, j) - mean
			sumSq += diff * diff
		}
		std := math.Sqrt(sumSq / float64(r))

		if math.Abs(mean) > 1e-10 {
			t.Errorf("column %d mean = %v, want 0", j, mean)
		}
		if math.Abs(std-1.0) > 1e-10 {
			t.Errorf("column %d std = %v, want 1", j, std)
		}
	}

	restored, err := scaler.InverseTransform(scaled)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.Abs(restored.At(i, j)-X.At(i, j)) > 1e-10 {
				t.Fatalf("InverseTransform()[%d,%d] = %v, want %v", i, j, restored.At(i, j), X.At(i, j))
			}
		}
	}
}

func TestStandardScalerConstantFeature(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{7.0, 7.0, 7.0})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if got := scaled.At(i, 0); got != 0 {
			t.Errorf("constant feature scaled to %v, want 0", got)
		}
	}
}

func TestMinMaxScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1.0, -5.0,
		2.0, 0.0,
		3.0, 5.0,
		5.0, 15.0,
	})

	scaler := NewMinMaxScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	r, c := scaled.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := scaled.At(i, j)
			if v < 0 || v > 1 {
				t.Errorf("scaled[%d,%d] = %v, want within [0,1]", i, j, v)
			}
		}
	}
	if got := scaled.At(0, 0); math.Abs(got) > 1e-10 {
		t.Errorf("minimum should scale to 0, got %v", got)
	}
	if got := scaled.At(3, 0); math.Abs(got-1.0) > 1e-10 {
		t.Errorf("maximum should scale to 1, got %v", got)
	}
}

func TestScalerNotFitted(t *testing.T) {
	X := mat.NewDense(2, 2, nil)

	if _, err := NewStandardScaler().Transform(X); err == nil {
		t.Error("StandardScaler.Transform() before Fit should error")
	}
	if _, err := NewMinMaxScaler().Transform(X); err == nil {
		t.Error("MinMaxScaler.Transform() before Fit should error")
	}
}

func TestScalerDimensionMismatch(t *testing.T) {
	scaler := NewMinMaxScaler()
	if err := scaler.Fit(mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := scaler.Transform(mat.NewDense(3, 3, nil)); err == nil {
		t.Error("Transform() with wrong feature count should error")
	}
}

func TestOneHotEncoder(t *testing.T) {
	values := []string{"b", "a", "c", "a"}

	enc := NewOneHotEncoder(true)
	encoded, err := enc.FitTransform(values)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	// Categories sort to [a b c]; drop-first removes "a".
	names := enc.FeatureNames("city")
	wantNames := []string{"city_b", "city_c"}
	if len(names) != len(wantNames) {
		t.Fatalf("FeatureNames() = %v, want %v", names, wantNames)
	}
	for i := range names {
		if names[i] != wantNames[i] {
			t.Errorf("FeatureNames()[%d] = %q, want %q", i, names[i], wantNames[i])
		}
	}

	want := [][]float64{
		{1, 0}, // b
		{0, 0}, // a (dropped category)
		{0, 1}, // c
		{0, 0}, // a
	}
	for i := range want {
		for j := range want[i] {
			if encoded[i][j] != want[i][j] {
				t.Errorf("encoded[%d][%d] = %v, want %v", i, j, encoded[i][j], want[i][j])
			}
		}
	}
}

func TestOneHotEncoderUnseenCategory(t *testing.T) {
	enc := NewOneHotEncoder(true)
	if err := enc.Fit([]string{"x", "y"}); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	encoded, err := enc.Transform([]string{"z"})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	for j, v := range encoded[0] {
		if v != 0 {
			t.Errorf("unseen category encoded[0][%d] = %v, want 0", j, v)
		}
	}
}
