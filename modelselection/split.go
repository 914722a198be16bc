// Package modelselection provides the train/test split used by the
// auto-ML tournament.
package modelselection

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/go-sanice/sanice/pkg/errors"
)

// TrainTestSplit shuffles the rows of X and y with the given seed and
// splits them into train and test partitions. testSize is the fraction
// of rows held out for testing; the test partition always keeps at
// least one row, and so does the train partition.
func TrainTestSplit(X, y mat.Matrix, testSize float64, seed int64) (XTrain, XTest, yTrain, yTest *mat.Dense, err error) {
	n, p := X.Dims()
	yRows, yCols := y.Dims()

	if n == 0 {
		return nil, nil, nil, nil, errors.NewModelError("TrainTestSplit", "empty data", errors.ErrEmptyData)
	}
	if yRows != n {
		return nil, nil, nil, nil, errors.NewDimensionError("TrainTestSplit", n, yRows, 0)
	}
	if yCols != 1 {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "y must be a column vector")
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, nil, nil, errors.NewValueError("TrainTestSplit", "testSize must be in (0, 1)")
	}

	nTest := int(float64(n) * testSize)
	if nTest < 1 {
		nTest = 1
	}
	if nTest >= n {
		nTest = n - 1
	}
	nTrain := n - nTest

	perm := rand.New(rand.NewSource(seed)).Perm(n)

	XTrain = mat.NewDense(nTrain, p, nil)
	XTest = mat.NewDense(nTest, p, nil)
	yTrain = mat.NewDense(nTrain, 1, nil)
	yTest = mat.NewDense(nTest, 1, nil)

	for i, src := range perm {
		if i < nTrain {
			for j := 0; j < p; j++ {
				XTrain.Set(i, j, X.At(src, j))
			}
			yTrain.Set(i, 0, y.At(src, 0))
		} else {
			row := i - nTrain
			for j := 0; j < p; j++ {
				XTest.Set(row, j, X.At(src, j))
			}
			yTest.Set(row, 0, y.At(src, 0))
		}
	}

	return XTrain, XTest, yTrain, yTest, nil
}
