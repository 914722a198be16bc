package preprocessing

import (
	"sort"

	"github.com/go-sanice/sanice/core/model"
	"github.com/go-sanice/sanice/pkg/errors"
)

// OneHotEncoder expands one categorical column into indicator columns,
// one per category. With DropFirst the alphabetically first category
// is omitted, so k categories produce k-1 columns and the dropped
// category is encoded as all zeros.
type OneHotEncoder struct {
	model.BaseEstimator

	// DropFirst omits the first category from the output columns.
	DropFirst bool

	// Categories are the sorted unique values seen by Fit.
	Categories []string
}

// NewOneHotEncoder creates an unfitted OneHotEncoder.
func NewOneHotEncoder(dropFirst bool) *OneHotEncoder {
	return &OneHotEncoder{DropFirst: dropFirst}
}

// Fit records the sorted unique categories present in values.
func (e *OneHotEncoder) Fit(values []string) error {
	if len(values) == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty data", errors.ErrEmptyData)
	}

	seen := make(map[string]struct{}, len(values))
	e.Categories = e.Categories[:0]
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			e.Categories = append(e.Categories, v)
		}
	}
	sort.Strings(e.Categories)

	e.SetFitted()
	return nil
}

// outputCategories returns the categories that get their own column.
func (e *OneHotEncoder) outputCategories() []string {
	if e.DropFirst && len(e.Categories) > 0 {
		return e.Categories[1:]
	}
	return e.Categories
}

// FeatureNames returns the encoded column names for a source column,
// following the pandas get_dummies convention of "column_category".
func (e *OneHotEncoder) FeatureNames(column string) []string {
	cats := e.outputCategories()
	names := make([]string, len(cats))
	for i, cat := range cats {
		names[i] = column + "_" + cat
	}
	return names
}

// Transform encodes values into indicator columns. The result is one
// row per value, one column per output category; values outside the
// fitted categories encode as all zeros.
func (e *OneHotEncoder) Transform(values []string) ([][]float64, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}

	cats := e.outputCategories()
	index := make(map[string]int, len(cats))
	for i, cat := range cats {
		index[cat] = i
	}

	out := make([][]float64, len(values))
	for i, v := range values {
		row := make([]float64, len(cats))
		if j, ok := index[v]; ok {
			row[j] = 1.0
		}
		out[i] = row
	}
	return out, nil
}

// FitTransform fits on values and returns their encoding.
func (e *OneHotEncoder) FitTransform(values []string) ([][]float64, error) {
	if err := e.Fit(values); err != nil {
		return nil, err
	}
	return e.Transform(values)
}
