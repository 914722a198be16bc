package sanice

import (
	"math"
	"sort"

	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/go-sanice/sanice/core/model"
	"github.com/go-sanice/sanice/lang"
	"github.com/go-sanice/sanice/pkg/errors"
	"github.com/go-sanice/sanice/preprocessing"
)

// iqrMultiplier is the classic Tukey fence width.
const iqrMultiplier = 1.5

// HandleOutliers drops rows whose value in any of the given columns
// falls outside [Q1 - 1.5*IQR, Q3 + 1.5*IQR]. Null cells never count
// as outliers.
func (p *Pipeline) HandleOutliers(cols ...string) *Pipeline {
	if !p.ready() {
		return p
	}

	before := p.df.Nrow()

	for _, col := range cols {
		if !p.hasColumn(col) {
			p.failErr(errors.NewColumnError("handle_outliers", col))
			return p
		}

		values := p.df.Col(col).Float()
		lo, hi, ok := iqrFences(values)
		if !ok {
			continue
		}

		keep := make([]int, 0, len(values))
		for i, v := range values {
			if math.IsNaN(v) || (v >= lo && v <= hi) {
				keep = append(keep, i)
			}
		}
		p.df = p.df.Subset(keep)
		if p.df.Err != nil {
			p.failErr(p.df.Err)
			return p
		}
	}

	p.logf("outlier_rem", lang.Args{"qtd": before - p.df.Nrow()})
	return p
}

// iqrFences returns the Tukey fences of the non-null values. ok is
// false when there is nothing to fence.
func iqrFences(values []float64) (lo, hi float64, ok bool) {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return 0, 0, false
	}
	sort.Float64s(clean)

	q1 := quantile(clean, 0.25)
	q3 := quantile(clean, 0.75)
	iqr := q3 - q1
	return q1 - iqrMultiplier*iqr, q3 + iqrMultiplier*iqr, true
}

// quantile interpolates linearly between adjacent order statistics
// (the R-7 rule, pandas' default). sorted must be ascending and
// non-empty.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	frac := pos - float64(lo)
	if frac == 0 {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Scale normalizes every numeric column in place: method "minmax"
// rescales to [0, 1], anything else standardizes to zero mean and unit
// variance. The fitted scaler is retained so predictions made after
// LoadModel can re-apply the same transformation.
func (p *Pipeline) Scale(method string) *Pipeline {
	if !p.ready() {
		return p
	}

	cols := p.numericColumns()
	if len(cols) == 0 {
		p.failErr(errors.NewValueError("scale", "no numeric columns to scale"))
		return p
	}

	n := p.df.Nrow()
	X := mat.NewDense(n, len(cols), nil)
	for j, col := range cols {
		values := p.df.Col(col).Float()
		for i, v := range values {
			X.Set(i, j, v)
		}
	}

	var scaler model.Transformer
	if method == "minmax" {
		scaler = preprocessing.NewMinMaxScaler()
	} else {
		scaler = preprocessing.NewStandardScaler()
	}

	scaled, err := scaler.FitTransform(X)
	if err != nil {
		p.failErr(err)
		return p
	}

	for j, col := range cols {
		out := make([]float64, n)
		for i := range out {
			out[i] = scaled.At(i, j)
		}
		p.df = p.df.Mutate(series.New(out, series.Float, col))
	}

	p.scaler = scaler
	p.scaleCols = cols
	p.logf("scale_ok", lang.Args{"method": method})
	return p
}
