package sanice

import (
	"encoding/gob"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/go-sanice/sanice/core/model"
	"github.com/go-sanice/sanice/ensemble"
	"github.com/go-sanice/sanice/lang"
	"github.com/go-sanice/sanice/linear"
	"github.com/go-sanice/sanice/pkg/errors"
	"github.com/go-sanice/sanice/preprocessing"
)

// The concrete types reachable through the Artifact's interface fields
// must be registered before gob can encode them.
func init() {
	gob.Register(&linear.LinearRegression{})
	gob.Register(&linear.LogisticRegression{})
	gob.Register(&ensemble.RandomForestRegressor{})
	gob.Register(&ensemble.RandomForestClassifier{})
	gob.Register(&ensemble.GradientBoostingRegressor{})
	gob.Register(&ensemble.GradientBoostingClassifier{})
	gob.Register(&preprocessing.StandardScaler{})
	gob.Register(&preprocessing.MinMaxScaler{})
}

// Artifact is everything a trained model needs to predict on a new
// table: the estimator itself, the exact ordered feature columns it
// was fit on, the class labels (classification only) and the scaler
// that was active during training, if any.
type Artifact struct {
	// Model is the tournament winner.
	Model model.SupervisedEstimator

	// ModelName is the winner's tournament name.
	ModelName string

	// Task is "classification" or "regression".
	Task string

	// Score is the winner's held-out score.
	Score float64

	// Columns are the encoded feature names, in training order. Every
	// prediction reindexes the incoming table to this list.
	Columns []string

	// Labels are the sorted class labels; empty for regression.
	Labels []string

	// Scaler is the transformation active during training, or nil.
	Scaler model.Transformer

	// ScaleCols are the columns Scaler was fit on.
	ScaleCols []string
}

// Save gob-encodes the artifact to a file.
func (a *Artifact) Save(path string) error {
	return model.SaveModel(a, path)
}

// LoadArtifact restores an artifact persisted by Save.
func LoadArtifact(path string) (*Artifact, error) {
	var a Artifact
	if err := model.LoadModel(&a, path); err != nil {
		return nil, err
	}
	return &a, nil
}

// LoadModel restores a persisted artifact and makes it the pipeline's
// active model. The artifact's scaler, if any, replaces the pipeline's
// so predictions replay the training-time transformation.
func (p *Pipeline) LoadModel(path string) *Pipeline {
	artifact, err := LoadArtifact(path)
	if err != nil {
		p.fail("err_load_ia", err, nil)
		return p
	}

	p.artifact = artifact
	if artifact.Scaler != nil {
		p.scaler = artifact.Scaler
		p.scaleCols = artifact.ScaleCols
	}

	p.logf("ia_loaded", lang.Args{"n": len(artifact.Columns)})
	return p
}

// Predict runs the active model over the current table and writes the
// predictions into outCol. The table is re-encoded the way AutoML
// encoded the training data, then reindexed to the stored training
// columns: features the table lacks are zero-filled and features the
// model never saw are dropped. Classification predictions come back as
// the original labels. Calling Predict without an active model (from
// AutoML or LoadModel) is an error.
func (p *Pipeline) Predict(outCol string) *Pipeline {
	if !p.ready() {
		return p
	}
	if p.artifact == nil || p.artifact.Model == nil {
		p.fail("err_load_ia", errors.ErrNoModel, nil)
		return p
	}
	a := p.artifact

	work := p.df.Copy()

	// Replay the training-time scaling before encoding.
	if a.Scaler != nil && len(a.ScaleCols) > 0 {
		scaled, err := applyScaler(work, a.Scaler, a.ScaleCols)
		if err != nil {
			p.failErr(err)
			return p
		}
		work = scaled
	}

	skip := make(map[string]bool, len(p.dateCols))
	for col := range p.dateCols {
		skip[col] = true
	}

	fs, err := encodeFeatures(work, skip)
	if err != nil {
		p.failErr(err)
		return p
	}

	// Reindex to the training columns; this is the invariant that keeps
	// the stored column list aligned with what the model was fit on.
	X := fs.matrix(a.Columns)

	preds, err := a.Model.Predict(X)
	if err != nil {
		p.failErr(err)
		return p
	}

	p.df = p.df.Mutate(predictionSeries(outCol, preds, a))
	if p.df.Err != nil {
		p.failErr(p.df.Err)
		return p
	}

	p.logf("pred_done", lang.Args{"col": outCol})
	return p
}

// applyScaler transforms the given columns of a dataframe through a
// fitted scaler. Columns missing from the table are skipped, in which
// case the scaler is not applied at all (its feature count would not
// match).
func applyScaler(df dataframe.DataFrame, scaler model.Transformer, cols []string) (dataframe.DataFrame, error) {
	names := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		names[n] = true
	}
	for _, col := range cols {
		if !names[col] {
			return df, nil
		}
	}

	n := df.Nrow()
	X := mat.NewDense(n, len(cols), nil)
	for j, col := range cols {
		values := df.Col(col).Float()
		for i, v := range values {
			X.Set(i, j, v)
		}
	}

	scaled, err := scaler.Transform(X)
	if err != nil {
		return df, err
	}

	for j, col := range cols {
		out := make([]float64, n)
		for i := range out {
			out[i] = scaled.At(i, j)
		}
		df = df.Mutate(series.New(out, series.Float, col))
		if df.Err != nil {
			return df, df.Err
		}
	}
	return df, nil
}

// predictionSeries renders the raw model output as a column:
// classification indices map back to the stored labels, regression
// predictions stay floats.
func predictionSeries(name string, preds mat.Matrix, a *Artifact) series.Series {
	r, _ := preds.Dims()

	if a.Task == "classification" && len(a.Labels) > 0 {
		out := make([]string, r)
		for i := 0; i < r; i++ {
			idx := int(preds.At(i, 0))
			if idx < 0 || idx >= len(a.Labels) {
				out[i] = "NaN"
				continue
			}
			out[i] = a.Labels[idx]
		}
		return series.New(out, series.String, name)
	}

	out := make([]float64, r)
	for i := 0; i < r; i++ {
		out[i] = preds.At(i, 0)
	}
	return series.New(out, series.Float, name)
}
