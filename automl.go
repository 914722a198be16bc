package sanice

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/go-sanice/sanice/core/model"
	"github.com/go-sanice/sanice/ensemble"
	"github.com/go-sanice/sanice/lang"
	"github.com/go-sanice/sanice/linear"
	"github.com/go-sanice/sanice/metrics"
	"github.com/go-sanice/sanice/modelselection"
	"github.com/go-sanice/sanice/pkg/errors"
	"github.com/go-sanice/sanice/preprocessing"
)

// Tournament defaults matching the estimators' sklearn counterparts.
const (
	defaultTestSize  = 0.2
	splitSeed        = 42
	forestEstimators = 100
)

// MLOption configures one AutoML run.
type MLOption func(*mlConfig)

type mlConfig struct {
	task     string
	testSize float64
	savePath string
}

// WithTask sets the task hint. The run is treated as classification
// when the hint contains a class marker in any supported language
// ("class", "fenlei", "binario", "分类"); anything else means
// regression. The default is classification.
func WithTask(task string) MLOption {
	return func(c *mlConfig) { c.task = task }
}

// WithTestSize sets the held-out fraction used for scoring.
func WithTestSize(size float64) MLOption {
	return func(c *mlConfig) { c.testSize = size }
}

// WithSavePath persists the winning artifact to the given file after
// the tournament.
func WithSavePath(path string) MLOption {
	return func(c *mlConfig) { c.savePath = path }
}

// classMarkers flag a task hint as classification, per language.
var classMarkers = []string{"class", "fenlei", "binario", "分类"}

func isClassificationTask(task string) bool {
	t := strings.ToLower(task)
	for _, marker := range classMarkers {
		if strings.Contains(t, marker) {
			return true
		}
	}
	return false
}

// candidate is one tournament entry.
type candidate struct {
	name string
	est  model.SupervisedEstimator
}

// AutoML trains three estimators on the current table to predict the
// target column and keeps the best scorer. Rows with nulls are dropped,
// date columns are ignored and string columns are one-hot encoded
// (first category dropped). The score is accuracy on a held-out split
// for classification, R² for regression. A failing estimator is logged
// and skipped; the tournament continues with the rest. The winner
// becomes the pipeline's active model and, with WithSavePath, is
// persisted as an Artifact.
func (p *Pipeline) AutoML(target string, opts ...MLOption) *Pipeline {
	if !p.ready() {
		return p
	}

	cfg := mlConfig{task: "classificacao", testSize: defaultTestSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	p.logf("ml_start", lang.Args{"target": target})

	if !p.hasColumn(target) {
		p.failErr(errors.NewColumnError("auto_ml", target))
		return p
	}

	df := dropNullRows(p.df)
	if df.Nrow() == 0 {
		p.failErr(errors.NewValueError("auto_ml", "no complete rows to train on"))
		return p
	}

	skip := map[string]bool{target: true}
	ignored := make([]string, 0, len(p.dateCols))
	for col := range p.dateCols {
		skip[col] = true
		ignored = append(ignored, col)
	}
	if len(ignored) > 0 {
		sort.Strings(ignored)
		p.logf("ml_ignore_date", lang.Args{"cols": strings.Join(ignored, ", ")})
	}

	fs, err := encodeFeatures(df, skip)
	if err != nil {
		p.failErr(err)
		return p
	}
	if len(fs.names) == 0 {
		p.failErr(errors.NewValueError("auto_ml", "no usable feature columns"))
		return p
	}
	p.logf("ml_feats", lang.Args{"n": len(fs.names)})

	isClf := isClassificationTask(cfg.task)

	var y *mat.Dense
	var labels []string
	if isClf {
		y, labels = encodeLabels(df.Col(target).Records())
	} else {
		values := df.Col(target).Float()
		y = mat.NewDense(len(values), 1, values)
	}

	X := fs.matrix(fs.names)

	XTrain, XTest, yTrain, yTest, err := modelselection.TrainTestSplit(X, y, cfg.testSize, splitSeed)
	if err != nil {
		p.failErr(err)
		return p
	}

	var candidates []candidate
	var metricName string
	if isClf {
		candidates = []candidate{
			{"LogisticRegression", linear.NewLogisticRegression()},
			{"RandomForest", ensemble.NewRandomForestClassifier(forestEstimators)},
			{"GradientBoosting", ensemble.NewGradientBoostingClassifier()},
		}
		metricName = "Accuracy"
	} else {
		candidates = []candidate{
			{"LinearRegression", linear.NewLinearRegression()},
			{"RandomForest", ensemble.NewRandomForestRegressor(forestEstimators)},
			{"GradientBoosting", ensemble.NewGradientBoostingRegressor()},
		}
		metricName = "R²"
	}

	p.logf("ml_tourn", lang.Args{"n": len(candidates)})

	var best model.SupervisedEstimator
	bestName := ""
	bestScore := 0.0
	first := true

	for _, c := range candidates {
		if err := c.est.Fit(XTrain, yTrain); err != nil {
			p.warnf("ml_fail", lang.Args{"name": c.name, "e": err})
			continue
		}

		preds, err := c.est.Predict(XTest)
		if err != nil {
			p.warnf("ml_fail", lang.Args{"name": c.name, "e": err})
			continue
		}

		var score float64
		if isClf {
			score, err = metrics.AccuracyMatrix(yTest, preds)
		} else {
			score, err = metrics.R2ScoreMatrix(yTest, preds)
		}
		if err != nil {
			p.warnf("ml_fail", lang.Args{"name": c.name, "e": err})
			continue
		}

		if first || score > bestScore {
			best, bestName, bestScore = c.est, c.name, score
			first = false
		}
	}

	if best == nil {
		p.failErr(errors.NewValueError("auto_ml", "every candidate model failed"))
		return p
	}

	task := "regression"
	if isClf {
		task = "classification"
		p.logf("ml_success_clf", nil)
		p.logf("ml_acc", lang.Args{"score": fmt.Sprintf("%.2f%%", bestScore*100)})
	} else {
		p.logf("ml_success_reg", nil)
		p.logf("ml_r2", lang.Args{"score": fmt.Sprintf("%.4f", bestScore)})
	}
	p.logf("ml_win", lang.Args{"name": bestName, "metric": metricName, "score": fmt.Sprintf("%.4f", bestScore)})

	p.artifact = &Artifact{
		Model:     best,
		ModelName: bestName,
		Task:      task,
		Score:     bestScore,
		Columns:   fs.names,
		Labels:    labels,
		Scaler:    p.scaler,
		ScaleCols: p.scaleCols,
	}

	if cfg.savePath != "" {
		if err := p.artifact.Save(cfg.savePath); err != nil {
			p.failErr(err)
			return p
		}
		p.logf("ml_saved", lang.Args{"path": cfg.savePath})
	}
	return p
}

// encodeLabels maps the target records to class indices, returning the
// sorted distinct labels so predictions can be mapped back.
func encodeLabels(records []string) (*mat.Dense, []string) {
	seen := make(map[string]bool, len(records))
	labels := make([]string, 0)
	for _, rec := range records {
		if !seen[rec] {
			seen[rec] = true
			labels = append(labels, rec)
		}
	}
	sort.Strings(labels)

	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}

	y := mat.NewDense(len(records), 1, nil)
	for i, rec := range records {
		y.Set(i, 0, float64(index[rec]))
	}
	return y, labels
}

// featureSet is the encoded, all-numeric view of a table: the ordered
// encoded feature names plus one float column per name.
type featureSet struct {
	names []string
	data  map[string][]float64
	n     int
}

// matrix assembles the design matrix for the given column order.
// Names absent from the set are zero-filled, which is what keeps a
// loaded model usable on tables missing a training category.
func (fs *featureSet) matrix(names []string) *mat.Dense {
	X := mat.NewDense(fs.n, len(names), nil)
	for j, name := range names {
		col, ok := fs.data[name]
		if !ok {
			continue
		}
		for i, v := range col {
			X.Set(i, j, v)
		}
	}
	return X
}

// encodeFeatures turns every non-skipped column into float features:
// numeric columns pass through, bool columns become 0/1 and string
// columns are one-hot encoded with the first category dropped, named
// "column_category" per encoded level.
func encodeFeatures(df dataframe.DataFrame, skip map[string]bool) (*featureSet, error) {
	fs := &featureSet{
		data: make(map[string][]float64),
		n:    df.Nrow(),
	}

	names := df.Names()
	types := df.Types()
	for i, col := range names {
		if skip[col] {
			continue
		}

		switch types[i] {
		case series.Float, series.Int:
			fs.names = append(fs.names, col)
			fs.data[col] = df.Col(col).Float()

		case series.Bool:
			records := df.Col(col).Records()
			out := make([]float64, len(records))
			for k, rec := range records {
				if rec == "true" {
					out[k] = 1
				}
			}
			fs.names = append(fs.names, col)
			fs.data[col] = out

		default:
			records := df.Col(col).Records()
			enc := preprocessing.NewOneHotEncoder(true)
			rows, err := enc.FitTransform(records)
			if err != nil {
				return nil, err
			}
			for k, fname := range enc.FeatureNames(col) {
				out := make([]float64, len(rows))
				for r := range rows {
					out[r] = rows[r][k]
				}
				fs.names = append(fs.names, fname)
				fs.data[fname] = out
			}
		}
	}
	return fs, nil
}
