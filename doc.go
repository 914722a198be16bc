// Package sanice is a fluent, multilingual data-cleaning and auto-ML
// layer over gota dataframes.
//
// A Pipeline wraps one tabular dataset. Every operation cleans,
// reshapes or models the table in place and returns the same Pipeline,
// so whole workflows chain into a single expression. Each mutating
// step logs a localized message — Portuguese, English, Chinese or
// Hindi — describing what changed, and every operation can also be
// called by its spelling in any of the four languages through Invoke.
//
// # Quick Start
//
//	package main
//
//	import "github.com/go-sanice/sanice"
//
//	func main() {
//	    sanice.New("sales.csv", sanice.WithLang("en")).
//	        FixColumns().
//	        RemoveNulls("drop", nil).
//	        Transform("BRL", "price").
//	        HandleOutliers("price").
//	        AutoML("churn", sanice.WithTask("classification"),
//	            sanice.WithSavePath("churn.model")).
//	        Save("sales_clean.csv")
//	}
//
// A persisted model is reloaded with LoadModel and applied with
// Predict, which re-encodes the current table and reindexes it to the
// columns the model was trained on: missing features are zero-filled
// and unseen ones dropped.
//
//	sanice.New("new_customers.csv", sanice.WithLang("en")).
//	    FixColumns().
//	    LoadModel("churn.model").
//	    Predict("churn_prediction").
//	    Save("scored.csv")
//
// # Packages
//
//   - lang: the four-language message catalog and operation alias table
//   - linear: LinearRegression and binary LogisticRegression
//   - tree: CART decision trees
//   - ensemble: random forests and gradient boosting
//   - preprocessing: scalers and the one-hot encoder
//   - metrics: accuracy, MSE, RMSE, MAE, R²
//   - modelselection: train/test splitting
//   - core/model: estimator interfaces and gob persistence
//
// # AutoML
//
// AutoML runs a best-of-three tournament — linear model, random
// forest, gradient boosting — scored on a held-out split (accuracy for
// classification, R² for regression) and keeps the winner together
// with its exact training columns, class labels and active scaler, so
// the whole bundle round-trips through a single gob file.
package sanice
