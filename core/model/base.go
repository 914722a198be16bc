package model

// EstimatorState tracks whether an estimator has been fitted.
type EstimatorState int

const (
	// NotFitted marks an estimator that has not seen training data yet.
	NotFitted EstimatorState = iota
	// Fitted marks an estimator whose parameters have been learned.
	Fitted
)

// BaseEstimator is embedded by every estimator and scaler in sanice.
// The state field is exported so that gob persistence of a trained
// model restores its fitted flag together with its parameters.
type BaseEstimator struct {
	State EstimatorState
}

// IsFitted reports whether the estimator has been fitted.
func (e *BaseEstimator) IsFitted() bool {
	return e.State == Fitted
}

// SetFitted marks the estimator as fitted.
func (e *BaseEstimator) SetFitted() {
	e.State = Fitted
}

// Reset returns the estimator to its unfitted state.
func (e *BaseEstimator) Reset() {
	e.State = NotFitted
}
