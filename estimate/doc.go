// Package estimate provides causal, single-pass estimators over frozen series.
//
// Every estimator reads the time index attached to its input series and fails
// with ErrUnsetTimes when there is none. Numerical degeneracies along the way
// (sampling too coarse for the requested cutoff, non-increasing times, singular
// regressions) never abort the computation: the affected sample becomes NaN and
// a warning is logged through the configured *slog.Logger.
//
// Derived series are labeled after the call that produced them, e.g.
// "low_pass_filter(/imu/x, cutoff_period=0.1)" or "std(/imu/x, 5)", so that a
// label alone tells how a plotted curve was computed.
package estimate
