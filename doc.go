// Package foxplot turns streams of nested records into named time series.
//
// Records are the decoded observation and action dictionaries a robot or an
// agent logs at each control step. Their schema is not known in advance: every
// nested key becomes a branch of a tree and every scalar a leaf that
// accumulates sparse per-step values. Once the stream ends, Freeze replaces
// each leaf by a dense series of the stream length, forward-filling missing
// steps and seeding with NaN before the first write.
//
// # Basic Usage
//
//	fox, _ := foxplot.New(foxplot.WithTime("/time"))
//	_ = fox.ReadFile("run.jsonl.zst")
//	_ = fox.Freeze()
//
//	x, _ := fox.Series("/observation/imu/pitch")
//	smooth, _ := estimate.LowPassFilter(x, 0.1)
//
// # Package Structure
//
// This package wires the building blocks together:
//
//   - tree: branch/leaf schema tree, freeze and label addressing
//   - series: immutable series and their algebra
//   - estimate: low-pass filter, derivative, rolling std and lag estimation
//   - decode: JSON and MessagePack record streams
//   - snapshot: compact binary archive of a frozen series collection
//   - plot: standalone HTML chart pages
package foxplot
