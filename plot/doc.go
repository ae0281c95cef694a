// Package plot renders series as a standalone HTML page and opens it.
//
// Pages use uPlot, loaded from AssetsURL, with one left and one right
// y-axis. Missing samples (NaN) are drawn as gaps.
package plot
