// Package report writes the per-cycle report files produced by testuri.
//
// Each cycle gets its own plain-text file named testuri_<YYYYMMDD_HHMMSS>.out
// inside the output directory, holding one line per target in input order.
// Report files are never rotated or removed by this package.
package report
