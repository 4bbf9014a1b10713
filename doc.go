// Package wacc reconciles a holdings export with the weighted average cost of
// capital (WACC) of each scrip.
//
// Both sources are read as ordered [Record] lists, from CSV or XLSX files
// (see [LoadSources]). [Analyze] matches every holding to its cost basis by
// [SecurityKey], computes today's gain, the cost of capital and the
// difference with the current value, and aggregates the totals in a
// [Report].
//
// Computed values are decimals rounded to two places, totals add up the
// rounded row values.
//
// This package is the foundation of the `wacc` command-line tool.
package wacc
