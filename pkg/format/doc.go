// Package format holds small display helpers for dashboard back ends:
// token-based time layouts, digit grouping, display-width byte counts,
// query parameter cleanup, status lookups and page titles.
//
// Time layouts use moment-style tokens rather than Go reference times:
//
//	format.FormatTime(1709294400000, "YYYY-MM-DD HH:mm") // "2024-03-01 12:00" in UTC
//
// Each of Y, M, D, H, m and s is replaced at its first run only. A single
// letter prints the bare number; two or more pad it to two digits. The year
// keeps its last len(run) digits.
package format
