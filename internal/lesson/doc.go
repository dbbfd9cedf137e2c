// Package lesson compiles, validates, and runs declarative lesson
// specs for the workbench.
//
// Lessons are authored in CUE and compiled through the CUE SDK's Go
// API (no CLI subprocess). A lesson names a set of exercises, each an
// expression with either an expected value (within tolerance) or an
// expected domain error code:
//
//	lesson: basics: {
//		title: "Complex arithmetic"
//		exercises: [
//			{name: "add", expr: "(1+2i) + (3-1i)", want: {re: 4.0, im: 1.0}},
//			{name: "inv_zero", expr: "inv(0+0i)", wantError: "DOMAIN"},
//		]
//	}
//
// Run evaluates every exercise and reports per-exercise outcomes.
package lesson
