// Package curve provides the core types for piecewise temperature curve
// synthesis.
//
// The package defines the data model shared by every stage of a run:
//
//   - [Descriptor]: the four text fields a user enters for one segment
//   - [Segment]: a validated interval with an equation and a noise bound
//   - [Sample]: one synthesized point (time, temperature, humidity)
//   - [Series]: the ordered output of one synthesis run
//
// Times are [TimeValue] hours since the reference midnight and may exceed
// 24 to describe a next-day rollover.
//
// # Errors
//
// All failures are reported as values of [FormatError], [EvaluationError],
// [ValidationError] or [SynthesisError]; each carries the offending text,
// segment index or time point so it can be shown to a user verbatim.
package curve
