// Package log provides the structured logging abstraction used across the
// zonal statistics pipeline.
//
// The pipeline receives an explicitly constructed Logger instead of using
// ambient global logging state, so batch runs stay side-effect-isolated
// and testable without capturing real log streams.
//
// [ZerologAdapter] is the production implementation; [NoopLogger] is the
// default when no logger is supplied.
package log
