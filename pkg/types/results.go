package types

import (
	"errors"
	"time"
)

// AxisResult is the outcome of building or extracting one axis
type AxisResult struct {
	Axis     IconAxis
	Artifact string
	Written  []LogicalPath
	Skipped  []IconSelector
	Missing  int
	Err      error
	Duration time.Duration
}

// Succeeded reports whether the axis produced an artifact
func (r AxisResult) Succeeded() bool {
	return r.Err == nil
}

// Summary aggregates per-axis results of one pipeline invocation
type Summary struct {
	Command   string
	Results   []AxisResult
	Warnings  []string
	Timestamp time.Time
}

// Succeeded returns the results that produced an artifact
func (s *Summary) Succeeded() []AxisResult {
	var out []AxisResult
	for _, r := range s.Results {
		if r.Succeeded() {
			out = append(out, r)
		}
	}
	return out
}

// Failed returns the results that did not produce an artifact
func (s *Summary) Failed() []AxisResult {
	var out []AxisResult
	for _, r := range s.Results {
		if !r.Succeeded() {
			out = append(out, r)
		}
	}
	return out
}

// Result returns the result for an axis, if present
func (s *Summary) Result(axis IconAxis) (AxisResult, bool) {
	for _, r := range s.Results {
		if r.Axis == axis {
			return r, true
		}
	}
	return AxisResult{}, false
}

// Err joins every axis error, or returns nil when all axes succeeded
func (s *Summary) Err() error {
	var errs []error
	for _, r := range s.Results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
