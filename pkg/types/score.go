// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd006-confidence-scorer R1, R5 (shared types).
package types

import "encoding/json"

// Status is the confidence band derived from the aggregated score.
type Status int

const (
	StatusCritical   Status = iota // total < 50
	StatusWarning                  // 50 <= total < 70
	StatusAcceptable               // 70 <= total <= 85
	StatusHigh                     // total > 85
)

// MarshalJSON encodes the status band as its machine-readable name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// String returns the machine-readable name of the status band.
func (s Status) String() string {
	switch s {
	case StatusHigh:
		return "high"
	case StatusAcceptable:
		return "acceptable"
	case StatusWarning:
		return "warning"
	default:
		return "critical"
	}
}

// StatusFor maps an aggregated 0-100 score to its band.
//
// Implements: prd006-confidence-scorer R5.3.
func StatusFor(total int) Status {
	switch {
	case total > 85:
		return StatusHigh
	case total >= 70:
		return StatusAcceptable
	case total >= 50:
		return StatusWarning
	default:
		return StatusCritical
	}
}

// MetricIssue is one detected problem within a metric, tied to a line of the
// changed region when known (0 when the issue is not line-specific).
type MetricIssue struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
}

// MetricResult is the outcome of one scored metric. Scores start at 100 and
// lose points per detected issue, floored at 0. A zero weight marks the
// metric informational: it never affects the aggregated total.
//
// Implements: prd006-confidence-scorer R1.1-R1.4.
type MetricResult struct {
	Name       string         `json:"name"`
	Score      int            `json:"score"`  // 0..100
	Weight     float64        `json:"weight"` // 0..1
	Issues     []MetricIssue  `json:"issues"`
	SubMetrics []MetricResult `json:"subMetrics,omitempty"`
}

// ConfidenceResult aggregates the six metric results into a single score and
// band. Invariant: Total = round(clamp(sum(score*weight)/sum(weight), 0, 100)),
// zero-weight metrics excluded from the denominator; if all weights are zero
// the total is 100 (vacuous confidence).
//
// Implements: prd006-confidence-scorer R5.1-R5.3.
type ConfidenceResult struct {
	Total   int            `json:"total"`
	Status  Status         `json:"status"`
	Metrics []MetricResult `json:"metrics"`
}
