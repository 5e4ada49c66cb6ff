// Package doctor runs configuration, canvas and terminal health checks.
package doctor

import (
	"context"
	"encoding/json"
)

// Status is the outcome of a check item. Higher values are worse.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the status as its name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckItem is a single line item within a check result.
type CheckItem struct {
	Label  string `json:"label"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Result is the outcome of one check.
type Result struct {
	Name  string      `json:"name"`
	Items []CheckItem `json:"items"`
}

func (r *Result) pass(label, detail string) { r.add(StatusPass, label, detail) }
func (r *Result) warn(label, detail string) { r.add(StatusWarn, label, detail) }
func (r *Result) fail(label, detail string) { r.add(StatusFail, label, detail) }

func (r *Result) add(s Status, label, detail string) {
	r.Items = append(r.Items, CheckItem{Label: label, Status: s, Detail: detail})
}

// Status returns the worst status among the items.
func (r Result) Status() Status {
	worst := StatusPass
	for _, item := range r.Items {
		worst = max(worst, item.Status)
	}
	return worst
}

// Check defines the interface for a doctor check.
type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// Summary counts check items by status.
type Summary struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

// Report holds every check result.
type Report struct {
	Healthy bool     `json:"healthy"`
	Summary Summary  `json:"summary"`
	Checks  []Result `json:"checks"`
}

// RunAll executes the checks in order. A cancelled context stops before the
// next check.
func RunAll(ctx context.Context, checks []Check) Report {
	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		if ctx.Err() != nil {
			break
		}
		results = append(results, check.Run(ctx))
	}

	summary := Summarize(results)
	return Report{
		Healthy: summary.Failed == 0,
		Summary: summary,
		Checks:  results,
	}
}

// Summarize counts the items of every result by status.
func Summarize(results []Result) Summary {
	var s Summary
	for _, result := range results {
		for _, item := range result.Items {
			switch item.Status {
			case StatusPass:
				s.Passed++
			case StatusWarn:
				s.Warned++
			case StatusFail:
				s.Failed++
			}
		}
	}
	return s
}
