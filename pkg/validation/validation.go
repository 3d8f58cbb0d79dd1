/*
Copyright 2025 The vcrc Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package validation holds the physical-consistency rules applied to refrigerants and to entropy
// analysis boundaries. Rules are ordered predicate and message pairs. Evaluate collects every
// violation into a Report; Validate stops at the first one with a *ValidationError.
package validation

import (
	"fmt"
	"strings"
)

// Rule is a named predicate over T. Check returns true when the target satisfies the rule.
type Rule[T any] struct {
	Name    string
	Message func(T) string
	Check   func(T) bool
}

// Rules is an ordered rule set.
type Rules[T any] []Rule[T]

// Evaluate checks every rule and reports all violations. The target is never modified.
func (rs Rules[T]) Evaluate(target T) *Report {
	report := NewReport()
	for _, r := range rs {
		if !r.Check(target) {
			report.Add(r.Name, r.Message(target))
		}
	}
	return report
}

// Validate returns a *ValidationError for the first violated rule, or nil.
func (rs Rules[T]) Validate(target T) error {
	for _, r := range rs {
		if !r.Check(target) {
			return &ValidationError{Rule: r.Name, Message: r.Message(target)}
		}
	}
	return nil
}

// ValidationError names the violated rule and carries its human-readable message.
type ValidationError struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Report is the outcome of evaluating one or more rule sets.
type Report struct {
	Valid      bool              `json:"valid"`
	Violations []ValidationError `json:"violations"`
	Summary    string            `json:"summary"`
}

// NewReport creates an empty valid report.
func NewReport() *Report {
	r := &Report{
		Valid:      true,
		Violations: []ValidationError{},
	}
	r.updateSummary()
	return r
}

// Add records a violation and marks the report invalid.
func (r *Report) Add(rule, message string) {
	r.Violations = append(r.Violations, ValidationError{Rule: rule, Message: message})
	r.Valid = false
	r.updateSummary()
}

// Merge combines another report into this one.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
	if !other.Valid {
		r.Valid = false
	}
	r.updateSummary()
}

// Err returns the first violation as a *ValidationError, or nil for a valid report.
func (r *Report) Err() error {
	if r.Valid || len(r.Violations) == 0 {
		return nil
	}
	v := r.Violations[0]
	return &v
}

// Messages lists the violation messages in rule order.
func (r *Report) Messages() []string {
	out := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		out[i] = v.Message
	}
	return out
}

func (r *Report) updateSummary() {
	if r.Valid {
		r.Summary = "valid"
		return
	}
	names := make([]string, len(r.Violations))
	for i, v := range r.Violations {
		names[i] = v.Rule
	}
	r.Summary = fmt.Sprintf("%d violations: %s", len(r.Violations), strings.Join(names, ", "))
}
