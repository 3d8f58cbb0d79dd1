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

package evaluator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/refcycle/vcrc/api/v1alpha1"
	appconfig "github.com/refcycle/vcrc/internal/config"
	"github.com/refcycle/vcrc/internal/logging"
	"github.com/refcycle/vcrc/internal/metrics"
	"github.com/refcycle/vcrc/pkg/config"
	"github.com/refcycle/vcrc/pkg/core"
	"github.com/refcycle/vcrc/pkg/entropy"
	"github.com/refcycle/vcrc/pkg/refrigerant"
	"github.com/refcycle/vcrc/pkg/solver"
)

// Options configures an Evaluator.
type Options struct {
	// Workers bounds the number of conditions solved concurrently. Defaults to 1.
	Workers int
	// Defaults supplies parameters the document leaves out.
	Defaults appconfig.RefrigerantDefaultsData
	// PressurePolicy is the last fallback for two-stage cycles.
	PressurePolicy string
	// Recorder is optional.
	Recorder *metrics.Recorder
	// Now is used for condition timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Evaluator solves and analyzes CycleAnalysis documents. It is safe for concurrent use when
// the provider is.
type Evaluator struct {
	provider refrigerant.Provider
	opts     Options
}

// New returns an Evaluator backed by provider.
func New(provider refrigerant.Provider, opts Options) *Evaluator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.PressurePolicy == "" {
		opts.PressurePolicy = solver.DefaultPressureStrategy.String()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Evaluator{provider: provider, opts: opts}
}

// Specs builds the cycle spec of every operating condition, in document order.
func (e *Evaluator) Specs(doc *v1alpha1.CycleAnalysis) []config.CycleSpec {
	defaults := e.opts.Defaults.GetRefrigerantDefaults(doc.Spec.Refrigerant)
	specs := make([]config.CycleSpec, len(doc.Spec.Conditions))
	for i, c := range doc.Spec.Conditions {
		specs[i] = BuildCycleSpec(doc.Spec.Refrigerant, doc.Spec.Cycle, c, defaults, e.opts.PressurePolicy)
	}
	return specs
}

// SolveAll solves specs concurrently. The first error cancels the rest and is returned with
// the index of the failing spec.
func (e *Evaluator) SolveAll(ctx context.Context, specs []config.CycleSpec) ([]core.Cycle, error) {
	logger := logging.FromContext(ctx)
	cycles := make([]core.Cycle, len(specs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i, spec := range specs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			c, err := core.Solve(e.provider, spec)
			if err != nil {
				if e.opts.Recorder != nil {
					e.opts.Recorder.Failed(err)
				}
				return &ConditionError{Index: i, Err: err}
			}
			if e.opts.Recorder != nil {
				e.opts.Recorder.CycleSolved(c, time.Since(start))
			}
			logger.V(logging.TRACE).Info("Solved cycle",
				"index", i,
				"refrigerant", spec.Refrigerant,
				"eer", c.EER())
			cycles[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cycles, nil
}

// Solve fills Status.Results with the cycle metrics of every condition and sets the Solved
// condition. The returned document is a copy; doc is not modified.
func (e *Evaluator) Solve(ctx context.Context, doc *v1alpha1.CycleAnalysis) (*v1alpha1.CycleAnalysis, error) {
	out, _, err := e.solve(ctx, doc)
	return out, err
}

// Evaluate solves every condition, analyzes each between its sources and averages the analyses.
// On failure the returned document carries the failing condition in its status.
func (e *Evaluator) Evaluate(ctx context.Context, doc *v1alpha1.CycleAnalysis) (*v1alpha1.CycleAnalysis, error) {
	logger := logging.FromContext(ctx).WithValues("analysis", doc.Name)
	out, cycles, err := e.solve(ctx, doc)
	if err != nil {
		e.setCondition(out, v1alpha1.TypeAnalyzed, metav1.ConditionFalse, v1alpha1.ReasonSkippedAnalysis,
			"solving failed")
		return out, err
	}

	results := make([]*entropy.Result, len(cycles))
	for i, c := range cycles {
		cond := doc.Spec.Conditions[i]
		r, err := entropy.Analyze(c, v1alpha1.Kelvin(cond.ColdSource), v1alpha1.Kelvin(cond.HotSource))
		if err != nil {
			err = &ConditionError{Index: i, Name: cond.Name, Err: err}
			e.failed(err)
			e.setCondition(out, v1alpha1.TypeAnalyzed, metav1.ConditionFalse, v1alpha1.ReasonAnalysisFailed, err.Error())
			return out, err
		}
		if e.opts.Recorder != nil {
			e.opts.Recorder.Analyzed(doc.Spec.Refrigerant, r)
		}
		out.Status.Results[i].Analysis = summary(r)
		results[i] = r
	}

	avg, err := entropy.Average(results)
	if err != nil {
		e.failed(err)
		e.setCondition(out, v1alpha1.TypeAnalyzed, metav1.ConditionFalse, v1alpha1.ReasonAnalysisFailed, err.Error())
		return out, err
	}
	out.Status.Average = summary(avg)
	e.setCondition(out, v1alpha1.TypeAnalyzed, metav1.ConditionTrue, v1alpha1.ReasonAnalysisSucceeded,
		fmt.Sprintf("averaged %d operating conditions", len(results)))
	if e.opts.Recorder != nil {
		e.opts.Recorder.EvaluationCompleted(e.opts.Now())
	}

	logger.Info("Evaluated cycle analysis",
		"conditions", len(results),
		"perfection", avg.ThermodynamicPerfection)
	return out, nil
}

func (e *Evaluator) solve(ctx context.Context, doc *v1alpha1.CycleAnalysis) (*v1alpha1.CycleAnalysis, []core.Cycle, error) {
	logger := logging.FromContext(ctx).WithValues("analysis", doc.Name)
	out := doc.DeepCopy()
	out.Status.Results = nil
	out.Status.Average = nil

	if err := doc.Validate(); err != nil {
		e.setCondition(out, v1alpha1.TypeSolved, metav1.ConditionFalse, v1alpha1.ReasonInvalidConfiguration, err.Error())
		return out, nil, fmt.Errorf("invalid %s document: %w", v1alpha1.Kind, err)
	}

	specs := e.Specs(doc)
	logger.V(logging.DEBUG).Info("Solving operating conditions",
		"refrigerant", doc.Spec.Refrigerant,
		"conditions", len(specs),
		"workers", e.opts.Workers)

	cycles, err := e.SolveAll(logging.IntoContext(ctx, logger), specs)
	if err != nil {
		var cerr *ConditionError
		if errors.As(err, &cerr) {
			cerr.Name = doc.Spec.Conditions[cerr.Index].Name
		}
		e.setCondition(out, v1alpha1.TypeSolved, metav1.ConditionFalse, failureReason(err), err.Error())
		return out, nil, err
	}

	for i, c := range cycles {
		out.Status.Results = append(out.Status.Results, conditionResult(doc.Spec.Conditions[i].Name, c))
	}
	e.setCondition(out, v1alpha1.TypeSolved, metav1.ConditionTrue, v1alpha1.ReasonCyclesSolved,
		fmt.Sprintf("solved %d operating conditions", len(cycles)))
	return out, cycles, nil
}

func (e *Evaluator) failed(err error) {
	if e.opts.Recorder != nil {
		e.opts.Recorder.Failed(err)
	}
}

func (e *Evaluator) setCondition(doc *v1alpha1.CycleAnalysis, conditionType string, status metav1.ConditionStatus, reason, message string) {
	v1alpha1.SetCondition(&doc.Status.Conditions, metav1.Condition{
		Type:    conditionType,
		Status:  status,
		Reason:  reason,
		Message: message,
	}, e.opts.Now())
}
