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

// Package metrics records evaluation metrics in a Prometheus registry.
package metrics

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/refcycle/vcrc/pkg/core"
	"github.com/refcycle/vcrc/pkg/entropy"
	"github.com/refcycle/vcrc/pkg/refrigerant"
	"github.com/refcycle/vcrc/pkg/validation"
)

const namespace = "vcrc"

// Error kinds used as the "kind" label of the failure counter.
const (
	KindConfiguration = "configuration"
	KindProperty      = "property"
	KindValidation    = "validation"
	KindArgument      = "argument"
	KindOther         = "other"
)

// Recorder owns a registry and the collectors registered on it.
type Recorder struct {
	registry *prometheus.Registry

	cyclesSolved   *prometheus.CounterVec
	analyses       *prometheus.CounterVec
	failures       *prometheus.CounterVec
	solveDuration  *prometheus.HistogramVec
	perfection     *prometheus.HistogramVec
	cachedStates   prometheus.GaugeFunc
	lastEvaluation prometheus.Gauge
}

// NewRecorder registers the vcrc collectors on a fresh registry. cached, when non-nil, reports the
// number of memoised saturation states of the property provider.
func NewRecorder(cached func() int) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		cyclesSolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_solved_total",
			Help:      "Cycles solved, by refrigerant and cycle type.",
		}, []string{"refrigerant", "type"}),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entropy_analyses_total",
			Help:      "Entropy analyses completed, by refrigerant.",
		}, []string{"refrigerant"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Failed solves and analyses, by error kind.",
		}, []string{"kind"}),
		solveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Time spent solving one cycle.",
			Buckets:   prometheus.ExponentialBuckets(1e-4, 4, 8),
		}, []string{"type"}),
		perfection: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "thermodynamic_perfection",
			Help:      "Degree of thermodynamic perfection of analyzed cycles.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 9),
		}, []string{"refrigerant"}),
		lastEvaluation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_evaluation_timestamp_seconds",
			Help:      "Unix time of the last completed evaluation.",
		}),
	}
	r.registry.MustRegister(r.cyclesSolved, r.analyses, r.failures, r.solveDuration, r.perfection, r.lastEvaluation)
	if cached != nil {
		r.cachedStates = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cached_saturation_states",
			Help:      "Saturation states memoised by the property provider.",
		}, func() float64 { return float64(cached()) })
		r.registry.MustRegister(r.cachedStates)
	}
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// CycleSolved records a successful solve.
func (r *Recorder) CycleSolved(c core.Cycle, elapsed time.Duration) {
	r.cyclesSolved.WithLabelValues(c.Refrigerant().Name, string(c.Type())).Inc()
	r.solveDuration.WithLabelValues(string(c.Type())).Observe(elapsed.Seconds())
}

// Analyzed records a completed entropy analysis.
func (r *Recorder) Analyzed(refrigerant string, result *entropy.Result) {
	r.analyses.WithLabelValues(refrigerant).Inc()
	r.perfection.WithLabelValues(refrigerant).Observe(result.ThermodynamicPerfection)
}

// Failed counts err under its kind.
func (r *Recorder) Failed(err error) {
	r.failures.WithLabelValues(Kind(err)).Inc()
}

// EvaluationCompleted stamps the completion time.
func (r *Recorder) EvaluationCompleted(at time.Time) {
	r.lastEvaluation.Set(float64(at.Unix()))
}

// Kind classifies err by the typed errors of the cycle library.
func Kind(err error) string {
	var (
		cfgErr  *core.ConfigurationError
		propErr *refrigerant.PropertyResolutionError
		valErr  *validation.ValidationError
		argErr  *entropy.ArgumentError
	)
	switch {
	case errors.As(err, &cfgErr):
		return KindConfiguration
	case errors.As(err, &propErr):
		return KindProperty
	case errors.As(err, &valErr):
		return KindValidation
	case errors.As(err, &argErr):
		return KindArgument
	default:
		return KindOther
	}
}

// Write dumps every metric family in the Prometheus text format.
func (r *Recorder) Write(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteFile writes the text dump to path.
func (r *Recorder) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
