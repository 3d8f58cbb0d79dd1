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

// Package cli implements the vcrc command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refcycle/vcrc/internal/config"
	"github.com/refcycle/vcrc/internal/evaluator"
	"github.com/refcycle/vcrc/internal/logging"
	"github.com/refcycle/vcrc/internal/metrics"
	"github.com/refcycle/vcrc/pkg/refrigerant/pengrobinson"
)

// app carries what the subcommands share once the configuration is loaded.
type app struct {
	cfg       *config.Config
	provider  *pengrobinson.Provider
	recorder  *metrics.Recorder
	evaluator *evaluator.Evaluator
}

// NewRootCommand builds the vcrc command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "vcrc",
		Short: "Vapor-compression refrigeration cycle model and entropy analysis",
		Long: `vcrc solves single-stage and two-stage vapor-compression refrigeration cycles
and splits their exergy losses per component.

Cycles are described by CycleAnalysis documents (YAML or JSON). Each document lists
operating conditions; the entropy analysis is averaged over all of them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newAnalyzeCommand(a),
		newSolveCommand(a),
		newRefrigerantsCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return err
	}
	logging.SetLogger(logger)
	cmd.SetContext(logging.IntoContext(cmd.Context(), logger))

	defaults, err := config.LoadRefrigerantDefaults(cfg.DefaultsFile)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.provider = pengrobinson.NewProvider()
	a.recorder = metrics.NewRecorder(a.provider.CachedSaturations)
	a.evaluator = evaluator.New(a.provider, evaluator.Options{
		Workers:        cfg.Workers,
		Defaults:       defaults,
		PressurePolicy: cfg.PressurePolicy,
		Recorder:       a.recorder,
	})
	logger.V(logging.DEBUG).Info("Configured vcrc",
		"workers", cfg.Workers,
		"pressurePolicy", cfg.PressurePolicy,
		"defaultsFile", cfg.DefaultsFile,
		"defaultEntries", len(defaults))
	return nil
}

// withMetrics runs fn and then writes the metrics file, whether fn failed or not.
func (a *app) withMetrics(cmd *cobra.Command, fn func() error) error {
	err := fn()
	if ferr := a.flushMetrics(cmd); err == nil {
		err = ferr
	}
	return err
}

func (a *app) flushMetrics(cmd *cobra.Command) error {
	if a.cfg == nil || a.cfg.MetricsFile == "" {
		return nil
	}
	if err := a.recorder.WriteFile(a.cfg.MetricsFile); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	logging.FromContext(cmd.Context()).V(logging.DEBUG).Info("Wrote metrics", "file", a.cfg.MetricsFile)
	return nil
}
