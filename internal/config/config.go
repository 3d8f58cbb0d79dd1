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

package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/refcycle/vcrc/internal/logging"
	"github.com/refcycle/vcrc/pkg/solver"
)

// Configuration keys. Each is also a flag name and, upper-cased with the VCRC_ prefix, an env var.
const (
	KeyConfigFile     = "config"
	KeyLogLevel       = "log-level"
	KeyLogDevelopment = "log-development"
	KeyWorkers        = "workers"
	KeyPressurePolicy = "pressure-policy"
	KeyDefaultsFile   = "defaults-file"
	KeyMetricsFile    = "metrics-file"

	EnvPrefix = "VCRC"
)

// MaxWorkers caps the number of operating conditions solved concurrently.
const MaxWorkers = 64

// DefaultWorkers is one worker per CPU, capped at MaxWorkers.
func DefaultWorkers() int {
	return min(runtime.NumCPU(), MaxWorkers)
}

// Config is the process configuration of the vcrc tool.
type Config struct {
	LogLevel       string
	LogDevelopment bool
	// Workers bounds the evaluator fan-out.
	Workers int
	// PressurePolicy is the default intermediate pressure policy for two-stage cycles.
	PressurePolicy string
	// DefaultsFile is an optional YAML file with per-refrigerant defaults.
	DefaultsFile string
	// MetricsFile receives a Prometheus text dump after a run when set.
	MetricsFile string
}

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(KeyConfigFile, "", "path to a configuration file (yaml, json or toml)")
	fs.String(KeyLogLevel, "info", "log level: error, warn, info, debug or trace")
	fs.Bool(KeyLogDevelopment, false, "human readable console logs")
	fs.Int(KeyWorkers, DefaultWorkers(), "operating conditions solved in parallel")
	fs.String(KeyPressurePolicy, solver.DefaultPressureStrategy.String(), "default intermediate pressure policy for two-stage cycles")
	fs.String(KeyDefaultsFile, "", "YAML file with per-refrigerant defaults")
	fs.String(KeyMetricsFile, "", "write Prometheus metrics in text format to this file after the run")
}

// Load resolves the configuration from flags, VCRC_* environment variables and an optional
// config file, in that order of precedence.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyWorkers, DefaultWorkers())
	v.SetDefault(KeyPressurePolicy, solver.DefaultPressureStrategy.String())

	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
		logging.Log.V(logging.DEBUG).Info("Loaded config file", "file", v.ConfigFileUsed())
	}

	cfg := &Config{
		LogLevel:       v.GetString(KeyLogLevel),
		LogDevelopment: v.GetBool(KeyLogDevelopment),
		Workers:        v.GetInt(KeyWorkers),
		PressurePolicy: v.GetString(KeyPressurePolicy),
		DefaultsFile:   v.GetString(KeyDefaultsFile),
		MetricsFile:    v.GetString(KeyMetricsFile),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks for invalid configuration values.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 1 || c.Workers > MaxWorkers {
		errs = append(errs, fmt.Errorf("workers must be between 1 and %d, got %d", MaxWorkers, c.Workers))
	}
	if _, err := solver.ParsePressureStrategy(c.PressurePolicy); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
