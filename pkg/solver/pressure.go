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

package solver

import (
	"fmt"
	"math"
	"strings"

	"github.com/refcycle/vcrc/pkg/refrigerant"
)

// PressurePolicy chooses the intermediate pressure of a two-stage cycle
type PressurePolicy interface {
	// IntermediatePressure returns the intermediate pressure in Pa for the given boundaries
	IntermediatePressure(b Boundaries) (float64, error)
	// Strategy returns the strategy implemented by the policy
	Strategy() PressureStrategy
}

// Boundaries carries what a policy may use to place the intermediate pressure
type Boundaries struct {
	// EvaporatingPressure in Pa.
	EvaporatingPressure float64
	// HeatReleaserPressure in Pa (condensing or gas cooler pressure).
	HeatReleaserPressure float64
	// EvaporatingTemperature in K.
	EvaporatingTemperature float64
	// HeatReleaserTemperature in K (condensing or gas cooler outlet temperature).
	HeatReleaserTemperature float64
	// SaturationPressure returns the saturation pressure in Pa at a temperature in K.
	SaturationPressure func(temperature float64) (float64, error)
}

// PressureStrategy is an enumeration of the intermediate pressure strategies
type PressureStrategy int

// enumeration of PressureStrategy
const (
	GeometricMeanStrategy PressureStrategy = iota
	SaturationMeanStrategy
	FixedStrategy
)

// DefaultPressureStrategy is used when no strategy is configured
const DefaultPressureStrategy = GeometricMeanStrategy

var pressureStrategyNames = map[PressureStrategy]string{
	GeometricMeanStrategy:  "GeometricMean",
	SaturationMeanStrategy: "SaturationMean",
	FixedStrategy:          "Fixed",
}

func (s PressureStrategy) String() string {
	if name, ok := pressureStrategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("PressureStrategy(%d)", int(s))
}

// ParsePressureStrategy maps a configuration string onto a strategy; empty selects the default
func ParsePressureStrategy(name string) (PressureStrategy, error) {
	if strings.TrimSpace(name) == "" {
		return DefaultPressureStrategy, nil
	}
	for strategy, n := range pressureStrategyNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return strategy, nil
		}
	}
	return 0, fmt.Errorf("unsupported pressure strategy: %q", name)
}

// PressurePolicyConfig holds configuration for policies that need it
type PressurePolicyConfig struct {
	// Pressure is the fixed intermediate pressure in Pa
	Pressure float64
}

// NewPressurePolicy is a factory that creates a new PressurePolicy based on the provided strategy
func NewPressurePolicy(strategy PressureStrategy, config *PressurePolicyConfig) (PressurePolicy, error) {
	switch strategy {
	case GeometricMeanStrategy:
		return &GeometricMeanPolicy{}, nil
	case SaturationMeanStrategy:
		return &SaturationMeanPolicy{}, nil
	case FixedStrategy:
		return NewFixedPolicy(config)
	default:
		return nil, fmt.Errorf("unsupported pressure strategy: %v", strategy)
	}
}

// GeometricMeanPolicy places the intermediate pressure at √(p0·pk), equalising the stage pressure ratios
type GeometricMeanPolicy struct{}

// IntermediatePressure implements PressurePolicy
func (GeometricMeanPolicy) IntermediatePressure(b Boundaries) (float64, error) {
	if b.EvaporatingPressure <= 0 || b.HeatReleaserPressure <= 0 {
		return math.NaN(), fmt.Errorf("boundary pressures must be positive, got %g and %g",
			b.EvaporatingPressure, b.HeatReleaserPressure)
	}
	return math.Sqrt(b.EvaporatingPressure * b.HeatReleaserPressure), nil
}

// Strategy implements PressurePolicy
func (GeometricMeanPolicy) Strategy() PressureStrategy { return GeometricMeanStrategy }

// SaturationMeanPolicy uses the saturation pressure at the mean of the boundary temperatures
type SaturationMeanPolicy struct{}

// IntermediatePressure implements PressurePolicy
func (SaturationMeanPolicy) IntermediatePressure(b Boundaries) (float64, error) {
	if b.SaturationPressure == nil {
		return math.NaN(), fmt.Errorf("saturation pressure function is required by %v", SaturationMeanStrategy)
	}
	mean := (b.EvaporatingTemperature + b.HeatReleaserTemperature) / 2
	p, err := b.SaturationPressure(mean)
	if err != nil {
		return math.NaN(), fmt.Errorf("saturation pressure at %.2f K: %w", mean, err)
	}
	return p, nil
}

// Strategy implements PressurePolicy
func (SaturationMeanPolicy) Strategy() PressureStrategy { return SaturationMeanStrategy }

// FixedPolicy returns a configured pressure
type FixedPolicy struct {
	config *PressurePolicyConfig
}

// NewFixedPolicy creates a new FixedPolicy instance.
func NewFixedPolicy(config *PressurePolicyConfig) (*FixedPolicy, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.Pressure <= 0 {
		return nil, fmt.Errorf("fixed intermediate pressure must be positive, got %g", config.Pressure)
	}
	return &FixedPolicy{config: config}, nil
}

// IntermediatePressure implements PressurePolicy
func (p *FixedPolicy) IntermediatePressure(Boundaries) (float64, error) {
	return p.config.Pressure, nil
}

// Strategy implements PressurePolicy
func (p *FixedPolicy) Strategy() PressureStrategy { return FixedStrategy }

// OptimalGasCoolerPressure returns the optimal high-side pressure (Pa) of a transcritical R744 cycle
// after Liao, Zhao & Jakobsen (2000). Temperatures are in K.
func OptimalGasCoolerPressure(evaporatingTemperature, gasCoolerTemperature float64) float64 {
	t0 := evaporatingTemperature - refrigerant.ZeroCelsius
	tgc := gasCoolerTemperature - refrigerant.ZeroCelsius
	bar := (2.778-0.0157*t0)*tgc + (0.381*t0 - 9.34)
	return bar * 1e5
}
