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

package core

import (
	"github.com/refcycle/vcrc/pkg/config"
	"github.com/refcycle/vcrc/pkg/refrigerant"
	"github.com/refcycle/vcrc/pkg/validation"
)

// Cycle is the capability set shared by every cycle topology.
// Specific quantities are per kg of refrigerant flowing through the evaporator.
type Cycle interface {
	Refrigerant() *refrigerant.Fluid
	Type() config.CycleType

	Evaporator() *Evaporator
	Compressor() *Compressor
	// Condenser is nil for transcritical cycles.
	Condenser() *Condenser
	// GasCooler is nil for subcritical cycles.
	GasCooler() *GasCooler
	HeatReleaser() HeatReleaser
	IsTranscritical() bool

	EvaporatorSpecificMassFlow() float64
	HeatReleaserSpecificMassFlow() float64

	// IsentropicSpecificWork in J/kg.
	IsentropicSpecificWork() float64
	// SpecificWork is the real compression work in J/kg.
	SpecificWork() float64
	// SpecificCoolingCapacity is the evaporator enthalpy rise in J/kg.
	SpecificCoolingCapacity() float64
	// SpecificHeatingCapacity is the heat released by the heat releaser in J/kg.
	SpecificHeatingCapacity() float64
	EER() float64
	COP() float64

	// Points returns the state points in flow order.
	Points() []Point
	// Processes returns one steady-flow balance per component.
	Processes() []Process
}

// Solve builds the cycle described by spec.
func Solve(provider refrigerant.Provider, spec config.CycleSpec) (Cycle, error) {
	cycleType, err := config.ParseCycleType(string(spec.Type))
	if err != nil {
		return nil, &ConfigurationError{Field: "type", Reason: "unknown cycle type", Err: err}
	}
	switch cycleType {
	case config.TwoStageCycle:
		return NewTwoStageCycle(provider, spec)
	default:
		return NewSimpleCycle(provider, spec)
	}
}

// cycle holds what every topology shares.
type cycle struct {
	fluid      *refrigerant.Fluid
	cycleType  config.CycleType
	evaporator *Evaporator
	compressor *Compressor
	condenser  *Condenser
	gasCooler  *GasCooler

	heatReleaserFlow float64
	isentropicWork   float64
	work             float64
	coolingCapacity  float64
	heatingCapacity  float64

	points    []Point
	processes []Process
}

// newCycle checks the refrigerant and resolves the components of spec.
func newCycle(provider refrigerant.Provider, spec config.CycleSpec, cycleType config.CycleType) (*cycle, error) {
	if provider == nil {
		return nil, configError("provider", "is required")
	}
	fluid, err := refrigerant.Lookup(spec.Refrigerant)
	if err != nil {
		return nil, &ConfigurationError{Field: "refrigerant", Reason: "lookup failed", Err: err}
	}
	if err := validation.CycleRefrigerantRules.Validate(fluid); err != nil {
		return nil, err
	}

	switch {
	case spec.Condenser == nil && spec.GasCooler == nil:
		return nil, configError("heatReleaser", "one of condenser and gasCooler is required")
	case spec.Condenser != nil && spec.GasCooler != nil:
		return nil, configError("heatReleaser", "condenser and gasCooler are mutually exclusive")
	}

	c := &cycle{fluid: fluid, cycleType: cycleType, heatReleaserFlow: 1}
	if c.compressor, err = newCompressor(spec.Compressor); err != nil {
		return nil, err
	}
	if c.evaporator, err = newEvaporator(provider, fluid, spec.Evaporator); err != nil {
		return nil, err
	}
	if spec.Condenser != nil {
		c.condenser, err = newCondenser(provider, fluid, *spec.Condenser)
	} else {
		c.gasCooler, err = newGasCooler(provider, fluid, *spec.GasCooler, spec.Evaporator.Temperature)
	}
	if err != nil {
		return nil, err
	}

	if hp := c.HeatReleaser().HeatReleaserPressure(); hp <= c.evaporator.Pressure {
		return nil, configError("heatReleaser", "pressure %.0f Pa is not above the evaporating pressure %.0f Pa",
			hp, c.evaporator.Pressure)
	}
	return c, nil
}

// compress returns the isentropic and real outlet points of a compression from inlet to pressure.
func (c *cycle) compress(provider refrigerant.Provider, inlet Point, pressure float64, isentropicName, name string) (Point, Point, error) {
	ideal, err := resolve(provider, c.fluid, isentropicName,
		refrigerant.WithPressure(pressure), refrigerant.WithEntropy(inlet.Entropy))
	if err != nil {
		return Point{}, Point{}, err
	}
	h := inlet.Enthalpy + (ideal.Enthalpy-inlet.Enthalpy)/c.compressor.Efficiency
	actual, err := resolve(provider, c.fluid, name, refrigerant.WithPressure(pressure), refrigerant.WithEnthalpy(h))
	if err != nil {
		return Point{}, Point{}, err
	}
	return ideal, actual, nil
}

// throttle returns the isenthalpic expansion of inlet to pressure.
func (c *cycle) throttle(provider refrigerant.Provider, inlet Point, pressure float64, name string) (Point, error) {
	return resolve(provider, c.fluid, name, refrigerant.WithPressure(pressure), refrigerant.WithEnthalpy(inlet.Enthalpy))
}

func (c *cycle) Refrigerant() *refrigerant.Fluid { return c.fluid }
func (c *cycle) Type() config.CycleType          { return c.cycleType }
func (c *cycle) Evaporator() *Evaporator         { return c.evaporator }
func (c *cycle) Compressor() *Compressor         { return c.compressor }
func (c *cycle) Condenser() *Condenser           { return c.condenser }
func (c *cycle) GasCooler() *GasCooler           { return c.gasCooler }

func (c *cycle) HeatReleaser() HeatReleaser {
	if c.gasCooler != nil {
		return c.gasCooler
	}
	return c.condenser
}

// IsTranscritical reports whether heat is released above the critical pressure.
func (c *cycle) IsTranscritical() bool {
	return c.HeatReleaser().HeatReleaserPressure() > c.fluid.CriticalPressure
}

func (c *cycle) EvaporatorSpecificMassFlow() float64   { return 1 }
func (c *cycle) HeatReleaserSpecificMassFlow() float64 { return c.heatReleaserFlow }
func (c *cycle) IsentropicSpecificWork() float64       { return c.isentropicWork }
func (c *cycle) SpecificWork() float64                 { return c.work }
func (c *cycle) SpecificCoolingCapacity() float64      { return c.coolingCapacity }
func (c *cycle) SpecificHeatingCapacity() float64      { return c.heatingCapacity }
func (c *cycle) EER() float64                          { return c.coolingCapacity / c.work }
func (c *cycle) COP() float64                          { return c.heatingCapacity / c.work }

func (c *cycle) Points() []Point {
	return append([]Point(nil), c.points...)
}

func (c *cycle) Processes() []Process {
	return append([]Process(nil), c.processes...)
}

// Point returns the state point with the given label.
func (c *cycle) Point(name string) (Point, bool) {
	for _, p := range c.points {
		if p.Name == name {
			return p, true
		}
	}
	return Point{}, false
}
