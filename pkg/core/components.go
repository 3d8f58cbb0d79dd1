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
	"math"

	"github.com/refcycle/vcrc/pkg/config"
	"github.com/refcycle/vcrc/pkg/refrigerant"
	"github.com/refcycle/vcrc/pkg/solver"
)

// MaxTemperatureDifference bounds superheat and subcooling in K.
const MaxTemperatureDifference = 50.0

// R744 is the only refrigerant with a default gas cooler pressure.
const R744 = "R744"

// Evaporator is a resolved evaporator.
type Evaporator struct {
	Temperature float64
	Superheat   float64
	// Pressure is the saturation pressure at Temperature.
	Pressure float64
	DewPoint Point
	Outlet   Point
}

// Compressor is a resolved compressor.
type Compressor struct {
	Efficiency float64
}

// Condenser is a resolved subcritical heat releaser.
type Condenser struct {
	Temperature float64
	Subcooling  float64
	// Pressure is the saturation pressure at Temperature.
	Pressure    float64
	BubblePoint Point
	Outlet      Point
}

// GasCooler is a resolved transcritical heat releaser.
type GasCooler struct {
	Temperature float64
	Pressure    float64
	Outlet      Point
}

// HeatReleaser is implemented by Condenser and GasCooler.
type HeatReleaser interface {
	// HeatReleaserPressure is the high-side pressure in Pa.
	HeatReleaserPressure() float64
	// HeatReleaserOutlet is the state leaving the heat releaser.
	HeatReleaserOutlet() Point
	// Component tags the heat releaser in process lists.
	Component() Component
}

var (
	_ HeatReleaser = &Condenser{}
	_ HeatReleaser = &GasCooler{}
)

func (c *Condenser) HeatReleaserPressure() float64 { return c.Pressure }
func (c *Condenser) HeatReleaserOutlet() Point     { return c.Outlet }
func (c *Condenser) Component() Component          { return ComponentCondenser }

func (g *GasCooler) HeatReleaserPressure() float64 { return g.Pressure }
func (g *GasCooler) HeatReleaserOutlet() Point     { return g.Outlet }
func (g *GasCooler) Component() Component          { return ComponentGasCooler }

func checkTemperatureDifference(field string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > MaxTemperatureDifference {
		return configError(field, "must be within [0, %g] K, got %g", MaxTemperatureDifference, v)
	}
	return nil
}

func checkSubcritical(field string, fluid *refrigerant.Fluid, t float64) error {
	if math.IsNaN(t) || t <= 0 {
		return configError(field, "must be a positive absolute temperature, got %g", t)
	}
	if t >= fluid.CriticalTemperature {
		return configError(field, "%.2f K is not below the critical temperature %.2f K of %s",
			t, fluid.CriticalTemperature, fluid.Name)
	}
	return nil
}

func newEvaporator(provider refrigerant.Provider, fluid *refrigerant.Fluid, spec config.EvaporatorSpec) (*Evaporator, error) {
	if err := checkSubcritical("evaporator.temperature", fluid, spec.Temperature); err != nil {
		return nil, err
	}
	if err := checkTemperatureDifference("evaporator.superheat", spec.Superheat); err != nil {
		return nil, err
	}
	dew, err := resolve(provider, fluid, "evaporator dew point",
		refrigerant.WithTemperature(spec.Temperature), refrigerant.WithQuality(refrigerant.DewPoint.Quality()))
	if err != nil {
		return nil, err
	}
	outlet := dew
	if spec.Superheat > 0 {
		outlet, err = resolve(provider, fluid, "evaporator outlet",
			refrigerant.WithPressure(dew.Pressure), refrigerant.WithTemperature(spec.Temperature+spec.Superheat))
		if err != nil {
			return nil, err
		}
	}
	return &Evaporator{
		Temperature: spec.Temperature,
		Superheat:   spec.Superheat,
		Pressure:    dew.Pressure,
		DewPoint:    dew,
		Outlet:      outlet,
	}, nil
}

func newCompressor(spec config.CompressorSpec) (*Compressor, error) {
	if math.IsNaN(spec.Efficiency) || spec.Efficiency <= 0 || spec.Efficiency > 1 {
		return nil, configError("compressor.efficiency", "must be within (0, 1], got %g", spec.Efficiency)
	}
	return &Compressor{Efficiency: spec.Efficiency}, nil
}

func newCondenser(provider refrigerant.Provider, fluid *refrigerant.Fluid, spec config.CondenserSpec) (*Condenser, error) {
	if err := checkSubcritical("condenser.temperature", fluid, spec.Temperature); err != nil {
		return nil, err
	}
	if err := checkTemperatureDifference("condenser.subcooling", spec.Subcooling); err != nil {
		return nil, err
	}
	bubble, err := resolve(provider, fluid, "condenser bubble point",
		refrigerant.WithTemperature(spec.Temperature), refrigerant.WithQuality(refrigerant.BubblePoint.Quality()))
	if err != nil {
		return nil, err
	}
	outlet := bubble
	if spec.Subcooling > 0 {
		outlet, err = resolve(provider, fluid, "condenser outlet",
			refrigerant.WithPressure(bubble.Pressure), refrigerant.WithTemperature(spec.Temperature-spec.Subcooling))
		if err != nil {
			return nil, err
		}
	}
	return &Condenser{
		Temperature: spec.Temperature,
		Subcooling:  spec.Subcooling,
		Pressure:    bubble.Pressure,
		BubblePoint: bubble,
		Outlet:      outlet,
	}, nil
}

// newGasCooler resolves the gas cooler outlet. Without an explicit pressure only R744 gets the
// optimal high-side pressure for the evaporating temperature.
func newGasCooler(provider refrigerant.Provider, fluid *refrigerant.Fluid, spec config.GasCoolerSpec, evaporatingTemperature float64) (*GasCooler, error) {
	if math.IsNaN(spec.Temperature) || spec.Temperature <= 0 {
		return nil, configError("gasCooler.temperature", "must be a positive absolute temperature, got %g", spec.Temperature)
	}
	var pressure float64
	switch {
	case spec.Pressure != nil:
		pressure = *spec.Pressure
	case fluid.Name == R744:
		pressure = solver.OptimalGasCoolerPressure(evaporatingTemperature, spec.Temperature)
	default:
		return nil, configError("gasCooler.pressure", "is required for %s", fluid.Name)
	}
	if math.IsNaN(pressure) || pressure <= fluid.CriticalPressure {
		return nil, configError("gasCooler.pressure", "%.0f Pa is not above the critical pressure %.0f Pa of %s",
			pressure, fluid.CriticalPressure, fluid.Name)
	}
	outlet, err := resolve(provider, fluid, "gas cooler outlet",
		refrigerant.WithPressure(pressure), refrigerant.WithTemperature(spec.Temperature))
	if err != nil {
		return nil, err
	}
	return &GasCooler{
		Temperature: spec.Temperature,
		Pressure:    pressure,
		Outlet:      outlet,
	}, nil
}
