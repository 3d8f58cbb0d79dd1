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
	"errors"
	"math"

	"github.com/refcycle/vcrc/pkg/config"
	"github.com/refcycle/vcrc/pkg/refrigerant"
	"github.com/refcycle/vcrc/pkg/solver"
)

// TwoStageCycle compresses in two stages around an intermediate pressure vessel.
type TwoStageCycle struct {
	*cycle
	intercooling         config.Intercooling
	strategy             solver.PressureStrategy
	intermediatePressure float64
	intermediateFlow     float64
}

var _ Cycle = &TwoStageCycle{}

// Intercooling returns the intermediate vessel mode.
func (c *TwoStageCycle) Intercooling() config.Intercooling { return c.intercooling }

// IntermediatePressure in Pa.
func (c *TwoStageCycle) IntermediatePressure() float64 { return c.intermediatePressure }

// IntermediateSpecificMassFlow is the flow added at the intermediate pressure, relative to the evaporator flow.
func (c *TwoStageCycle) IntermediateSpecificMassFlow() float64 { return c.intermediateFlow }

// PressureStrategy returns the policy that placed the intermediate pressure. It is
// solver.FixedStrategy when the pressure was given explicitly.
func (c *TwoStageCycle) PressureStrategy() solver.PressureStrategy { return c.strategy }

// NewTwoStageCycle solves a two-stage cycle. A nil spec.TwoStage selects complete intercooling
// with the default pressure policy.
func NewTwoStageCycle(provider refrigerant.Provider, spec config.CycleSpec) (*TwoStageCycle, error) {
	c, err := newCycle(provider, spec, config.TwoStageCycle)
	if err != nil {
		return nil, err
	}
	ts := config.TwoStageSpec{}
	if spec.TwoStage != nil {
		ts = *spec.TwoStage
	}
	intercooling, err := config.ParseIntercooling(string(ts.Intercooling))
	if err != nil {
		return nil, &ConfigurationError{Field: "twoStage.intercooling", Reason: "unknown mode", Err: err}
	}

	t := &TwoStageCycle{cycle: c, intercooling: intercooling}
	if err := t.placeIntermediatePressure(provider, ts); err != nil {
		return nil, err
	}
	if err := t.solve(provider); err != nil {
		return nil, err
	}
	return t, nil
}

func (c *TwoStageCycle) placeIntermediatePressure(provider refrigerant.Provider, ts config.TwoStageSpec) error {
	hr := c.HeatReleaser()
	p0, pk := c.evaporator.Pressure, hr.HeatReleaserPressure()
	// Saturation-based placement uses the condensing temperature, not the subcooled outlet.
	tk := hr.HeatReleaserOutlet().Temperature
	if c.condenser != nil {
		tk = c.condenser.Temperature
	}

	var pint float64
	if ts.IntermediatePressure != nil {
		pint, c.strategy = *ts.IntermediatePressure, solver.FixedStrategy
	} else {
		strategy, err := solver.ParsePressureStrategy(ts.PressurePolicy)
		if err != nil {
			return &ConfigurationError{Field: "twoStage.pressurePolicy", Reason: "unknown policy", Err: err}
		}
		policy, err := solver.NewPressurePolicy(strategy, nil)
		if err != nil {
			return &ConfigurationError{Field: "twoStage.intermediatePressure", Reason: "required by the policy", Err: err}
		}
		pint, err = policy.IntermediatePressure(solver.Boundaries{
			EvaporatingPressure:     p0,
			HeatReleaserPressure:    pk,
			EvaporatingTemperature:  c.evaporator.Temperature,
			HeatReleaserTemperature: tk,
			SaturationPressure: func(temperature float64) (float64, error) {
				st, err := provider.Resolve(c.fluid, refrigerant.WithTemperature(temperature), refrigerant.WithQuality(0))
				return st.Pressure, err
			},
		})
		if err != nil {
			var perr *refrigerant.PropertyResolutionError
			if errors.As(err, &perr) {
				return perr
			}
			return &ConfigurationError{Field: "twoStage.pressurePolicy", Reason: "cannot place intermediate pressure", Err: err}
		}
		c.strategy = strategy
	}

	switch {
	case math.IsNaN(pint) || pint <= p0 || pint >= pk:
		return configError("twoStage.intermediatePressure",
			"%.0f Pa must lie strictly between the evaporating pressure %.0f Pa and the heat releaser pressure %.0f Pa",
			pint, p0, pk)
	case pint >= c.fluid.CriticalPressure:
		return configError("twoStage.intermediatePressure", "%.0f Pa is not below the critical pressure %.0f Pa",
			pint, c.fluid.CriticalPressure)
	}
	c.intermediatePressure = pint
	return nil
}

func (c *TwoStageCycle) solve(provider refrigerant.Provider) error {
	hr := c.HeatReleaser()
	pint, pk := c.intermediatePressure, hr.HeatReleaserPressure()

	p1 := c.evaporator.Outlet.named("1")
	p2s, p2, err := c.compress(provider, p1, pint, "2s", "2")
	if err != nil {
		return err
	}
	liquid, err := resolve(provider, c.fluid, "7",
		refrigerant.WithPressure(pint), refrigerant.WithQuality(refrigerant.BubblePoint.Quality()))
	if err != nil {
		return err
	}
	vapor, err := resolve(provider, c.fluid, "9",
		refrigerant.WithPressure(pint), refrigerant.WithQuality(refrigerant.DewPoint.Quality()))
	if err != nil {
		return err
	}
	p5 := hr.HeatReleaserOutlet().named("5")
	p6, err := c.throttle(provider, p5, pint, "6")
	if err != nil {
		return err
	}
	if !p6.IsTwoPhase() || p6.Quality >= 1 {
		return configError("twoStage.intermediatePressure",
			"expansion of the heat releaser outlet to %.0f Pa does not end in the two-phase region", pint)
	}
	p7 := liquid
	p8, err := c.throttle(provider, p7, c.evaporator.Pressure, "8")
	if err != nil {
		return err
	}

	var (
		p3  Point
		mhp float64
	)
	switch c.intercooling {
	case config.IncompleteIntercooling:
		mhp = 1 / (1 - p6.Quality)
		h3 := (p2.Enthalpy + (mhp-1)*vapor.Enthalpy) / mhp
		if p3, err = resolve(provider, c.fluid, "3", refrigerant.WithPressure(pint), refrigerant.WithEnthalpy(h3)); err != nil {
			return err
		}
	default:
		p3 = vapor.named("3")
		mhp = (p2.Enthalpy - p7.Enthalpy) / (p3.Enthalpy - p6.Enthalpy)
	}
	if math.IsNaN(mhp) || mhp <= 1 || mhp >= 2 {
		return configError("twoStage", "intermediate specific mass flow %.4g is outside (0, 1)", mhp-1)
	}

	p4s, p4, err := c.compress(provider, p3, pk, "4s", "4")
	if err != nil {
		return err
	}

	c.heatReleaserFlow = mhp
	c.intermediateFlow = mhp - 1
	c.isentropicWork = (p2s.Enthalpy - p1.Enthalpy) + mhp*(p4s.Enthalpy-p3.Enthalpy)
	c.work = (p2.Enthalpy - p1.Enthalpy) + mhp*(p4.Enthalpy-p3.Enthalpy)
	c.coolingCapacity = p1.Enthalpy - p8.Enthalpy
	c.heatingCapacity = mhp * (p4.Enthalpy - p5.Enthalpy)

	c.points = []Point{p1, p2s, p2, p3, p4s, p4, p5, p6, p7, p8}
	c.processes = []Process{
		{Name: "low stage compression", Component: ComponentCompressor, Kind: Adiabatic,
			Inlets: flow(1, p1), Outlets: flow(1, p2)},
		{Name: "high stage compression", Component: ComponentCompressor, Kind: Adiabatic,
			Inlets: flow(mhp, p3), Outlets: flow(mhp, p4)},
		{Name: "heat rejection", Component: hr.Component(), Kind: HeatRejection,
			Inlets: flow(mhp, p4), Outlets: flow(mhp, p5), Heat: c.heatingCapacity},
		{Name: "high stage expansion", Component: ComponentExpansionValve, Kind: Adiabatic,
			Inlets: flow(mhp, p5), Outlets: flow(mhp, p6)},
	}
	if c.intercooling == config.IncompleteIntercooling {
		c.points = append(c.points, vapor)
		c.processes = append(c.processes,
			Process{Name: "flash separation", Component: ComponentIntercooler, Kind: Adiabatic,
				Inlets: flow(mhp, p6), Outlets: append(flow(mhp-1, vapor), flow(1, p7)...)},
			Process{Name: "suction mixing", Component: ComponentMixingChamber, Kind: Adiabatic,
				Inlets: append(flow(1, p2), flow(mhp-1, vapor)...), Outlets: flow(mhp, p3)},
		)
	} else {
		c.processes = append(c.processes,
			Process{Name: "intercooling", Component: ComponentIntercooler, Kind: Adiabatic,
				Inlets: append(flow(1, p2), flow(mhp, p6)...), Outlets: append(flow(mhp, p3), flow(1, p7)...)},
		)
	}
	c.processes = append(c.processes,
		Process{Name: "low stage expansion", Component: ComponentExpansionValve, Kind: Adiabatic,
			Inlets: flow(1, p7), Outlets: flow(1, p8)},
		Process{Name: "evaporation", Component: ComponentEvaporator, Kind: HeatAbsorption,
			Inlets: flow(1, p8), Outlets: flow(1, p1), Heat: c.coolingCapacity},
	)
	return nil
}
