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

// Package pengrobinson implements refrigerant.Provider on the Peng-Robinson cubic equation of state
// with polynomial ideal-gas heat capacities.
//
// Enthalpy and entropy follow the IIR reference: saturated liquid at 0 °C has h = 200 kJ/kg and
// s = 1 kJ/(kg·K). Saturation is resolved by equal fugacities between 0.4·Tc and 0.995·Tc; requests
// closer to the critical point fail with *refrigerant.PropertyResolutionError.
//
// Saturation results are cached per fluid and temperature/pressure. A Provider is safe for
// concurrent use.
package pengrobinson

import (
	"fmt"
	"math"
	"sync"

	"github.com/refcycle/vcrc/pkg/refrigerant"
	"github.com/refcycle/vcrc/pkg/solver"
)

const (
	iirEnthalpy = 200e3
	iirEntropy  = 1e3

	// Single-phase temperature searches are bounded by these reduced temperatures.
	minReducedTemperature = 0.4
	maxReducedTemperature = 3.0
)

// model is the equation of state of one fluid plus its reference offsets.
type model struct {
	*eos
	offsetH float64
	offsetS float64
}

type cacheKey struct {
	fluid *refrigerant.Fluid
	value float64
}

// Provider resolves refrigerant states with the Peng-Robinson equation of state.
type Provider struct {
	mu            sync.RWMutex
	models        map[*refrigerant.Fluid]*model
	byTemperature map[cacheKey]saturation
	byPressure    map[cacheKey]saturation
}

var _ refrigerant.Provider = &Provider{}

// NewProvider creates a Provider with empty caches.
func NewProvider() *Provider {
	return &Provider{
		models:        make(map[*refrigerant.Fluid]*model),
		byTemperature: make(map[cacheKey]saturation),
		byPressure:    make(map[cacheKey]saturation),
	}
}

// CachedSaturations returns the number of cached saturation points.
func (p *Provider) CachedSaturations() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.byTemperature) + len(p.byPressure)
}

// SaturationPressure returns the saturation pressure (Pa) of fluid at temperature t (K).
func (p *Provider) SaturationPressure(fluid *refrigerant.Fluid, t float64) (float64, error) {
	st, err := p.Resolve(fluid, refrigerant.WithTemperature(t), refrigerant.WithQuality(0))
	if err != nil {
		return math.NaN(), err
	}
	return st.Pressure, nil
}

// Resolve implements refrigerant.Provider. Inputs may be given in any order.
func (p *Provider) Resolve(fluid *refrigerant.Fluid, a, b refrigerant.Input) (refrigerant.State, error) {
	fail := func(reason string, err error) (refrigerant.State, error) {
		name := "<nil>"
		if fluid != nil {
			name = fluid.Name
		}
		return refrigerant.State{}, &refrigerant.PropertyResolutionError{
			Fluid:  name,
			Inputs: [2]refrigerant.Input{a, b},
			Reason: reason,
			Err:    err,
		}
	}

	if fluid == nil {
		return fail("fluid is nil", nil)
	}
	if a.Property == b.Property {
		return fail("inputs must be two different properties", nil)
	}
	for _, in := range []refrigerant.Input{a, b} {
		if math.IsNaN(in.Value) || math.IsInf(in.Value, 0) {
			return fail("input is not finite", nil)
		}
	}

	m, err := p.model(fluid)
	if err != nil {
		return fail("reference state", err)
	}

	pressure, hasP := lookup(refrigerant.Pressure, a, b)
	temperature, hasT := lookup(refrigerant.Temperature, a, b)
	enthalpy, hasH := lookup(refrigerant.Enthalpy, a, b)
	entropy, hasS := lookup(refrigerant.Entropy, a, b)
	quality, hasQ := lookup(refrigerant.Quality, a, b)

	if hasP && pressure <= 0 {
		return fail("pressure must be positive", nil)
	}
	if hasQ && (quality < 0 || quality > 1) {
		return fail("quality must be within [0, 1]", nil)
	}
	if hasT {
		tc := fluid.CriticalTemperature
		if temperature < minReducedTemperature*tc || temperature > maxReducedTemperature*tc {
			return fail(fmt.Sprintf("temperature outside [%.2f, %.2f] K",
				minReducedTemperature*tc, maxReducedTemperature*tc), nil)
		}
	}

	var (
		st     refrigerant.State
		reason string
	)
	switch {
	case hasP && hasT:
		st = m.atPressureTemperature(pressure, temperature)
	case hasP && hasH:
		st, err = p.atPressureProperty(m, pressure, enthalpy, refrigerant.Enthalpy)
		reason = "pressure-enthalpy inversion"
	case hasP && hasS:
		st, err = p.atPressureProperty(m, pressure, entropy, refrigerant.Entropy)
		reason = "pressure-entropy inversion"
	case hasT && hasQ:
		var sat saturation
		sat, err = p.saturationAtTemperature(m, temperature)
		st = m.twoPhase(sat, sat.pressure, quality)
		reason = "saturation at temperature"
	case hasP && hasQ:
		var sat saturation
		sat, err = p.saturationAtPressure(m, pressure)
		st = m.twoPhase(sat, pressure, quality)
		reason = "saturation at pressure"
	default:
		return fail("unsupported input pair", nil)
	}
	if err != nil {
		return fail(reason, err)
	}
	return st, nil
}

func lookup(property refrigerant.Property, a, b refrigerant.Input) (float64, bool) {
	switch property {
	case a.Property:
		return a.Value, true
	case b.Property:
		return b.Value, true
	default:
		return math.NaN(), false
	}
}

// model returns the per-fluid model, building it and its IIR offsets on first use.
func (p *Provider) model(fluid *refrigerant.Fluid) (*model, error) {
	p.mu.RLock()
	m, ok := p.models[fluid]
	p.mu.RUnlock()
	if ok {
		return m, nil
	}

	e := newEOS(fluid)
	ref, err := e.saturationAt(referenceTemperature)
	if err != nil {
		return nil, err
	}
	m = &model{
		eos:     e,
		offsetH: iirEnthalpy - ref.hl,
		offsetS: iirEntropy - ref.sl,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.models[fluid]; ok {
		return existing, nil
	}
	p.models[fluid] = m
	return m, nil
}

func (p *Provider) saturationAtTemperature(m *model, t float64) (saturation, error) {
	key := cacheKey{fluid: m.fluid, value: t}
	p.mu.RLock()
	sat, ok := p.byTemperature[key]
	p.mu.RUnlock()
	if ok {
		return sat, nil
	}

	sat, err := m.saturationAt(t)
	if err != nil {
		return saturation{}, err
	}
	p.mu.Lock()
	p.byTemperature[key] = sat
	p.mu.Unlock()
	return sat, nil
}

func (p *Provider) saturationAtPressure(m *model, pressure float64) (saturation, error) {
	key := cacheKey{fluid: m.fluid, value: pressure}
	p.mu.RLock()
	sat, ok := p.byPressure[key]
	p.mu.RUnlock()
	if ok {
		return sat, nil
	}

	t, err := m.saturationTemperature(pressure)
	if err != nil {
		return saturation{}, err
	}
	sat, err = m.saturationAt(t)
	if err != nil {
		return saturation{}, err
	}
	p.mu.Lock()
	p.byPressure[key] = sat
	p.mu.Unlock()
	return sat, nil
}

func (m *model) twoPhase(sat saturation, pressure, quality float64) refrigerant.State {
	return refrigerant.State{
		Pressure:    pressure,
		Temperature: sat.temperature,
		Enthalpy:    sat.hl + quality*(sat.hv-sat.hl) + m.offsetH,
		Entropy:     sat.sl + quality*(sat.sv-sat.sl) + m.offsetS,
		Quality:     quality,
		Phase:       refrigerant.PhaseTwoPhase,
	}
}

func (m *model) atPressureTemperature(pressure, t float64) refrigerant.State {
	raw := m.state(t, pressure, stableRoot)
	return m.singlePhase(pressure, t, raw)
}

func (m *model) singlePhase(pressure, t float64, raw rawState) refrigerant.State {
	return refrigerant.State{
		Pressure:    pressure,
		Temperature: t,
		Enthalpy:    raw.h + m.offsetH,
		Entropy:     raw.s + m.offsetS,
		Quality:     math.NaN(),
		Phase:       m.phase(pressure, t, raw.vaporLike),
	}
}

func (m *model) phase(pressure, t float64, vaporLike bool) refrigerant.Phase {
	tc, pc := m.fluid.CriticalTemperature, m.fluid.CriticalPressure
	switch {
	case t >= tc && pressure >= pc:
		return refrigerant.PhaseSupercritical
	case pressure >= pc:
		return refrigerant.PhaseSupercriticalLiquid
	case t >= tc:
		return refrigerant.PhaseSupercriticalGas
	case vaporLike:
		return refrigerant.PhaseGas
	default:
		return refrigerant.PhaseLiquid
	}
}

// atPressureProperty resolves (P, h) or (P, s). Below the critical pressure the value is first
// checked against the saturated pair; single-phase states are found by a temperature search on
// the matching branch.
func (p *Provider) atPressureProperty(m *model, pressure, value float64, property refrigerant.Property) (refrigerant.State, error) {
	raw := value - m.offsetH
	pick := func(s rawState) float64 { return s.h }
	if property == refrigerant.Entropy {
		raw = value - m.offsetS
		pick = func(s rawState) float64 { return s.s }
	}

	tc := m.fluid.CriticalTemperature
	lo, hi := minReducedTemperature*tc, maxReducedTemperature*tc
	choice := stableRoot

	if pressure < m.fluid.CriticalPressure {
		sat, err := p.saturationAtPressure(m, pressure)
		if err != nil {
			return refrigerant.State{}, err
		}
		liquid, vapor := sat.hl, sat.hv
		if property == refrigerant.Entropy {
			liquid, vapor = sat.sl, sat.sv
		}
		switch {
		case raw >= liquid && raw <= vapor:
			st := m.twoPhase(sat, pressure, (raw-liquid)/(vapor-liquid))
			if property == refrigerant.Entropy {
				st.Entropy = value
			} else {
				st.Enthalpy = value
			}
			return st, nil
		case raw > vapor:
			lo, choice = sat.temperature, vaporRoot
		default:
			hi, choice = sat.temperature, liquidRoot
		}
	}

	t, err := solver.FindRoot(func(t float64) (float64, error) {
		return pick(m.state(t, pressure, choice)) - raw, nil
	}, lo, hi, temperatureTolerance, 0)
	if err != nil {
		return refrigerant.State{}, err
	}
	st := m.singlePhase(pressure, t, m.state(t, pressure, choice))
	if property == refrigerant.Entropy {
		st.Entropy = value
	} else {
		st.Enthalpy = value
	}
	return st, nil
}
