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

package entropy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/refcycle/vcrc/pkg/core"
	"github.com/refcycle/vcrc/pkg/validation"
)

const (
	// ZeroDestruction is the total exergy destruction (J/kg) below which a cycle counts as ideal.
	ZeroDestruction = 1e-9

	// Negative destruction within this share of the specific work is round-off and clamped to zero.
	roundOffTolerance = 1e-9
)

// Loss is the exergy destroyed in one component.
type Loss struct {
	// Destruction in J per kg of evaporator flow.
	Destruction float64 `json:"destruction"`
	// Fraction of the total destruction.
	Fraction float64 `json:"fraction"`
	// WorkRatio is Destruction over the specific work.
	WorkRatio float64 `json:"workRatio"`
}

// Result is the entropy analysis of one cycle between a cold and a hot source.
type Result struct {
	ColdSource float64 `json:"coldSource"`
	HotSource  float64 `json:"hotSource"`

	// MinSpecificWork is the reversible work for the same cooling capacity, J/kg.
	MinSpecificWork        float64 `json:"minSpecificWork"`
	SpecificWork           float64 `json:"specificWork"`
	TotalExergyDestruction float64 `json:"totalExergyDestruction"`
	// ThermodynamicPerfection is MinSpecificWork over SpecificWork.
	ThermodynamicPerfection float64 `json:"thermodynamicPerfection"`
	// MinSpecificWorkRatio is MinSpecificWork over (MinSpecificWork + TotalExergyDestruction).
	MinSpecificWorkRatio float64 `json:"minSpecificWorkRatio"`
	// AnalysisRelativeError is (MinSpecificWork + TotalExergyDestruction - SpecificWork) / SpecificWork.
	AnalysisRelativeError float64 `json:"analysisRelativeError"`

	Compressor      Loss `json:"compressor"`
	Condenser       Loss `json:"condenser"`
	GasCooler       Loss `json:"gasCooler"`
	ExpansionValves Loss `json:"expansionValves"`
	Evaporator      Loss `json:"evaporator"`
	Intercooler     Loss `json:"intercooler"`
	Mixing          Loss `json:"mixing"`
}

// ComponentLoss pairs a component name with its loss.
type ComponentLoss struct {
	Component string
	Loss
}

// Breakdown lists the component losses in a fixed order.
func (r *Result) Breakdown() []ComponentLoss {
	return []ComponentLoss{
		{Component: "Compressor", Loss: r.Compressor},
		{Component: "Condenser", Loss: r.Condenser},
		{Component: "GasCooler", Loss: r.GasCooler},
		{Component: "ExpansionValves", Loss: r.ExpansionValves},
		{Component: "Evaporator", Loss: r.Evaporator},
		{Component: "Intercooler", Loss: r.Intercooler},
		{Component: "Mixing", Loss: r.Mixing},
	}
}

func (r *Result) loss(c core.Component) *Loss {
	switch c {
	case core.ComponentCompressor:
		return &r.Compressor
	case core.ComponentCondenser:
		return &r.Condenser
	case core.ComponentGasCooler:
		return &r.GasCooler
	case core.ComponentExpansionValve:
		return &r.ExpansionValves
	case core.ComponentEvaporator:
		return &r.Evaporator
	case core.ComponentIntercooler:
		return &r.Intercooler
	case core.ComponentMixingChamber:
		return &r.Mixing
	default:
		return nil
	}
}

func (r *Result) losses() []*Loss {
	return []*Loss{&r.Compressor, &r.Condenser, &r.GasCooler, &r.ExpansionValves, &r.Evaporator, &r.Intercooler, &r.Mixing}
}

// Analyze splits the exergy losses of cycle between coldSource and hotSource (K).
func Analyze(cycle core.Cycle, coldSource, hotSource float64) (*Result, error) {
	if cycle == nil {
		return nil, &ArgumentError{Message: "The cycle should not be nil!"}
	}
	target := validation.AnalysisTarget{
		EvaporatorOutletTemperature:   cycle.Evaporator().Outlet.Temperature,
		HeatReleaserOutletTemperature: cycle.HeatReleaser().HeatReleaserOutlet().Temperature,
		ColdSource:                    coldSource,
		HotSource:                     hotSource,
	}
	if err := validation.EntropyAnalysisRules.Validate(target); err != nil {
		return nil, err
	}

	w := cycle.SpecificWork()
	r := &Result{
		ColdSource:      coldSource,
		HotSource:       hotSource,
		SpecificWork:    w,
		MinSpecificWork: cycle.SpecificCoolingCapacity() * (hotSource - coldSource) / coldSource,
	}

	for _, p := range cycle.Processes() {
		loss := r.loss(p.Component)
		if loss == nil {
			return nil, fmt.Errorf("process %q: unknown component %v", p.Name, p.Component)
		}
		d := hotSource * generation(p, coldSource, hotSource)
		if d < 0 {
			if d < -roundOffTolerance*math.Max(1, math.Abs(w)) {
				return nil, fmt.Errorf("process %q destroys negative exergy %g J/kg", p.Name, d)
			}
			d = 0
		}
		loss.Destruction += d
	}

	destructions := make([]float64, 0, 7)
	for _, l := range r.losses() {
		destructions = append(destructions, l.Destruction)
	}
	r.TotalExergyDestruction = floats.Sum(destructions)

	if r.TotalExergyDestruction <= ZeroDestruction {
		r.ThermodynamicPerfection = 1
		r.MinSpecificWorkRatio = 1
	} else {
		r.ThermodynamicPerfection = r.MinSpecificWork / w
		r.MinSpecificWorkRatio = r.MinSpecificWork / (r.MinSpecificWork + r.TotalExergyDestruction)
		for _, l := range r.losses() {
			l.Fraction = l.Destruction / r.TotalExergyDestruction
		}
	}
	if w != 0 {
		for _, l := range r.losses() {
			l.WorkRatio = l.Destruction / w
		}
		r.AnalysisRelativeError = (r.MinSpecificWork + r.TotalExergyDestruction - w) / w
	}
	return r, nil
}

// generation returns the entropy generated by one process per kg of evaporator flow.
func generation(p core.Process, coldSource, hotSource float64) float64 {
	s := p.EntropyChange()
	switch p.Kind {
	case core.HeatRejection:
		s += p.Heat / hotSource
	case core.HeatAbsorption:
		s -= p.Heat / coldSource
	}
	return s
}
