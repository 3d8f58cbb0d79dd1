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

package refrigerant

import (
	"fmt"
	"math"
)

// Property names an independent thermodynamic property used as a provider input.
type Property string

const (
	Pressure    Property = "P"
	Temperature Property = "T"
	Enthalpy    Property = "H"
	Entropy     Property = "S"
	Quality     Property = "Q"
)

// Input is one of the two independent properties that fix a state.
type Input struct {
	Property Property
	Value    float64
}

func (i Input) String() string {
	return fmt.Sprintf("%s=%g", i.Property, i.Value)
}

// WithPressure returns a pressure input in Pa.
func WithPressure(p float64) Input { return Input{Property: Pressure, Value: p} }

// WithTemperature returns a temperature input in K.
func WithTemperature(t float64) Input { return Input{Property: Temperature, Value: t} }

// WithEnthalpy returns a specific enthalpy input in J/kg.
func WithEnthalpy(h float64) Input { return Input{Property: Enthalpy, Value: h} }

// WithEntropy returns a specific entropy input in J/(kg·K).
func WithEntropy(s float64) Input { return Input{Property: Entropy, Value: s} }

// WithQuality returns a vapor quality input as a fraction in [0, 1].
func WithQuality(x float64) Input { return Input{Property: Quality, Value: x} }

// Phase tags the region of the phase diagram a state lies in.
type Phase string

const (
	PhaseLiquid              Phase = "Liquid"
	PhaseGas                 Phase = "Gas"
	PhaseTwoPhase            Phase = "TwoPhase"
	PhaseSupercritical       Phase = "Supercritical"
	PhaseSupercriticalGas    Phase = "SupercriticalGas"
	PhaseSupercriticalLiquid Phase = "SupercriticalLiquid"
)

// State is a complete thermodynamic state returned by a Provider.
// Quality is NaN outside the two-phase dome.
type State struct {
	Pressure    float64
	Temperature float64
	Enthalpy    float64
	Entropy     float64
	Quality     float64
	Phase       Phase
}

// PointKind is a named saturation point with a fixed vapor quality.
type PointKind int

const (
	// BubblePoint is saturated liquid.
	BubblePoint PointKind = iota
	// DewPoint is saturated vapor.
	DewPoint
)

var pointKindQuality = map[PointKind]float64{
	BubblePoint: 0,
	DewPoint:    1,
}

var pointKindNames = map[PointKind]string{
	BubblePoint: "BubblePoint",
	DewPoint:    "DewPoint",
}

// Quality returns the vapor quality fraction attached to the point kind.
func (k PointKind) Quality() float64 {
	if q, ok := pointKindQuality[k]; ok {
		return q
	}
	return math.NaN()
}

func (k PointKind) String() string {
	if name, ok := pointKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PointKind(%d)", int(k))
}

// Provider resolves full thermodynamic states of a refrigerant.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Resolve returns the state fixed by two independent properties.
	// It fails with *PropertyResolutionError for invalid or out-of-range inputs.
	Resolve(fluid *Fluid, a, b Input) (State, error)
}

// PropertyResolutionError reports a state the provider could not resolve.
type PropertyResolutionError struct {
	Fluid  string
	Inputs [2]Input
	Reason string
	Err    error
}

func (e *PropertyResolutionError) Error() string {
	msg := fmt.Sprintf("cannot resolve %s state at %s, %s: %s", e.Fluid, e.Inputs[0], e.Inputs[1], e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *PropertyResolutionError) Unwrap() error {
	return e.Err
}
