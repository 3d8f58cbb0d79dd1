package core

import "fmt"

// Component identifies the piece of equipment a process belongs to.
type Component int

// enumeration of Component
const (
	ComponentCompressor Component = iota
	ComponentCondenser
	ComponentGasCooler
	ComponentExpansionValve
	ComponentEvaporator
	ComponentIntercooler
	ComponentMixingChamber
)

var componentNames = map[Component]string{
	ComponentCompressor:     "Compressor",
	ComponentCondenser:      "Condenser",
	ComponentGasCooler:      "GasCooler",
	ComponentExpansionValve: "ExpansionValve",
	ComponentEvaporator:     "Evaporator",
	ComponentIntercooler:    "Intercooler",
	ComponentMixingChamber:  "MixingChamber",
}

func (c Component) String() string {
	if name, ok := componentNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Component(%d)", int(c))
}

// ProcessKind tells how a process exchanges heat with the surroundings.
type ProcessKind int

// enumeration of ProcessKind
const (
	// Adiabatic processes (compression, throttling, vessels) exchange no heat.
	Adiabatic ProcessKind = iota
	// HeatRejection releases Heat to the hot source.
	HeatRejection
	// HeatAbsorption takes Heat from the cold source.
	HeatAbsorption
)

// Stream is a refrigerant flow through a process boundary.
type Stream struct {
	Point Point
	// MassFlow relative to the evaporator mass flow.
	MassFlow float64
}

// Process is one component's steady-flow balance, per kg of evaporator flow.
type Process struct {
	Name      string
	Component Component
	Kind      ProcessKind
	Inlets    []Stream
	Outlets   []Stream
	// Heat exchanged with the surroundings in J per kg of evaporator flow; zero when Adiabatic.
	Heat float64
}

// EntropyChange returns the entropy carried out minus the entropy carried in, in J/(kg·K).
func (p Process) EntropyChange() float64 {
	var out, in float64
	for _, s := range p.Outlets {
		out += s.MassFlow * s.Point.Entropy
	}
	for _, s := range p.Inlets {
		in += s.MassFlow * s.Point.Entropy
	}
	return out - in
}

func flow(m float64, points ...Point) []Stream {
	streams := make([]Stream, len(points))
	for i, p := range points {
		streams[i] = Stream{Point: p, MassFlow: m}
	}
	return streams
}
