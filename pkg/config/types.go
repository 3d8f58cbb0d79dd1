package config

import "fmt"

// CycleType selects the cycle topology.
type CycleType string

const (
	// SimpleCycle is a single-stage cycle with one compressor and one expansion valve.
	SimpleCycle CycleType = "Simple"
	// TwoStageCycle compresses in two stages with an intermediate pressure vessel.
	TwoStageCycle CycleType = "TwoStage"
)

// Intercooling selects how the intermediate vessel of a two-stage cycle treats the low-stage discharge.
type Intercooling string

const (
	// CompleteIntercooling desuperheats the low-stage discharge to saturated vapor inside a flash intercooler.
	CompleteIntercooling Intercooling = "Complete"
	// IncompleteIntercooling mixes the flash vapor with the low-stage discharge before the high stage.
	IncompleteIntercooling Intercooling = "Incomplete"
)

// ParseCycleType maps a configuration string onto a CycleType; empty selects SimpleCycle.
func ParseCycleType(s string) (CycleType, error) {
	switch CycleType(s) {
	case "", SimpleCycle:
		return SimpleCycle, nil
	case TwoStageCycle:
		return TwoStageCycle, nil
	default:
		return "", fmt.Errorf("unsupported cycle type: %q", s)
	}
}

// ParseIntercooling maps a configuration string onto an Intercooling mode; empty selects CompleteIntercooling.
func ParseIntercooling(s string) (Intercooling, error) {
	switch Intercooling(s) {
	case "", CompleteIntercooling:
		return CompleteIntercooling, nil
	case IncompleteIntercooling:
		return IncompleteIntercooling, nil
	default:
		return "", fmt.Errorf("unsupported intercooling: %q", s)
	}
}

// EvaporatorSpec describes the evaporator.
type EvaporatorSpec struct {
	// Temperature is the evaporating (dew point) temperature in K.
	Temperature float64 `json:"temperature" yaml:"temperature"`
	// Superheat at the evaporator outlet in K.
	Superheat float64 `json:"superheat" yaml:"superheat"`
}

// CompressorSpec describes the compressor. Two-stage cycles use it for both stages.
type CompressorSpec struct {
	// Efficiency is the isentropic efficiency in (0, 1].
	Efficiency float64 `json:"efficiency" yaml:"efficiency"`
}

// CondenserSpec describes a subcritical heat releaser.
type CondenserSpec struct {
	// Temperature is the condensing (bubble point) temperature in K.
	Temperature float64 `json:"temperature" yaml:"temperature"`
	// Subcooling at the condenser outlet in K.
	Subcooling float64 `json:"subcooling" yaml:"subcooling"`
}

// GasCoolerSpec describes a transcritical heat releaser.
type GasCoolerSpec struct {
	// Temperature at the gas cooler outlet in K.
	Temperature float64 `json:"temperature" yaml:"temperature"`
	// Pressure is the high-side pressure in Pa. When nil the optimal R744 pressure is used.
	Pressure *float64 `json:"pressure,omitempty" yaml:"pressure,omitempty"`
}

// TwoStageSpec describes the intermediate stage.
type TwoStageSpec struct {
	Intercooling Intercooling `json:"intercooling,omitempty" yaml:"intercooling,omitempty"`
	// PressurePolicy names a solver.PressureStrategy; empty selects the default.
	PressurePolicy string `json:"pressurePolicy,omitempty" yaml:"pressurePolicy,omitempty"`
	// IntermediatePressure in Pa overrides the policy when set.
	IntermediatePressure *float64 `json:"intermediatePressure,omitempty" yaml:"intermediatePressure,omitempty"`
}

// CycleSpec is the complete declarative description of one cycle.
// Exactly one of Condenser and GasCooler must be set.
type CycleSpec struct {
	Refrigerant string         `json:"refrigerant" yaml:"refrigerant"`
	Type        CycleType      `json:"type,omitempty" yaml:"type,omitempty"`
	Evaporator  EvaporatorSpec `json:"evaporator" yaml:"evaporator"`
	Compressor  CompressorSpec `json:"compressor" yaml:"compressor"`
	Condenser   *CondenserSpec `json:"condenser,omitempty" yaml:"condenser,omitempty"`
	GasCooler   *GasCoolerSpec `json:"gasCooler,omitempty" yaml:"gasCooler,omitempty"`
	TwoStage    *TwoStageSpec  `json:"twoStage,omitempty" yaml:"twoStage,omitempty"`
}

// HeatReleaserTemperature returns the condensing or gas cooler outlet temperature, or 0 when neither is set.
func (s *CycleSpec) HeatReleaserTemperature() float64 {
	switch {
	case s.Condenser != nil:
		return s.Condenser.Temperature
	case s.GasCooler != nil:
		return s.GasCooler.Temperature
	default:
		return 0
	}
}
