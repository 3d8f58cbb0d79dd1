// Package config provides the declarative component specifications of a refrigeration cycle.
//
// The types in this package are plain data: they describe what a cycle is made of and carry
// no property calls. pkg/core resolves them against a refrigerant.Provider.
//
// Specification Types:
//
//   - EvaporatorSpec: evaporating temperature and superheat
//   - CompressorSpec: isentropic efficiency
//   - CondenserSpec: condensing temperature and subcooling
//   - GasCoolerSpec: outlet temperature and optional high-side pressure
//   - TwoStageSpec: intercooling mode and intermediate pressure policy
//   - CycleSpec: refrigerant, cycle type and the component specs above
//
// Units:
//
// Absolute temperatures are in K and temperature differences in K. Pressures are in Pa.
// Efficiencies are dimensionless ratios in (0, 1].
//
// Example usage:
//
//	spec := config.CycleSpec{
//	    Refrigerant: "R32",
//	    Type:        config.SimpleCycle,
//	    Evaporator:  config.EvaporatorSpec{Temperature: 278.15, Superheat: 5},
//	    Compressor:  config.CompressorSpec{Efficiency: 0.8},
//	    Condenser:   &config.CondenserSpec{Temperature: 318.15, Subcooling: 3},
//	}
//
//	cycle, err := core.Solve(provider, spec)
//	if err != nil {
//	    return err
//	}
//
// Range checks live in pkg/core, which turns violations into *core.ConfigurationError.
package config
