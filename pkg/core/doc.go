// Package core provides the cycle model of a vapor-compression refrigeration cycle.
//
// This package turns the declarative specs of pkg/config into solved, read-only cycles:
//
//   - Point: an immutable thermodynamic state built from a refrigerant.State
//   - Evaporator, Compressor, Condenser, GasCooler: resolved components
//   - HeatReleaser: the capability shared by Condenser and GasCooler
//   - Process and Stream: the mass and heat flows of each component, per kg of evaporator flow
//   - Cycle: the common capability set of SimpleCycle and TwoStageCycle
//
// State points are labelled in flow order. A simple cycle has 1 (evaporator outlet), 2s and 2
// (compressor outlet, isentropic and real), 3 (heat releaser outlet) and 4 (evaporator inlet).
// A two-stage cycle has 1, 2s, 2 (low stage), 3 (high stage suction), 4s, 4 (high stage), 5 (heat
// releaser outlet), 6 (intermediate vessel inlet), 7 (saturated liquid leaving the vessel) and 8
// (evaporator inlet). Incomplete intercooling adds 9, the flash vapor mixed into the high stage
// suction.
//
// Example usage:
//
//	provider := pengrobinson.NewProvider()
//
//	cycle, err := core.Solve(provider, spec)
//	if err != nil {
//	    var cfgErr *core.ConfigurationError
//	    if errors.As(err, &cfgErr) {
//	        return fmt.Errorf("bad cycle %s: %w", cfgErr.Field, err)
//	    }
//	    return err
//	}
//
//	fmt.Printf("EER %.2f COP %.2f\n", cycle.EER(), cycle.COP())
//
// Errors:
//
// Invalid or physically unrealizable parameters fail with *ConfigurationError. Refrigerants that
// violate the identity or glide rules fail with *validation.ValidationError. Provider failures
// are returned unchanged as *refrigerant.PropertyResolutionError.
//
// The core package is designed to be:
//   - Pure: no I/O and no logging
//   - Immutable after construction (safe to share between goroutines)
//   - Independent of the property model behind refrigerant.Provider
package core
