// Package solver holds the numerical building blocks of the cycle model.
//
// Key Components:
//
//   - FindRoot: bracketed scalar root finding (Illinois regula falsi) used by the
//     equation of state to invert h(T) and s(T) at fixed pressure
//   - PressurePolicy: placement of the intermediate pressure of a two-stage cycle
//   - OptimalGasCoolerPressure: Liao high pressure correlation for transcritical R744
//
// Intermediate pressure strategies:
//
//   - GeometricMean (default): sqrt(P0·Pk), the classical equal pressure ratio split
//   - SaturationMean: saturation pressure at the mean of the evaporating and condensing
//     temperatures
//   - Fixed: a caller supplied pressure, checked against the boundaries
//
// Example usage:
//
//	strategy, err := solver.ParsePressureStrategy("SaturationMean")
//	if err != nil {
//	    return err
//	}
//	policy, err := solver.NewPressurePolicy(strategy, &solver.PressurePolicyConfig{})
//	if err != nil {
//	    return err
//	}
//	pint, err := policy.IntermediatePressure(solver.Boundaries{
//	    EvaporatingPressure:     p0,
//	    HeatReleaserPressure:    pk,
//	    EvaporatingTemperature:  t0,
//	    HeatReleaserTemperature: tk,
//	    SaturationPressure:      sat,
//	})
//
// Policies return the pressure only; the caller checks it lies strictly between the
// evaporating and heat releaser pressures.
package solver
