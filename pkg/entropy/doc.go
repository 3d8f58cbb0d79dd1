// Package entropy implements the entropy (exergy) analysis of a solved refrigeration cycle.
//
// For every process of a cycle the entropy generation is
//
//	S_gen = Σ ṁ·s_out − Σ ṁ·s_in + Q_rejected/T_hot − Q_absorbed/T_cold
//
// and the exergy destroyed is T_hot·S_gen: the hot source (the outdoor environment) is the dead
// state. The minimum specific work needed to lift the cooling capacity q0 from the cold source
// to the hot source is
//
//	w_min = q0·(T_hot − T_cold)/T_cold
//
// and the degree of thermodynamic perfection is w_min/w. When the cycle's energy balance closes,
// w = w_min + Σ destruction and AnalysisRelativeError is zero.
//
// Losses are reported per component: Compressor, Condenser, GasCooler, ExpansionValves,
// Evaporator, Intercooler and Mixing. Components missing from a topology report zero.
//
// Example usage:
//
//	result, err := entropy.Analyze(cycle, 293.15, 308.15)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("perfection %.1f%%, compressor %.1f%% of losses\n",
//	    100*result.ThermodynamicPerfection, 100*result.Compressor.Fraction)
//
//	// average several operating conditions
//	avg, err := entropy.AggregateAnalysis(cycles, coldSources, hotSources)
//
// Boundary temperatures are checked with validation.EntropyAnalysisRules before any arithmetic;
// violations are returned as *validation.ValidationError.
package entropy
