package validation

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/refcycle/vcrc/pkg/refrigerant"
)

// Rule names.
const (
	RuleRefrigerantPrefix     = "RefrigerantPrefix"
	RuleNoZeotropicBlend      = "NoZeotropicBlend"
	RuleNoGlide               = "NoGlide"
	RuleDistinctSources       = "DistinctSources"
	RuleColdBelowHot          = "ColdSourceBelowHotSource"
	RuleColdSourceAboveOutlet = "ColdSourceAboveEvaporatorOutlet"
	RuleHotSourceBelowOutlet  = "HotSourceBelowHeatReleaserOutlet"
)

// sourceTolerance is the absolute temperature difference (K) below which two sources coincide.
const sourceTolerance = 1e-9

// RefrigerantRules checks the identity of the working fluid.
var RefrigerantRules = Rules[*refrigerant.Fluid]{
	{
		Name: RuleRefrigerantPrefix,
		Message: func(f *refrigerant.Fluid) string {
			return fmt.Sprintf("The selected refrigerant (%s) is not a refrigerant!", f.Name)
		},
		Check: func(f *refrigerant.Fluid) bool {
			return strings.HasPrefix(f.Name, "R")
		},
	},
	{
		Name: RuleNoZeotropicBlend,
		Message: func(f *refrigerant.Fluid) string {
			return fmt.Sprintf("The selected refrigerant (%s) is a zeotropic blend! "+
				"Only single-component refrigerants and azeotropic blends are supported.", f.Name)
		},
		Check: func(f *refrigerant.Fluid) bool {
			return f.IsSingleComponent() || f.IsAzeotropicBlend()
		},
	},
}

// NoGlideRules rejects refrigerants that change temperature during isobaric phase change.
var NoGlideRules = Rules[*refrigerant.Fluid]{
	{
		Name: RuleNoGlide,
		Message: func(f *refrigerant.Fluid) string {
			return fmt.Sprintf("The selected refrigerant (%s) has a temperature glide of %.2f K! "+
				"Only refrigerants without glide are supported.", f.Name, f.Glide)
		},
		Check: func(f *refrigerant.Fluid) bool {
			return !f.HasGlide()
		},
	},
}

// CycleRefrigerantRules is applied when a cycle is constructed.
var CycleRefrigerantRules = append(append(Rules[*refrigerant.Fluid]{}, RefrigerantRules...), NoGlideRules...)

// AnalysisTarget carries what the entropy analysis boundary rules look at. Temperatures are in K.
type AnalysisTarget struct {
	EvaporatorOutletTemperature   float64
	HeatReleaserOutletTemperature float64
	ColdSource                    float64
	HotSource                     float64
}

// EntropyAnalysisRules checks the reference temperatures of an entropy analysis.
var EntropyAnalysisRules = Rules[AnalysisTarget]{
	{
		Name: RuleDistinctSources,
		Message: func(t AnalysisTarget) string {
			return fmt.Sprintf("The cold source temperature (%.2f K) must differ from the hot source temperature (%.2f K)!",
				t.ColdSource, t.HotSource)
		},
		Check: func(t AnalysisTarget) bool {
			return !scalar.EqualWithinAbs(t.ColdSource, t.HotSource, sourceTolerance)
		},
	},
	{
		Name: RuleColdBelowHot,
		Message: func(t AnalysisTarget) string {
			return fmt.Sprintf("The cold source temperature (%.2f K) must be less than the hot source temperature (%.2f K)!",
				t.ColdSource, t.HotSource)
		},
		Check: func(t AnalysisTarget) bool {
			return t.ColdSource < t.HotSource
		},
	},
	{
		Name: RuleColdSourceAboveOutlet,
		Message: func(t AnalysisTarget) string {
			return fmt.Sprintf("The cold source temperature (%.2f K) must be greater than the evaporator outlet temperature (%.2f K)!",
				t.ColdSource, t.EvaporatorOutletTemperature)
		},
		Check: func(t AnalysisTarget) bool {
			return t.ColdSource > t.EvaporatorOutletTemperature
		},
	},
	{
		Name: RuleHotSourceBelowOutlet,
		Message: func(t AnalysisTarget) string {
			return fmt.Sprintf("The hot source temperature (%.2f K) must be less than the heat releaser outlet temperature (%.2f K)!",
				t.HotSource, t.HeatReleaserOutletTemperature)
		},
		Check: func(t AnalysisTarget) bool {
			return t.HotSource < t.HeatReleaserOutletTemperature
		},
	},
}
