package evaluator

import (
	"k8s.io/utils/ptr"

	"github.com/refcycle/vcrc/api/v1alpha1"
	"github.com/refcycle/vcrc/internal/metrics"
	"github.com/refcycle/vcrc/pkg/core"
	"github.com/refcycle/vcrc/pkg/entropy"
)

func conditionResult(name string, c core.Cycle) v1alpha1.ConditionResult {
	r := v1alpha1.ConditionResult{
		Name:                    name,
		Transcritical:           c.IsTranscritical(),
		EER:                     c.EER(),
		COP:                     c.COP(),
		SpecificWork:            kilo(c.SpecificWork()),
		SpecificCoolingCapacity: kilo(c.SpecificCoolingCapacity()),
		EvaporatingPressure:     v1alpha1.Kilopascal(c.Evaporator().Pressure),
		HeatReleaserPressure:    v1alpha1.Kilopascal(c.HeatReleaser().HeatReleaserPressure()),
	}
	if ts, ok := c.(*core.TwoStageCycle); ok {
		r.IntermediatePressure = ptr.To(v1alpha1.Kilopascal(ts.IntermediatePressure()))
	}
	return r
}

func summary(r *entropy.Result) *v1alpha1.AnalysisSummary {
	s := &v1alpha1.AnalysisSummary{
		ThermodynamicPerfection: r.ThermodynamicPerfection,
		MinSpecificWork:         kilo(r.MinSpecificWork),
		SpecificWork:            kilo(r.SpecificWork),
		TotalExergyDestruction:  kilo(r.TotalExergyDestruction),
		AnalysisRelativeError:   r.AnalysisRelativeError,
	}
	for _, l := range r.Breakdown() {
		s.Losses = append(s.Losses, v1alpha1.ComponentLoss{
			Component:   l.Component,
			Destruction: kilo(l.Destruction),
			Fraction:    l.Fraction,
			WorkRatio:   l.WorkRatio,
		})
	}
	return s
}

func kilo(v float64) float64 { return v / 1e3 }

// failureReason maps an error onto a Solved condition reason.
func failureReason(err error) string {
	switch metrics.Kind(err) {
	case metrics.KindConfiguration:
		return v1alpha1.ReasonInvalidConfiguration
	case metrics.KindProperty:
		return v1alpha1.ReasonPropertyResolutionFailed
	case metrics.KindValidation:
		return v1alpha1.ReasonValidationFailed
	default:
		return v1alpha1.ReasonInvalidConfiguration
	}
}
