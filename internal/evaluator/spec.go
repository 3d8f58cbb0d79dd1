package evaluator

import (
	"k8s.io/utils/ptr"

	"github.com/refcycle/vcrc/api/v1alpha1"
	appconfig "github.com/refcycle/vcrc/internal/config"
	"github.com/refcycle/vcrc/pkg/config"
)

// BuildCycleSpec turns the document template and one operating condition into a cycle spec in SI
// units. Values missing from the template come from defaults, then from fallbackPolicy for the
// intermediate pressure policy.
func BuildCycleSpec(refrigerant string, t v1alpha1.CycleTemplate, c v1alpha1.OperatingCondition,
	defaults appconfig.RefrigerantDefaults, fallbackPolicy string) config.CycleSpec {

	spec := config.CycleSpec{
		Refrigerant: refrigerant,
		Type:        config.CycleType(t.Type),
		Evaporator: config.EvaporatorSpec{
			Temperature: v1alpha1.Kelvin(ptr.Deref(c.EvaporatingTemperature, t.EvaporatingTemperature)),
			Superheat:   ptr.Deref(t.Superheat, ptr.Deref(defaults.Superheat, 0)),
		},
		Compressor: config.CompressorSpec{
			Efficiency: ptr.Deref(t.CompressorEfficiency, ptr.Deref(defaults.CompressorEfficiency, 0)),
		},
	}

	if t.Condenser != nil {
		spec.Condenser = &config.CondenserSpec{
			Temperature: v1alpha1.Kelvin(ptr.Deref(c.HeatReleaserTemperature, t.Condenser.CondensingTemperature)),
			Subcooling:  ptr.Deref(t.Condenser.Subcooling, ptr.Deref(defaults.Subcooling, 0)),
		}
	}
	if t.GasCooler != nil {
		spec.GasCooler = &config.GasCoolerSpec{
			Temperature: v1alpha1.Kelvin(ptr.Deref(c.HeatReleaserTemperature, t.GasCooler.OutletTemperature)),
		}
		if t.GasCooler.Pressure != nil {
			spec.GasCooler.Pressure = ptr.To(v1alpha1.Pascal(*t.GasCooler.Pressure))
		}
	}

	if spec.Type == config.TwoStageCycle {
		stage := config.TwoStageSpec{}
		if t.TwoStage != nil {
			stage.Intercooling = config.Intercooling(t.TwoStage.Intercooling)
			stage.PressurePolicy = t.TwoStage.PressurePolicy
			if t.TwoStage.IntermediatePressure != nil {
				stage.IntermediatePressure = ptr.To(v1alpha1.Pascal(*t.TwoStage.IntermediatePressure))
			}
		}
		if stage.PressurePolicy == "" {
			stage.PressurePolicy = defaults.PressurePolicy
		}
		if stage.PressurePolicy == "" {
			stage.PressurePolicy = fallbackPolicy
		}
		spec.TwoStage = &stage
	}
	return spec
}
