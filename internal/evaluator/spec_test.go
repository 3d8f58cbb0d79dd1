package evaluator

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"k8s.io/utils/ptr"

	"github.com/refcycle/vcrc/api/v1alpha1"
	appconfig "github.com/refcycle/vcrc/internal/config"
	"github.com/refcycle/vcrc/pkg/config"
)

var _ = Describe("BuildCycleSpec", func() {
	It("should convert document units to SI", func() {
		t := v1alpha1.CycleTemplate{
			EvaporatingTemperature: -10,
			CompressorEfficiency:   ptr.To(0.7),
			GasCooler:              &v1alpha1.GasCoolerTemplate{OutletTemperature: 35, Pressure: ptr.To(9000.0)},
		}
		spec := BuildCycleSpec("R744", t, v1alpha1.OperatingCondition{Name: "a"}, appconfig.RefrigerantDefaults{}, "GeometricMean")
		Expect(spec.Evaporator.Temperature).To(BeNumerically("~", 263.15, 1e-9))
		Expect(spec.Evaporator.Superheat).To(Equal(0.0))
		Expect(spec.GasCooler.Temperature).To(BeNumerically("~", 308.15, 1e-9))
		Expect(*spec.GasCooler.Pressure).To(Equal(9e6))
		Expect(spec.Condenser).To(BeNil())
		Expect(spec.TwoStage).To(BeNil())
	})

	It("should apply condition overrides", func() {
		t := v1alpha1.CycleTemplate{
			EvaporatingTemperature: 5,
			Condenser:              &v1alpha1.CondenserTemplate{CondensingTemperature: 45},
		}
		c := v1alpha1.OperatingCondition{EvaporatingTemperature: ptr.To(0.0), HeatReleaserTemperature: ptr.To(40.0)}
		spec := BuildCycleSpec("R32", t, c, appconfig.RefrigerantDefaults{Subcooling: ptr.To(2.0)}, "")
		Expect(spec.Evaporator.Temperature).To(BeNumerically("~", 273.15, 1e-9))
		Expect(spec.Condenser.Temperature).To(BeNumerically("~", 313.15, 1e-9))
		Expect(spec.Condenser.Subcooling).To(Equal(2.0))
	})

	DescribeTable("resolves the intermediate pressure policy",
		func(stage *v1alpha1.TwoStageTemplate, defaults appconfig.RefrigerantDefaults, want string) {
			t := v1alpha1.CycleTemplate{
				Type:      "TwoStage",
				Condenser: &v1alpha1.CondenserTemplate{CondensingTemperature: 35},
				TwoStage:  stage,
			}
			spec := BuildCycleSpec("R717", t, v1alpha1.OperatingCondition{}, defaults, "GeometricMean")
			Expect(spec.Type).To(Equal(config.TwoStageCycle))
			Expect(spec.TwoStage).NotTo(BeNil())
			Expect(spec.TwoStage.PressurePolicy).To(Equal(want))
		},
		Entry("template wins", &v1alpha1.TwoStageTemplate{PressurePolicy: "Fixed"},
			appconfig.RefrigerantDefaults{PressurePolicy: "SaturationMean"}, "Fixed"),
		Entry("refrigerant defaults", &v1alpha1.TwoStageTemplate{},
			appconfig.RefrigerantDefaults{PressurePolicy: "SaturationMean"}, "SaturationMean"),
		Entry("process fallback", nil, appconfig.RefrigerantDefaults{}, "GeometricMean"),
	)

	It("should convert the intermediate pressure to Pa", func() {
		t := v1alpha1.CycleTemplate{
			Type:      "TwoStage",
			Condenser: &v1alpha1.CondenserTemplate{CondensingTemperature: 35},
			TwoStage:  &v1alpha1.TwoStageTemplate{Intercooling: "Incomplete", IntermediatePressure: ptr.To(500.0)},
		}
		spec := BuildCycleSpec("R717", t, v1alpha1.OperatingCondition{}, appconfig.RefrigerantDefaults{}, "")
		Expect(*spec.TwoStage.IntermediatePressure).To(Equal(5e5))
		Expect(spec.TwoStage.Intercooling).To(Equal(config.IncompleteIntercooling))
	})
})
