package core

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"k8s.io/utils/ptr"

	"github.com/refcycle/vcrc/pkg/config"
	"github.com/refcycle/vcrc/pkg/refrigerant"
	"github.com/refcycle/vcrc/pkg/refrigerant/pengrobinson"
	"github.com/refcycle/vcrc/pkg/solver"
)

func ammoniaSpec(intercooling config.Intercooling) config.CycleSpec {
	return config.CycleSpec{
		Refrigerant: "R717",
		Type:        config.TwoStageCycle,
		Evaporator:  config.EvaporatorSpec{Temperature: 243.15, Superheat: 5},
		Compressor:  config.CompressorSpec{Efficiency: 0.75},
		Condenser:   &config.CondenserSpec{Temperature: 308.15, Subcooling: 2},
		TwoStage:    &config.TwoStageSpec{Intercooling: intercooling},
	}
}

var _ = Describe("TwoStageCycle", func() {
	var provider *pengrobinson.Provider

	BeforeEach(func() {
		provider = pengrobinson.NewProvider()
	})

	Context("with complete intercooling", func() {
		var c *TwoStageCycle

		BeforeEach(func() {
			var err error
			c, err = NewTwoStageCycle(provider, ammoniaSpec(config.CompleteIntercooling))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should place the intermediate pressure at the geometric mean", func() {
			p0 := c.Evaporator().Pressure
			pk := c.Condenser().Pressure
			Expect(c.PressureStrategy()).To(Equal(solver.GeometricMeanStrategy))
			Expect(c.IntermediatePressure()).To(BeNumerically("~", math.Sqrt(p0*pk), 1e-6))
			Expect(c.IntermediatePressure()).To(And(BeNumerically(">", p0), BeNumerically("<", pk)))
		})

		It("should close the energy balance of the flash intercooler", func() {
			mhp := c.HeatReleaserSpecificMassFlow()
			Expect(c.IntermediateSpecificMassFlow()).To(BeNumerically("~", mhp-1, 1e-12))
			Expect(c.IntermediateSpecificMassFlow()).To(BeNumerically(">", 0))

			h2 := point(c.cycle, "2").Enthalpy
			h3 := point(c.cycle, "3").Enthalpy
			h6 := point(c.cycle, "6").Enthalpy
			h7 := point(c.cycle, "7").Enthalpy
			Expect(h2 + mhp*h6).To(BeNumerically("~", mhp*h3+h7, 1e-6))
			Expect(point(c.cycle, "3").Quality).To(Equal(1.0))
			Expect(point(c.cycle, "7").Quality).To(Equal(0.0))
		})

		It("should satisfy the overall energy balance", func() {
			Expect(c.COP()).To(BeNumerically("~", c.EER()+1, 1e-9))
			Expect(c.SpecificHeatingCapacity()).To(BeNumerically("~", c.SpecificWork()+c.SpecificCoolingCapacity(), 1e-6))
			Expect(c.EER()).To(And(BeNumerically(">", 1.5), BeNumerically("<", 4)))
		})

		It("should list ten points and seven processes", func() {
			Expect(c.Points()).To(HaveLen(10))
			processes := c.Processes()
			Expect(processes).To(HaveLen(7))
			var compressors int
			for _, p := range processes {
				if p.Component == ComponentCompressor {
					compressors++
				}
				Expect(p.Component).NotTo(Equal(ComponentMixingChamber))
			}
			Expect(compressors).To(Equal(2))
		})
	})

	Context("with incomplete intercooling", func() {
		var c *TwoStageCycle

		BeforeEach(func() {
			var err error
			c, err = NewTwoStageCycle(provider, ammoniaSpec(config.IncompleteIntercooling))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should derive the high stage flow from the flash quality", func() {
			x6 := point(c.cycle, "6").Quality
			Expect(c.HeatReleaserSpecificMassFlow()).To(BeNumerically("~", 1/(1-x6), 1e-12))
			Expect(c.Intercooling()).To(Equal(config.IncompleteIntercooling))
		})

		It("should mix the flash vapor into the high stage suction", func() {
			mhp := c.HeatReleaserSpecificMassFlow()
			h2 := point(c.cycle, "2").Enthalpy
			h3 := point(c.cycle, "3").Enthalpy
			h9 := point(c.cycle, "9").Enthalpy
			Expect(mhp * h3).To(BeNumerically("~", h2+(mhp-1)*h9, 1e-6))
			Expect(c.Points()).To(HaveLen(11))

			var mixing int
			for _, p := range c.Processes() {
				if p.Component == ComponentMixingChamber {
					mixing++
				}
			}
			Expect(mixing).To(Equal(1))
		})

		It("should satisfy the overall energy balance", func() {
			Expect(c.COP()).To(BeNumerically("~", c.EER()+1, 1e-9))
		})
	})

	It("should run transcritical R744 with a gas cooler", func() {
		spec := co2Spec()
		spec.Type = config.TwoStageCycle
		spec.GasCooler.Temperature = 303.15
		c, err := NewTwoStageCycle(provider, spec)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.IsTranscritical()).To(BeTrue())
		Expect(c.IntermediateSpecificMassFlow()).To(And(BeNumerically(">", 0), BeNumerically("<", 1)))
		Expect(c.IntermediatePressure()).To(BeNumerically("<", refrigerantCriticalPressure("R744")))
		Expect(c.COP()).To(BeNumerically("~", c.EER()+1, 1e-9))
	})

	It("should honour an explicit intermediate pressure", func() {
		spec := ammoniaSpec(config.CompleteIntercooling)
		spec.TwoStage.IntermediatePressure = ptr.To(5e5)
		c, err := NewTwoStageCycle(provider, spec)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.IntermediatePressure()).To(Equal(5e5))
		Expect(c.PressureStrategy()).To(Equal(solver.FixedStrategy))
	})

	It("should use the saturation pressure at the mean temperature", func() {
		spec := ammoniaSpec(config.CompleteIntercooling)
		spec.TwoStage.PressurePolicy = "SaturationMean"
		c, err := NewTwoStageCycle(provider, spec)
		Expect(err).NotTo(HaveOccurred())

		fluid, _ := refrigerant.Lookup("R717")
		mean := (243.15 + 308.15) / 2
		want, err := provider.SaturationPressure(fluid, mean)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.IntermediatePressure()).To(BeNumerically("~", want, 1e-3))
	})

	It("should default to complete intercooling", func() {
		spec := ammoniaSpec("")
		spec.TwoStage = nil
		c, err := NewTwoStageCycle(provider, spec)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Intercooling()).To(Equal(config.CompleteIntercooling))
	})

	DescribeTable("rejects unrealizable intermediate stages",
		func(mutate func(*config.CycleSpec), field string) {
			spec := ammoniaSpec(config.CompleteIntercooling)
			mutate(&spec)
			_, err := NewTwoStageCycle(provider, spec)
			var cfgErr *ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue(), "got %v", err)
			Expect(cfgErr.Field).To(Equal(field))
		},
		Entry("intermediate below evaporating pressure", func(s *config.CycleSpec) {
			s.TwoStage.IntermediatePressure = ptr.To(1e4)
		}, "twoStage.intermediatePressure"),
		Entry("intermediate above condensing pressure", func(s *config.CycleSpec) {
			s.TwoStage.IntermediatePressure = ptr.To(5e6)
		}, "twoStage.intermediatePressure"),
		Entry("fixed policy without a pressure", func(s *config.CycleSpec) {
			s.TwoStage.PressurePolicy = "Fixed"
		}, "twoStage.intermediatePressure"),
		Entry("unknown policy", func(s *config.CycleSpec) {
			s.TwoStage.PressurePolicy = "Median"
		}, "twoStage.pressurePolicy"),
		Entry("unknown intercooling", func(s *config.CycleSpec) {
			s.TwoStage.Intercooling = "Partial"
		}, "twoStage.intercooling"),
	)

	DescribeTable("rejects an intermediate flow that exceeds the evaporator flow",
		func(evaporating float64, intercooling config.Intercooling) {
			spec := co2Spec()
			spec.Type = config.TwoStageCycle
			spec.Evaporator.Temperature = evaporating
			spec.GasCooler = &config.GasCoolerSpec{Temperature: 318.15, Pressure: ptr.To(12e6)}
			spec.TwoStage = &config.TwoStageSpec{Intercooling: intercooling}
			_, err := NewTwoStageCycle(provider, spec)
			var cfgErr *ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue(), "got %v", err)
			Expect(cfgErr.Field).To(Equal("twoStage"))
			Expect(cfgErr.Reason).To(ContainSubstring("outside (0, 1)"))
		},
		Entry("complete intercooling at -50 °C", 223.15, config.CompleteIntercooling),
		Entry("complete intercooling at -40 °C", 233.15, config.CompleteIntercooling),
		Entry("complete intercooling at -30 °C", 243.15, config.CompleteIntercooling),
		Entry("incomplete intercooling at -50 °C", 223.15, config.IncompleteIntercooling),
		Entry("incomplete intercooling at -40 °C", 233.15, config.IncompleteIntercooling),
	)

	It("should reject an intermediate pressure above the critical pressure", func() {
		spec := co2Spec()
		spec.Type = config.TwoStageCycle
		spec.GasCooler.Pressure = ptr.To(10e6)
		spec.TwoStage = &config.TwoStageSpec{IntermediatePressure: ptr.To(8e6)}
		_, err := NewTwoStageCycle(provider, spec)
		var cfgErr *ConfigurationError
		Expect(errors.As(err, &cfgErr)).To(BeTrue(), "got %v", err)
		Expect(cfgErr.Reason).To(ContainSubstring("critical pressure"))
	})
})

func refrigerantCriticalPressure(name string) float64 {
	f, err := refrigerant.Lookup(name)
	Expect(err).NotTo(HaveOccurred())
	return f.CriticalPressure
}
