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
	"github.com/refcycle/vcrc/pkg/validation"
)

func r32Spec() config.CycleSpec {
	return config.CycleSpec{
		Refrigerant: "R32",
		Type:        config.SimpleCycle,
		Evaporator:  config.EvaporatorSpec{Temperature: 278.15, Superheat: 5},
		Compressor:  config.CompressorSpec{Efficiency: 0.8},
		Condenser:   &config.CondenserSpec{Temperature: 318.15, Subcooling: 3},
	}
}

func co2Spec() config.CycleSpec {
	return config.CycleSpec{
		Refrigerant: "R744",
		Type:        config.SimpleCycle,
		Evaporator:  config.EvaporatorSpec{Temperature: 263.15, Superheat: 5},
		Compressor:  config.CompressorSpec{Efficiency: 0.7},
		GasCooler:   &config.GasCoolerSpec{Temperature: 308.15, Pressure: ptr.To(9e6)},
	}
}

func point(c *cycle, name string) Point {
	p, ok := c.Point(name)
	ExpectWithOffset(1, ok).To(BeTrue(), "point %s", name)
	return p
}

var _ = Describe("SimpleCycle", func() {
	var provider *pengrobinson.Provider

	BeforeEach(func() {
		provider = pengrobinson.NewProvider()
	})

	Context("with R32 and a condenser", func() {
		var c *SimpleCycle

		BeforeEach(func() {
			var err error
			c, err = NewSimpleCycle(provider, r32Spec())
			Expect(err).NotTo(HaveOccurred())
		})

		It("should be subcritical with a condenser", func() {
			Expect(c.IsTranscritical()).To(BeFalse())
			Expect(c.Condenser()).NotTo(BeNil())
			Expect(c.GasCooler()).To(BeNil())
			Expect(c.HeatReleaser().Component()).To(Equal(ComponentCondenser))
			Expect(c.Type()).To(Equal(config.SimpleCycle))
		})

		It("should chain the points in flow order", func() {
			names := []string{}
			for _, p := range c.Points() {
				names = append(names, p.Name)
			}
			Expect(names).To(Equal([]string{"1", "2s", "2", "3", "4"}))

			p1, p2s, p2, p3, p4 := point(c.cycle, "1"), point(c.cycle, "2s"), point(c.cycle, "2"), point(c.cycle, "3"), point(c.cycle, "4")
			Expect(p1.Temperature).To(BeNumerically("~", 283.15, 1e-9))
			Expect(p2s.Entropy).To(BeNumerically("~", p1.Entropy, 1e-6))
			Expect(p2.Temperature).To(BeNumerically(">", p2s.Temperature))
			Expect(p3.Temperature).To(BeNumerically("~", 315.15, 1e-9))
			Expect(p4.Enthalpy).To(Equal(p3.Enthalpy))
			Expect(p4.IsTwoPhase()).To(BeTrue())
			Expect(p4.Pressure).To(Equal(c.Evaporator().Pressure))
		})

		It("should derive consistent metrics", func() {
			Expect(c.EER()).To(And(BeNumerically(">", 3), BeNumerically("<", 6)))
			Expect(math.IsInf(c.COP(), 0) || math.IsNaN(c.COP())).To(BeFalse())
			Expect(c.COP()).To(BeNumerically("~", c.EER()+1, 1e-9))
			Expect(c.IsentropicSpecificWork()).To(BeNumerically("~", 0.8*c.SpecificWork(), 1e-6))
			Expect(c.SpecificHeatingCapacity()).To(BeNumerically("~", c.SpecificCoolingCapacity()+c.SpecificWork(), 1e-6))
			Expect(c.EvaporatorSpecificMassFlow()).To(Equal(1.0))
			Expect(c.HeatReleaserSpecificMassFlow()).To(Equal(1.0))
		})

		It("should describe one process per component", func() {
			processes := c.Processes()
			Expect(processes).To(HaveLen(4))
			Expect(processes[1].Kind).To(Equal(HeatRejection))
			Expect(processes[1].Heat).To(Equal(c.SpecificHeatingCapacity()))
			Expect(processes[3].Kind).To(Equal(HeatAbsorption))
			Expect(processes[0].EntropyChange()).To(BeNumerically(">", 0))
			Expect(processes[2].EntropyChange()).To(BeNumerically(">", 0))
		})
	})

	It("should start compression at the dew point without superheat", func() {
		spec := r32Spec()
		spec.Evaporator.Superheat = 0
		c, err := NewSimpleCycle(provider, spec)
		Expect(err).NotTo(HaveOccurred())
		Expect(point(c.cycle, "1").Quality).To(Equal(1.0))
		Expect(c.Evaporator().Outlet).To(Equal(c.Evaporator().DewPoint))
	})

	It("should make the real compression isentropic at unit efficiency", func() {
		spec := r32Spec()
		spec.Compressor.Efficiency = 1
		c, err := NewSimpleCycle(provider, spec)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.SpecificWork()).To(BeNumerically("~", c.IsentropicSpecificWork(), 1e-9))
	})

	Context("with R744 and a gas cooler", func() {
		It("should be transcritical", func() {
			c, err := NewSimpleCycle(provider, co2Spec())
			Expect(err).NotTo(HaveOccurred())
			Expect(c.IsTranscritical()).To(BeTrue())
			Expect(c.Condenser()).To(BeNil())
			Expect(c.GasCooler()).NotTo(BeNil())
			Expect(c.HeatReleaser().Component()).To(Equal(ComponentGasCooler))
			Expect(c.COP()).To(BeNumerically("~", c.EER()+1, 1e-9))
			Expect(c.EER()).To(And(BeNumerically(">", 1), BeNumerically("<", 3)))
		})

		It("should default to the optimal gas cooler pressure", func() {
			spec := co2Spec()
			spec.GasCooler.Pressure = nil
			c, err := NewSimpleCycle(provider, spec)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.GasCooler().Pressure).To(BeNumerically("~", solver.OptimalGasCoolerPressure(263.15, 308.15), 1e-6))
		})

		It("should reject a gas cooler outlet that throttles to superheated vapor", func() {
			spec := co2Spec()
			spec.GasCooler = &config.GasCoolerSpec{Temperature: 333.15, Pressure: ptr.To(7.5e6)}
			c, err := NewSimpleCycle(provider, spec)
			Expect(c).To(BeNil())
			var cfgErr *ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue(), "got %v", err)
			Expect(cfgErr.Field).To(Equal("heatReleaser"))
			Expect(cfgErr.Reason).To(ContainSubstring("two-phase region"))
		})
	})

	DescribeTable("rejects invalid configurations",
		func(mutate func(*config.CycleSpec), field string) {
			spec := r32Spec()
			mutate(&spec)
			_, err := NewSimpleCycle(provider, spec)
			var cfgErr *ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue(), "got %v", err)
			Expect(cfgErr.Field).To(Equal(field))
		},
		Entry("zero efficiency", func(s *config.CycleSpec) { s.Compressor.Efficiency = 0 }, "compressor.efficiency"),
		Entry("efficiency above one", func(s *config.CycleSpec) { s.Compressor.Efficiency = 1.2 }, "compressor.efficiency"),
		Entry("negative superheat", func(s *config.CycleSpec) { s.Evaporator.Superheat = -1 }, "evaporator.superheat"),
		Entry("excessive subcooling", func(s *config.CycleSpec) { s.Condenser.Subcooling = 60 }, "condenser.subcooling"),
		Entry("condensing above critical", func(s *config.CycleSpec) { s.Condenser.Temperature = 360 }, "condenser.temperature"),
		Entry("evaporating at absolute zero", func(s *config.CycleSpec) { s.Evaporator.Temperature = 0 }, "evaporator.temperature"),
		Entry("no heat releaser", func(s *config.CycleSpec) { s.Condenser = nil }, "heatReleaser"),
		Entry("two heat releasers", func(s *config.CycleSpec) {
			s.GasCooler = &config.GasCoolerSpec{Temperature: 310, Pressure: ptr.To(7e6)}
		}, "heatReleaser"),
		Entry("condenser below evaporator", func(s *config.CycleSpec) { s.Condenser.Temperature = 270 }, "heatReleaser"),
		Entry("gas cooler without pressure", func(s *config.CycleSpec) {
			s.Condenser = nil
			s.GasCooler = &config.GasCoolerSpec{Temperature: 320}
		}, "gasCooler.pressure"),
		Entry("subcritical gas cooler", func(s *config.CycleSpec) {
			s.Condenser = nil
			s.GasCooler = &config.GasCoolerSpec{Temperature: 320, Pressure: ptr.To(4e6)}
		}, "gasCooler.pressure"),
		Entry("unknown refrigerant", func(s *config.CycleSpec) { s.Refrigerant = "R9999" }, "refrigerant"),
	)

	It("should wrap unknown refrigerants", func() {
		spec := r32Spec()
		spec.Refrigerant = "R9999"
		_, err := NewSimpleCycle(provider, spec)
		Expect(errors.Is(err, refrigerant.ErrUnknownRefrigerant)).To(BeTrue())
	})

	DescribeTable("rejects refrigerants that break the identity rules",
		func(name, rule string) {
			spec := r32Spec()
			spec.Refrigerant = name
			_, err := NewSimpleCycle(provider, spec)
			var verr *validation.ValidationError
			Expect(errors.As(err, &verr)).To(BeTrue(), "got %v", err)
			Expect(verr.Rule).To(Equal(rule))
		},
		Entry("water", "Water", validation.RuleRefrigerantPrefix),
		Entry("zeotropic blend", "R407C", validation.RuleNoZeotropicBlend),
	)

	It("should propagate provider failures unchanged", func() {
		spec := r32Spec()
		spec.Evaporator.Temperature = 351.0
		spec.Evaporator.Superheat = 0
		_, err := NewSimpleCycle(provider, spec)
		var perr *refrigerant.PropertyResolutionError
		Expect(errors.As(err, &perr)).To(BeTrue(), "got %v", err)
	})

	It("should require a provider", func() {
		_, err := NewSimpleCycle(nil, r32Spec())
		var cfgErr *ConfigurationError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
	})
})

var _ = Describe("Solve", func() {
	provider := pengrobinson.NewProvider()

	It("should dispatch on the cycle type", func() {
		c, err := Solve(provider, r32Spec())
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(BeAssignableToTypeOf(&SimpleCycle{}))

		spec := r32Spec()
		spec.Type = config.TwoStageCycle
		c, err = Solve(provider, spec)
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(BeAssignableToTypeOf(&TwoStageCycle{}))
	})

	It("should treat an empty type as simple", func() {
		spec := r32Spec()
		spec.Type = ""
		c, err := Solve(provider, spec)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Type()).To(Equal(config.SimpleCycle))
	})

	It("should reject unknown cycle types", func() {
		spec := r32Spec()
		spec.Type = "Cascade"
		_, err := Solve(provider, spec)
		var cfgErr *ConfigurationError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
		Expect(cfgErr.Field).To(Equal("type"))
	})
})
