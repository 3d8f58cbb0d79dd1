package evaluator

import (
	"context"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/refcycle/vcrc/api/v1alpha1"
	appconfig "github.com/refcycle/vcrc/internal/config"
	"github.com/refcycle/vcrc/internal/metrics"
	"github.com/refcycle/vcrc/pkg/core"
	"github.com/refcycle/vcrc/pkg/refrigerant/pengrobinson"
	"github.com/refcycle/vcrc/pkg/validation"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func r32Document() *v1alpha1.CycleAnalysis {
	return &v1alpha1.CycleAnalysis{
		TypeMeta:   metav1.TypeMeta{APIVersion: v1alpha1.GroupVersion, Kind: v1alpha1.Kind},
		ObjectMeta: metav1.ObjectMeta{Name: "split-ac"},
		Spec: v1alpha1.CycleAnalysisSpec{
			Refrigerant: "R32",
			Cycle: v1alpha1.CycleTemplate{
				EvaporatingTemperature: 5,
				Superheat:              ptr.To(5.0),
				CompressorEfficiency:   ptr.To(0.8),
				Condenser:              &v1alpha1.CondenserTemplate{CondensingTemperature: 45, Subcooling: ptr.To(3.0)},
			},
			Conditions: []v1alpha1.OperatingCondition{
				{Name: "nominal", ColdSource: 20, HotSource: 35},
				{Name: "mild", ColdSource: 18, HotSource: 30, HeatReleaserTemperature: ptr.To(40.0)},
			},
		},
	}
}

func ammoniaDocument() *v1alpha1.CycleAnalysis {
	return &v1alpha1.CycleAnalysis{
		TypeMeta:   metav1.TypeMeta{APIVersion: v1alpha1.GroupVersion, Kind: v1alpha1.Kind},
		ObjectMeta: metav1.ObjectMeta{Name: "cold-store"},
		Spec: v1alpha1.CycleAnalysisSpec{
			Refrigerant: "R717",
			Cycle: v1alpha1.CycleTemplate{
				Type:                   "TwoStage",
				EvaporatingTemperature: -30,
				Superheat:              ptr.To(5.0),
				CompressorEfficiency:   ptr.To(0.75),
				Condenser:              &v1alpha1.CondenserTemplate{CondensingTemperature: 35, Subcooling: ptr.To(2.0)},
				TwoStage:               &v1alpha1.TwoStageTemplate{Intercooling: "Incomplete"},
			},
			Conditions: []v1alpha1.OperatingCondition{
				{Name: "design", ColdSource: -20, HotSource: 25},
			},
		},
	}
}

var _ = Describe("Evaluator", func() {
	var (
		ctx      context.Context
		provider *pengrobinson.Provider
		recorder *metrics.Recorder
		ev       *Evaluator
	)

	BeforeEach(func() {
		ctx = context.Background()
		provider = pengrobinson.NewProvider()
		recorder = metrics.NewRecorder(provider.CachedSaturations)
		ev = New(provider, Options{
			Workers:  2,
			Recorder: recorder,
			Now:      func() time.Time { return fixedNow },
		})
	})

	Context("with a simple R32 cycle", func() {
		It("should solve, analyze and average every condition", func() {
			doc := r32Document()
			out, err := ev.Evaluate(ctx, doc)
			Expect(err).NotTo(HaveOccurred())

			Expect(out.Status.Results).To(HaveLen(2))
			Expect(out.Status.Results[0].Name).To(Equal("nominal"))
			Expect(out.Status.Results[1].Name).To(Equal("mild"))
			Expect(out.Status.Results[1].EER).To(BeNumerically(">", out.Status.Results[0].EER))
			for _, r := range out.Status.Results {
				Expect(r.Transcritical).To(BeFalse())
				Expect(r.IntermediatePressure).To(BeNil())
				Expect(r.COP).To(BeNumerically("~", r.EER+1, 1e-9))
				Expect(r.Analysis).NotTo(BeNil())
				Expect(r.Analysis.Losses).To(HaveLen(7))
				Expect(r.Analysis.AnalysisRelativeError).To(BeNumerically("~", 0, 1e-9))
			}

			avg := out.Status.Average
			Expect(avg).NotTo(BeNil())
			want := (out.Status.Results[0].Analysis.ThermodynamicPerfection + out.Status.Results[1].Analysis.ThermodynamicPerfection) / 2
			Expect(avg.ThermodynamicPerfection).To(BeNumerically("~", want, 1e-12))

			solved := meta.FindStatusCondition(out.Status.Conditions, v1alpha1.TypeSolved)
			Expect(solved).NotTo(BeNil())
			Expect(solved.Status).To(Equal(metav1.ConditionTrue))
			Expect(solved.LastTransitionTime.Time).To(BeTemporally("==", fixedNow))
			analyzed := meta.FindStatusCondition(out.Status.Conditions, v1alpha1.TypeAnalyzed)
			Expect(analyzed.Reason).To(Equal(v1alpha1.ReasonAnalysisSucceeded))
		})

		It("should leave the input document untouched", func() {
			doc := r32Document()
			_, err := ev.Evaluate(ctx, doc)
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Status.Results).To(BeEmpty())
			Expect(doc.Status.Conditions).To(BeEmpty())
		})

		It("should record metrics", func() {
			_, err := ev.Evaluate(ctx, r32Document())
			Expect(err).NotTo(HaveOccurred())
			expected := `
# HELP vcrc_cycles_solved_total Cycles solved, by refrigerant and cycle type.
# TYPE vcrc_cycles_solved_total counter
vcrc_cycles_solved_total{refrigerant="R32",type="Simple"} 2
`
			Expect(testutil.GatherAndCompare(recorder.Registry(), strings.NewReader(expected), "vcrc_cycles_solved_total")).To(Succeed())
		})

		It("should only solve when asked to", func() {
			out, err := ev.Solve(ctx, r32Document())
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Status.Results).To(HaveLen(2))
			Expect(out.Status.Results[0].Analysis).To(BeNil())
			Expect(out.Status.Average).To(BeNil())
			Expect(meta.FindStatusCondition(out.Status.Conditions, v1alpha1.TypeAnalyzed)).To(BeNil())
		})
	})

	It("should report the intermediate pressure of two-stage cycles", func() {
		out, err := ev.Evaluate(ctx, ammoniaDocument())
		Expect(err).NotTo(HaveOccurred())
		r := out.Status.Results[0]
		Expect(r.IntermediatePressure).NotTo(BeNil())
		Expect(*r.IntermediatePressure).To(And(
			BeNumerically(">", r.EvaporatingPressure),
			BeNumerically("<", r.HeatReleaserPressure)))
		Expect(out.Status.Average.Losses).To(ContainElement(HaveField("Component", "Mixing")))
	})

	It("should fill missing parameters from the refrigerant defaults", func() {
		defaults := appconfig.ParseRefrigerantDefaults(map[string]string{
			"default": "compressorEfficiency: 0.7\nsuperheat: 4",
			"r32":     "refrigerant: R32\ncompressorEfficiency: 0.8",
		})
		ev = New(provider, Options{Defaults: defaults, Now: func() time.Time { return fixedNow }})
		doc := r32Document()
		doc.Spec.Cycle.CompressorEfficiency = nil
		doc.Spec.Cycle.Superheat = nil

		specs := ev.Specs(doc)
		Expect(specs[0].Compressor.Efficiency).To(Equal(0.8))
		Expect(specs[0].Evaporator.Superheat).To(Equal(4.0))

		_, err := ev.Evaluate(ctx, doc)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should report configuration errors on the Solved condition", func() {
		doc := r32Document()
		doc.Spec.Cycle.CompressorEfficiency = nil
		out, err := ev.Evaluate(ctx, doc)

		var cfgErr *core.ConfigurationError
		Expect(errors.As(err, &cfgErr)).To(BeTrue(), "got %v", err)
		Expect(cfgErr.Field).To(Equal("compressor.efficiency"))
		var condErr *ConditionError
		Expect(errors.As(err, &condErr)).To(BeTrue())
		Expect(condErr.Name).NotTo(BeEmpty())

		solved := meta.FindStatusCondition(out.Status.Conditions, v1alpha1.TypeSolved)
		Expect(solved.Status).To(Equal(metav1.ConditionFalse))
		Expect(solved.Reason).To(Equal(v1alpha1.ReasonInvalidConfiguration))
		analyzed := meta.FindStatusCondition(out.Status.Conditions, v1alpha1.TypeAnalyzed)
		Expect(analyzed.Reason).To(Equal(v1alpha1.ReasonSkippedAnalysis))
		Expect(out.Status.Results).To(BeEmpty())

		failures, err := testutil.GatherAndCount(recorder.Registry(), "vcrc_failures_total")
		Expect(err).NotTo(HaveOccurred())
		Expect(failures).To(BeNumerically(">=", 1))
	})

	It("should report validation errors on the Analyzed condition", func() {
		doc := r32Document()
		doc.Spec.Conditions[1].ColdSource = 30
		out, err := ev.Evaluate(ctx, doc)

		var verr *validation.ValidationError
		Expect(errors.As(err, &verr)).To(BeTrue(), "got %v", err)
		Expect(verr.Rule).To(Equal(validation.RuleDistinctSources))
		Expect(err.Error()).To(ContainSubstring(`"mild"`))

		Expect(meta.FindStatusCondition(out.Status.Conditions, v1alpha1.TypeSolved).Status).To(Equal(metav1.ConditionTrue))
		analyzed := meta.FindStatusCondition(out.Status.Conditions, v1alpha1.TypeAnalyzed)
		Expect(analyzed.Status).To(Equal(metav1.ConditionFalse))
		Expect(analyzed.Reason).To(Equal(v1alpha1.ReasonAnalysisFailed))
		Expect(out.Status.Average).To(BeNil())
	})

	It("should reject malformed documents before solving", func() {
		doc := r32Document()
		doc.Spec.Conditions = nil
		out, err := ev.Evaluate(ctx, doc)
		Expect(err).To(HaveOccurred())
		Expect(meta.FindStatusCondition(out.Status.Conditions, v1alpha1.TypeSolved).Reason).To(Equal(v1alpha1.ReasonInvalidConfiguration))
	})

	It("should stop when the context is cancelled", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := ev.SolveAll(cancelled, ev.Specs(r32Document()))
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})

	It("should solve many conditions concurrently", func() {
		doc := r32Document()
		doc.Spec.Conditions = nil
		for i := 0; i < 24; i++ {
			doc.Spec.Conditions = append(doc.Spec.Conditions, v1alpha1.OperatingCondition{
				Name:                    "c" + string(rune('a'+i)),
				ColdSource:              20,
				HotSource:               35,
				EvaporatingTemperature:  ptr.To(float64(i%6) - 2),
				HeatReleaserTemperature: ptr.To(40 + float64(i%4)),
			})
		}
		ev = New(provider, Options{Workers: 8})
		out, err := ev.Evaluate(ctx, doc)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Status.Results).To(HaveLen(24))
		for i, r := range out.Status.Results {
			Expect(r.Name).To(Equal(doc.Spec.Conditions[i].Name))
		}
	})
})
