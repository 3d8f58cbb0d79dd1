package e2e

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/refcycle/vcrc/api/v1alpha1"
)

func testdata(name string) string {
	return filepath.Join("testdata", name)
}

func decode(session *gexec.Session) *v1alpha1.CycleAnalysis {
	doc, err := v1alpha1.Decode(session.Out.Contents())
	Expect(err).NotTo(HaveOccurred(), "stdout is not a CycleAnalysis document:\n%s", session.Out.Contents())
	return doc
}

func expectBalanced(s *v1alpha1.AnalysisSummary) {
	Expect(s).NotTo(BeNil())
	Expect(s.ThermodynamicPerfection).To(And(BeNumerically(">", 0), BeNumerically("<", 1)))
	Expect(s.AnalysisRelativeError).To(BeNumerically("~", 0, 1e-6))
	var fractions float64
	for _, l := range s.Losses {
		Expect(l.Destruction).To(BeNumerically(">=", 0), l.Component)
		fractions += l.Fraction
	}
	Expect(fractions).To(BeNumerically("~", 1, 1e-9))
}

var _ = Describe("vcrc", func() {
	DescribeTable("analyze",
		func(file string, conditions int, check func(*v1alpha1.CycleAnalysis)) {
			session := vcrc("analyze", testdata(file))
			Expect(session).To(gexec.Exit(0))

			doc := decode(session)
			Expect(doc.Status.Results).To(HaveLen(conditions))
			for _, r := range doc.Status.Results {
				Expect(r.COP).To(BeNumerically("~", r.EER+1, 1e-9), r.Name)
				expectBalanced(r.Analysis)
			}
			expectBalanced(doc.Status.Average)

			solved := meta.FindStatusCondition(doc.Status.Conditions, v1alpha1.TypeSolved)
			Expect(solved).NotTo(BeNil())
			Expect(solved.Status).To(Equal(metav1.ConditionTrue))
			analyzed := meta.FindStatusCondition(doc.Status.Conditions, v1alpha1.TypeAnalyzed)
			Expect(analyzed).NotTo(BeNil())
			Expect(analyzed.Reason).To(Equal(v1alpha1.ReasonAnalysisSucceeded))
			check(doc)
		},
		Entry("a simple R32 cycle", "r32-split.yaml", 2, func(doc *v1alpha1.CycleAnalysis) {
			Expect(doc.Labels).To(HaveKeyWithValue("application", "residential"))
			Expect(doc.Status.Results[0].Transcritical).To(BeFalse())
			Expect(doc.Status.Results[1].EER).To(BeNumerically(">", doc.Status.Results[0].EER))
		}),
		Entry("a two-stage R717 cycle", "r717-two-stage.yaml", 2, func(doc *v1alpha1.CycleAnalysis) {
			for _, r := range doc.Status.Results {
				Expect(r.IntermediatePressure).NotTo(BeNil())
				Expect(*r.IntermediatePressure).To(And(
					BeNumerically(">", r.EvaporatingPressure),
					BeNumerically("<", r.HeatReleaserPressure)))
			}
			var mixing float64
			for _, l := range doc.Status.Average.Losses {
				if l.Component == "Mixing" {
					mixing = l.Destruction
				}
			}
			Expect(mixing).To(BeNumerically(">", 0))
		}),
		Entry("a transcritical R744 cycle", "r744-transcritical.yaml", 2, func(doc *v1alpha1.CycleAnalysis) {
			for _, r := range doc.Status.Results {
				Expect(r.Transcritical).To(BeTrue())
				Expect(r.HeatReleaserPressure).To(BeNumerically("~", 9000, 1e-6))
			}
		}),
	)

	It("should print JSON read from stdin", func() {
		raw, err := os.ReadFile(testdata("r32-split.yaml"))
		Expect(err).NotTo(HaveOccurred())

		cmd := command("analyze", "--output", "json", "-")
		cmd.Stdin = strings.NewReader(string(raw))
		session, err := gexec.Start(cmd, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		Eventually(session, commandTimeout).Should(gexec.Exit(0))

		var doc v1alpha1.CycleAnalysis
		Expect(json.Unmarshal(session.Out.Contents(), &doc)).To(Succeed())
		Expect(doc.Name).To(Equal("r32-split"))
		Expect(doc.Status.Average).NotTo(BeNil())
	})

	It("should render tables, the loss chart and the metrics dump", func() {
		dir := GinkgoT().TempDir()
		chart := filepath.Join(dir, "losses.png")
		metricsFile := filepath.Join(dir, "vcrc.prom")

		session := vcrc("analyze", "-o", "table", "--chart", chart, "--metrics-file", metricsFile,
			testdata("r717-two-stage.yaml"))
		Expect(session).To(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say("design"))
		Expect(session.Out).To(gbytes.Say("Thermodynamic perfection"))
		Expect(chart).To(BeAnExistingFile())

		raw, err := os.ReadFile(metricsFile)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(ContainSubstring(`vcrc_cycles_solved_total{refrigerant="R717",type="TwoStage"} 2`))
		Expect(string(raw)).To(ContainSubstring(`vcrc_entropy_analyses_total{refrigerant="R717"} 2`))
	})

	It("should apply refrigerant defaults from a file", func() {
		dir := GinkgoT().TempDir()
		defaults := filepath.Join(dir, "defaults.yaml")
		Expect(os.WriteFile(defaults, []byte(`
default:
  compressorEfficiency: 0.6
split:
  refrigerant: R32
  superheat: 8
`), 0o600)).To(Succeed())

		doc := strings.NewReplacer("    superheat: 5\n", "", "    compressorEfficiency: 0.8\n", "").
			Replace(mustRead(testdata("r32-split.yaml")))
		input := filepath.Join(dir, "r32.yaml")
		Expect(os.WriteFile(input, []byte(doc), 0o600)).To(Succeed())

		withDefaults := decode(vcrc("solve", "--defaults-file", defaults, input))
		baseline := decode(vcrc("solve", testdata("r32-split.yaml")))
		Expect(withDefaults.Status.Results[0].SpecificWork).To(BeNumerically(">", baseline.Status.Results[0].SpecificWork))
	})

	It("should list the refrigerant catalog", func() {
		session := vcrc("refrigerants")
		Expect(session).To(gexec.Exit(0))
		Expect(session.Out).To(gbytes.Say("R717"))
		Expect(session.Out.Contents()).To(ContainSubstring("R744"))
	})

	It("should report a failed analysis in the document status", func() {
		doc := strings.Replace(mustRead(testdata("r32-split.yaml")), "hotSource: 35", "hotSource: 20", 1)
		input := filepath.Join(GinkgoT().TempDir(), "bad.yaml")
		Expect(os.WriteFile(input, []byte(doc), 0o600)).To(Succeed())

		session := vcrc("analyze", input)
		Expect(session).To(gexec.Exit(1))
		Expect(session.Err).To(gbytes.Say("must differ"))

		out := decode(session)
		analyzed := meta.FindStatusCondition(out.Status.Conditions, v1alpha1.TypeAnalyzed)
		Expect(analyzed).NotTo(BeNil())
		Expect(analyzed.Status).To(Equal(metav1.ConditionFalse))
		Expect(analyzed.Reason).To(Equal(v1alpha1.ReasonAnalysisFailed))
		Expect(analyzed.Message).To(ContainSubstring("nominal"))
	})

	It("should reject a zeotropic blend", func() {
		doc := strings.Replace(mustRead(testdata("r32-split.yaml")), "refrigerant: R32", "refrigerant: R407C", 1)
		input := filepath.Join(GinkgoT().TempDir(), "blend.yaml")
		Expect(os.WriteFile(input, []byte(doc), 0o600)).To(Succeed())

		session := vcrc("solve", input)
		Expect(session).To(gexec.Exit(1))
		solved := meta.FindStatusCondition(decode(session).Status.Conditions, v1alpha1.TypeSolved)
		Expect(solved).NotTo(BeNil())
		Expect(solved.Reason).To(Equal(v1alpha1.ReasonValidationFailed))
	})

	It("should fail on invalid configuration", func() {
		session := vcrc("--workers", "0", "refrigerants")
		Expect(session).To(gexec.Exit(1))
		Expect(session.Err).To(gbytes.Say("workers must be between"))
	})
})

func mustRead(path string) string {
	raw, err := os.ReadFile(path)
	Expect(err).NotTo(HaveOccurred())
	return string(raw)
}
