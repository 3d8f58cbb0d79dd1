package v1alpha1

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

// ZeroCelsius is 0 °C in K.
const ZeroCelsius = 273.15

// Kelvin converts °C to K.
func Kelvin(celsius float64) float64 { return celsius + ZeroCelsius }

// Celsius converts K to °C.
func Celsius(kelvin float64) float64 { return kelvin - ZeroCelsius }

// Pascal converts kPa to Pa.
func Pascal(kilopascal float64) float64 { return kilopascal * 1e3 }

// Kilopascal converts Pa to kPa.
func Kilopascal(pascal float64) float64 { return pascal / 1e3 }

// Decode parses a YAML or JSON CycleAnalysis document. Unknown fields are rejected.
func Decode(data []byte) (*CycleAnalysis, error) {
	var doc CycleAnalysis
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", Kind, err)
	}
	return &doc, nil
}

// Encode renders the document as YAML.
func Encode(doc *CycleAnalysis) ([]byte, error) {
	return yaml.Marshal(doc)
}

// Validate checks the document shape. Physical realizability is left to the cycle model.
func (a *CycleAnalysis) Validate() error {
	var errs []error
	if a.APIVersion != GroupVersion {
		errs = append(errs, fmt.Errorf("apiVersion must be %q, got %q", GroupVersion, a.APIVersion))
	}
	if a.Kind != Kind {
		errs = append(errs, fmt.Errorf("kind must be %q, got %q", Kind, a.Kind))
	}
	if strings.TrimSpace(a.Spec.Refrigerant) == "" {
		errs = append(errs, errors.New("spec.refrigerant is required"))
	}

	c := a.Spec.Cycle
	if (c.Condenser == nil) == (c.GasCooler == nil) {
		errs = append(errs, errors.New("spec.cycle: exactly one of condenser and gasCooler must be set"))
	}
	if c.Type != "" && c.Type != "Simple" && c.Type != "TwoStage" {
		errs = append(errs, fmt.Errorf("spec.cycle.type must be Simple or TwoStage, got %q", c.Type))
	}
	if c.TwoStage != nil && c.Type != "TwoStage" {
		errs = append(errs, errors.New("spec.cycle.twoStage requires type TwoStage"))
	}
	if !finite(c.EvaporatingTemperature) {
		errs = append(errs, errors.New("spec.cycle.evaporatingTemperature must be finite"))
	}

	if len(a.Spec.Conditions) == 0 {
		errs = append(errs, errors.New("spec.conditions must not be empty"))
	}
	seen := make(map[string]bool, len(a.Spec.Conditions))
	for i, cond := range a.Spec.Conditions {
		path := fmt.Sprintf("spec.conditions[%d]", i)
		switch {
		case cond.Name == "":
			errs = append(errs, fmt.Errorf("%s.name is required", path))
		case seen[cond.Name]:
			errs = append(errs, fmt.Errorf("%s.name %q is duplicated", path, cond.Name))
		}
		seen[cond.Name] = true
		if !finite(cond.ColdSource) || !finite(cond.HotSource) {
			errs = append(errs, fmt.Errorf("%s: source temperatures must be finite", path))
		}
	}
	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SetCondition adds or updates the condition with the same type. LastTransitionTime is set to now
// and only moves when the status changes.
func SetCondition(conditions *[]metav1.Condition, c metav1.Condition, now time.Time) {
	if c.LastTransitionTime.IsZero() {
		c.LastTransitionTime = metav1.NewTime(now)
	}
	meta.SetStatusCondition(conditions, c)
}

// DeepCopy returns an independent copy of the document.
func (a *CycleAnalysis) DeepCopy() *CycleAnalysis {
	if a == nil {
		return nil
	}
	out := *a
	a.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	out.Spec.Cycle = *a.Spec.Cycle.DeepCopy()
	out.Spec.Conditions = nil
	for _, c := range a.Spec.Conditions {
		out.Spec.Conditions = append(out.Spec.Conditions, *c.DeepCopy())
	}
	out.Status = *a.Status.DeepCopy()
	return &out
}

// DeepCopy returns an independent copy of the template.
func (t *CycleTemplate) DeepCopy() *CycleTemplate {
	out := *t
	out.Superheat = copyFloat(t.Superheat)
	out.CompressorEfficiency = copyFloat(t.CompressorEfficiency)
	if t.Condenser != nil {
		c := *t.Condenser
		c.Subcooling = copyFloat(t.Condenser.Subcooling)
		out.Condenser = &c
	}
	if t.GasCooler != nil {
		g := *t.GasCooler
		g.Pressure = copyFloat(t.GasCooler.Pressure)
		out.GasCooler = &g
	}
	if t.TwoStage != nil {
		s := *t.TwoStage
		s.IntermediatePressure = copyFloat(t.TwoStage.IntermediatePressure)
		out.TwoStage = &s
	}
	return &out
}

// DeepCopy returns an independent copy of the condition.
func (c *OperatingCondition) DeepCopy() *OperatingCondition {
	out := *c
	out.EvaporatingTemperature = copyFloat(c.EvaporatingTemperature)
	out.HeatReleaserTemperature = copyFloat(c.HeatReleaserTemperature)
	return &out
}

// DeepCopy returns an independent copy of the status.
func (s *CycleAnalysisStatus) DeepCopy() *CycleAnalysisStatus {
	out := *s
	out.Results = nil
	for _, r := range s.Results {
		r.IntermediatePressure = copyFloat(r.IntermediatePressure)
		r.Analysis = r.Analysis.DeepCopy()
		out.Results = append(out.Results, r)
	}
	out.Average = s.Average.DeepCopy()
	if s.Conditions != nil {
		out.Conditions = make([]metav1.Condition, len(s.Conditions))
		for i := range s.Conditions {
			s.Conditions[i].DeepCopyInto(&out.Conditions[i])
		}
	}
	return &out
}

// DeepCopy returns an independent copy of the summary.
func (s *AnalysisSummary) DeepCopy() *AnalysisSummary {
	if s == nil {
		return nil
	}
	out := *s
	out.Losses = append([]ComponentLoss(nil), s.Losses...)
	return &out
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
