package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// GroupVersion and Kind identify a CycleAnalysis document.
const (
	GroupVersion = "vcrc.refcycle.io/v1alpha1"
	Kind         = "CycleAnalysis"
)

// CycleAnalysisSpec defines one refrigeration cycle evaluated at several operating conditions.
// Temperatures are in °C, temperature differences in K and pressures in kPa.
type CycleAnalysisSpec struct {
	// Refrigerant is the ASHRAE designation of the working fluid (e.g. "R32", "R744").
	// +kubebuilder:validation:Required
	Refrigerant string `json:"refrigerant"`

	// Cycle is the template every operating condition starts from.
	// +kubebuilder:validation:Required
	Cycle CycleTemplate `json:"cycle"`

	// Conditions lists the operating conditions. The entropy analysis is averaged over all of them.
	// +kubebuilder:validation:MinItems=1
	Conditions []OperatingCondition `json:"conditions"`
}

// CycleTemplate describes the equipment of the cycle.
type CycleTemplate struct {
	// Type is "Simple" or "TwoStage". Defaults to "Simple".
	// +kubebuilder:validation:Enum=Simple;TwoStage
	// +optional
	Type string `json:"type,omitempty"`

	// EvaporatingTemperature is the saturation temperature in the evaporator, °C.
	EvaporatingTemperature float64 `json:"evaporatingTemperature"`

	// Superheat at the evaporator outlet, K. Falls back to the refrigerant defaults, then 0.
	// +optional
	Superheat *float64 `json:"superheat,omitempty"`

	// CompressorEfficiency is the isentropic efficiency in (0, 1].
	// Falls back to the refrigerant defaults when omitted.
	// +optional
	CompressorEfficiency *float64 `json:"compressorEfficiency,omitempty"`

	// Condenser is set for subcritical cycles. Exactly one of Condenser and GasCooler must be set.
	// +optional
	Condenser *CondenserTemplate `json:"condenser,omitempty"`

	// GasCooler is set for transcritical cycles.
	// +optional
	GasCooler *GasCoolerTemplate `json:"gasCooler,omitempty"`

	// TwoStage configures the intermediate stage of a "TwoStage" cycle.
	// +optional
	TwoStage *TwoStageTemplate `json:"twoStage,omitempty"`
}

// CondenserTemplate describes a condenser.
type CondenserTemplate struct {
	// CondensingTemperature is the saturation temperature in the condenser, °C.
	CondensingTemperature float64 `json:"condensingTemperature"`

	// Subcooling at the condenser outlet, K.
	// +optional
	Subcooling *float64 `json:"subcooling,omitempty"`
}

// GasCoolerTemplate describes a gas cooler.
type GasCoolerTemplate struct {
	// OutletTemperature is the refrigerant temperature leaving the gas cooler, °C.
	OutletTemperature float64 `json:"outletTemperature"`

	// Pressure in kPa. When omitted R744 uses the optimal high pressure correlation.
	// +optional
	Pressure *float64 `json:"pressure,omitempty"`
}

// TwoStageTemplate describes the intermediate stage.
type TwoStageTemplate struct {
	// Intercooling is "Complete" (default) or "Incomplete".
	// +kubebuilder:validation:Enum=Complete;Incomplete
	// +optional
	Intercooling string `json:"intercooling,omitempty"`

	// PressurePolicy is "GeometricMean", "SaturationMean" or "Fixed".
	// +optional
	PressurePolicy string `json:"pressurePolicy,omitempty"`

	// IntermediatePressure in kPa overrides the policy.
	// +optional
	IntermediatePressure *float64 `json:"intermediatePressure,omitempty"`
}

// OperatingCondition is one point of the operating envelope.
type OperatingCondition struct {
	// Name is unique within the document.
	// +kubebuilder:validation:MinLength=1
	Name string `json:"name"`

	// ColdSource is the temperature of the cooled space, °C.
	ColdSource float64 `json:"coldSource"`

	// HotSource is the temperature of the environment receiving the heat, °C.
	HotSource float64 `json:"hotSource"`

	// EvaporatingTemperature overrides the template for this condition, °C.
	// +optional
	EvaporatingTemperature *float64 `json:"evaporatingTemperature,omitempty"`

	// HeatReleaserTemperature overrides the condensing or gas cooler outlet temperature, °C.
	// +optional
	HeatReleaserTemperature *float64 `json:"heatReleaserTemperature,omitempty"`
}

// CycleAnalysisStatus is filled in by the evaluator.
type CycleAnalysisStatus struct {
	// Results holds one entry per operating condition, in spec order.
	// +optional
	Results []ConditionResult `json:"results,omitempty"`

	// Average is the entropy analysis averaged over every condition.
	// +optional
	Average *AnalysisSummary `json:"average,omitempty"`

	// Conditions represent the latest observations of the evaluation.
	// +optional
	// +patchMergeKey=type
	// +patchStrategy=merge
	// +listType=map
	// +listMapKey=type
	Conditions []metav1.Condition `json:"conditions,omitempty" patchStrategy:"merge" patchMergeKey:"type"`
}

// ConditionResult holds the solved metrics of one operating condition.
type ConditionResult struct {
	Name string `json:"name"`

	// Transcritical is true when the heat is released above the critical pressure.
	Transcritical bool `json:"transcritical"`

	EER float64 `json:"eer"`
	COP float64 `json:"cop"`

	// SpecificWork and SpecificCoolingCapacity are per kg of evaporator flow, kJ/kg.
	SpecificWork            float64 `json:"specificWork"`
	SpecificCoolingCapacity float64 `json:"specificCoolingCapacity"`

	// EvaporatingPressure and HeatReleaserPressure in kPa.
	EvaporatingPressure  float64 `json:"evaporatingPressure"`
	HeatReleaserPressure float64 `json:"heatReleaserPressure"`

	// IntermediatePressure in kPa, two-stage cycles only.
	// +optional
	IntermediatePressure *float64 `json:"intermediatePressure,omitempty"`

	// Analysis is the entropy analysis at this condition.
	// +optional
	Analysis *AnalysisSummary `json:"analysis,omitempty"`
}

// AnalysisSummary is the reported form of an entropy analysis. Energies are in kJ/kg.
type AnalysisSummary struct {
	ThermodynamicPerfection float64 `json:"thermodynamicPerfection"`
	MinSpecificWork         float64 `json:"minSpecificWork"`
	SpecificWork            float64 `json:"specificWork"`
	TotalExergyDestruction  float64 `json:"totalExergyDestruction"`
	AnalysisRelativeError   float64 `json:"analysisRelativeError"`

	// Losses lists every component, including those absent from the topology.
	Losses []ComponentLoss `json:"losses"`
}

// ComponentLoss is the exergy destroyed in one component.
type ComponentLoss struct {
	Component   string  `json:"component"`
	Destruction float64 `json:"destruction"`
	Fraction    float64 `json:"fraction"`
	WorkRatio   float64 `json:"workRatio"`
}

// CycleAnalysis is the document evaluated by the vcrc tool.
// metadata.name identifies the analysis in logs and metrics; labels are copied to the output.
type CycleAnalysis struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	// Spec defines the cycle and its operating conditions.
	Spec CycleAnalysisSpec `json:"spec"`

	// Status holds the evaluation output.
	// +optional
	Status CycleAnalysisStatus `json:"status,omitzero"`
}

// Condition Types for CycleAnalysis
const (
	// TypeSolved indicates whether every operating condition produced a cycle
	TypeSolved = "Solved"
	// TypeAnalyzed indicates whether the entropy analysis completed
	TypeAnalyzed = "Analyzed"
)

// Condition Reasons for Solved
const (
	// ReasonCyclesSolved indicates every condition was solved
	ReasonCyclesSolved = "CyclesSolved"
	// ReasonInvalidConfiguration indicates the cycle parameters are not realizable
	ReasonInvalidConfiguration = "InvalidConfiguration"
	// ReasonPropertyResolutionFailed indicates the property provider could not resolve a state
	ReasonPropertyResolutionFailed = "PropertyResolutionFailed"
	// ReasonValidationFailed indicates a validation rule was violated
	ReasonValidationFailed = "ValidationFailed"
)

// Condition Reasons for Analyzed
const (
	// ReasonAnalysisSucceeded indicates the averaged analysis is available
	ReasonAnalysisSucceeded = "AnalysisSucceeded"
	// ReasonAnalysisFailed indicates the analysis failed
	ReasonAnalysisFailed = "AnalysisFailed"
	// ReasonSkippedAnalysis indicates the analysis did not run because solving failed
	ReasonSkippedAnalysis = "SkippedAnalysis"
)
