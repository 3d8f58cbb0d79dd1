package entropy

import (
	"github.com/refcycle/vcrc/pkg/core"
)

// ArgumentError reports malformed arguments to the analysis entry points.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string {
	return e.Message
}

// AggregateAnalysis analyzes cycles[i] between coldSources[i] and hotSources[i] and averages
// every numeric field of the results. The three lists must have the same non-zero length.
func AggregateAnalysis(cycles []core.Cycle, coldSources, hotSources []float64) (*Result, error) {
	if len(cycles) != len(coldSources) || len(cycles) != len(hotSources) {
		return nil, &ArgumentError{Message: "The lists should have the same length!"}
	}
	if len(cycles) == 0 {
		return nil, &ArgumentError{Message: "The lists should not be empty!"}
	}
	results := make([]*Result, len(cycles))
	for i, c := range cycles {
		r, err := Analyze(c, coldSources[i], hotSources[i])
		if err != nil {
			return nil, err
		}
		results[i] = r
	}
	return Average(results)
}

// Average returns the field-wise running mean of results.
func Average(results []*Result) (*Result, error) {
	if len(results) == 0 {
		return nil, &ArgumentError{Message: "The lists should not be empty!"}
	}
	mean := &Result{}
	dst := mean.fields()
	for i, r := range results {
		if r == nil {
			return nil, &ArgumentError{Message: "The results should not contain nil!"}
		}
		n := float64(i + 1)
		for j, x := range r.fields() {
			*dst[j] += (*x - *dst[j]) / n
		}
	}
	return mean, nil
}

func (r *Result) fields() []*float64 {
	f := []*float64{
		&r.ColdSource,
		&r.HotSource,
		&r.MinSpecificWork,
		&r.SpecificWork,
		&r.TotalExergyDestruction,
		&r.ThermodynamicPerfection,
		&r.MinSpecificWorkRatio,
		&r.AnalysisRelativeError,
	}
	for _, l := range r.losses() {
		f = append(f, &l.Destruction, &l.Fraction, &l.WorkRatio)
	}
	return f
}
