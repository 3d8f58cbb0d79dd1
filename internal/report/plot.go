package report

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/refcycle/vcrc/api/v1alpha1"
)

// ErrNoAnalysis is returned when a chart is requested for a document without an averaged analysis.
var ErrNoAnalysis = errors.New("document has no averaged analysis")

// LossChart builds a bar chart of the averaged exergy destruction per component.
func LossChart(doc *v1alpha1.CycleAnalysis) (*plot.Plot, error) {
	avg := doc.Status.Average
	if avg == nil {
		return nil, ErrNoAnalysis
	}

	values := make(plotter.Values, 0, len(avg.Losses)+1)
	names := make([]string, 0, len(avg.Losses)+1)
	for _, l := range avg.Losses {
		values = append(values, l.Destruction)
		names = append(names, l.Component)
	}
	values = append(values, avg.MinSpecificWork)
	names = append(names, "MinWork")

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%s): perfection %.1f%%", doc.Name, doc.Spec.Refrigerant,
		100*avg.ThermodynamicPerfection)
	p.Y.Label.Text = "kJ/kg"

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return nil, fmt.Errorf("building bar chart: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// SaveLossChart writes the chart to path. The format follows the extension (.png, .svg, .pdf, ...).
func SaveLossChart(doc *v1alpha1.CycleAnalysis, path string) error {
	p, err := LossChart(doc)
	if err != nil {
		return err
	}
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart to %s: %w", path, err)
	}
	return nil
}
