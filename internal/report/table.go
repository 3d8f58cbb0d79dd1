// Package report renders evaluated CycleAnalysis documents for people: terminal tables and
// loss charts.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/refcycle/vcrc/api/v1alpha1"
	"github.com/refcycle/vcrc/pkg/refrigerant"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func num(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func percent(v float64) string {
	return num(100*v, 1) + "%"
}

// WriteResults prints one row per operating condition.
func WriteResults(w io.Writer, doc *v1alpha1.CycleAnalysis) error {
	t := newTable("Condition", "EER", "COP", "w (kJ/kg)", "q0 (kJ/kg)", "P0 (kPa)", "Pint (kPa)", "Phr (kPa)", "Perfection")
	for _, r := range doc.Status.Results {
		pint := "-"
		if r.IntermediatePressure != nil {
			pint = num(*r.IntermediatePressure, 1)
		}
		perfection := "-"
		if r.Analysis != nil {
			perfection = percent(r.Analysis.ThermodynamicPerfection)
		}
		t.Row(r.Name, num(r.EER, 3), num(r.COP, 3), num(r.SpecificWork, 2), num(r.SpecificCoolingCapacity, 2),
			num(r.EvaporatingPressure, 1), pint, num(r.HeatReleaserPressure, 1), perfection)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// WriteLosses prints the averaged loss breakdown. It writes nothing when the document has no average.
func WriteLosses(w io.Writer, doc *v1alpha1.CycleAnalysis) error {
	avg := doc.Status.Average
	if avg == nil {
		return nil
	}
	t := newTable("Component", "Destruction (kJ/kg)", "Share of losses", "Share of work")
	for _, l := range avg.Losses {
		t.Row(l.Component, num(l.Destruction, 3), percent(l.Fraction), percent(l.WorkRatio))
	}
	t.Row("Minimum work", num(avg.MinSpecificWork, 3), "", percent(avg.MinSpecificWork/avg.SpecificWork))
	_, err := fmt.Fprintf(w, "%s\nThermodynamic perfection: %s (balance error %.2e)\n",
		t.Render(), percent(avg.ThermodynamicPerfection), avg.AnalysisRelativeError)
	return err
}

// WriteRefrigerants prints the catalog.
func WriteRefrigerants(w io.Writer) error {
	t := newTable("Name", "Kind", "Tc (°C)", "Pc (kPa)", "M (g/mol)", "Glide (K)")
	for _, name := range refrigerant.Names() {
		f, err := refrigerant.Lookup(name)
		if err != nil {
			return err
		}
		t.Row(f.Name, string(f.Kind()), num(v1alpha1.Celsius(f.CriticalTemperature), 2),
			num(v1alpha1.Kilopascal(f.CriticalPressure), 1), num(1e3*f.MolarMass, 3), num(f.Glide, 2))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
