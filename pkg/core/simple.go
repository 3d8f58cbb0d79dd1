package core

import (
	"github.com/refcycle/vcrc/pkg/config"
	"github.com/refcycle/vcrc/pkg/refrigerant"
)

// SimpleCycle is a single-stage cycle: evaporator, compressor, heat releaser and one expansion valve.
type SimpleCycle struct {
	*cycle
}

var _ Cycle = &SimpleCycle{}

// NewSimpleCycle solves a single-stage cycle. spec.Type and spec.TwoStage are ignored.
func NewSimpleCycle(provider refrigerant.Provider, spec config.CycleSpec) (*SimpleCycle, error) {
	c, err := newCycle(provider, spec, config.SimpleCycle)
	if err != nil {
		return nil, err
	}

	hr := c.HeatReleaser()
	p1 := c.evaporator.Outlet.named("1")
	p2s, p2, err := c.compress(provider, p1, hr.HeatReleaserPressure(), "2s", "2")
	if err != nil {
		return nil, err
	}
	p3 := hr.HeatReleaserOutlet().named("3")
	p4, err := c.throttle(provider, p3, c.evaporator.Pressure, "4")
	if err != nil {
		return nil, err
	}
	if !p4.IsTwoPhase() || p4.Quality >= 1 {
		return nil, configError("heatReleaser",
			"expansion of the heat releaser outlet to the evaporating pressure %.0f Pa does not end in the two-phase region",
			c.evaporator.Pressure)
	}

	c.isentropicWork = p2s.Enthalpy - p1.Enthalpy
	c.work = p2.Enthalpy - p1.Enthalpy
	c.coolingCapacity = p1.Enthalpy - p4.Enthalpy
	c.heatingCapacity = p2.Enthalpy - p3.Enthalpy
	if c.coolingCapacity <= 0 || c.work <= 0 {
		return nil, configError("heatReleaser", "cycle does not close: q0 = %.4g J/kg, w = %.4g J/kg",
			c.coolingCapacity, c.work)
	}

	c.points = []Point{p1, p2s, p2, p3, p4}
	c.processes = []Process{
		{Name: "compression", Component: ComponentCompressor, Kind: Adiabatic,
			Inlets: flow(1, p1), Outlets: flow(1, p2)},
		{Name: "heat rejection", Component: hr.Component(), Kind: HeatRejection,
			Inlets: flow(1, p2), Outlets: flow(1, p3), Heat: c.heatingCapacity},
		{Name: "expansion", Component: ComponentExpansionValve, Kind: Adiabatic,
			Inlets: flow(1, p3), Outlets: flow(1, p4)},
		{Name: "evaporation", Component: ComponentEvaporator, Kind: HeatAbsorption,
			Inlets: flow(1, p4), Outlets: flow(1, p1), Heat: c.coolingCapacity},
	}
	return &SimpleCycle{cycle: c}, nil
}
