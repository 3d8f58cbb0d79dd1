package core

import (
	"math"

	"github.com/refcycle/vcrc/pkg/refrigerant"
)

// Point is one labelled state of the cycle. Points are only built from provider states.
type Point struct {
	Name        string            `json:"name"`
	Pressure    float64           `json:"pressure"`
	Temperature float64           `json:"temperature"`
	Enthalpy    float64           `json:"enthalpy"`
	Entropy     float64           `json:"entropy"`
	Quality     float64           `json:"-"`
	Phase       refrigerant.Phase `json:"phase"`
}

func newPoint(name string, st refrigerant.State) Point {
	return Point{
		Name:        name,
		Pressure:    st.Pressure,
		Temperature: st.Temperature,
		Enthalpy:    st.Enthalpy,
		Entropy:     st.Entropy,
		Quality:     st.Quality,
		Phase:       st.Phase,
	}
}

// IsTwoPhase reports whether the point has a defined vapor quality (saturated states included).
func (p Point) IsTwoPhase() bool {
	return !math.IsNaN(p.Quality)
}

func (p Point) named(name string) Point {
	p.Name = name
	return p
}

// resolve asks the provider for a state. Provider errors are returned unchanged.
func resolve(provider refrigerant.Provider, fluid *refrigerant.Fluid, name string, a, b refrigerant.Input) (Point, error) {
	st, err := provider.Resolve(fluid, a, b)
	if err != nil {
		return Point{}, err
	}
	return newPoint(name, st), nil
}
