/*
Copyright 2025 The vcrc Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package refrigerant

import "strings"

// Critical constants from REFPROP 10; ideal-gas heat capacity fits after Poling, Prausnitz & O'Connell.
// Blends are treated as pseudo-pure fluids with their pseudo-critical point.
var catalog = index(
	&Fluid{
		Name:                 "R32",
		MolarMass:            0.052024,
		CriticalTemperature:  351.255,
		CriticalPressure:     5.782e6,
		AcentricFactor:       0.2769,
		IdealGasHeatCapacity: [4]float64{20.34, 7.582e-2, -1.552e-5, -1.003e-8},
	},
	&Fluid{
		Name:                 "R134a",
		MolarMass:            0.102032,
		CriticalTemperature:  374.21,
		CriticalPressure:     4.0593e6,
		AcentricFactor:       0.32684,
		IdealGasHeatCapacity: [4]float64{12.89, 0.3039, -2.340e-4, 6.750e-8},
	},
	&Fluid{
		Name:                 "R290",
		MolarMass:            0.044096,
		CriticalTemperature:  369.89,
		CriticalPressure:     4.2512e6,
		AcentricFactor:       0.1521,
		IdealGasHeatCapacity: [4]float64{-4.224, 0.3063, -1.586e-4, 3.215e-8},
	},
	&Fluid{
		Name:                 "R600a",
		MolarMass:            0.058122,
		CriticalTemperature:  407.81,
		CriticalPressure:     3.629e6,
		AcentricFactor:       0.184,
		IdealGasHeatCapacity: [4]float64{-1.390, 0.3847, -1.846e-4, 2.895e-8},
	},
	&Fluid{
		Name:                 "R717",
		MolarMass:            0.017031,
		CriticalTemperature:  405.40,
		CriticalPressure:     11.333e6,
		AcentricFactor:       0.2560,
		IdealGasHeatCapacity: [4]float64{27.31, 2.383e-2, 1.707e-5, -1.185e-8},
	},
	&Fluid{
		Name:                 "R744",
		MolarMass:            0.0440098,
		CriticalTemperature:  304.1282,
		CriticalPressure:     7.3773e6,
		AcentricFactor:       0.22394,
		IdealGasHeatCapacity: [4]float64{19.80, 7.344e-2, -5.602e-5, 1.715e-8},
	},
	&Fluid{
		Name:                 "R1234yf",
		MolarMass:            0.1140416,
		CriticalTemperature:  367.85,
		CriticalPressure:     3.3822e6,
		AcentricFactor:       0.276,
		IdealGasHeatCapacity: [4]float64{20.0, 0.3140, -2.050e-4, 5.0e-8},
	},
	&Fluid{
		Name:                 "R507A",
		MolarMass:            0.098859,
		CriticalTemperature:  343.77,
		CriticalPressure:     3.7049e6,
		AcentricFactor:       0.286,
		IdealGasHeatCapacity: [4]float64{18.0, 0.2900, -2.000e-4, 5.5e-8},
	},
	&Fluid{
		Name:                 "R410A",
		MolarMass:            0.072585,
		CriticalTemperature:  344.49,
		CriticalPressure:     4.9012e6,
		AcentricFactor:       0.296,
		IdealGasHeatCapacity: [4]float64{17.0, 0.1800, -1.200e-4, 3.0e-8},
		Glide:                0.1,
	},
	&Fluid{
		Name:                 "R407C",
		MolarMass:            0.086204,
		CriticalTemperature:  359.35,
		CriticalPressure:     4.6317e6,
		AcentricFactor:       0.363,
		IdealGasHeatCapacity: [4]float64{16.0, 0.2300, -1.600e-4, 4.2e-8},
		Glide:                7.0,
	},
	&Fluid{
		Name:                 "Water",
		MolarMass:            0.018015,
		CriticalTemperature:  647.096,
		CriticalPressure:     22.064e6,
		AcentricFactor:       0.3443,
		IdealGasHeatCapacity: [4]float64{32.24, 1.924e-3, 1.055e-5, -3.596e-9},
	},
)

func index(fluids ...*Fluid) map[string]*Fluid {
	out := make(map[string]*Fluid, len(fluids))
	for _, f := range fluids {
		out[strings.ToUpper(f.Name)] = f
	}
	return out
}
