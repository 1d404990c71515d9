package crystallizer

import "math"

const gasConstant = 8.314 // J/mol/K

// Kinetics groups the empirical nucleation and growth constants. They are
// pedagogical fits for sucrose and deliberately configurable; DefaultKinetics
// returns the reference values.
type Kinetics struct {
	NucleationRate   float64 // kb, #/m³/s
	NucleationOrder  float64 // b, supersaturation exponent
	NucleationMoment float64 // j, third-moment exponent
	GrowthRate       float64 // kg, m/s
	GrowthOrder      float64 // g, supersaturation exponent
	GrowthActivation float64 // Eg, J/mol
	MomentFloor      float64 // ε guarding the third-moment power law
	SolubilityA      float64 // cubic solubility correlation in T (°C)
	SolubilityB      float64
	SolubilityC      float64
	SolubilityD      float64
	DepletionRate    float64 // g/100g per minute per unit supersaturation
}

// DefaultKinetics returns the reference sucrose constants.
func DefaultKinetics() Kinetics {
	return Kinetics{
		NucleationRate:   1.5e10,
		NucleationOrder:  2.5,
		NucleationMoment: 0.5,
		GrowthRate:       2.8e-7,
		GrowthOrder:      1.5,
		GrowthActivation: 45000,
		MomentFloor:      1e-12,
		SolubilityA:      64.18,
		SolubilityB:      0.1337,
		SolubilityC:      5.52e-3,
		SolubilityD:      -9.73e-6,
		DepletionRate:    0.02,
	}
}

// Solubility returns C* in g solute / 100 g solution at T °C.
func (k Kinetics) Solubility(tC float64) float64 {
	return k.SolubilityA + k.SolubilityB*tC + k.SolubilityC*tC*tC + k.SolubilityD*tC*tC*tC
}

// Supersaturation returns the relative driving force, clamped at zero.
func Supersaturation(c, cStar float64) float64 {
	return math.Max((c-cStar)/cStar, 0)
}

// Nucleation returns the birth rate B (#/m³/s) at supersaturation s with
// third moment m3 of the current population.
func (k Kinetics) Nucleation(s, m3 float64) float64 {
	return k.NucleationRate * math.Pow(s, k.NucleationOrder) *
		math.Pow(math.Max(m3, k.MomentFloor), k.NucleationMoment)
}

// Growth returns the size-independent growth velocity G (m/s) at
// supersaturation s and temperature T °C.
func (k Kinetics) Growth(s, tC float64) float64 {
	return k.GrowthRate * math.Pow(s, k.GrowthOrder) *
		math.Exp(-k.GrowthActivation/(gasConstant*(tC+273.15)))
}
