// Package evaporator solves the mass and energy balance of a linear
// co-current multi-effect evaporation train by fixed-point iteration on the
// per-effect vapor flows.
package evaporator

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/rahibbwissale-bit/evap-crit-PIC11/thermo"
)

// Floor of the driving temperature difference, K. Keeps the area formula
// away from a division by zero when the stage pressures are nearly equal.
const minDrivingDT = 1.0

const relEps = 1e-12

// Train owns the per-effect state mutated across solver iterations. Build
// one with NewTrain, call Solve once, keep the returned snapshot.
type Train struct {
	cfg  Config
	prov *thermo.Provider

	pressure []float64 // stage saturation pressure, bar abs
	liquid   []float64 // kg/h leaving each effect
	vapor    []float64 // kg/h evaporated in each effect
	fraction []float64 // solute mass fraction leaving each effect
	temp     []float64 // boiling temperature, °C
	duty     []float64 // kW
	area     []float64 // m²
	u        []float64 // effective U, W/m²/K

	product    float64 // product flow, kg/h
	totalVapor float64 // total evaporation demand, kg/h
}

// NewTrain validates the configuration and seeds the effect chain. A
// *ConfigError aborts construction before any computation.
func NewTrain(cfg Config, prov *thermo.Provider) (*Train, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	n := cfg.Effects
	t := &Train{
		cfg:      cfg,
		prov:     prov,
		pressure: make([]float64, n),
		liquid:   make([]float64, n),
		vapor:    make([]float64, n),
		fraction: make([]float64, n),
		temp:     make([]float64, n),
		duty:     make([]float64, n),
		area:     make([]float64, n),
		u:        make([]float64, n),
	}

	t.product = cfg.FeedFlow * cfg.FeedFraction / cfg.TargetFraction
	t.totalVapor = cfg.FeedFlow - t.product

	// Stage pressures: log-linear between steam and condenser pressure over
	// N+1 points, the effects taking the interior points 1..N.
	lnS := math.Log(cfg.SteamPressure)
	lnF := math.Log(cfg.FinalPressure)
	for i := 0; i < n; i++ {
		t.pressure[i] = math.Exp(lnS + (lnF-lnS)*float64(i+1)/float64(n))
	}

	// Uniform evaporation seed.
	for i := 0; i < n; i++ {
		t.vapor[i] = t.totalVapor / float64(n)
	}
	t.propagate()

	log.WithFields(log.Fields{
		"feed":       cfg.FeedFlow,
		"xF":         cfg.FeedFraction,
		"xOut":       cfg.TargetFraction,
		"effects":    n,
		"Psteam":     cfg.SteamPressure,
		"Pfinal":     cfg.FinalPressure,
		"totalVapor": t.totalVapor,
	}).Debug("evaporator train seeded")
	return t, nil
}

// propagate recomputes liquid flows and concentrations along the chain from
// the current vapor flows, conserving solute (L·x constant per stage).
// Vapor flows are clipped so no effect evaporates below the product flow,
// which keeps L non-increasing and x non-decreasing up to the target.
func (t *Train) propagate() {
	lIn, xIn := t.cfg.FeedFlow, t.cfg.FeedFraction
	for i := range t.vapor {
		if t.vapor[i] < 0 {
			t.vapor[i] = 0
		}
		if t.vapor[i] > lIn-t.product {
			t.vapor[i] = lIn - t.product
		}
		t.liquid[i] = lIn - t.vapor[i]
		t.fraction[i] = lIn * xIn / t.liquid[i]
		lIn, xIn = t.liquid[i], t.fraction[i]
	}
}

// Solve runs the fixed-point iteration and returns a frozen result. An
// unexpected numerical failure mid-solve degrades to a closed-form estimate
// with a structured warning instead of propagating the failure.
func Solve(cfg Config, prov *thermo.Provider) (*Result, error) {
	t, err := NewTrain(cfg, prov)
	if err != nil {
		return nil, err
	}
	return t.Solve(), nil
}

// Solve iterates the train to convergence (or the iteration cap) and
// snapshots the result.
func (t *Train) Solve() *Result {
	res, ok := t.iterate()
	if !ok {
		log.Warn("evaporator: numerical failure mid-solve, degrading to closed-form estimate")
		res = t.roughEstimate()
	}
	if t.prov.Empirical() {
		res.Warnings = append(res.Warnings, "reduced fidelity: empirical property correlations in use")
	}
	return res
}

func (t *Train) iterate() (*Result, bool) {
	cfg := t.cfg
	n := cfg.Effects
	tSteam := t.prov.SaturationTemperature(cfg.SteamPressure)
	latent := make([]float64, n)
	sensible := make([]float64, n)

	converged := false
	iterations := 0
	for it := 1; it <= cfg.MaxIterations; it++ {
		iterations = it

		// Boiling temperature per effect: pure-water saturation at the stage
		// pressure plus the boiling point elevation of the local liquor.
		for i := 0; i < n; i++ {
			tSat := t.prov.SaturationTemperature(t.pressure[i])
			t.temp[i] = tSat + t.prov.BoilingPointElevation(t.fraction[i], tSat)
		}

		// Duty, effective U and area per effect. A hot liquor flashing into
		// a cooler effect can cover the whole local evaporation demand; the
		// surface then transfers nothing and the duty floors at zero instead
		// of going negative.
		for i := 0; i < n; i++ {
			tIn, xIn, lIn := cfg.FeedTemp, cfg.FeedFraction, cfg.FeedFlow
			tHeat := tSteam
			if i > 0 {
				tIn, xIn, lIn = t.temp[i-1], t.fraction[i-1], t.liquid[i-1]
				tHeat = t.temp[i-1]
			}
			cpMean := (t.prov.SpecificHeat(xIn, tIn) + t.prov.SpecificHeat(t.fraction[i], t.temp[i])) / 2
			sensible[i] = lIn * cpMean * (t.temp[i] - tIn) / 3600 // kW
			latent[i] = t.prov.LatentHeatAtT(t.temp[i])
			t.duty[i] = math.Max((sensible[i]+t.vapor[i]*latent[i]/3600)*(1+cfg.HeatLossFraction), 0)

			u := cfg.UOverride
			if u <= 0 {
				u = t.prov.HeatTransferCoefficient(i+1, n)
			}
			t.u[i] = 1 / (1/u + cfg.FoulingResistance)
			dT := math.Max(tHeat-t.temp[i], minDrivingDT)
			t.area[i] = t.duty[i] * 1000 / (t.u[i] * dT)
		}

		// Vapor update: effect i is heated by the vapor condensing from
		// effect i-1, net of heat losses and of its own sensible demand.
		// The vector is then renormalized to the fixed total evaporation so
		// the overall mass balance holds exactly at every iterate.
		next := make([]float64, n)
		next[0] = t.vapor[0]
		for i := 1; i < n; i++ {
			supplied := t.vapor[i-1] * latent[i-1] / 3600 * (1 - cfg.HeatLossFraction)
			next[i] = math.Max((supplied-sensible[i])*3600/latent[i], 0)
		}
		sum := 0.0
		for _, v := range next {
			sum += v
		}
		if sum <= 0 || !finite(sum) {
			return nil, false
		}
		maxRel := 0.0
		for i := 0; i < n; i++ {
			next[i] *= t.totalVapor / sum
			rel := math.Abs(next[i]-t.vapor[i]) / math.Max(t.vapor[i], relEps)
			if rel > maxRel {
				maxRel = rel
			}
		}
		copy(t.vapor, next)
		t.propagate()

		if maxRel < cfg.Tolerance {
			converged = true
			break
		}
	}

	for i := 0; i < n; i++ {
		if !finite(t.temp[i]) || !finite(t.duty[i]) || !finite(t.area[i]) || !finite(t.fraction[i]) {
			return nil, false
		}
	}

	steamLatent := t.prov.LatentHeatAtP(cfg.SteamPressure)
	steam := t.duty[0] * 3600 / steamLatent
	// Flash gains cannot push the economy past the effect count.
	economy := math.Min(t.totalVapor/steam, float64(n))
	res := t.snapshot(steam, economy, iterations, converged)
	if !converged {
		res.Status = StatusNotConverged
		res.Warnings = append(res.Warnings, "iteration cap reached before tolerance, result is the last iterate")
		log.WithFields(log.Fields{"iterations": iterations, "tolerance": cfg.Tolerance}).
			Warn("evaporator: not converged")
	}
	return res, true
}

// roughEstimate is the degraded path: uniform evaporation split, an assumed
// 20 K driving difference per effect and a fixed latent heat. Reported with
// StatusDegraded, never silently.
func (t *Train) roughEstimate() *Result {
	const (
		assumedDT     = 20.0   // K
		assumedLatent = 2257.0 // kJ/kg, water at 1 atm
	)
	cfg := t.cfg
	n := cfg.Effects
	tSteam := t.prov.SaturationTemperature(cfg.SteamPressure)
	tLast := t.prov.SaturationTemperature(cfg.FinalPressure)

	for i := 0; i < n; i++ {
		t.vapor[i] = t.totalVapor / float64(n)
	}
	t.propagate()
	for i := 0; i < n; i++ {
		t.temp[i] = tSteam + (tLast-tSteam)*float64(i+1)/float64(n)
		t.duty[i] = t.vapor[i] * assumedLatent / 3600
		u := cfg.UOverride
		if u <= 0 {
			u = t.prov.HeatTransferCoefficient(i+1, n)
		}
		t.u[i] = 1 / (1/u + cfg.FoulingResistance)
		t.area[i] = t.duty[i] * 1000 / (t.u[i] * assumedDT)
	}

	economy := math.Min(float64(n), 6)
	res := t.snapshot(t.totalVapor/economy, economy, 0, false)
	res.Status = StatusDegraded
	res.Warnings = append(res.Warnings, "rough closed-form estimate: uniform split, assumed 20 K driving difference")
	return res
}

func (t *Train) snapshot(steam, economy float64, iterations int, converged bool) *Result {
	n := t.cfg.Effects
	res := &Result{
		Effects:    make([]EffectResult, n),
		SteamFlow:  steam,
		Economy:    economy,
		TotalVapor: t.totalVapor,
		Product:    t.product,
		Iterations: iterations,
		Converged:  converged,
		Status:     StatusOK,
	}
	for i := 0; i < n; i++ {
		res.Effects[i] = EffectResult{
			Index:       i + 1,
			Liquid:      t.liquid[i],
			Vapor:       t.vapor[i],
			FractionPct: t.fraction[i] * 100,
			Temperature: t.temp[i],
			Pressure:    t.pressure[i],
			Area:        t.area[i],
			Duty:        t.duty[i],
			U:           t.u[i],
		}
		res.TotalArea += t.area[i]
	}
	return res
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
