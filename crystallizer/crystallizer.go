// Package crystallizer integrates a discretized crystal-size population
// through a batch cooling crystallization: nucleation and growth driven by
// supersaturation, upwind transport along the size axis, concentration
// depletion and a pluggable cooling profile.
package crystallizer

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
)

// Grid defaults: 80 points over 0..0.8 mm.
const (
	DefaultGridPoints = 80
	DefaultMaxSize    = 8e-4 // m
	DefaultTimeStep   = 60.0 // s
)

// Config holds the batch recipe and numerical settings.
type Config struct {
	Mass          float64 // kg of solution charged
	Concentration float64 // initial concentration, g solute / 100 g solution
	InitialTemp   float64 // °C
	Duration      float64 // s
	TimeStep      float64 // s
	Profile       string  // cooling policy name, see ProfileNames

	GridPoints int     // size-axis resolution
	MaxSize    float64 // m, upper end of the size grid

	Kinetics Kinetics
	Params   ProfileParams
}

func (c Config) withDefaults() Config {
	if c.TimeStep == 0 {
		c.TimeStep = DefaultTimeStep
	}
	if c.GridPoints == 0 {
		c.GridPoints = DefaultGridPoints
	}
	if c.MaxSize == 0 {
		c.MaxSize = DefaultMaxSize
	}
	if c.Kinetics == (Kinetics{}) {
		c.Kinetics = DefaultKinetics()
	}
	if c.Params == (ProfileParams{}) {
		c.Params = DefaultProfileParams()
	}
	if c.Profile == "" {
		c.Profile = ProfileLinear
	}
	return c
}

func (c Config) validate() error {
	switch {
	case c.Mass <= 0:
		return fmt.Errorf("crystallizer config: Mass must be positive")
	case c.Concentration <= 0:
		return fmt.Errorf("crystallizer config: Concentration must be positive")
	case c.Duration <= 0:
		return fmt.Errorf("crystallizer config: Duration must be positive")
	case c.TimeStep <= 0 || c.TimeStep > c.Duration:
		return fmt.Errorf("crystallizer config: TimeStep must be in (0, Duration]")
	case c.GridPoints < 2:
		return fmt.Errorf("crystallizer config: GridPoints must be at least 2")
	case c.MaxSize <= 0:
		return fmt.Errorf("crystallizer config: MaxSize must be positive")
	}
	return nil
}

// Record is one appended row of the run history.
type Record struct {
	Time            float64 `json:"t_s"`
	Temperature     float64 `json:"t_c"`
	Supersaturation float64 `json:"s"`
	Concentration   float64 `json:"c_g100g"`
	Solubility      float64 `json:"c_star_g100g"`
	MeanSize        float64 `json:"l_mean_m"`
	CV              float64 `json:"cv"`
}

// Result holds the final distribution and the full time history.
type Result struct {
	Sizes   []float64 `json:"sizes_m"`
	Density []float64 `json:"density"`
	History []Record  `json:"history"`
}

// Final returns the last history row.
func (r *Result) Final() Record {
	return r.History[len(r.History)-1]
}

// batchState is the scalar state advanced once per time step. It owns the
// population buffer it mutates in place; the history log outlives it.
type batchState struct {
	temp    float64
	conc    float64
	sizes   []float64
	density []float64
	scratch []float64 // transport work buffer, reused every step
}

// Run integrates the batch from t = 0 to the configured duration inclusive
// and returns the history plus the final population. Configuration errors
// abort before any stepping.
func Run(cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	profile, err := cfg.Params.profileFor(cfg.Profile)
	if err != nil {
		return nil, err
	}

	n := cfg.GridPoints
	st := &batchState{
		temp:    cfg.InitialTemp,
		conc:    cfg.Concentration,
		sizes:   make([]float64, n),
		density: make([]float64, n),
		scratch: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		st.sizes[i] = cfg.MaxSize * float64(i) / float64(n-1)
	}
	dL := st.sizes[1] - st.sizes[0]
	dt := cfg.TimeStep
	kin := cfg.Kinetics

	log.WithFields(log.Fields{
		"mass":     cfg.Mass,
		"cInit":    cfg.Concentration,
		"tInit":    cfg.InitialTemp,
		"duration": cfg.Duration,
		"dt":       dt,
		"profile":  cfg.Profile,
		"grid":     n,
	}).Debug("crystallizer batch started")

	steps := int(cfg.Duration/dt) + 1
	res := &Result{
		Sizes:   st.sizes,
		Density: st.density,
		History: make([]Record, 0, steps),
	}

	for k := 0; k < steps; k++ {
		t := float64(k) * dt

		cStar := kin.Solubility(st.temp)
		s := Supersaturation(st.conc, cStar)

		m3 := ThirdMoment(st.sizes, st.density)
		b := kin.Nucleation(s, m3)
		g := kin.Growth(s, st.temp)

		// Upwind transport along the size axis at speed g. Skipped entirely
		// when g ≤ 0: no growth, no redistribution, but depletion, cooling
		// and logging still run.
		if g > 0 {
			st.advect(g, b, dt, dL, kin.MomentFloor)
		}

		st.conc = math.Max(st.conc-kin.DepletionRate*s*dt/60, cStar)
		st.temp = profile(cfg.InitialTemp, st.temp, t, cfg.Duration, s)

		m0, m1, m2 := Moments(st.sizes, st.density)
		meanSize, cv := Stats(m0, m1, m2)

		res.History = append(res.History, Record{
			Time:            t,
			Temperature:     st.temp,
			Supersaturation: s,
			Concentration:   st.conc,
			Solubility:      cStar,
			MeanSize:        meanSize,
			CV:              cv,
		})
	}

	final := res.Final()
	log.WithFields(log.Fields{
		"tFinal":   final.Temperature,
		"meanSize": final.MeanSize,
		"cv":       final.CV,
	}).Debug("crystallizer batch finished")
	return res, nil
}

// advect applies one explicit upwind step at growth speed g with nucleation
// flux b feeding the smallest-size cell. Densities are clamped non-negative.
func (st *batchState) advect(g, b, dt, dL, floor float64) {
	n := len(st.density)
	st.scratch[0] = b / math.Max(g, floor)
	for i := 1; i < n; i++ {
		st.scratch[i] = st.density[i] - dt*g*(st.density[i]-st.density[i-1])/dL
	}
	for i := 0; i < n; i++ {
		st.density[i] = math.Max(st.scratch[i], 0)
	}
}
