// Package analysis contains the collaborators that consume the solver
// outputs: parametric sensitivity sweeps, the effect-count study and the
// simplified plant economics.
package analysis

import (
	log "github.com/sirupsen/logrus"

	"github.com/rahibbwissale-bit/evap-crit-PIC11/crystallizer"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/evaporator"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/thermo"
)

// PressurePoint is one row of the steam-pressure sweep.
type PressurePoint struct {
	SteamPressure float64   `json:"p_steam_bar"`
	SteamFlow     float64   `json:"m_steam_kg_h"`
	TotalArea     float64   `json:"a_total_m2"`
	EffectTemps   []float64 `json:"t_effects_c"`
	Economy       float64   `json:"economy"`
}

// SteamPressureSweep varies the motive steam pressure over [pMin, pMax].
// Points that fail to solve are skipped with a warning, not fatal.
func SteamPressureSweep(base evaporator.Config, prov *thermo.Provider, pMin, pMax float64, points int) []PressurePoint {
	out := make([]PressurePoint, 0, points)
	for i := 0; i < points; i++ {
		p := pMin + (pMax-pMin)*float64(i)/float64(points-1)
		cfg := base
		cfg.SteamPressure = p
		res, err := evaporator.Solve(cfg, prov)
		if err != nil {
			log.WithFields(log.Fields{"p_steam": p, "err": err}).Warn("sensitivity: point skipped")
			continue
		}
		temps := make([]float64, len(res.Effects))
		for j, e := range res.Effects {
			temps[j] = e.Temperature
		}
		out = append(out, PressurePoint{
			SteamPressure: p,
			SteamFlow:     res.SteamFlow,
			TotalArea:     res.TotalArea,
			EffectTemps:   temps,
			Economy:       res.Economy,
		})
	}
	return out
}

// ConcentrationPoint is one row of the final-concentration sweep.
type ConcentrationPoint struct {
	TargetPct  float64 `json:"xout_pct"`
	SteamFlow  float64 `json:"m_steam_kg_h"`
	TotalArea  float64 `json:"a_total_m2"`
	TotalVapor float64 `json:"v_total_kg_h"`
	Economy    float64 `json:"economy"`
}

// FinalConcentrationSweep varies the target concentration over [xMin, xMax].
func FinalConcentrationSweep(base evaporator.Config, prov *thermo.Provider, xMin, xMax float64, points int) []ConcentrationPoint {
	out := make([]ConcentrationPoint, 0, points)
	for i := 0; i < points; i++ {
		x := xMin + (xMax-xMin)*float64(i)/float64(points-1)
		cfg := base
		cfg.TargetFraction = x
		res, err := evaporator.Solve(cfg, prov)
		if err != nil {
			log.WithFields(log.Fields{"xout": x, "err": err}).Warn("sensitivity: point skipped")
			continue
		}
		out = append(out, ConcentrationPoint{
			TargetPct:  x * 100,
			SteamFlow:  res.SteamFlow,
			TotalArea:  res.TotalArea,
			TotalVapor: res.TotalVapor,
			Economy:    res.Economy,
		})
	}
	return out
}

// FeedFlowPoint is one row of the feed-flow sweep.
type FeedFlowPoint struct {
	FeedFlow  float64 `json:"f_kg_h"`
	SteamFlow float64 `json:"m_steam_kg_h"`
	TotalArea float64 `json:"a_total_m2"`
	Economy   float64 `json:"economy"`
}

// FeedFlowSweep varies the feed flow by ±variationPct percent around the
// base configuration.
func FeedFlowSweep(base evaporator.Config, prov *thermo.Provider, variationPct float64, points int) []FeedFlowPoint {
	lo := base.FeedFlow * (1 - variationPct/100)
	hi := base.FeedFlow * (1 + variationPct/100)
	out := make([]FeedFlowPoint, 0, points)
	for i := 0; i < points; i++ {
		f := lo + (hi-lo)*float64(i)/float64(points-1)
		cfg := base
		cfg.FeedFlow = f
		res, err := evaporator.Solve(cfg, prov)
		if err != nil {
			log.WithFields(log.Fields{"feed": f, "err": err}).Warn("sensitivity: point skipped")
			continue
		}
		out = append(out, FeedFlowPoint{
			FeedFlow:  f,
			SteamFlow: res.SteamFlow,
			TotalArea: res.TotalArea,
			Economy:   res.Economy,
		})
	}
	return out
}

// FeedTempPoint is one row of the feed-temperature sweep.
type FeedTempPoint struct {
	FeedTemp  float64 `json:"t_feed_c"`
	SteamFlow float64 `json:"m_steam_kg_h"`
	TotalArea float64 `json:"a_total_m2"`
	Economy   float64 `json:"economy"`
}

// FeedTempSweep varies the feed temperature over [tMin, tMax].
func FeedTempSweep(base evaporator.Config, prov *thermo.Provider, tMin, tMax float64, points int) []FeedTempPoint {
	out := make([]FeedTempPoint, 0, points)
	for i := 0; i < points; i++ {
		tc := tMin + (tMax-tMin)*float64(i)/float64(points-1)
		cfg := base
		cfg.FeedTemp = tc
		res, err := evaporator.Solve(cfg, prov)
		if err != nil {
			log.WithFields(log.Fields{"t_feed": tc, "err": err}).Warn("sensitivity: point skipped")
			continue
		}
		out = append(out, FeedTempPoint{
			FeedTemp:  tc,
			SteamFlow: res.SteamFlow,
			TotalArea: res.TotalArea,
			Economy:   res.Economy,
		})
	}
	return out
}

// ProfileResult summarizes one cooling policy of the comparison run.
type ProfileResult struct {
	Profile    string  `json:"profile"`
	MeanSizeUm float64 `json:"l_mean_um"`
	CVPct      float64 `json:"cv_pct"`
	FinalTemp  float64 `json:"t_final_c"`
}

// CompareProfiles runs the batch once per cooling policy and reports the
// final mean size and CV of each.
func CompareProfiles(base crystallizer.Config) ([]ProfileResult, error) {
	out := make([]ProfileResult, 0, len(crystallizer.ProfileNames()))
	for _, name := range crystallizer.ProfileNames() {
		cfg := base
		cfg.Profile = name
		res, err := crystallizer.Run(cfg)
		if err != nil {
			return nil, err
		}
		final := res.Final()
		out = append(out, ProfileResult{
			Profile:    name,
			MeanSizeUm: final.MeanSize * 1e6,
			CVPct:      final.CV * 100,
			FinalTemp:  final.Temperature,
		})
	}
	return out, nil
}
