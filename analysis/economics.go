package analysis

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/rahibbwissale-bit/evap-crit-PIC11/evaporator"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/thermo"
)

// Capital cost correlations, € as a power of installed size.
const (
	evapCostCoeff  = 15000.0
	evapCostExp    = 0.65
	cristCostCoeff = 25000.0
	cristCostExp   = 0.6
	exchCostCoeff  = 8000.0
	exchCostExp    = 0.7
)

// EvaporatorCapitalCost estimates the installed cost (€) of the train from
// its total exchange area (m²).
func EvaporatorCapitalCost(totalArea float64) float64 {
	return evapCostCoeff * math.Pow(totalArea, evapCostExp)
}

// CrystallizerCapitalCost estimates the installed cost (€) from the vessel
// volume (m³).
func CrystallizerCapitalCost(volumeM3 float64) float64 {
	return cristCostCoeff * math.Pow(volumeM3, cristCostExp)
}

// ExchangerCapitalCost estimates the auxiliary exchanger cost (€) from the
// exchange area (m²).
func ExchangerCapitalCost(areaM2 float64) float64 {
	return exchCostCoeff * math.Pow(areaM2, exchCostExp)
}

// EffectStudyRow is one row of the effect-count study.
type EffectStudyRow struct {
	Effects     int     `json:"n_effects"`
	SteamFlow   float64 `json:"m_steam_kg_h"`
	Economy     float64 `json:"economy"`
	TotalArea   float64 `json:"a_total_m2"`
	CapitalCost float64 `json:"c_evap_eur"`
}

// EffectCountStudy solves the same duty with 2..maxEffects effects and
// reports steam consumption, economy, area and the capital cost trend.
func EffectCountStudy(base evaporator.Config, prov *thermo.Provider, maxEffects int) []EffectStudyRow {
	out := make([]EffectStudyRow, 0, maxEffects-1)
	for n := 2; n <= maxEffects; n++ {
		cfg := base
		cfg.Effects = n
		res, err := evaporator.Solve(cfg, prov)
		if err != nil {
			log.WithFields(log.Fields{"effects": n, "err": err}).Warn("effect study: point skipped")
			continue
		}
		out = append(out, EffectStudyRow{
			Effects:     n,
			SteamFlow:   res.SteamFlow,
			Economy:     res.Economy,
			TotalArea:   res.TotalArea,
			CapitalCost: EvaporatorCapitalCost(res.TotalArea),
		})
	}
	return out
}

// OperatingCosts holds the unit prices of the annual cost model.
type OperatingCosts struct {
	SteamFlow     float64 // kg/h
	SteamPrice    float64 // €/t
	CoolingWater  float64 // m³/h
	WaterPrice    float64 // €/m³
	ElectricPower float64 // kW
	ElectricPrice float64 // €/kWh
	Operators     int
	OperatorPrice float64 // €/h per operator
	HoursPerYear  float64
}

// DefaultOperatingCosts returns the reference unit prices for a given steam
// consumption.
func DefaultOperatingCosts(steamFlow float64) OperatingCosts {
	return OperatingCosts{
		SteamFlow:     steamFlow,
		SteamPrice:    25.0,
		CoolingWater:  10.0,
		WaterPrice:    0.15,
		ElectricPower: 50.0,
		ElectricPrice: 0.12,
		Operators:     3,
		OperatorPrice: 35.0,
		HoursPerYear:  8000.0,
	}
}

// Annual returns the yearly operating cost (€/yr): steam, cooling water,
// electricity and labor.
func (c OperatingCosts) Annual() float64 {
	steam := c.SteamFlow / 1000 * c.SteamPrice * c.HoursPerYear
	water := c.CoolingWater * c.WaterPrice * c.HoursPerYear
	electric := c.ElectricPower * c.ElectricPrice * c.HoursPerYear
	labor := float64(c.Operators) * c.OperatorPrice * c.HoursPerYear
	return steam + water + electric + labor
}

// EconomicSummary is the simplified plant-level view.
type EconomicSummary struct {
	TCI          float64 `json:"tci_eur"`     // total capital investment
	OPEX         float64 `json:"opex_eur_yr"` // annual operating cost
	CostPerTonne float64 `json:"eur_per_t"`   // production cost
	ROIYears     float64 `json:"roi_years"`   // crude payback estimate
}

// GlobalEconomics combines the capital items and the annual operating cost
// into TCI, cost per tonne and a crude payback figure.
func GlobalEconomics(evapCost, cristCost, exchCost, opexAnnual, productionTPerYear float64) EconomicSummary {
	tci := evapCost + cristCost + exchCost
	return EconomicSummary{
		TCI:          tci,
		OPEX:         opexAnnual,
		CostPerTonne: opexAnnual / math.Max(productionTPerYear, 1e-6),
		ROIYears:     tci / math.Max(opexAnnual, 1e-6),
	}
}
