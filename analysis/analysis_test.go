package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahibbwissale-bit/evap-crit-PIC11/crystallizer"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/evaporator"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/thermo"
)

func baseTrain() evaporator.Config {
	return evaporator.Config{
		FeedFlow:       20000,
		FeedFraction:   0.15,
		TargetFraction: 0.65,
		Effects:        3,
		SteamPressure:  3.5,
		FinalPressure:  0.2,
		FeedTemp:       85,
	}
}

func baseBatch() crystallizer.Config {
	return crystallizer.Config{
		Mass:          5000,
		Concentration: 65,
		InitialTemp:   70,
		Duration:      3600,
		TimeStep:      60,
	}
}

func TestEffectCountStudy(t *testing.T) {
	prov := thermo.NewProvider(true)
	study := EffectCountStudy(baseTrain(), prov, 5)
	require.Len(t, study, 4)

	for i, row := range study {
		assert.Equal(t, i+2, row.Effects)
		assert.Positive(t, row.SteamFlow)
		assert.Positive(t, row.TotalArea)
		assert.InDelta(t, EvaporatorCapitalCost(row.TotalArea), row.CapitalCost, 1e-9)
	}
	// More effects reuse vapor more: steam consumption falls, economy rises.
	for i := 1; i < len(study); i++ {
		assert.Less(t, study[i].SteamFlow, study[i-1].SteamFlow)
		assert.Greater(t, study[i].Economy, study[i-1].Economy)
	}
}

func TestCapitalCostCorrelations(t *testing.T) {
	assert.InDelta(t, 15000*math.Pow(120, 0.65), EvaporatorCapitalCost(120), 1e-6)
	assert.InDelta(t, 25000*math.Pow(5, 0.6), CrystallizerCapitalCost(5), 1e-6)
	assert.InDelta(t, 8000*math.Pow(120, 0.7), ExchangerCapitalCost(120), 1e-6)
}

func TestOperatingCostsAnnual(t *testing.T) {
	c := DefaultOperatingCosts(6000)
	// steam 6 t/h · 25 €/t · 8000 h + water + electricity + labor
	want := 6.0*25*8000 + 10*0.15*8000 + 50*0.12*8000 + 3*35.0*8000
	assert.InDelta(t, want, c.Annual(), 1e-6)
}

func TestGlobalEconomics(t *testing.T) {
	eco := GlobalEconomics(1.0e6, 0.2e6, 0.3e6, 2.1e6, 18461)
	assert.InDelta(t, 1.5e6, eco.TCI, 1e-6)
	assert.InDelta(t, 2.1e6, eco.OPEX, 1e-6)
	assert.InDelta(t, 2.1e6/18461, eco.CostPerTonne, 1e-6)
	assert.InDelta(t, 1.5/2.1, eco.ROIYears, 1e-6)
}

func TestSteamPressureSweep(t *testing.T) {
	prov := thermo.NewProvider(true)
	sweep := SteamPressureSweep(baseTrain(), prov, 2.5, 4.5, 10)
	require.Len(t, sweep, 10)

	assert.InDelta(t, 2.5, sweep[0].SteamPressure, 1e-9)
	assert.InDelta(t, 4.5, sweep[9].SteamPressure, 1e-9)
	for i, p := range sweep {
		assert.Positive(t, p.SteamFlow)
		assert.Positive(t, p.TotalArea)
		assert.Len(t, p.EffectTemps, 3)
		if i > 0 {
			assert.Greater(t, p.SteamPressure, sweep[i-1].SteamPressure)
		}
	}
}

func TestFinalConcentrationSweep(t *testing.T) {
	prov := thermo.NewProvider(true)
	sweep := FinalConcentrationSweep(baseTrain(), prov, 0.60, 0.70, 6)
	require.Len(t, sweep, 6)

	// A tighter product needs more evaporation.
	for i := 1; i < len(sweep); i++ {
		assert.Greater(t, sweep[i].TotalVapor, sweep[i-1].TotalVapor)
	}
}

func TestFeedFlowSweep(t *testing.T) {
	prov := thermo.NewProvider(true)
	sweep := FeedFlowSweep(baseTrain(), prov, 20, 9)
	require.Len(t, sweep, 9)

	assert.InDelta(t, 16000, sweep[0].FeedFlow, 1e-6)
	assert.InDelta(t, 24000, sweep[8].FeedFlow, 1e-6)
	for i := 1; i < len(sweep); i++ {
		assert.Greater(t, sweep[i].SteamFlow, sweep[i-1].SteamFlow, "more feed needs more steam")
	}
}

func TestFeedTempSweep(t *testing.T) {
	prov := thermo.NewProvider(true)
	sweep := FeedTempSweep(baseTrain(), prov, 75, 95, 5)
	require.Len(t, sweep, 5)

	assert.InDelta(t, 75.0, sweep[0].FeedTemp, 1e-9)
	assert.InDelta(t, 95.0, sweep[4].FeedTemp, 1e-9)
	// A hotter feed needs less steam for the same duty.
	for i := 1; i < len(sweep); i++ {
		assert.Less(t, sweep[i].SteamFlow, sweep[i-1].SteamFlow)
	}
}

func TestCompareProfiles(t *testing.T) {
	results, err := CompareProfiles(baseBatch())
	require.NoError(t, err)
	require.Len(t, results, len(crystallizer.ProfileNames()))

	seen := map[string]bool{}
	for _, r := range results {
		seen[r.Profile] = true
		assert.GreaterOrEqual(t, r.MeanSizeUm, 0.0)
		assert.GreaterOrEqual(t, r.CVPct, 0.0)
	}
	for _, name := range crystallizer.ProfileNames() {
		assert.True(t, seen[name], "missing profile %s", name)
	}

	// The linear ramp lands on the target temperature.
	for _, r := range results {
		if r.Profile == crystallizer.ProfileLinear {
			assert.InDelta(t, 35.0, r.FinalTemp, 1e-6)
		}
	}
}

func TestCompareProfilesBadRecipe(t *testing.T) {
	cfg := baseBatch()
	cfg.Duration = -1
	_, err := CompareProfiles(cfg)
	assert.Error(t, err)
}
