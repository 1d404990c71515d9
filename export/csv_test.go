package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahibbwissale-bit/evap-crit-PIC11/analysis"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/crystallizer"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/evaporator"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/thermo"
)

func parse(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestEffectsTable(t *testing.T) {
	prov := thermo.NewProvider(true)
	res, err := evaporator.Solve(evaporator.Config{
		FeedFlow:       20000,
		FeedFraction:   0.15,
		TargetFraction: 0.65,
		Effects:        3,
		SteamPressure:  3.5,
		FinalPressure:  0.2,
		FeedTemp:       85,
	}, prov)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Effects(&buf, res))

	rows := parse(t, &buf)
	require.Len(t, rows, 4) // header + 3 effects
	assert.Equal(t, []string{"effect", "l_kg_h", "v_kg_h", "x_pct", "t_c", "p_bar", "a_m2", "q_kw", "u_w_m2k"}, rows[0])
	for i := 1; i < len(rows); i++ {
		assert.Equal(t, strconv.Itoa(i), rows[i][0])
		l, err := strconv.ParseFloat(rows[i][1], 64)
		require.NoError(t, err)
		assert.Positive(t, l)
	}
}

func TestHistoryAndDistributionTables(t *testing.T) {
	res, err := crystallizer.Run(crystallizer.Config{
		Mass:          5000,
		Concentration: 65,
		InitialTemp:   70,
		Duration:      600,
		TimeStep:      60,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, History(&buf, res))
	rows := parse(t, &buf)
	assert.Len(t, rows, len(res.History)+1)
	assert.Equal(t, []string{"t_s", "t_c", "s", "c_g100g", "c_star_g100g", "l_mean_m", "cv"}, rows[0])

	buf.Reset()
	require.NoError(t, Distribution(&buf, res))
	rows = parse(t, &buf)
	assert.Len(t, rows, len(res.Sizes)+1)
}

func TestAnalysisTables(t *testing.T) {
	study := []analysis.EffectStudyRow{
		{Effects: 2, SteamFlow: 8000, Economy: 1.8, TotalArea: 150, CapitalCost: 3.9e5},
		{Effects: 3, SteamFlow: 6500, Economy: 2.3, TotalArea: 180, CapitalCost: 4.4e5},
	}
	var buf bytes.Buffer
	require.NoError(t, EffectStudy(&buf, study))
	rows := parse(t, &buf)
	require.Len(t, rows, 3)
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "3", rows[2][0])

	buf.Reset()
	require.NoError(t, Profiles(&buf, []analysis.ProfileResult{
		{Profile: "linear", MeanSizeUm: 1.5, CVPct: 40, FinalTemp: 35},
	}))
	rows = parse(t, &buf)
	require.Len(t, rows, 2)
	assert.Equal(t, "linear", rows[1][0])

	buf.Reset()
	require.NoError(t, PressureSweep(&buf, []analysis.PressurePoint{
		{SteamPressure: 2.5, SteamFlow: 7000, TotalArea: 160, Economy: 2.2},
	}))
	require.Len(t, parse(t, &buf), 2)

	buf.Reset()
	require.NoError(t, ConcentrationSweep(&buf, []analysis.ConcentrationPoint{
		{TargetPct: 65, SteamFlow: 7000, TotalArea: 160, TotalVapor: 15384, Economy: 2.2},
	}))
	require.Len(t, parse(t, &buf), 2)

	buf.Reset()
	require.NoError(t, FeedFlowSweep(&buf, []analysis.FeedFlowPoint{
		{FeedFlow: 16000, SteamFlow: 5600, TotalArea: 130, Economy: 2.2},
	}))
	require.Len(t, parse(t, &buf), 2)

	buf.Reset()
	require.NoError(t, FeedTempSweep(&buf, []analysis.FeedTempPoint{
		{FeedTemp: 85, SteamFlow: 6700, TotalArea: 170, Economy: 2.3},
	}))
	require.Len(t, parse(t, &buf), 2)
}
