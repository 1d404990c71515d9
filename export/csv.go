// Package export writes the structured solver results as comma-separated
// tables, one writer per result kind.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rahibbwissale-bit/evap-crit-PIC11/analysis"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/crystallizer"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/evaporator"
)

func f(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}

func writeAll(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// Effects writes the per-effect table of an evaporator result.
func Effects(w io.Writer, res *evaporator.Result) error {
	rows := [][]string{{"effect", "l_kg_h", "v_kg_h", "x_pct", "t_c", "p_bar", "a_m2", "q_kw", "u_w_m2k"}}
	for _, e := range res.Effects {
		rows = append(rows, []string{
			strconv.Itoa(e.Index), f(e.Liquid), f(e.Vapor), f(e.FractionPct),
			f(e.Temperature), f(e.Pressure), f(e.Area), f(e.Duty), f(e.U),
		})
	}
	return writeAll(w, rows)
}

// History writes the crystallizer time-history table.
func History(w io.Writer, res *crystallizer.Result) error {
	rows := [][]string{{"t_s", "t_c", "s", "c_g100g", "c_star_g100g", "l_mean_m", "cv"}}
	for _, r := range res.History {
		rows = append(rows, []string{
			f(r.Time), f(r.Temperature), f(r.Supersaturation),
			f(r.Concentration), f(r.Solubility), f(r.MeanSize), f(r.CV),
		})
	}
	return writeAll(w, rows)
}

// Distribution writes the final size grid and number densities.
func Distribution(w io.Writer, res *crystallizer.Result) error {
	rows := [][]string{{"size_m", "density"}}
	for i := range res.Sizes {
		rows = append(rows, []string{f(res.Sizes[i]), f(res.Density[i])})
	}
	return writeAll(w, rows)
}

// EffectStudy writes the effect-count study table.
func EffectStudy(w io.Writer, study []analysis.EffectStudyRow) error {
	rows := [][]string{{"n_effects", "m_steam_kg_h", "economy", "a_total_m2", "c_evap_eur"}}
	for _, r := range study {
		rows = append(rows, []string{
			strconv.Itoa(r.Effects), f(r.SteamFlow), f(r.Economy), f(r.TotalArea), f(r.CapitalCost),
		})
	}
	return writeAll(w, rows)
}

// PressureSweep writes the steam-pressure sensitivity table.
func PressureSweep(w io.Writer, sweep []analysis.PressurePoint) error {
	rows := [][]string{{"p_steam_bar", "m_steam_kg_h", "a_total_m2", "economy"}}
	for _, p := range sweep {
		rows = append(rows, []string{f(p.SteamPressure), f(p.SteamFlow), f(p.TotalArea), f(p.Economy)})
	}
	return writeAll(w, rows)
}

// ConcentrationSweep writes the final-concentration sensitivity table.
func ConcentrationSweep(w io.Writer, sweep []analysis.ConcentrationPoint) error {
	rows := [][]string{{"xout_pct", "m_steam_kg_h", "a_total_m2", "v_total_kg_h", "economy"}}
	for _, p := range sweep {
		rows = append(rows, []string{f(p.TargetPct), f(p.SteamFlow), f(p.TotalArea), f(p.TotalVapor), f(p.Economy)})
	}
	return writeAll(w, rows)
}

// FeedFlowSweep writes the feed-flow sensitivity table.
func FeedFlowSweep(w io.Writer, sweep []analysis.FeedFlowPoint) error {
	rows := [][]string{{"f_kg_h", "m_steam_kg_h", "a_total_m2", "economy"}}
	for _, p := range sweep {
		rows = append(rows, []string{f(p.FeedFlow), f(p.SteamFlow), f(p.TotalArea), f(p.Economy)})
	}
	return writeAll(w, rows)
}

// FeedTempSweep writes the feed-temperature sensitivity table.
func FeedTempSweep(w io.Writer, sweep []analysis.FeedTempPoint) error {
	rows := [][]string{{"t_feed_c", "m_steam_kg_h", "a_total_m2", "economy"}}
	for _, p := range sweep {
		rows = append(rows, []string{f(p.FeedTemp), f(p.SteamFlow), f(p.TotalArea), f(p.Economy)})
	}
	return writeAll(w, rows)
}

// Profiles writes the cooling-profile comparison table.
func Profiles(w io.Writer, cmp []analysis.ProfileResult) error {
	rows := [][]string{{"profile", "l_mean_um", "cv_pct", "t_final_c"}}
	for _, p := range cmp {
		rows = append(rows, []string{p.Profile, f(p.MeanSizeUm), f(p.CVPct), f(p.FinalTemp)})
	}
	return writeAll(w, rows)
}
