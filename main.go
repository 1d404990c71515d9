package main

import (
	"flag"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/rahibbwissale-bit/evap-crit-PIC11/analysis"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/config"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/crystallizer"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/evaporator"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/export"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/server"
	"github.com/rahibbwissale-bit/evap-crit-PIC11/thermo"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func main() {
	mode := flag.String("mode", "scenario", "scenario | serve")
	confPath := flag.String("conf", "conf/config.ini", "path to the ini configuration")
	addr := flag.String("addr", "", "listen address, overrides the config value")
	exportDir := flag.String("exports", "exports", "directory for CSV exports")
	flag.Parse()

	cfg := config.Load(*confPath)
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	switch *mode {
	case "serve":
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
		s := server.NewServer(cfg.Server.Addr, cfg, upgrader)
		if err := s.Serve(); err != nil {
			log.Fatal("serve: ", err)
		}
	case "scenario":
		if err := scenario(cfg, *exportDir); err != nil {
			log.Fatal("scenario: ", err)
		}
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

// scenario runs the reference design case end to end: the 3-effect train,
// the batch crystallization, the cooling-profile comparison, the
// effect-count study, the sensitivity sweeps and the plant economics, and
// exports every table as CSV.
func scenario(cfg config.Config, exportDir string) error {
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return err
	}
	prov := thermo.NewProvider(cfg.Thermo.PreciseBackend)

	// Evaporation design case.
	evapCfg := evaporator.Config{
		FeedFlow:          20000,
		FeedFraction:      0.15,
		TargetFraction:    0.65,
		Effects:           3,
		SteamPressure:     3.5,
		FinalPressure:     cfg.Evaporator.FinalPressure,
		FeedTemp:          85,
		HeatLossFraction:  cfg.Evaporator.HeatLossFraction,
		FoulingResistance: cfg.Evaporator.FoulingResistance,
		MaxIterations:     cfg.Evaporator.MaxIterations,
		Tolerance:         cfg.Evaporator.Tolerance,
	}
	evapRes, err := evaporator.Solve(evapCfg, prov)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"steam_kg_h": evapRes.SteamFlow,
		"economy":    evapRes.Economy,
		"a_total_m2": evapRes.TotalArea,
		"iterations": evapRes.Iterations,
		"status":     evapRes.Status,
	}).Info("evaporation solved")
	if err := exportTo(exportDir, "evaporation_effects.csv", func(f *os.File) error {
		return export.Effects(f, evapRes)
	}); err != nil {
		return err
	}

	// Batch crystallization, linear cooling.
	batchCfg := crystallizer.Config{
		Mass:          5000,
		Concentration: 65,
		InitialTemp:   70,
		Duration:      4 * 3600,
		TimeStep:      cfg.Crystallizer.TimeStep,
		Profile:       crystallizer.ProfileLinear,
		GridPoints:    cfg.Crystallizer.GridPoints,
		MaxSize:       cfg.Crystallizer.MaxSize,
	}
	batchRes, err := crystallizer.Run(batchCfg)
	if err != nil {
		return err
	}
	final := batchRes.Final()
	log.WithFields(log.Fields{
		"l_mean_um": final.MeanSize * 1e6,
		"cv_pct":    final.CV * 100,
		"t_final_c": final.Temperature,
	}).Info("crystallization finished")
	if err := exportTo(exportDir, "crystallization_history.csv", func(f *os.File) error {
		return export.History(f, batchRes)
	}); err != nil {
		return err
	}
	if err := exportTo(exportDir, "crystallization_distribution.csv", func(f *os.File) error {
		return export.Distribution(f, batchRes)
	}); err != nil {
		return err
	}

	// Cooling-profile comparison.
	profiles, err := analysis.CompareProfiles(batchCfg)
	if err != nil {
		return err
	}
	for _, p := range profiles {
		log.WithFields(log.Fields{
			"profile":   p.Profile,
			"l_mean_um": p.MeanSizeUm,
			"cv_pct":    p.CVPct,
		}).Info("profile compared")
	}
	if err := exportTo(exportDir, "profiles_comparison.csv", func(f *os.File) error {
		return export.Profiles(f, profiles)
	}); err != nil {
		return err
	}

	// Effect-count study and economics.
	study := analysis.EffectCountStudy(evapCfg, prov, 5)
	if err := exportTo(exportDir, "effect_study.csv", func(f *os.File) error {
		return export.EffectStudy(f, study)
	}); err != nil {
		return err
	}

	opex := analysis.DefaultOperatingCosts(evapRes.SteamFlow)
	opex.SteamPrice = cfg.Economics.SteamPrice
	opex.WaterPrice = cfg.Economics.WaterPrice
	opex.ElectricPrice = cfg.Economics.ElectricPrice
	opex.OperatorPrice = cfg.Economics.OperatorPrice
	opex.HoursPerYear = cfg.Economics.HoursPerYear
	production := evapRes.Product * cfg.Economics.HoursPerYear / 1000 // t/yr
	eco := analysis.GlobalEconomics(
		analysis.EvaporatorCapitalCost(evapRes.TotalArea),
		analysis.CrystallizerCapitalCost(5.0),
		analysis.ExchangerCapitalCost(evapRes.TotalArea),
		opex.Annual(),
		production,
	)
	log.WithFields(log.Fields{
		"tci_eur":     eco.TCI,
		"opex_eur_yr": eco.OPEX,
		"eur_per_t":   eco.CostPerTonne,
		"roi_years":   eco.ROIYears,
	}).Info("economics evaluated")

	// Sensitivity sweeps.
	if err := exportTo(exportDir, "sensitivity_pressure.csv", func(f *os.File) error {
		return export.PressureSweep(f, analysis.SteamPressureSweep(evapCfg, prov, 2.5, 4.5, 10))
	}); err != nil {
		return err
	}
	if err := exportTo(exportDir, "sensitivity_concentration.csv", func(f *os.File) error {
		return export.ConcentrationSweep(f, analysis.FinalConcentrationSweep(evapCfg, prov, 0.60, 0.70, 6))
	}); err != nil {
		return err
	}
	if err := exportTo(exportDir, "sensitivity_feed.csv", func(f *os.File) error {
		return export.FeedFlowSweep(f, analysis.FeedFlowSweep(evapCfg, prov, 20, 9))
	}); err != nil {
		return err
	}
	if err := exportTo(exportDir, "sensitivity_feed_temp.csv", func(f *os.File) error {
		return export.FeedTempSweep(f, analysis.FeedTempSweep(evapCfg, prov, 75, 95, 5))
	}); err != nil {
		return err
	}

	log.WithField("dir", exportDir).Info("scenario complete, tables exported")
	return nil
}

func exportTo(dir, name string, write func(*os.File) error) error {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
