// Package config loads the simulator settings from an ini file into an
// explicit Config value. The value is passed to the constructors that need
// it; nothing here is process-wide state.
package config

import (
	"gopkg.in/ini.v1"

	log "github.com/sirupsen/logrus"
)

type Config struct {
	Thermo       ThermoConfig
	Evaporator   EvaporatorConfig
	Crystallizer CrystallizerConfig
	Economics    EconomicsConfig
	Server       ServerConfig
}

type ThermoConfig struct {
	PreciseBackend bool // false forces the empirical correlations
}

type EvaporatorConfig struct {
	HeatLossFraction  float64
	FoulingResistance float64
	MaxIterations     int
	Tolerance         float64
	FinalPressure     float64
}

type CrystallizerConfig struct {
	GridPoints int
	MaxSize    float64
	TimeStep   float64
}

type EconomicsConfig struct {
	SteamPrice    float64 // €/t
	WaterPrice    float64 // €/m³
	ElectricPrice float64 // €/kWh
	OperatorPrice float64 // €/h
	HoursPerYear  float64
}

type ServerConfig struct {
	Addr string
}

// Default returns the built-in settings, identical to an absent ini file.
func Default() Config {
	return Config{
		Thermo: ThermoConfig{PreciseBackend: true},
		Evaporator: EvaporatorConfig{
			HeatLossFraction: 0.03,
			MaxIterations:    50,
			Tolerance:        1e-4,
			FinalPressure:    0.2,
		},
		Crystallizer: CrystallizerConfig{
			GridPoints: 80,
			MaxSize:    8e-4,
			TimeStep:   60,
		},
		Economics: EconomicsConfig{
			SteamPrice:    25.0,
			WaterPrice:    0.15,
			ElectricPrice: 0.12,
			OperatorPrice: 35.0,
			HoursPerYear:  8000,
		},
		Server: ServerConfig{Addr: ":9000"},
	}
}

// Load reads an ini file, falling back to Default for missing keys. A
// missing file is not fatal: the defaults are returned with a warning.
func Load(path string) Config {
	cfg := Default()
	file, err := ini.Load(path)
	if err != nil {
		log.WithFields(log.Fields{"path": path, "err": err}).
			Warn("config file not readable, using defaults")
		return cfg
	}

	thermo := file.Section("thermo")
	cfg.Thermo.PreciseBackend = thermo.Key("PreciseBackend").MustBool(cfg.Thermo.PreciseBackend)

	evap := file.Section("evaporator")
	cfg.Evaporator.HeatLossFraction = evap.Key("HeatLossFraction").MustFloat64(cfg.Evaporator.HeatLossFraction)
	cfg.Evaporator.FoulingResistance = evap.Key("FoulingResistance").MustFloat64(cfg.Evaporator.FoulingResistance)
	cfg.Evaporator.MaxIterations = evap.Key("MaxIterations").MustInt(cfg.Evaporator.MaxIterations)
	cfg.Evaporator.Tolerance = evap.Key("Tolerance").MustFloat64(cfg.Evaporator.Tolerance)
	cfg.Evaporator.FinalPressure = evap.Key("FinalPressure").MustFloat64(cfg.Evaporator.FinalPressure)

	crist := file.Section("crystallizer")
	cfg.Crystallizer.GridPoints = crist.Key("GridPoints").MustInt(cfg.Crystallizer.GridPoints)
	cfg.Crystallizer.MaxSize = crist.Key("MaxSize").MustFloat64(cfg.Crystallizer.MaxSize)
	cfg.Crystallizer.TimeStep = crist.Key("TimeStep").MustFloat64(cfg.Crystallizer.TimeStep)

	eco := file.Section("economics")
	cfg.Economics.SteamPrice = eco.Key("SteamPrice").MustFloat64(cfg.Economics.SteamPrice)
	cfg.Economics.WaterPrice = eco.Key("WaterPrice").MustFloat64(cfg.Economics.WaterPrice)
	cfg.Economics.ElectricPrice = eco.Key("ElectricPrice").MustFloat64(cfg.Economics.ElectricPrice)
	cfg.Economics.OperatorPrice = eco.Key("OperatorPrice").MustFloat64(cfg.Economics.OperatorPrice)
	cfg.Economics.HoursPerYear = eco.Key("HoursPerYear").MustFloat64(cfg.Economics.HoursPerYear)

	srv := file.Section("server")
	cfg.Server.Addr = srv.Key("Addr").MustString(cfg.Server.Addr)

	return cfg
}
