package evaporator

import "fmt"

// Defaults applied by Config.withDefaults.
const (
	DefaultHeatLossFraction = 0.03
	DefaultMaxIterations    = 50
	DefaultTolerance        = 1e-4
	DefaultFinalPressure    = 0.2 // bar abs, condenser side
)

// Config holds the physical and numerical inputs of a multi-effect train.
type Config struct {
	FeedFlow       float64 // kg/h
	FeedFraction   float64 // solute mass fraction of the feed, 0..1
	TargetFraction float64 // solute mass fraction of the product, 0..1
	Effects        int     // number of effects, co-current chain
	SteamPressure  float64 // motive steam pressure, bar abs
	FinalPressure  float64 // last-effect condenser pressure, bar abs
	FeedTemp       float64 // °C

	HeatLossFraction  float64 // fraction of duty lost to surroundings
	FoulingResistance float64 // m²K/W, added to 1/U
	UOverride         float64 // W/m²/K; 0 means use the stage profile

	MaxIterations int
	Tolerance     float64 // relative change of vapor flows
}

// ConfigError reports an invalid physical input. The run is aborted before
// any computation starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("evaporator config: %s: %s", e.Field, e.Reason)
}

func (c Config) withDefaults() Config {
	if c.HeatLossFraction == 0 {
		c.HeatLossFraction = DefaultHeatLossFraction
	}
	if c.FinalPressure == 0 {
		c.FinalPressure = DefaultFinalPressure
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.Tolerance <= 0 {
		c.Tolerance = DefaultTolerance
	}
	return c
}

// validate fails fast on inputs that violate the physical constraints.
func (c Config) validate() error {
	switch {
	case c.FeedFlow <= 0:
		return &ConfigError{"FeedFlow", "must be positive"}
	case c.FeedFraction <= 0 || c.FeedFraction >= 1:
		return &ConfigError{"FeedFraction", "must be in (0, 1)"}
	case c.TargetFraction >= 1:
		return &ConfigError{"TargetFraction", "must be below 1"}
	case c.TargetFraction <= c.FeedFraction:
		return &ConfigError{"TargetFraction", "must exceed FeedFraction"}
	case c.Effects < 1:
		return &ConfigError{"Effects", "at least one effect required"}
	case c.FinalPressure <= 0:
		return &ConfigError{"FinalPressure", "must be positive"}
	case c.SteamPressure <= c.FinalPressure:
		return &ConfigError{"SteamPressure", "must exceed FinalPressure"}
	case c.FoulingResistance < 0:
		return &ConfigError{"FoulingResistance", "must be non-negative"}
	}
	return nil
}
