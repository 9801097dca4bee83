// Package config provides configuration loading and access for the basin simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure returned from Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Session     SessionConfig     `yaml:"session"`
	Water       PoolConfig        `yaml:"water"`
	Minerals    PoolConfig        `yaml:"minerals"`
	Tank        TankConfig        `yaml:"tank"`
	Temperature TemperatureConfig `yaml:"temperature"`
	Dials       DialsConfig       `yaml:"dials"`
	MineralDrag MineralDragConfig `yaml:"mineral_drag"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Audio       AudioConfig       `yaml:"audio"`
	Autopilot   AutopilotConfig   `yaml:"autopilot"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SessionConfig holds session-wide timing.
type SessionConfig struct {
	MaxDT        float64 `yaml:"max_dt"`        // Frame dt clamp in seconds
	GrowthTarget float64 `yaml:"growth_target"` // Seconds of playing time until the plant is mature (0 = no victory)
	GrowthRate   float64 `yaml:"growth_rate"`   // Visible scale gained per second
	GrowthBase   float64 `yaml:"growth_base"`   // Visible scale at session start
}

// PoolConfig holds the parameters of one resource pool.
type PoolConfig struct {
	Initial           float64 `yaml:"initial"`
	ConsumptionRate   float64 `yaml:"consumption_rate"`   // Drain per second at session start
	ConsumptionGrowth float64 `yaml:"consumption_growth"` // Increase of the drain per second
	MinHard           float64 `yaml:"min_hard"`
	MinWarn           float64 `yaml:"min_warn"`
	MaxWarn           float64 `yaml:"max_warn"`
	MaxHard           float64 `yaml:"max_hard"`
}

// TankConfig maps the water dial onto a supply rate.
// Dial at 0 supplies MaxOutput, dial at 1 supplies MinOutput.
type TankConfig struct {
	MinOutput float64 `yaml:"min_output"`
	MaxOutput float64 `yaml:"max_output"`
}

// TemperatureConfig holds thermometer parameters in °C.
type TemperatureConfig struct {
	MinTemp           float64 `yaml:"min_temp"`
	MaxTemp           float64 `yaml:"max_temp"`
	Desired           float64 `yaml:"desired"`             // Initial desired temperature
	MinChangeInterval float64 `yaml:"min_change_interval"` // Seconds
	MaxChangeInterval float64 `yaml:"max_change_interval"` // Seconds
	NeedleSpeed       float64 `yaml:"needle_speed"`        // Degrees per second
	WarnBand          float64 `yaml:"warn_band"`
	HardBand          float64 `yaml:"hard_band"`
}

// DialConfig holds the sweep of a single dial in degrees.
type DialConfig struct {
	MinAngle     float64 `yaml:"min_angle"`
	MaxAngle     float64 `yaml:"max_angle"`
	InitialAngle float64 `yaml:"initial_angle"`
}

// DialsConfig holds both dials.
type DialsConfig struct {
	Water       DialConfig `yaml:"water"`
	Temperature DialConfig `yaml:"temperature"`
}

// MineralDragConfig holds drag-and-drop fertilizer parameters.
type MineralDragConfig struct {
	PerDrop float64 `yaml:"per_drop"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds of sim time per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// AudioConfig holds audio cue parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // 0..1
}

// AutopilotConfig holds gains for the headless dial controller.
type AutopilotConfig struct {
	WaterGain     float64 `yaml:"water_gain"`     // Extra supply per unit of water below the band middle
	WaterLead     float64 `yaml:"water_lead"`     // Seconds of drain growth to anticipate
	TempLead      float64 `yaml:"temp_lead"`      // Fraction of the way toward the retarget destination to aim, 0..1
	MineralMargin float64 `yaml:"mineral_margin"` // Drop when minerals fall this far below the band middle
	ReactionTime  float64 `yaml:"reaction_time"`  // Seconds between corrections
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WaterMid    float64 // Middle of the water warning band
	MineralsMid float64 // Middle of the minerals warning band
	TempSpan    float64 // MaxTemp - MinTemp
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WaterMid = (c.Water.MinWarn + c.Water.MaxWarn) / 2
	c.Derived.MineralsMid = (c.Minerals.MinWarn + c.Minerals.MaxWarn) / 2
	c.Derived.TempSpan = c.Temperature.MaxTemp - c.Temperature.MinTemp
}

// Validate reports every configuration problem found, joined into one error.
// Each problem wraps ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	checkPool := func(name string, p PoolConfig) {
		if !(p.MinHard <= p.MinWarn && p.MinWarn <= p.MaxWarn && p.MaxWarn <= p.MaxHard) {
			bad("%s bounds must satisfy min_hard <= min_warn <= max_warn <= max_hard (got %g, %g, %g, %g)",
				name, p.MinHard, p.MinWarn, p.MaxWarn, p.MaxHard)
		}
		if p.ConsumptionRate < 0 || p.ConsumptionGrowth < 0 {
			bad("%s consumption must be non-negative", name)
		}
	}
	checkPool("water", c.Water)
	checkPool("minerals", c.Minerals)

	if c.Tank.MinOutput > c.Tank.MaxOutput {
		bad("tank min_output %g exceeds max_output %g", c.Tank.MinOutput, c.Tank.MaxOutput)
	}

	t := c.Temperature
	if t.MinTemp >= t.MaxTemp {
		bad("temperature min_temp %g must be below max_temp %g", t.MinTemp, t.MaxTemp)
	}
	if t.Desired < t.MinTemp || t.Desired > t.MaxTemp {
		bad("temperature desired %g outside [%g, %g]", t.Desired, t.MinTemp, t.MaxTemp)
	}
	if t.MinChangeInterval <= 0 || t.MinChangeInterval > t.MaxChangeInterval {
		bad("temperature change interval [%g, %g] is not a valid positive range", t.MinChangeInterval, t.MaxChangeInterval)
	}
	if t.NeedleSpeed < 0 {
		bad("temperature needle_speed must be non-negative")
	}
	if t.WarnBand < 0 || t.WarnBand > t.HardBand {
		bad("temperature bands must satisfy 0 <= warn_band <= hard_band (got %g, %g)", t.WarnBand, t.HardBand)
	}

	checkDial := func(name string, d DialConfig) {
		if d.MinAngle >= d.MaxAngle {
			bad("%s dial min_angle %g must be below max_angle %g", name, d.MinAngle, d.MaxAngle)
		}
		// Angles are measured from up, within half a turn either side
		if d.MinAngle <= -180 || d.MaxAngle > 180 {
			bad("%s dial sweep [%g, %g] must lie within (-180, 180]", name, d.MinAngle, d.MaxAngle)
		}
		if d.InitialAngle < d.MinAngle || d.InitialAngle > d.MaxAngle {
			bad("%s dial initial_angle %g outside sweep", name, d.InitialAngle)
		}
	}
	checkDial("water", c.Dials.Water)
	checkDial("temperature", c.Dials.Temperature)

	if c.Session.MaxDT <= 0 {
		bad("session max_dt must be positive")
	}
	if c.Session.GrowthTarget < 0 {
		bad("session growth_target must be non-negative")
	}
	if c.Telemetry.StatsWindow <= 0 {
		bad("telemetry stats_window must be positive")
	}
	if c.MineralDrag.PerDrop < 0 {
		bad("mineral_drag per_drop must be non-negative")
	}
	if a := c.Autopilot; a.ReactionTime <= 0 || a.TempLead < 0 || a.TempLead > 1 {
		bad("autopilot needs reaction_time > 0 and temp_lead in [0, 1]")
	}

	return errors.Join(errs...)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
