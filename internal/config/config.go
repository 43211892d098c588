// Package config maps viper settings onto optimizer options.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/katalvlaran/mixpath/harmonic"
	"github.com/katalvlaran/mixpath/optimize"
)

// EnvPrefix prefixes every environment override, e.g. MIXPATH_TIME_LIMIT.
const EnvPrefix = "MIXPATH"

// Config holds all runtime configuration for an optimization run.
// Values are populated from a config file, MIXPATH_* env vars, and CLI flags.
type Config struct {
	TempoTolerance    float64       `mapstructure:"tempo_tolerance"`
	AllowHalftime     bool          `mapstructure:"allow_halftime"`
	HarmonicLevel     string        `mapstructure:"harmonic_level"`
	MaxViolationPct   float64       `mapstructure:"max_violation_pct"`
	MaxDuration       float64       `mapstructure:"max_duration"`
	EnforceEnergyFlow bool          `mapstructure:"enforce_energy_flow"`
	MaxEnergyStep     int           `mapstructure:"max_energy_step"`
	EnergyWeight      float64       `mapstructure:"energy_weight"`
	TimeLimit         time.Duration `mapstructure:"time_limit"`
	BaseWeight        int64         `mapstructure:"base_weight"`
	Verbose           bool          `mapstructure:"verbose"`
}

// SetDefaults registers the built-in defaults on v. Registering every key
// also lets AutomaticEnv resolve it.
func SetDefaults(v *viper.Viper) {
	d := optimize.DefaultOptions()
	v.SetDefault("tempo_tolerance", d.TempoTolerance)
	v.SetDefault("allow_halftime", d.AllowHalftime)
	v.SetDefault("harmonic_level", d.HarmonicLevel.String())
	v.SetDefault("max_violation_pct", d.MaxViolationPct)
	v.SetDefault("max_duration", d.MaxDuration)
	v.SetDefault("enforce_energy_flow", d.EnforceEnergyFlow)
	v.SetDefault("max_energy_step", d.MaxEnergyStep)
	v.SetDefault("energy_weight", d.EnergyWeight)
	v.SetDefault("time_limit", d.TimeLimit)
	v.SetDefault("base_weight", d.BaseWeight)
	v.SetDefault("verbose", false)
}

// BindEnv enables MIXPATH_* overrides on v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// Load reads configuration from v, applying built-in defaults for any values
// not set by config file, environment, or flags.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	return cfg, nil
}

// ToOptions converts cfg into validated optimizer options.
func (c Config) ToOptions() (optimize.Options, error) {
	level, err := harmonic.ParseLevel(c.HarmonicLevel)
	if err != nil {
		return optimize.Options{}, fmt.Errorf("config: %w", err)
	}

	opts := optimize.Options{
		TempoTolerance:    c.TempoTolerance,
		AllowHalftime:     c.AllowHalftime,
		HarmonicLevel:     level,
		MaxViolationPct:   c.MaxViolationPct,
		MaxDuration:       c.MaxDuration,
		EnforceEnergyFlow: c.EnforceEnergyFlow,
		MaxEnergyStep:     c.MaxEnergyStep,
		EnergyWeight:      c.EnergyWeight,
		TimeLimit:         c.TimeLimit,
		BaseWeight:        c.BaseWeight,
	}
	if err := opts.Validate(); err != nil {
		return optimize.Options{}, fmt.Errorf("config: %w", err)
	}

	return opts, nil
}
