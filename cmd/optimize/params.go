// Package main provides CMA-ES optimization of the basin autopilot gains.
package main

import (
	"github.com/pthm-cable/basin/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "water_gain", Path: "autopilot.water_gain", Min: 0.05, Max: 3.0, Default: 0.6},
			{Name: "water_lead", Path: "autopilot.water_lead", Min: 0, Max: 10.0, Default: 2.0},
			{Name: "temp_lead", Path: "autopilot.temp_lead", Min: 0, Max: 1.0, Default: 0.1},
			{Name: "mineral_margin", Path: "autopilot.mineral_margin", Min: 0, Max: 0.6, Default: 0.4},
			// Slow players are the interesting case; keep it above a few frames
			{Name: "reaction_time", Path: "autopilot.reaction_time", Min: 0.05, Max: 2.0, Default: 0.25},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Autopilot = config.AutopilotConfig{
		WaterGain:     c[0],
		WaterLead:     c[1],
		TempLead:      c[2],
		MineralMargin: c[3],
		ReactionTime:  c[4],
	}
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	a := cfg.Autopilot
	return []float64{a.WaterGain, a.WaterLead, a.TempLead, a.MineralMargin, a.ReactionTime}
}
